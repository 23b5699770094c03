package workflow

import (
	"fmt"

	"github.com/inkpress/printflow/internal/domain"
)

// Template identifies the notification message rendered for an event.
type Template string

const (
	TemplateTaskAssigned   Template = "task-assigned"
	TemplateApprovalNeeded Template = "approval-needed"
	TemplateTaskApproved   Template = "task-approved"
	TemplateTaskRejected   Template = "task-rejected"
	TemplateTaskCompleted  Template = "task-completed"
)

// Draft is a notification computed by the resolver before recipients
// are expanded. Roles are resolved to user ids by the caller through
// the user directory; UserIDs name explicit recipients.
type Draft struct {
	Template Template
	Roles    []domain.Role
	UserIDs  []string
	Title    string
	Message  string
	Priority domain.NotificationPriority
}

// ResolveNotifications maps a completed transition to the notification
// drafts it fans out to. Pure: no I/O, no recipient lookup. Transitions
// outside the defined cases resolve to an empty list.
func ResolveNotifications(task *domain.Task, oldStatus, newStatus domain.TaskStatus, reason string) []Draft {
	switch newStatus {
	case domain.StatusPendingApproval:
		return []Draft{{
			Template: TemplateApprovalNeeded,
			Roles:    []domain.Role{domain.RoleManager},
			Title:    "Approval required",
			Message:  fmt.Sprintf("Task %q is waiting for your approval before production", task.Title),
			Priority: domain.NotificationPriorityHigh,
		}}

	case domain.StatusApproved:
		return []Draft{{
			Template: TemplateTaskApproved,
			Roles:    []domain.Role{domain.RoleProductionTeam},
			UserIDs:  []string{task.CreatorID},
			Title:    "Task approved",
			Message:  fmt.Sprintf("Task %q was approved and production can begin", task.Title),
			Priority: domain.NotificationPriorityHigh,
		}}

	case domain.StatusDesignReview:
		// Only the pending-approval back-edge is a rejection.
		if oldStatus != domain.StatusPendingApproval {
			return nil
		}
		msg := fmt.Sprintf("Task %q was rejected", task.Title)
		if reason != "" {
			msg += " - reason: " + reason
		}
		return []Draft{{
			Template: TemplateTaskRejected,
			Roles:    []domain.Role{domain.RoleDesignTeam},
			Title:    "Task rejected",
			Message:  msg,
			Priority: domain.NotificationPriorityHigh,
		}}

	case domain.StatusDelivered:
		return []Draft{{
			Template: TemplateTaskCompleted,
			Roles:    []domain.Role{domain.RoleManager},
			UserIDs:  []string{task.CreatorID},
			Title:    "Task delivered",
			Message:  fmt.Sprintf("Task %q has been delivered", task.Title),
			Priority: domain.NotificationPriorityMedium,
		}}
	}

	return nil
}

// AssignmentDraft is the notification sent to the assigned team when a
// task is created.
func AssignmentDraft(task *domain.Task) Draft {
	return Draft{
		Template: TemplateTaskAssigned,
		Roles:    []domain.Role{task.AssignedTeam},
		Title:    "New task assigned",
		Message:  fmt.Sprintf("A new task was assigned to your team: %s", task.Title),
		Priority: domain.NotificationPriorityMedium,
	}
}

package domain

import "time"

// TaskStatus represents the lifecycle stage of a print task.
type TaskStatus string

const (
	StatusPendingDesign   TaskStatus = "pending-design"
	StatusInDesign        TaskStatus = "in-design"
	StatusDesignReview    TaskStatus = "design-review"
	StatusPendingApproval TaskStatus = "pending-approval"
	StatusApproved        TaskStatus = "approved"
	StatusInProduction    TaskStatus = "in-production"
	StatusReadyDelivery   TaskStatus = "ready-delivery"
	StatusDelivered       TaskStatus = "delivered"
	StatusCancelled       TaskStatus = "cancelled"
)

// AllStatuses lists every task status in lifecycle order.
var AllStatuses = []TaskStatus{
	StatusPendingDesign,
	StatusInDesign,
	StatusDesignReview,
	StatusPendingApproval,
	StatusApproved,
	StatusInProduction,
	StatusReadyDelivery,
	StatusDelivered,
	StatusCancelled,
}

// IsTerminal returns true if the status has no outgoing transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPendingDesign, StatusInDesign, StatusDesignReview,
		StatusPendingApproval, StatusApproved, StatusInProduction,
		StatusReadyDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

// Specification holds the print production details of a task.
type Specification struct {
	Quantity            int      `json:"quantity"`
	Size                string   `json:"size"`
	Material            string   `json:"material"`
	Colors              string   `json:"colors"`
	Finishes            []string `json:"finishes"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// Task represents a print order tracked through the workflow.
// Status is mutated only by the transition service; notes live in
// their own append-only log, never embedded in the task row.
type Task struct {
	ID             string
	Title          string
	Description    string
	ClientName     string
	ClientContact  string
	Priority       TaskPriority
	Status         TaskStatus
	AssignedTeam   Role
	AssigneeID     *string
	CreatorID      string
	DueDate        time.Time
	EstimatedValue float64
	ActualValue    *float64
	CompletedAt    *time.Time
	Specification  Specification
	Attachments    []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCreatedBy checks if the task was created by the given user.
func (t *Task) IsCreatedBy(userID string) bool {
	return t.CreatorID == userID
}

// IsOverdue checks if the task is past its due date and still open.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Status.IsTerminal() && t.DueDate.Before(now)
}

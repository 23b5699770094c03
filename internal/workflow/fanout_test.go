package workflow_test

import (
	"testing"

	"github.com/inkpress/printflow/internal/domain"
	"github.com/inkpress/printflow/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fanoutTask() *domain.Task {
	return &domain.Task{
		ID:           "task-1",
		Title:        "Business cards",
		CreatorID:    "creator-1",
		AssignedTeam: domain.RoleDesignTeam,
	}
}

func TestResolveNotifications_PendingApproval(t *testing.T) {
	drafts := workflow.ResolveNotifications(fanoutTask(), domain.StatusDesignReview, domain.StatusPendingApproval, "")
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, workflow.TemplateApprovalNeeded, d.Template)
	assert.Equal(t, []domain.Role{domain.RoleManager}, d.Roles)
	assert.Empty(t, d.UserIDs)
	assert.Contains(t, d.Message, "Business cards")
	assert.Equal(t, domain.NotificationPriorityHigh, d.Priority)
}

func TestResolveNotifications_Approved(t *testing.T) {
	drafts := workflow.ResolveNotifications(fanoutTask(), domain.StatusPendingApproval, domain.StatusApproved, "")
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, workflow.TemplateTaskApproved, d.Template)
	assert.Equal(t, []domain.Role{domain.RoleProductionTeam}, d.Roles)
	assert.Equal(t, []string{"creator-1"}, d.UserIDs)
}

func TestResolveNotifications_RejectionCarriesReason(t *testing.T) {
	drafts := workflow.ResolveNotifications(fanoutTask(), domain.StatusPendingApproval, domain.StatusDesignReview, "missing logo file")
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, workflow.TemplateTaskRejected, d.Template)
	assert.Equal(t, []domain.Role{domain.RoleDesignTeam}, d.Roles)
	assert.Contains(t, d.Message, "missing logo file")
}

func TestResolveNotifications_RejectionWithoutReason(t *testing.T) {
	drafts := workflow.ResolveNotifications(fanoutTask(), domain.StatusPendingApproval, domain.StatusDesignReview, "")
	require.Len(t, drafts, 1)
	assert.NotContains(t, drafts[0].Message, "reason")
}

// Moving back to design-review from anywhere other than pending-approval
// is rework, not a rejection, and produces no notifications.
func TestResolveNotifications_DesignReviewNotFromApprovalIsSilent(t *testing.T) {
	for _, old := range []domain.TaskStatus{
		domain.StatusInDesign, domain.StatusApproved, domain.StatusInProduction,
	} {
		drafts := workflow.ResolveNotifications(fanoutTask(), old, domain.StatusDesignReview, "")
		assert.Empty(t, drafts, "from %s", old)
	}
}

func TestResolveNotifications_Delivered(t *testing.T) {
	drafts := workflow.ResolveNotifications(fanoutTask(), domain.StatusReadyDelivery, domain.StatusDelivered, "")
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, workflow.TemplateTaskCompleted, d.Template)
	assert.Equal(t, []domain.Role{domain.RoleManager}, d.Roles)
	assert.Equal(t, []string{"creator-1"}, d.UserIDs)
	assert.Equal(t, domain.NotificationPriorityMedium, d.Priority)
}

func TestResolveNotifications_OtherTransitionsAreSilent(t *testing.T) {
	silent := []struct {
		old domain.TaskStatus
		new domain.TaskStatus
	}{
		{domain.StatusPendingDesign, domain.StatusInDesign},
		{domain.StatusInDesign, domain.StatusPendingDesign},
		{domain.StatusApproved, domain.StatusInProduction},
		{domain.StatusInProduction, domain.StatusReadyDelivery},
		{domain.StatusReadyDelivery, domain.StatusInProduction},
		{domain.StatusPendingDesign, domain.StatusCancelled},
		{domain.StatusInProduction, domain.StatusCancelled},
	}
	for _, c := range silent {
		drafts := workflow.ResolveNotifications(fanoutTask(), c.old, c.new, "")
		assert.Empty(t, drafts, "%s -> %s", c.old, c.new)
	}
}

func TestAssignmentDraft(t *testing.T) {
	d := workflow.AssignmentDraft(fanoutTask())
	assert.Equal(t, workflow.TemplateTaskAssigned, d.Template)
	assert.Equal(t, []domain.Role{domain.RoleDesignTeam}, d.Roles)
	assert.Contains(t, d.Message, "Business cards")
}

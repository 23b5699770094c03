package workflow_test

import (
	"testing"

	"github.com/inkpress/printflow/internal/domain"
	"github.com/inkpress/printflow/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsLegal_Exhaustive checks IsLegal against the table definition for
// every (current, target, role) triple.
func TestIsLegal_Exhaustive(t *testing.T) {
	for _, current := range domain.AllStatuses {
		rule := workflow.Rules[current]
		for _, target := range domain.AllStatuses {
			for _, role := range domain.AllRoles {
				want := current != target && rule.AllowsRole(role) && rule.AllowsTarget(target)
				got := workflow.IsLegal(current, target, role)
				assert.Equal(t, want, got, "IsLegal(%s, %s, %s)", current, target, role)
			}
		}
	}
}

func TestIsLegal_UnknownStatus(t *testing.T) {
	assert.False(t, workflow.IsLegal("bogus", domain.StatusInDesign, domain.RoleManager))
	assert.False(t, workflow.IsLegal(domain.StatusInDesign, "bogus", domain.RoleManager))
}

func TestCheckTransition_DistinguishesForbiddenFromInvalidTarget(t *testing.T) {
	// Reachable target, wrong role: forbidden.
	err := workflow.CheckTransition(domain.StatusPendingApproval, domain.StatusApproved, domain.RoleSalesTeam)
	require.ErrorIs(t, err, domain.ErrForbidden)

	// Unreachable target, allowed role: invalid target.
	err = workflow.CheckTransition(domain.StatusPendingDesign, domain.StatusDelivered, domain.RoleManager)
	require.ErrorIs(t, err, domain.ErrInvalidTarget)

	// Self-transition: invalid target regardless of role.
	err = workflow.CheckTransition(domain.StatusInDesign, domain.StatusInDesign, domain.RoleManager)
	require.ErrorIs(t, err, domain.ErrInvalidTarget)

	// Unknown current status: invalid status.
	err = workflow.CheckTransition("bogus", domain.StatusInDesign, domain.RoleManager)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// Out of a terminal status every request reports an unreachable target,
// even for roles that are not listed on the terminal rule.
func TestCheckTransition_TerminalStatusAlwaysInvalidTarget(t *testing.T) {
	for _, current := range []domain.TaskStatus{domain.StatusDelivered, domain.StatusCancelled} {
		for _, target := range domain.AllStatuses {
			for _, role := range domain.AllRoles {
				err := workflow.CheckTransition(current, target, role)
				assert.ErrorIs(t, err, domain.ErrInvalidTarget, "from %s to %s as %s", current, target, role)
			}
		}
	}
}

func TestCheckTransition_AllowsLegalTransitions(t *testing.T) {
	cases := []struct {
		current domain.TaskStatus
		target  domain.TaskStatus
		role    domain.Role
	}{
		{domain.StatusPendingDesign, domain.StatusInDesign, domain.RoleDesignTeam},
		{domain.StatusPendingApproval, domain.StatusApproved, domain.RoleManager},
		{domain.StatusPendingApproval, domain.StatusDesignReview, domain.RoleManager},
		{domain.StatusReadyDelivery, domain.StatusDelivered, domain.RoleSalesTeam},
		{domain.StatusInProduction, domain.StatusDesignReview, domain.RoleProductionTeam},
	}
	for _, c := range cases {
		assert.NoError(t, workflow.CheckTransition(c.current, c.target, c.role),
			"%s -> %s as %s", c.current, c.target, c.role)
	}
}

func TestNextStatuses(t *testing.T) {
	next := workflow.NextStatuses(domain.StatusPendingApproval, domain.RoleManager)
	assert.ElementsMatch(t, []domain.TaskStatus{
		domain.StatusApproved, domain.StatusDesignReview, domain.StatusCancelled,
	}, next)

	// Role not allowed on the status sees nothing.
	assert.Empty(t, workflow.NextStatuses(domain.StatusPendingApproval, domain.RoleDesignTeam))

	// Terminal statuses offer nothing to anyone.
	assert.Empty(t, workflow.NextStatuses(domain.StatusDelivered, domain.RoleManager))
}

func TestStatusChangeMessage(t *testing.T) {
	msg := workflow.StatusChangeMessage(domain.StatusInDesign, "")
	assert.Equal(t, `Status changed to "in-design"`, msg)

	msg = workflow.StatusChangeMessage(domain.StatusDesignReview, "missing logo file")
	assert.Equal(t, `Status changed to "design-review" - reason: missing logo file`, msg)
}

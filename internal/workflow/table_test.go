package workflow_test

import (
	"testing"

	"github.com/inkpress/printflow/internal/domain"
	"github.com/inkpress/printflow/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_CoversEveryStatus(t *testing.T) {
	for _, status := range domain.AllStatuses {
		_, ok := workflow.Rules[status]
		assert.True(t, ok, "no rule for status %s", status)
	}
	assert.Len(t, workflow.Rules, len(domain.AllStatuses))
}

func TestRules_NoSelfLoops(t *testing.T) {
	for status, rule := range workflow.Rules {
		assert.False(t, rule.AllowsTarget(status), "%s lists itself as reachable", status)
	}
}

func TestRules_TerminalStatusesHaveNoNextStatuses(t *testing.T) {
	for status, rule := range workflow.Rules {
		if status.IsTerminal() {
			assert.Empty(t, rule.NextStatuses, "%s is terminal but has next statuses", status)
		} else {
			assert.NotEmpty(t, rule.NextStatuses, "%s is not terminal but has no next statuses", status)
		}
	}
}

func TestRules_NextStatusesAndRolesAreValid(t *testing.T) {
	for status, rule := range workflow.Rules {
		for _, next := range rule.NextStatuses {
			assert.True(t, next.IsValid(), "%s reaches invalid status %q", status, next)
		}
		for _, role := range rule.AllowedRoles {
			assert.True(t, role.IsValid(), "%s allows invalid role %q", status, role)
		}
		assert.NotEmpty(t, rule.AllowedRoles, "%s has no allowed roles", status)
	}
}

func TestRules_OnlyManagerApproves(t *testing.T) {
	rule := workflow.Rules[domain.StatusPendingApproval]
	require.Equal(t, []domain.Role{domain.RoleManager}, rule.AllowedRoles)
	assert.True(t, rule.AllowsTarget(domain.StatusApproved))
	assert.True(t, rule.AllowsTarget(domain.StatusDesignReview))
	assert.True(t, rule.AllowsTarget(domain.StatusCancelled))
}

func TestRules_ReworkLoopExists(t *testing.T) {
	// in-design -> design-review -> pending-approval -> design-review -> in-design
	assert.True(t, workflow.Rules[domain.StatusInDesign].AllowsTarget(domain.StatusDesignReview))
	assert.True(t, workflow.Rules[domain.StatusDesignReview].AllowsTarget(domain.StatusPendingApproval))
	assert.True(t, workflow.Rules[domain.StatusPendingApproval].AllowsTarget(domain.StatusDesignReview))
	assert.True(t, workflow.Rules[domain.StatusDesignReview].AllowsTarget(domain.StatusInDesign))
}

func TestCanCreate(t *testing.T) {
	assert.True(t, workflow.CanCreate(domain.RoleManager))
	assert.True(t, workflow.CanCreate(domain.RoleSalesManager))
	assert.True(t, workflow.CanCreate(domain.RoleDesignTeam))
	assert.False(t, workflow.CanCreate(domain.RoleSalesTeam))
	assert.False(t, workflow.CanCreate(domain.RoleProductionTeam))
}

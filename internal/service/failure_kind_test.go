package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkpress/printflow/internal/domain"
	"github.com/inkpress/printflow/internal/workflow"
)

// Validator errors arrive wrapped; the metric label must still resolve.
func TestFailureKind(t *testing.T) {
	forbidden := workflow.CheckTransition(domain.StatusPendingApproval, domain.StatusApproved, domain.RoleSalesTeam)
	assert.Equal(t, "forbidden", failureKind(forbidden))

	invalidTarget := workflow.CheckTransition(domain.StatusPendingDesign, domain.StatusDelivered, domain.RoleManager)
	assert.Equal(t, "invalid_target", failureKind(invalidTarget))

	invalidStatus := workflow.CheckTransition("smudged", domain.StatusApproved, domain.RoleManager)
	assert.Equal(t, "invalid_status", failureKind(invalidStatus))

	assert.Equal(t, "other", failureKind(errors.New("connection reset")))
}

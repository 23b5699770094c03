// Package workflow defines the task lifecycle state machine: which roles
// may move a task between statuses, and which notifications a completed
// transition fans out to.
package workflow

import (
	"slices"

	"github.com/inkpress/printflow/internal/domain"
)

// Rule lists the roles allowed to act on a status and the statuses
// reachable from it.
type Rule struct {
	AllowedRoles []domain.Role
	NextStatuses []domain.TaskStatus
}

// AllowsRole checks if the role may initiate a transition away from
// the status this rule belongs to.
func (r Rule) AllowsRole(role domain.Role) bool {
	return slices.Contains(r.AllowedRoles, role)
}

// AllowsTarget checks if the target status is reachable under this rule.
func (r Rule) AllowsTarget(target domain.TaskStatus) bool {
	return slices.Contains(r.NextStatuses, target)
}

// Rules is the single source of truth for the task lifecycle.
// Terminal statuses (delivered, cancelled) have no next statuses.
// The in-design / design-review / pending-approval loop is intentional:
// rejected work cycles back for rework.
var Rules = map[domain.TaskStatus]Rule{
	domain.StatusPendingDesign: {
		AllowedRoles: []domain.Role{domain.RoleManager, domain.RoleSalesManager, domain.RoleDesignTeam},
		NextStatuses: []domain.TaskStatus{domain.StatusInDesign, domain.StatusCancelled},
	},
	domain.StatusInDesign: {
		AllowedRoles: []domain.Role{domain.RoleDesignTeam, domain.RoleManager},
		NextStatuses: []domain.TaskStatus{domain.StatusDesignReview, domain.StatusPendingDesign, domain.StatusCancelled},
	},
	domain.StatusDesignReview: {
		AllowedRoles: []domain.Role{domain.RoleDesignTeam, domain.RoleManager},
		NextStatuses: []domain.TaskStatus{domain.StatusPendingApproval, domain.StatusInDesign, domain.StatusCancelled},
	},
	domain.StatusPendingApproval: {
		AllowedRoles: []domain.Role{domain.RoleManager},
		NextStatuses: []domain.TaskStatus{domain.StatusApproved, domain.StatusDesignReview, domain.StatusCancelled},
	},
	domain.StatusApproved: {
		AllowedRoles: []domain.Role{domain.RoleManager, domain.RoleProductionTeam},
		NextStatuses: []domain.TaskStatus{domain.StatusInProduction, domain.StatusDesignReview},
	},
	domain.StatusInProduction: {
		AllowedRoles: []domain.Role{domain.RoleProductionTeam, domain.RoleManager},
		NextStatuses: []domain.TaskStatus{domain.StatusReadyDelivery, domain.StatusDesignReview, domain.StatusCancelled},
	},
	domain.StatusReadyDelivery: {
		AllowedRoles: []domain.Role{domain.RoleProductionTeam, domain.RoleSalesTeam, domain.RoleSalesManager, domain.RoleManager},
		NextStatuses: []domain.TaskStatus{domain.StatusDelivered, domain.StatusInProduction},
	},
	domain.StatusDelivered: {
		AllowedRoles: []domain.Role{domain.RoleSalesTeam, domain.RoleSalesManager, domain.RoleManager},
		NextStatuses: []domain.TaskStatus{},
	},
	domain.StatusCancelled: {
		AllowedRoles: []domain.Role{domain.RoleManager},
		NextStatuses: []domain.TaskStatus{},
	},
}

// InitialStatus is the status assigned to every task at creation.
const InitialStatus = domain.StatusPendingDesign

// CanCreate checks if the role may create a task. Creation is gated by
// the same roles that may act on the initial status.
func CanCreate(role domain.Role) bool {
	return Rules[InitialStatus].AllowsRole(role)
}

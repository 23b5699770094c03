package domain

// Role represents the team a user belongs to. Every user has exactly
// one role at a time; roles gate which status transitions a user may
// initiate.
type Role string

const (
	RoleManager        Role = "manager"
	RoleSalesManager   Role = "sales-manager"
	RoleSalesTeam      Role = "sales-team"
	RoleDesignTeam     Role = "design-team"
	RoleProductionTeam Role = "production-team"
)

// AllRoles lists every role in the system.
var AllRoles = []Role{
	RoleManager,
	RoleSalesManager,
	RoleSalesTeam,
	RoleDesignTeam,
	RoleProductionTeam,
}

// IsValid checks if the role is one of the allowed values.
func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleSalesManager, RoleSalesTeam, RoleDesignTeam, RoleProductionTeam:
		return true
	default:
		return false
	}
}

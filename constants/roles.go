package constants

// Role names carried in JWT claims and checked by the middleware
const (
	RoleTeamLeader = "team_leader"
	RoleOperator   = "operator"
	RoleRunner     = "runner"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"

	// RoleAny skips the role check, verifying only the token itself
	RoleAny = "any"
)

// StaffRoles may quote requests and drive admin-side status transitions
var StaffRoles = []string{
	RoleAdmin,
	RoleSuperAdmin,
}

// MarketplaceRoles may create listings and conversations
var MarketplaceRoles = []string{
	RoleTeamLeader,
	RoleOperator,
	RoleRunner,
}

package domain

// Capability is an action class gated by role. The table below is the single
// authority for role checks; handlers and middleware consult it instead of
// branching on role inline.
type Capability string

const (
	CapUserManage       Capability = "user:manage"
	CapCampaignManage   Capability = "campaign:manage"
	CapOrderCreate      Capability = "order:create"
	CapOrderEdit        Capability = "order:edit"
	CapOrderDelete      Capability = "order:delete"
	CapViewAllAnalytics Capability = "analytics:view_all"
	CapViewOwnAnalytics Capability = "analytics:view_own"
	CapActivityView     Capability = "activity:view"
)

var rolePermissions = map[UserRole]map[Capability]bool{
	RoleAdmin: {
		CapUserManage:       true,
		CapCampaignManage:   true,
		CapOrderCreate:      true,
		CapOrderEdit:        true,
		CapOrderDelete:      true,
		CapViewAllAnalytics: true,
		CapViewOwnAnalytics: true,
		CapActivityView:     true,
	},
	RoleSalesPerson: {
		CapOrderCreate:      true, // own campaigns only, checked at the service layer
		CapViewOwnAnalytics: true,
	},
}

// RoleAllows reports whether a role grants a capability.
func RoleAllows(role UserRole, cap Capability) bool {
	return rolePermissions[role][cap]
}

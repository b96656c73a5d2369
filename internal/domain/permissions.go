package domain

// Capability is a named, permission-gated action on a resource class.
// Capabilities are statically enumerated; an unknown capability is never
// granted to anyone (fail-closed).
type Capability string

const (
	CapWebsitesView     Capability = "websites.view"
	CapWebsitesCreate   Capability = "websites.create"
	CapWebsitesSettings Capability = "websites.settings"
	CapWebsitesDelete   Capability = "websites.delete"

	CapPagesView    Capability = "pages.view"
	CapPagesCreate  Capability = "pages.create"
	CapPagesEdit    Capability = "pages.edit"
	CapPagesReorder Capability = "pages.reorder"
	CapPagesDelete  Capability = "pages.delete"

	CapComponentsView    Capability = "components.view"
	CapComponentsCreate  Capability = "components.create"
	CapComponentsEdit    Capability = "components.edit"
	CapComponentsReorder Capability = "components.reorder"
	CapComponentsDelete  Capability = "components.delete"

	CapTeamView   Capability = "team.view"
	CapTeamInvite Capability = "team.invite"
	CapTeamRemove Capability = "team.remove"
	CapTeamRole   Capability = "team.role"

	CapBillingManage Capability = "billing.manage"
)

// matrix is the process-wide capability table, fixed at compile time. Adding a
// capability or changing who holds it is a deployment change, not a runtime
// operation.
var matrix = map[Capability][]Role{
	CapWebsitesView:     {RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper, RoleViewer},
	CapWebsitesCreate:   {RoleOwner, RoleAdmin},
	CapWebsitesSettings: {RoleOwner, RoleAdmin, RoleDeveloper},
	CapWebsitesDelete:   {RoleOwner, RoleAdmin},

	CapPagesView:    {RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper, RoleViewer},
	CapPagesCreate:  {RoleOwner, RoleAdmin, RoleEditor},
	CapPagesEdit:    {RoleOwner, RoleAdmin, RoleEditor},
	CapPagesReorder: {RoleOwner, RoleAdmin, RoleEditor},
	CapPagesDelete:  {RoleOwner, RoleAdmin, RoleEditor},

	CapComponentsView:    {RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper, RoleViewer},
	CapComponentsCreate:  {RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper},
	CapComponentsEdit:    {RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper},
	CapComponentsReorder: {RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper},
	CapComponentsDelete:  {RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper},

	CapTeamView:   {RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper, RoleViewer},
	CapTeamInvite: {RoleOwner, RoleAdmin},
	CapTeamRemove: {RoleOwner, RoleAdmin},
	CapTeamRole:   {RoleOwner, RoleAdmin},

	CapBillingManage: {RoleOwner},
}

// Allows reports whether the given role may exercise the capability. Unknown
// capabilities and unknown roles always deny.
func Allows(c Capability, r Role) bool {
	for _, allowed := range matrix[c] {
		if allowed == r {
			return true
		}
	}
	return false
}

// Capabilities returns every capability in the matrix. Intended for
// introspection endpoints and tests, not policy decisions.
func Capabilities() []Capability {
	caps := make([]Capability, 0, len(matrix))
	for c := range matrix {
		caps = append(caps, c)
	}
	return caps
}

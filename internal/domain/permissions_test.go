package domain

import "testing"

func TestAllows(t *testing.T) {
	t.Run("Viewer Cannot Edit Pages", func(t *testing.T) {
		if Allows(CapPagesEdit, RoleViewer) {
			t.Error("expected pages.edit to be denied for viewer")
		}
		if !Allows(CapPagesView, RoleViewer) {
			t.Error("expected pages.view to be allowed for viewer")
		}
	})

	t.Run("Unknown Capability Is Denied For Every Role", func(t *testing.T) {
		for _, role := range []Role{RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper, RoleViewer} {
			if Allows(Capability("pages.transmogrify"), role) {
				t.Errorf("expected unknown capability to be denied for %s", role)
			}
		}
	})

	t.Run("Unknown Role Is Denied", func(t *testing.T) {
		if Allows(CapPagesView, Role("superuser")) {
			t.Error("expected unlisted role to be denied")
		}
		if Allows(CapPagesView, Role("")) {
			t.Error("expected empty role to be denied")
		}
	})

	t.Run("Billing Is Owner Only", func(t *testing.T) {
		if !Allows(CapBillingManage, RoleOwner) {
			t.Error("expected billing.manage to be allowed for owner")
		}
		for _, role := range []Role{RoleAdmin, RoleEditor, RoleDeveloper, RoleViewer} {
			if Allows(CapBillingManage, role) {
				t.Errorf("expected billing.manage to be denied for %s", role)
			}
		}
	})

	t.Run("Deterministic Across Calls", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			if !Allows(CapComponentsEdit, RoleDeveloper) {
				t.Fatal("expected components.edit to be allowed for developer on every call")
			}
			if Allows(CapTeamInvite, RoleEditor) {
				t.Fatal("expected team.invite to be denied for editor on every call")
			}
		}
	})

	t.Run("Every Capability Grants At Least The Owner", func(t *testing.T) {
		for _, c := range Capabilities() {
			if !Allows(c, RoleOwner) {
				t.Errorf("expected %s to be allowed for owner", c)
			}
		}
	})
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleOwner, RoleAdmin, RoleEditor, RoleDeveloper, RoleViewer} {
		if !role.Valid() {
			t.Errorf("expected %s to be valid", role)
		}
	}
	for _, role := range []Role{"", "root", "Owner"} {
		if role.Valid() {
			t.Errorf("expected %q to be invalid", role)
		}
	}
}

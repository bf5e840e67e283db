package utils

import "testing"

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		action   Action
		expected bool
	}{
		// Submitting is open to every authenticated role
		{"pilot can submit", RolePilot, ActionSubmit, true},
		{"caseworker can submit", RoleCaseworker, ActionSubmit, true},
		{"admin can submit", RoleAdmin, ActionSubmit, true},

		// Viewing and editing
		{"pilot can view", RolePilot, ActionView, true},
		{"pilot can edit", RolePilot, ActionEdit, true},
		{"caseworker can view", RoleCaseworker, ActionView, true},
		{"admin can edit", RoleAdmin, ActionEdit, true},

		// Review actions are for caseworkers and admins only
		{"pilot cannot review", RolePilot, ActionReview, false},
		{"caseworker can review", RoleCaseworker, ActionReview, true},
		{"admin can review", RoleAdmin, ActionReview, true},

		// Deletion
		{"pilot cannot delete", RolePilot, ActionDelete, false},
		{"caseworker can delete", RoleCaseworker, ActionDelete, true},
		{"admin can delete", RoleAdmin, ActionDelete, true},

		// Export follows review rights
		{"pilot cannot export", RolePilot, ActionExport, false},
		{"caseworker can export", RoleCaseworker, ActionExport, true},

		// User management is admin only
		{"pilot cannot manage users", RolePilot, ActionManageUsers, false},
		{"caseworker cannot manage users", RoleCaseworker, ActionManageUsers, false},
		{"admin can manage users", RoleAdmin, ActionManageUsers, true},

		// Unknown roles and actions are denied
		{"unknown role denied", "Visitor", ActionView, false},
		{"empty role denied", "", ActionSubmit, false},
		{"unknown action denied", RoleAdmin, Action("obstacle:teleport"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleAllowed(tt.role, tt.action); got != tt.expected {
				t.Errorf("RoleAllowed(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.expected)
			}
		})
	}
}

func TestKnownRole(t *testing.T) {
	for _, role := range []string{RolePilot, RoleCaseworker, RoleAdmin} {
		if !KnownRole(role) {
			t.Errorf("KnownRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "pilot", "Superuser"} {
		if KnownRole(role) {
			t.Errorf("KnownRole(%q) = true, want false", role)
		}
	}
}

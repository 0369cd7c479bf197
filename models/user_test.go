package models

import "testing"

func TestRoleValid(t *testing.T) {
	for _, role := range []string{RoleEmployee, RoleManager, RoleAdmin} {
		if !RoleValid(role) {
			t.Errorf("expected %s to be valid", role)
		}
	}
	for _, role := range []string{"", "employee", "SUPERVISOR"} {
		if RoleValid(role) {
			t.Errorf("expected %q to be invalid", role)
		}
	}
}

func TestRoleCanApprove(t *testing.T) {
	if RoleCanApprove(RoleEmployee) {
		t.Error("employees must not approve claims")
	}
	if !RoleCanApprove(RoleManager) || !RoleCanApprove(RoleAdmin) {
		t.Error("managers and admins must be able to approve claims")
	}
}

package core

import (
	"testing"

	"fleetcore/pkg/domain"
)

func TestAccessPolicyGrants(t *testing.T) {
	policy := NewAccessPolicy()

	cases := []struct {
		role domain.Role
		cap  Capability
		want bool
	}{
		{domain.RoleAdmin, CapManageShips, true},
		{domain.RoleInspector, CapManageShips, false},
		{domain.RoleEngineer, CapManageShips, false},
		{domain.RoleAdmin, CapDeleteEntities, true},
		{domain.RoleInspector, CapDeleteEntities, false},
		{domain.RoleEngineer, CapDeleteEntities, false},
		{domain.RoleAdmin, CapCreateJobs, true},
		{domain.RoleInspector, CapCreateJobs, true},
		{domain.RoleEngineer, CapCreateJobs, true},
		{domain.RoleAdmin, CapUpdateJobStatus, true},
		{domain.RoleInspector, CapUpdateJobStatus, false},
		{domain.RoleEngineer, CapUpdateJobStatus, true},
		{domain.RoleInspector, CapNotifications, true},
		{domain.RoleEngineer, CapSession, true},
	}
	for _, tc := range cases {
		if got := policy.Allows(tc.role, tc.cap); got != tc.want {
			t.Errorf("Allows(%s, %s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}

func TestAccessPolicyUnknownRole(t *testing.T) {
	policy := NewAccessPolicy()
	if policy.Allows("Stowaway", CapCreateJobs) {
		t.Fatal("unknown roles hold no capabilities")
	}
}

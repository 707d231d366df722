package core

import "fleetcore/pkg/domain"

// Capability names a permission consulted by the mutation processor before
// any command is applied.
type Capability string

// Capabilities derived from command kinds. Updating a job that changes its
// status requires CapUpdateJobStatus on top of CapEditJobs.
const (
	CapManageShips      Capability = "manage_ships"
	CapManageComponents Capability = "manage_components"
	CapCreateJobs       Capability = "create_jobs"
	CapEditJobs         Capability = "edit_jobs"
	CapUpdateJobStatus  Capability = "update_job_status"
	CapDeleteEntities   Capability = "delete_entities"
	CapNotifications    Capability = "notifications"
	CapSession          Capability = "session"
)

// AccessPolicy is a pure (role, capability) predicate. Admin manages ships
// and components and is the only role allowed to delete; all roles create
// jobs; only Admin and Engineer change job status.
type AccessPolicy struct {
	grants map[domain.Role]map[Capability]bool
}

// NewAccessPolicy builds the static role table.
func NewAccessPolicy() AccessPolicy {
	all := []domain.Role{domain.RoleAdmin, domain.RoleInspector, domain.RoleEngineer}
	grants := make(map[domain.Role]map[Capability]bool, len(all))
	for _, r := range all {
		grants[r] = map[Capability]bool{
			CapCreateJobs:    true,
			CapEditJobs:      true,
			CapNotifications: true,
			CapSession:       true,
		}
	}
	grants[domain.RoleAdmin][CapManageShips] = true
	grants[domain.RoleAdmin][CapManageComponents] = true
	grants[domain.RoleAdmin][CapDeleteEntities] = true
	grants[domain.RoleAdmin][CapUpdateJobStatus] = true
	grants[domain.RoleEngineer][CapUpdateJobStatus] = true
	return AccessPolicy{grants: grants}
}

// Allows reports whether the role holds the capability.
func (p AccessPolicy) Allows(role domain.Role, cap Capability) bool {
	return p.grants[role][cap]
}

package core

import (
	"time"

	"fleetcore/pkg/domain"
)

// approxMonth is the fixed 30-day month used for maintenance age. A
// component is overdue once more than six of these have elapsed since its
// last maintenance, so 180 days is on time and 181 days is overdue.
const approxMonth = 30 * 24 * time.Hour

// IsOverdue reports whether the component's maintenance age exceeds six
// 30-day months at the given instant.
func IsOverdue(c domain.Component, now time.Time) bool {
	if c.LastMaintenanceDate.IsZero() {
		return false
	}
	return now.Sub(c.LastMaintenanceDate.Time()) > 6*approxMonth
}

// FleetKPIs is the dashboard roll-up derived from one snapshot.
type FleetKPIs struct {
	TotalShips          int     `json:"totalShips"`
	ActiveShips         int     `json:"activeShips"`
	ShipsUnderRepair    int     `json:"shipsUnderMaintenance"`
	InactiveShips       int     `json:"inactiveShips"`
	OverdueComponents   int     `json:"overdueComponents"`
	OpenJobs            int     `json:"openJobs"`
	JobsInProgress      int     `json:"jobsInProgress"`
	JobsCompleted       int     `json:"jobsCompleted"`
	CompletionRate      float64 `json:"completionRate"`
	UnreadNotifications int     `json:"unreadNotifications"`
}

// ComputeKPIs derives the fleet KPIs from a snapshot at the given instant.
func ComputeKPIs(s domain.Snapshot, now time.Time) FleetKPIs {
	k := FleetKPIs{TotalShips: len(s.Ships)}
	for _, ship := range s.Ships {
		switch ship.Status {
		case domain.ShipStatusActive:
			k.ActiveShips++
		case domain.ShipStatusUnderMaintenance:
			k.ShipsUnderRepair++
		case domain.ShipStatusInactive:
			k.InactiveShips++
		}
	}
	for _, comp := range s.Components {
		if IsOverdue(comp, now) {
			k.OverdueComponents++
		}
	}
	for _, job := range s.Jobs {
		switch job.Status {
		case domain.JobStatusOpen:
			k.OpenJobs++
		case domain.JobStatusInProgress:
			k.JobsInProgress++
		case domain.JobStatusCompleted:
			k.JobsCompleted++
		}
	}
	if total := len(s.Jobs); total > 0 {
		k.CompletionRate = float64(k.JobsCompleted) / float64(total)
	}
	for _, n := range s.Notifications {
		if !n.Read {
			k.UnreadNotifications++
		}
	}
	return k
}

// JobsOnDate returns the jobs scheduled on the same calendar day as t,
// ignoring t's time of day.
func JobsOnDate(s domain.Snapshot, t time.Time) []domain.Job {
	out := []domain.Job{}
	for _, job := range s.Jobs {
		if job.ScheduledDate.SameDay(t) {
			out = append(out, job)
		}
	}
	return out
}

// WeekOf returns the seven calendar days of the week containing t, starting
// on Sunday.
func WeekOf(t time.Time) [7]domain.Date {
	start := domain.DateOf(t).AddDays(-int(t.Weekday()))
	var week [7]domain.Date
	for i := range week {
		week[i] = start.AddDays(i)
	}
	return week
}

// OverdueComponents returns the components past their maintenance window in
// snapshot order.
func OverdueComponents(s domain.Snapshot, now time.Time) []domain.Component {
	out := []domain.Component{}
	for _, comp := range s.Components {
		if IsOverdue(comp, now) {
			out = append(out, comp)
		}
	}
	return out
}

// JobView is a job joined with the display fields of its referenced
// entities. Dangling references render as empty strings rather than failing
// the whole listing.
type JobView struct {
	domain.Job
	ShipName      string `json:"shipName"`
	ComponentName string `json:"componentName"`
	EngineerEmail string `json:"engineerEmail,omitempty"`
}

// JobViews joins every job with its ship, component, and assigned engineer.
func JobViews(s domain.Snapshot) []JobView {
	out := make([]JobView, 0, len(s.Jobs))
	for _, job := range s.Jobs {
		view := JobView{Job: job}
		if ship, ok := s.FindShip(job.ShipID); ok {
			view.ShipName = ship.Name
		}
		if comp, ok := s.FindComponent(job.ComponentID); ok {
			view.ComponentName = comp.Name
		}
		if job.AssignedEngineerID != "" {
			if user, ok := s.FindUser(job.AssignedEngineerID); ok {
				view.EngineerEmail = user.Email
			}
		}
		out = append(out, view)
	}
	return out
}

// ComponentView is a component joined with its ship name and overdue flag.
type ComponentView struct {
	domain.Component
	ShipName string `json:"shipName"`
	Overdue  bool   `json:"overdue"`
}

// ComponentViews joins every component with its ship and overdue status at
// the given instant.
func ComponentViews(s domain.Snapshot, now time.Time) []ComponentView {
	out := make([]ComponentView, 0, len(s.Components))
	for _, comp := range s.Components {
		view := ComponentView{Component: comp, Overdue: IsOverdue(comp, now)}
		if ship, ok := s.FindShip(comp.ShipID); ok {
			view.ShipName = ship.Name
		}
		out = append(out, view)
	}
	return out
}

// UnreadNotifications returns the unread notifications in snapshot order.
func UnreadNotifications(s domain.Snapshot) []domain.Notification {
	out := []domain.Notification{}
	for _, n := range s.Notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// Views binds the derived read-side to a store so callers get consistent
// results computed from one snapshot.
type Views struct {
	store *Store
}

// NewViews wraps the store's read side.
func NewViews(store *Store) *Views {
	return &Views{store: store}
}

// KPIs computes the fleet KPIs from the current state.
func (v *Views) KPIs() FleetKPIs {
	return ComputeKPIs(v.store.Snapshot(), v.store.now())
}

// JobsOnDate lists the jobs scheduled on t's calendar day.
func (v *Views) JobsOnDate(t time.Time) []domain.Job {
	return JobsOnDate(v.store.Snapshot(), t)
}

// OverdueComponents lists the components past their maintenance window.
func (v *Views) OverdueComponents() []domain.Component {
	return OverdueComponents(v.store.Snapshot(), v.store.now())
}

// Jobs lists the joined job views.
func (v *Views) Jobs() []JobView {
	return JobViews(v.store.Snapshot())
}

// Components lists the joined component views.
func (v *Views) Components() []ComponentView {
	return ComponentViews(v.store.Snapshot(), v.store.now())
}

// Unread lists the unread notifications.
func (v *Views) Unread() []domain.Notification {
	return UnreadNotifications(v.store.Snapshot())
}

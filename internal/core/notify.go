package core

import (
	"fmt"

	"fleetcore/pkg/domain"
)

// NotificationEmitter appends in-store notifications for job lifecycle
// events. Exactly one notification is produced per qualifying command:
// job creation, and job updates whose status actually changed. Everything
// else is silent.
type NotificationEmitter struct {
	store *Store
}

// NewNotificationEmitter wires the emitter to the store that mints
// notification IDs and timestamps.
func NewNotificationEmitter(store *Store) *NotificationEmitter {
	return &NotificationEmitter{store: store}
}

// Emit inspects a successfully applied command and appends the matching
// notification to next. The prior snapshot is consulted to detect status
// transitions.
func (e *NotificationEmitter) Emit(next *domain.Snapshot, old domain.Snapshot, cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.CreateJob:
		ship, _ := next.FindShip(c.Job.ShipID)
		e.append(next, domain.NotificationJobCreated,
			fmt.Sprintf("New %s job created for %s", c.Job.Type, ship.Name))
	case domain.UpdateJob:
		before, ok := old.FindJob(c.Job.ID)
		if !ok || before.Status == c.Job.Status {
			return
		}
		ship, _ := next.FindShip(c.Job.ShipID)
		category := domain.NotificationJobUpdated
		if c.Job.Status == domain.JobStatusCompleted {
			category = domain.NotificationJobCompleted
		}
		e.append(next, category,
			fmt.Sprintf("Job %s for %s updated to %s", c.Job.Type, ship.Name, c.Job.Status))
	}
}

func (e *NotificationEmitter) append(next *domain.Snapshot, category domain.NotificationCategory, message string) {
	next.Notifications = append(next.Notifications, domain.Notification{
		ID:        e.store.NewID(),
		Message:   message,
		Category:  category,
		Timestamp: e.store.now(),
		Read:      false,
	})
}

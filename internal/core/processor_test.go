package core

import (
	"errors"
	"testing"
	"time"

	"fleetcore/pkg/domain"
)

func newSeededProcessor(t *testing.T) (*Store, *Processor) {
	t.Helper()
	store := NewStore()
	proc := NewProcessor(store, NewAccessPolicy())
	if _, err := proc.Apply(domain.LoadSnapshot{Snapshot: domain.DefaultSnapshot()}, domain.RoleAdmin); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	return store, proc
}

func TestShipValidation(t *testing.T) {
	_, proc := newSeededProcessor(t)

	cases := []struct {
		name string
		ship domain.Ship
	}{
		{"missing name", domain.Ship{IMO: "1234567", Flag: "Panama", Status: domain.ShipStatusActive}},
		{"short imo", domain.Ship{Name: "Tug", IMO: "123", Flag: "Panama", Status: domain.ShipStatusActive}},
		{"alpha imo", domain.Ship{Name: "Tug", IMO: "12345a7", Flag: "Panama", Status: domain.ShipStatusActive}},
		{"missing flag", domain.Ship{Name: "Tug", IMO: "1234567", Status: domain.ShipStatusActive}},
		{"bad status", domain.Ship{Name: "Tug", IMO: "1234567", Flag: "Panama", Status: "Sunk"}},
	}
	for _, tc := range cases {
		_, err := proc.Apply(domain.CreateShip{Ship: tc.ship}, domain.RoleAdmin)
		var verr domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestShipIMOUniquenessExcludesSelf(t *testing.T) {
	_, proc := newSeededProcessor(t)

	_, err := proc.Apply(domain.CreateShip{Ship: domain.Ship{
		Name: "Clone", IMO: "9811000", Flag: "Panama", Status: domain.ShipStatusActive,
	}}, domain.RoleAdmin)
	var verr domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "imo" {
		t.Fatalf("expected imo uniqueness error, got %v", err)
	}

	// A ship may keep its own IMO on update.
	snap, err := proc.Apply(domain.UpdateShip{Ship: domain.Ship{
		ID: "s1", Name: "Ever Given II", IMO: "9811000", Flag: "Panama", Status: domain.ShipStatusActive,
	}}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("update keeping own imo: %v", err)
	}
	ship, _ := snap.FindShip("s1")
	if ship.Name != "Ever Given II" {
		t.Fatalf("update not applied: %+v", ship)
	}

	// But it may not take another ship's IMO.
	_, err = proc.Apply(domain.UpdateShip{Ship: domain.Ship{
		ID: "s1", Name: "Ever Given II", IMO: "9164263", Flag: "Panama", Status: domain.ShipStatusActive,
	}}, domain.RoleAdmin)
	if !errors.As(err, &verr) {
		t.Fatalf("expected imo uniqueness error, got %v", err)
	}
}

func TestCreateShipAssignsID(t *testing.T) {
	_, proc := newSeededProcessor(t)
	snap, err := proc.Apply(domain.CreateShip{Ship: domain.Ship{
		Name: "Calypso", IMO: "7654321", Flag: "France", Status: domain.ShipStatusActive,
	}}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created := snap.Ships[len(snap.Ships)-1]
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.ID == "s1" || created.ID == "s2" {
		t.Fatalf("generated id collides with seed: %s", created.ID)
	}
}

func TestDeleteBlockedByDependents(t *testing.T) {
	store, proc := newSeededProcessor(t)
	before := store.Snapshot()

	_, err := proc.Apply(domain.DeleteShip{ID: "s1"}, domain.RoleAdmin)
	var rerr domain.ReferentialIntegrityError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected referential integrity error deleting ship, got %v", err)
	}
	_, err = proc.Apply(domain.DeleteComponent{ID: "c1"}, domain.RoleAdmin)
	if !errors.As(err, &rerr) {
		t.Fatalf("expected referential integrity error deleting component, got %v", err)
	}

	after := store.Snapshot()
	if len(after.Ships) != len(before.Ships) || len(after.Components) != len(before.Components) || len(after.Jobs) != len(before.Jobs) {
		t.Fatal("blocked delete must leave counts unchanged")
	}

	// Deleting bottom-up succeeds.
	if _, err := proc.Apply(domain.DeleteJob{ID: "j1"}, domain.RoleAdmin); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	if _, err := proc.Apply(domain.DeleteComponent{ID: "c1"}, domain.RoleAdmin); err != nil {
		t.Fatalf("delete component: %v", err)
	}
	if _, err := proc.Apply(domain.DeleteShip{ID: "s1"}, domain.RoleAdmin); err != nil {
		t.Fatalf("delete ship: %v", err)
	}
}

func TestJobReferentialIntegrity(t *testing.T) {
	_, proc := newSeededProcessor(t)

	base := domain.Job{
		ShipID: "s1", ComponentID: "c1", Type: "Repair",
		Priority: domain.JobPriorityMedium, Status: domain.JobStatusOpen,
		ScheduledDate: domain.NewDate(2025, time.June, 1),
	}

	missingComponent := base
	missingComponent.ComponentID = "nope"
	var rerr domain.ReferentialIntegrityError
	if _, err := proc.Apply(domain.CreateJob{Job: missingComponent}, domain.RoleAdmin); !errors.As(err, &rerr) {
		t.Fatalf("expected integrity error for missing component, got %v", err)
	}

	wrongShip := base
	wrongShip.ShipID = "s2" // c1 is installed on s1
	if _, err := proc.Apply(domain.CreateJob{Job: wrongShip}, domain.RoleAdmin); !errors.As(err, &rerr) {
		t.Fatalf("expected integrity error for component on another ship, got %v", err)
	}

	notEngineer := base
	notEngineer.AssignedEngineerID = "1" // admin user
	var verr domain.ValidationError
	if _, err := proc.Apply(domain.CreateJob{Job: notEngineer}, domain.RoleAdmin); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for non-engineer assignee, got %v", err)
	}

	ok := base
	ok.AssignedEngineerID = "3"
	if _, err := proc.Apply(domain.CreateJob{Job: ok}, domain.RoleAdmin); err != nil {
		t.Fatalf("valid job rejected: %v", err)
	}
}

func TestJobNotifications(t *testing.T) {
	store, proc := newSeededProcessor(t)
	baseline := len(store.Snapshot().Notifications)

	snap, err := proc.Apply(domain.CreateJob{Job: domain.Job{
		ShipID: "s1", ComponentID: "c1", Type: "Repair",
		Priority: domain.JobPriorityMedium, Status: domain.JobStatusOpen,
		ScheduledDate: domain.NewDate(2025, time.June, 1),
	}}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if len(snap.Notifications) != baseline+1 {
		t.Fatalf("expected exactly one new notification, got %d", len(snap.Notifications)-baseline)
	}
	created := snap.Notifications[len(snap.Notifications)-1]
	if created.Message != "New Repair job created for Ever Given" {
		t.Fatalf("unexpected message %q", created.Message)
	}
	if created.Category != domain.NotificationJobCreated {
		t.Fatalf("unexpected category %s", created.Category)
	}
	if created.Read {
		t.Fatal("new notifications start unread")
	}

	jobID := snap.Jobs[len(snap.Jobs)-1].ID

	// Status transition to a non-terminal state.
	job, _ := snap.FindJob(jobID)
	job.Status = domain.JobStatusInProgress
	snap, err = proc.Apply(domain.UpdateJob{Job: job}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	updated := snap.Notifications[len(snap.Notifications)-1]
	if updated.Message != "Job Repair for Ever Given updated to In Progress" {
		t.Fatalf("unexpected message %q", updated.Message)
	}
	if updated.Category != domain.NotificationJobUpdated {
		t.Fatalf("unexpected category %s", updated.Category)
	}

	// Completion uses its own category.
	job.Status = domain.JobStatusCompleted
	snap, err = proc.Apply(domain.UpdateJob{Job: job}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	completed := snap.Notifications[len(snap.Notifications)-1]
	if completed.Category != domain.NotificationJobCompleted {
		t.Fatalf("unexpected category %s", completed.Category)
	}

	// Edits that keep the status emit nothing.
	count := len(snap.Notifications)
	job.Status = domain.JobStatusCompleted
	job.Description = "post-completion note"
	snap, err = proc.Apply(domain.UpdateJob{Job: job}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("edit description: %v", err)
	}
	if len(snap.Notifications) != count {
		t.Fatal("status-preserving update must not emit a notification")
	}
}

func TestJobCreatedDateImmutable(t *testing.T) {
	_, proc := newSeededProcessor(t)
	job := domain.Job{
		ID: "j1", ShipID: "s1", ComponentID: "c1", Type: "Inspection",
		Priority: domain.JobPriorityHigh, Status: domain.JobStatusOpen,
		AssignedEngineerID: "3",
		ScheduledDate:      domain.NewDate(2025, time.May, 5),
		CreatedDate:        domain.NewDate(2030, time.January, 1),
	}
	snap, err := proc.Apply(domain.UpdateJob{Job: job}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, _ := snap.FindJob("j1")
	if stored.CreatedDate.String() != "2024-12-01" {
		t.Fatalf("created date changed to %s", stored.CreatedDate)
	}
}

func TestRolePermissions(t *testing.T) {
	_, proc := newSeededProcessor(t)

	mustDeny := func(cmd domain.Command, role domain.Role) {
		t.Helper()
		_, err := proc.Apply(cmd, role)
		var perr domain.PermissionDeniedError
		if !errors.As(err, &perr) {
			t.Fatalf("expected permission denial for %s as %s, got %v", cmd.Kind(), role, err)
		}
	}

	ship := domain.Ship{Name: "Tug", IMO: "1111111", Flag: "Panama", Status: domain.ShipStatusActive}
	mustDeny(domain.CreateShip{Ship: ship}, domain.RoleInspector)
	mustDeny(domain.CreateShip{Ship: ship}, domain.RoleEngineer)
	mustDeny(domain.DeleteJob{ID: "j1"}, domain.RoleEngineer)
	mustDeny(domain.DeleteJob{ID: "j1"}, domain.RoleInspector)

	comp := domain.Component{ShipID: "s1", Name: "Pump", SerialNumber: "P-1",
		InstallDate:         domain.NewDate(2024, time.January, 1),
		LastMaintenanceDate: domain.NewDate(2024, time.June, 1)}
	mustDeny(domain.CreateComponent{Component: comp}, domain.RoleEngineer)

	// Inspectors may edit jobs but not change the status.
	job, _ := proc.store.Snapshot().FindJob("j1")
	job.Status = domain.JobStatusInProgress
	mustDeny(domain.UpdateJob{Job: job}, domain.RoleInspector)

	job.Status = domain.JobStatusOpen
	job.Description = "inspector annotation"
	if _, err := proc.Apply(domain.UpdateJob{Job: job}, domain.RoleInspector); err != nil {
		t.Fatalf("inspector edit without status change: %v", err)
	}

	// Engineers change status; everyone creates jobs.
	job.Status = domain.JobStatusInProgress
	if _, err := proc.Apply(domain.UpdateJob{Job: job}, domain.RoleEngineer); err != nil {
		t.Fatalf("engineer status change: %v", err)
	}
	newJob := domain.Job{ShipID: "s2", ComponentID: "c2", Type: "Inspection",
		Priority: domain.JobPriorityLow, Status: domain.JobStatusOpen,
		ScheduledDate: domain.NewDate(2025, time.July, 1)}
	if _, err := proc.Apply(domain.CreateJob{Job: newJob}, domain.RoleInspector); err != nil {
		t.Fatalf("inspector create job: %v", err)
	}
}

func TestNotificationCommands(t *testing.T) {
	_, proc := newSeededProcessor(t)

	var nerr domain.NotFoundError
	if _, err := proc.Apply(domain.MarkNotificationRead{ID: "ghost"}, domain.RoleInspector); !errors.As(err, &nerr) {
		t.Fatalf("expected not found, got %v", err)
	}

	snap, err := proc.Apply(domain.MarkNotificationRead{ID: "n1"}, domain.RoleInspector)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	n, _ := snap.FindNotification("n1")
	if !n.Read {
		t.Fatal("expected notification to be read")
	}

	snap, err = proc.Apply(domain.ClearNotifications{}, domain.RoleEngineer)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(snap.Notifications) != 0 {
		t.Fatalf("expected no notifications, got %d", len(snap.Notifications))
	}
}

func TestSessionCommands(t *testing.T) {
	_, proc := newSeededProcessor(t)

	var nerr domain.NotFoundError
	ghost := "ghost"
	if _, err := proc.Apply(domain.SetCurrentUser{UserID: &ghost}, domain.RoleAdmin); !errors.As(err, &nerr) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}

	id := "2"
	snap, err := proc.Apply(domain.SetCurrentUser{UserID: &id}, domain.RoleInspector)
	if err != nil {
		t.Fatalf("set current user: %v", err)
	}
	if snap.CurrentUserID == nil || *snap.CurrentUserID != "2" {
		t.Fatalf("session user not recorded: %v", snap.CurrentUserID)
	}

	snap, err = proc.Apply(domain.SetAuthenticated{Authenticated: true}, domain.RoleInspector)
	if err != nil {
		t.Fatalf("set authenticated: %v", err)
	}
	if !snap.Authenticated {
		t.Fatal("expected authenticated session")
	}

	snap, err = proc.Apply(domain.SetCurrentUser{UserID: nil}, domain.RoleInspector)
	if err != nil {
		t.Fatalf("clear session user: %v", err)
	}
	if snap.CurrentUserID != nil {
		t.Fatal("expected cleared session user")
	}
}

func TestUpdateMissingEntities(t *testing.T) {
	_, proc := newSeededProcessor(t)
	var nerr domain.NotFoundError

	ship := domain.Ship{ID: "ghost", Name: "X", IMO: "2222222", Flag: "Y", Status: domain.ShipStatusActive}
	if _, err := proc.Apply(domain.UpdateShip{Ship: ship}, domain.RoleAdmin); !errors.As(err, &nerr) {
		t.Fatalf("expected not found updating ship, got %v", err)
	}
	if _, err := proc.Apply(domain.DeleteShip{ID: "ghost"}, domain.RoleAdmin); !errors.As(err, &nerr) {
		t.Fatalf("expected not found deleting ship, got %v", err)
	}
	if _, err := proc.Apply(domain.DeleteComponent{ID: "ghost"}, domain.RoleAdmin); !errors.As(err, &nerr) {
		t.Fatalf("expected not found deleting component, got %v", err)
	}
	if _, err := proc.Apply(domain.DeleteJob{ID: "ghost"}, domain.RoleAdmin); !errors.As(err, &nerr) {
		t.Fatalf("expected not found deleting job, got %v", err)
	}
}

func TestRejectedCommandLeavesStoreUntouched(t *testing.T) {
	store, proc := newSeededProcessor(t)
	before := store.Snapshot()

	ship := domain.Ship{Name: "Tug", IMO: "123", Flag: "Panama", Status: domain.ShipStatusActive}
	if _, err := proc.Apply(domain.CreateShip{Ship: ship}, domain.RoleAdmin); err == nil {
		t.Fatal("expected rejection")
	}

	after := store.Snapshot()
	if len(after.Ships) != len(before.Ships) || len(after.Notifications) != len(before.Notifications) {
		t.Fatal("rejected command mutated the store")
	}
}

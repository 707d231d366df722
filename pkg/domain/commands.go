package domain

// CommandKind tags a command variant for dispatch, policy lookup, and
// metrics labels.
type CommandKind string

// Command vocabulary accepted by the mutation processor.
const (
	KindCreateShip           CommandKind = "create_ship"
	KindUpdateShip           CommandKind = "update_ship"
	KindDeleteShip           CommandKind = "delete_ship"
	KindCreateComponent      CommandKind = "create_component"
	KindUpdateComponent      CommandKind = "update_component"
	KindDeleteComponent      CommandKind = "delete_component"
	KindCreateJob            CommandKind = "create_job"
	KindUpdateJob            CommandKind = "update_job"
	KindDeleteJob            CommandKind = "delete_job"
	KindMarkNotificationRead CommandKind = "mark_notification_read"
	KindClearNotifications   CommandKind = "clear_notifications"
	KindSetCurrentUser       CommandKind = "set_current_user"
	KindSetAuthenticated     CommandKind = "set_authenticated"
	KindLoadSnapshot         CommandKind = "load_snapshot"
)

// Command is the sealed union of mutation requests. Each variant carries a
// fixed payload; the processor dispatches with an exhaustive type switch.
type Command interface {
	Kind() CommandKind
	isCommand()
}

// CreateShip adds a new ship. The ID is assigned by the store when empty.
type CreateShip struct{ Ship Ship }

// UpdateShip replaces an existing ship identified by Ship.ID.
type UpdateShip struct{ Ship Ship }

// DeleteShip removes a ship with no dependent components or jobs.
type DeleteShip struct{ ID string }

// CreateComponent adds a component to an existing ship.
type CreateComponent struct{ Component Component }

// UpdateComponent replaces an existing component identified by Component.ID.
type UpdateComponent struct{ Component Component }

// DeleteComponent removes a component with no dependent jobs.
type DeleteComponent struct{ ID string }

// CreateJob adds a maintenance job for an existing ship/component pair.
type CreateJob struct{ Job Job }

// UpdateJob replaces an existing job identified by Job.ID, including status
// transitions. CreatedDate is immutable and preserved from the stored job.
type UpdateJob struct{ Job Job }

// DeleteJob removes a job.
type DeleteJob struct{ ID string }

// MarkNotificationRead flips the read flag of one notification.
type MarkNotificationRead struct{ ID string }

// ClearNotifications removes all notifications.
type ClearNotifications struct{}

// SetCurrentUser records the active session user; nil UserID clears it.
type SetCurrentUser struct{ UserID *string }

// SetAuthenticated records the session authentication flag.
type SetAuthenticated struct{ Authenticated bool }

// LoadSnapshot replaces the whole store state; used at startup to hydrate
// from durable storage.
type LoadSnapshot struct{ Snapshot Snapshot }

// Kind implements Command.
func (CreateShip) Kind() CommandKind           { return KindCreateShip }
func (UpdateShip) Kind() CommandKind           { return KindUpdateShip }
func (DeleteShip) Kind() CommandKind           { return KindDeleteShip }
func (CreateComponent) Kind() CommandKind      { return KindCreateComponent }
func (UpdateComponent) Kind() CommandKind      { return KindUpdateComponent }
func (DeleteComponent) Kind() CommandKind      { return KindDeleteComponent }
func (CreateJob) Kind() CommandKind            { return KindCreateJob }
func (UpdateJob) Kind() CommandKind            { return KindUpdateJob }
func (DeleteJob) Kind() CommandKind            { return KindDeleteJob }
func (MarkNotificationRead) Kind() CommandKind { return KindMarkNotificationRead }
func (ClearNotifications) Kind() CommandKind   { return KindClearNotifications }
func (SetCurrentUser) Kind() CommandKind       { return KindSetCurrentUser }
func (SetAuthenticated) Kind() CommandKind     { return KindSetAuthenticated }
func (LoadSnapshot) Kind() CommandKind         { return KindLoadSnapshot }

func (CreateShip) isCommand()           {}
func (UpdateShip) isCommand()           {}
func (DeleteShip) isCommand()           {}
func (CreateComponent) isCommand()      {}
func (UpdateComponent) isCommand()      {}
func (DeleteComponent) isCommand()      {}
func (CreateJob) isCommand()            {}
func (UpdateJob) isCommand()            {}
func (DeleteJob) isCommand()            {}
func (MarkNotificationRead) isCommand() {}
func (ClearNotifications) isCommand()   {}
func (SetCurrentUser) isCommand()       {}
func (SetAuthenticated) isCommand()     {}
func (LoadSnapshot) isCommand()         {}

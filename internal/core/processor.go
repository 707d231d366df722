package core

import (
	"fmt"
	"regexp"

	"fleetcore/pkg/domain"
)

var imoPattern = regexp.MustCompile(`^\d{7}$`)

// Processor validates and applies commands against the store. The pipeline
// for every mutating command is: access policy, schema validation,
// referential integrity, apply to a cloned snapshot, notification emission,
// commit via Store.Replace. A failure at any step leaves the store unchanged.
type Processor struct {
	store   *Store
	policy  AccessPolicy
	emitter *NotificationEmitter
}

// NewProcessor wires a processor to the given store.
func NewProcessor(store *Store, policy AccessPolicy) *Processor {
	return &Processor{
		store:   store,
		policy:  policy,
		emitter: NewNotificationEmitter(store),
	}
}

// Apply runs one command as the given actor role and returns the committed
// snapshot. The returned error is one of the domain error kinds.
func (p *Processor) Apply(cmd domain.Command, actor domain.Role) (domain.Snapshot, error) {
	old := p.store.Snapshot()
	for _, cap := range requiredCapabilities(cmd, old) {
		if !p.policy.Allows(actor, cap) {
			return domain.Snapshot{}, domain.PermissionDeniedError{Role: actor, Command: cmd.Kind()}
		}
	}

	next := old.Clone()
	var err error
	switch c := cmd.(type) {
	case domain.CreateShip:
		err = p.applyCreateShip(&next, c)
	case domain.UpdateShip:
		err = applyUpdateShip(&next, c)
	case domain.DeleteShip:
		err = applyDeleteShip(&next, c)
	case domain.CreateComponent:
		err = p.applyCreateComponent(&next, c)
	case domain.UpdateComponent:
		err = applyUpdateComponent(&next, c)
	case domain.DeleteComponent:
		err = applyDeleteComponent(&next, c)
	case domain.CreateJob:
		err = p.applyCreateJob(&next, c)
	case domain.UpdateJob:
		err = applyUpdateJob(&next, c)
	case domain.DeleteJob:
		err = applyDeleteJob(&next, c)
	case domain.MarkNotificationRead:
		err = applyMarkNotificationRead(&next, c)
	case domain.ClearNotifications:
		next.Notifications = []domain.Notification{}
	case domain.SetCurrentUser:
		err = applySetCurrentUser(&next, c)
	case domain.SetAuthenticated:
		next.Authenticated = c.Authenticated
	case domain.LoadSnapshot:
		next = c.Snapshot.Clone()
		next.Normalize()
	default:
		err = fmt.Errorf("unsupported command %T", cmd)
	}
	if err != nil {
		return domain.Snapshot{}, err
	}

	p.emitter.Emit(&next, old, cmd)
	p.store.Replace(next)
	return next, nil
}

// requiredCapabilities derives the capabilities a command demands. An
// UpdateJob that changes the stored status additionally requires
// CapUpdateJobStatus; the transition itself is otherwise unrestricted.
func requiredCapabilities(cmd domain.Command, current domain.Snapshot) []Capability {
	switch c := cmd.(type) {
	case domain.CreateShip, domain.UpdateShip:
		return []Capability{CapManageShips}
	case domain.DeleteShip:
		return []Capability{CapManageShips, CapDeleteEntities}
	case domain.CreateComponent, domain.UpdateComponent:
		return []Capability{CapManageComponents}
	case domain.DeleteComponent:
		return []Capability{CapManageComponents, CapDeleteEntities}
	case domain.CreateJob:
		return []Capability{CapCreateJobs}
	case domain.UpdateJob:
		caps := []Capability{CapEditJobs}
		if before, ok := current.FindJob(c.Job.ID); ok && before.Status != c.Job.Status {
			caps = append(caps, CapUpdateJobStatus)
		}
		return caps
	case domain.DeleteJob:
		return []Capability{CapDeleteEntities}
	case domain.MarkNotificationRead, domain.ClearNotifications:
		return []Capability{CapNotifications}
	case domain.SetCurrentUser, domain.SetAuthenticated, domain.LoadSnapshot:
		return []Capability{CapSession}
	default:
		return nil
	}
}

func validateShip(next domain.Snapshot, ship domain.Ship, excludeID string) error {
	if ship.Name == "" {
		return domain.ValidationError{Field: "name", Message: "is required"}
	}
	if !imoPattern.MatchString(ship.IMO) {
		return domain.ValidationError{Field: "imo", Message: "must be exactly 7 digits"}
	}
	if ship.Flag == "" {
		return domain.ValidationError{Field: "flag", Message: "is required"}
	}
	if !domain.ValidShipStatus(ship.Status) {
		return domain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown ship status %q", ship.Status)}
	}
	for _, other := range next.Ships {
		if other.ID != excludeID && other.IMO == ship.IMO {
			return domain.ValidationError{Field: "imo", Message: fmt.Sprintf("ship with IMO %s already exists", ship.IMO)}
		}
	}
	return nil
}

func (p *Processor) applyCreateShip(next *domain.Snapshot, c domain.CreateShip) error {
	ship := c.Ship
	if ship.ID == "" {
		ship.ID = p.store.NewID()
	} else if _, exists := next.FindShip(ship.ID); exists {
		return domain.ValidationError{Field: "id", Message: fmt.Sprintf("ship %q already exists", ship.ID)}
	}
	if err := validateShip(*next, ship, ship.ID); err != nil {
		return err
	}
	next.Ships = append(next.Ships, ship)
	return nil
}

func applyUpdateShip(next *domain.Snapshot, c domain.UpdateShip) error {
	idx := -1
	for i, s := range next.Ships {
		if s.ID == c.Ship.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NotFoundError{Entity: domain.EntityShip, ID: c.Ship.ID}
	}
	if err := validateShip(*next, c.Ship, c.Ship.ID); err != nil {
		return err
	}
	next.Ships[idx] = c.Ship
	return nil
}

func applyDeleteShip(next *domain.Snapshot, c domain.DeleteShip) error {
	idx := -1
	for i, s := range next.Ships {
		if s.ID == c.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NotFoundError{Entity: domain.EntityShip, ID: c.ID}
	}
	for _, comp := range next.Components {
		if comp.ShipID == c.ID {
			return domain.ReferentialIntegrityError{Entity: domain.EntityShip, ID: c.ID, Message: "has installed components"}
		}
	}
	for _, job := range next.Jobs {
		if job.ShipID == c.ID {
			return domain.ReferentialIntegrityError{Entity: domain.EntityShip, ID: c.ID, Message: "has maintenance jobs"}
		}
	}
	next.Ships = append(next.Ships[:idx], next.Ships[idx+1:]...)
	return nil
}

func validateComponent(next domain.Snapshot, comp domain.Component) error {
	if comp.Name == "" {
		return domain.ValidationError{Field: "name", Message: "is required"}
	}
	if comp.SerialNumber == "" {
		return domain.ValidationError{Field: "serialNumber", Message: "is required"}
	}
	if comp.InstallDate.IsZero() {
		return domain.ValidationError{Field: "installDate", Message: "is required"}
	}
	if comp.LastMaintenanceDate.IsZero() {
		return domain.ValidationError{Field: "lastMaintenanceDate", Message: "is required"}
	}
	if _, ok := next.FindShip(comp.ShipID); !ok {
		return domain.ReferentialIntegrityError{Entity: domain.EntityShip, ID: comp.ShipID, Message: "referenced ship does not exist"}
	}
	return nil
}

func (p *Processor) applyCreateComponent(next *domain.Snapshot, c domain.CreateComponent) error {
	comp := c.Component
	if comp.ID == "" {
		comp.ID = p.store.NewID()
	} else if _, exists := next.FindComponent(comp.ID); exists {
		return domain.ValidationError{Field: "id", Message: fmt.Sprintf("component %q already exists", comp.ID)}
	}
	if err := validateComponent(*next, comp); err != nil {
		return err
	}
	next.Components = append(next.Components, comp)
	return nil
}

func applyUpdateComponent(next *domain.Snapshot, c domain.UpdateComponent) error {
	idx := -1
	for i, comp := range next.Components {
		if comp.ID == c.Component.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NotFoundError{Entity: domain.EntityComponent, ID: c.Component.ID}
	}
	if err := validateComponent(*next, c.Component); err != nil {
		return err
	}
	next.Components[idx] = c.Component
	return nil
}

func applyDeleteComponent(next *domain.Snapshot, c domain.DeleteComponent) error {
	idx := -1
	for i, comp := range next.Components {
		if comp.ID == c.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NotFoundError{Entity: domain.EntityComponent, ID: c.ID}
	}
	for _, job := range next.Jobs {
		if job.ComponentID == c.ID {
			return domain.ReferentialIntegrityError{Entity: domain.EntityComponent, ID: c.ID, Message: "has maintenance jobs"}
		}
	}
	next.Components = append(next.Components[:idx], next.Components[idx+1:]...)
	return nil
}

func validateJob(next domain.Snapshot, job domain.Job) error {
	if job.Type == "" {
		return domain.ValidationError{Field: "type", Message: "is required"}
	}
	if !domain.ValidJobPriority(job.Priority) {
		return domain.ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", job.Priority)}
	}
	if !domain.ValidJobStatus(job.Status) {
		return domain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown job status %q", job.Status)}
	}
	if job.ScheduledDate.IsZero() {
		return domain.ValidationError{Field: "scheduledDate", Message: "is required"}
	}
	comp, ok := next.FindComponent(job.ComponentID)
	if !ok {
		return domain.ReferentialIntegrityError{Entity: domain.EntityComponent, ID: job.ComponentID, Message: "referenced component does not exist"}
	}
	if _, ok := next.FindShip(job.ShipID); !ok {
		return domain.ReferentialIntegrityError{Entity: domain.EntityShip, ID: job.ShipID, Message: "referenced ship does not exist"}
	}
	if comp.ShipID != job.ShipID {
		return domain.ReferentialIntegrityError{Entity: domain.EntityComponent, ID: job.ComponentID, Message: "component is not installed on the job's ship"}
	}
	if job.AssignedEngineerID != "" {
		user, ok := next.FindUser(job.AssignedEngineerID)
		if !ok {
			return domain.ReferentialIntegrityError{Entity: domain.EntityUser, ID: job.AssignedEngineerID, Message: "assigned engineer does not exist"}
		}
		if user.Role != domain.RoleEngineer {
			return domain.ValidationError{Field: "assignedEngineerId", Message: fmt.Sprintf("user %s is not an Engineer", user.ID)}
		}
	}
	return nil
}

func (p *Processor) applyCreateJob(next *domain.Snapshot, c domain.CreateJob) error {
	job := c.Job
	if job.ID == "" {
		job.ID = p.store.NewID()
	} else if _, exists := next.FindJob(job.ID); exists {
		return domain.ValidationError{Field: "id", Message: fmt.Sprintf("job %q already exists", job.ID)}
	}
	if job.CreatedDate.IsZero() {
		job.CreatedDate = domain.DateOf(p.store.now())
	}
	if err := validateJob(*next, job); err != nil {
		return err
	}
	next.Jobs = append(next.Jobs, job)
	return nil
}

func applyUpdateJob(next *domain.Snapshot, c domain.UpdateJob) error {
	idx := -1
	for i, j := range next.Jobs {
		if j.ID == c.Job.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NotFoundError{Entity: domain.EntityJob, ID: c.Job.ID}
	}
	job := c.Job
	// CreatedDate is write-once; the stored value always wins.
	job.CreatedDate = next.Jobs[idx].CreatedDate
	if err := validateJob(*next, job); err != nil {
		return err
	}
	next.Jobs[idx] = job
	return nil
}

func applyDeleteJob(next *domain.Snapshot, c domain.DeleteJob) error {
	idx := -1
	for i, j := range next.Jobs {
		if j.ID == c.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NotFoundError{Entity: domain.EntityJob, ID: c.ID}
	}
	next.Jobs = append(next.Jobs[:idx], next.Jobs[idx+1:]...)
	return nil
}

func applyMarkNotificationRead(next *domain.Snapshot, c domain.MarkNotificationRead) error {
	for i, n := range next.Notifications {
		if n.ID == c.ID {
			next.Notifications[i].Read = true
			return nil
		}
	}
	return domain.NotFoundError{Entity: domain.EntityNotification, ID: c.ID}
}

func applySetCurrentUser(next *domain.Snapshot, c domain.SetCurrentUser) error {
	if c.UserID == nil {
		next.CurrentUserID = nil
		return nil
	}
	if _, ok := next.FindUser(*c.UserID); !ok {
		return domain.NotFoundError{Entity: domain.EntityUser, ID: *c.UserID}
	}
	id := *c.UserID
	next.CurrentUserID = &id
	return nil
}

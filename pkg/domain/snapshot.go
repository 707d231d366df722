package domain

// Snapshot is a complete copy of all entity collections plus the session
// fields at one instant. Collections are slices so that the insertion order
// of jobs and notifications survives serialisation; identity lookups go
// through the Find helpers. The zero value is an empty store.
type Snapshot struct {
	Users         []User         `json:"users"`
	Ships         []Ship         `json:"ships"`
	Components    []Component    `json:"components"`
	Jobs          []Job          `json:"jobs"`
	Notifications []Notification `json:"notifications"`
	CurrentUserID *string        `json:"currentUser"`
	Authenticated bool           `json:"authenticated"`
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (s Snapshot) Clone() Snapshot {
	cp := s
	cp.Users = append([]User(nil), s.Users...)
	cp.Ships = append([]Ship(nil), s.Ships...)
	cp.Components = append([]Component(nil), s.Components...)
	cp.Jobs = append([]Job(nil), s.Jobs...)
	cp.Notifications = append([]Notification(nil), s.Notifications...)
	if s.CurrentUserID != nil {
		id := *s.CurrentUserID
		cp.CurrentUserID = &id
	}
	return cp
}

// Normalize replaces nil collections with empty slices so that encoded
// documents always carry the five named arrays.
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Ships == nil {
		s.Ships = []Ship{}
	}
	if s.Components == nil {
		s.Components = []Component{}
	}
	if s.Jobs == nil {
		s.Jobs = []Job{}
	}
	if s.Notifications == nil {
		s.Notifications = []Notification{}
	}
}

// FindUser retrieves a user by ID.
func (s Snapshot) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindUserByEmail retrieves a user by email address.
func (s Snapshot) FindUserByEmail(email string) (User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// FindShip retrieves a ship by ID.
func (s Snapshot) FindShip(id string) (Ship, bool) {
	for _, ship := range s.Ships {
		if ship.ID == id {
			return ship, true
		}
	}
	return Ship{}, false
}

// FindComponent retrieves a component by ID.
func (s Snapshot) FindComponent(id string) (Component, bool) {
	for _, c := range s.Components {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}

// FindJob retrieves a job by ID.
func (s Snapshot) FindJob(id string) (Job, bool) {
	for _, j := range s.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// FindNotification retrieves a notification by ID.
func (s Snapshot) FindNotification(id string) (Notification, bool) {
	for _, n := range s.Notifications {
		if n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}

// CurrentUser resolves the session user, if any.
func (s Snapshot) CurrentUser() (User, bool) {
	if s.CurrentUserID == nil {
		return User{}, false
	}
	return s.FindUser(*s.CurrentUserID)
}

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetcore/pkg/domain"
)

// ErrInvalidCredentials is returned by Login when the email or password does
// not match a stored user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service composes the store, mutation processor, derived views, and the
// durable persistence bridge behind one transactional surface. Every mutation
// commits in memory first; a failed Save never rolls the commit back and is
// reported as a warning instead.
type Service struct {
	store   *Store
	proc    *Processor
	views   *Views
	bridge  domain.PersistenceBridge
	logger  Logger
	metrics MetricsRecorder
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLogger installs a logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsRecorder installs a metrics recorder. The default discards
// everything.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source used for generated IDs, notification
// timestamps, and overdue evaluation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.store.nowFn = now
		}
	}
}

// NewService constructs a service backed by the supplied persistence bridge.
// The in-memory state is empty until Start loads the durable snapshot.
func NewService(bridge domain.PersistenceBridge, opts ...Option) *Service {
	store := NewStore()
	svc := &Service{
		store:   store,
		proc:    NewProcessor(store, NewAccessPolicy()),
		views:   NewViews(store),
		bridge:  bridge,
		logger:  noopLogger{},
		metrics: noopMetricsRecorder{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Start hydrates the store from the persistence bridge. An absent or
// malformed durable slot yields the default seed; only an unreachable
// backend fails startup.
func (s *Service) Start(ctx context.Context) error {
	snapshot, err := s.bridge.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if _, err := s.proc.Apply(domain.LoadSnapshot{Snapshot: snapshot}, domain.RoleAdmin); err != nil {
		return fmt.Errorf("hydrate store: %w", err)
	}
	s.logger.Info("state loaded",
		"ships", len(snapshot.Ships),
		"components", len(snapshot.Components),
		"jobs", len(snapshot.Jobs))
	return nil
}

// Apply runs one command as the given actor role, persists the committed
// snapshot, and returns it. Save failures surface as Result warnings.
func (s *Service) Apply(ctx context.Context, cmd domain.Command, actor domain.Role) (domain.Snapshot, domain.Result, error) {
	started := s.store.now()
	snapshot, err := s.proc.Apply(cmd, actor)
	s.metrics.Observe(ctx, string(cmd.Kind()), err == nil, s.store.now().Sub(started))
	if err != nil {
		s.logger.Debug("command rejected", "command", cmd.Kind(), "role", actor, "error", err)
		return domain.Snapshot{}, domain.Result{}, err
	}

	var res domain.Result
	if perr := s.bridge.Save(ctx, snapshot); perr != nil {
		s.logger.Warn("snapshot save failed", "command", cmd.Kind(), "error", perr)
		res.Warnings = append(res.Warnings, domain.Warning{
			Source:  "persistence",
			Message: fmt.Sprintf("save failed after %s: %v", cmd.Kind(), perr),
		})
	}
	s.logger.Debug("command applied", "command", cmd.Kind(), "role", actor)
	return snapshot, res, nil
}

// Login authenticates by email and password and records the session in the
// store. The role of the matched user becomes the actor for the session
// commands.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, domain.Result, error) {
	user, ok := s.store.Snapshot().FindUserByEmail(email)
	if !ok || user.Password != password {
		return domain.User{}, domain.Result{}, ErrInvalidCredentials
	}
	id := user.ID
	if _, _, err := s.Apply(ctx, domain.SetCurrentUser{UserID: &id}, user.Role); err != nil {
		return domain.User{}, domain.Result{}, err
	}
	_, res, err := s.Apply(ctx, domain.SetAuthenticated{Authenticated: true}, user.Role)
	if err != nil {
		return domain.User{}, domain.Result{}, err
	}
	s.logger.Info("login", "user", user.ID, "role", user.Role)
	return user, res, nil
}

// Logout clears the session.
func (s *Service) Logout(ctx context.Context, actor domain.Role) (domain.Result, error) {
	if _, _, err := s.Apply(ctx, domain.SetCurrentUser{UserID: nil}, actor); err != nil {
		return domain.Result{}, err
	}
	_, res, err := s.Apply(ctx, domain.SetAuthenticated{Authenticated: false}, actor)
	return res, err
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() domain.Snapshot {
	return s.store.Snapshot()
}

// Views exposes the derived read-side bound to this service's store.
func (s *Service) Views() *Views {
	return s.views
}

// Policy exposes the access policy for callers that pre-check permissions.
func (s *Service) Policy() AccessPolicy {
	return s.proc.policy
}

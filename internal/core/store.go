// Package core implements the authoritative in-memory state store for
// fleetcore: the entity store with atomic snapshot replacement, the mutation
// processor enforcing role permissions and referential integrity, the
// notification emitter, and the derived read-side views.
package core

import (
	"strconv"
	"sync"
	"time"

	"fleetcore/pkg/domain"
)

// Store holds the canonical entity collections. All reads hand out deep
// clones and the only mutation primitive is Replace, so no caller can observe
// a half-applied command.
type Store struct {
	mu    sync.RWMutex
	state domain.Snapshot
	seq   uint64
	nowFn func() time.Time
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		state: domain.Snapshot{},
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Replace swaps the whole state atomically.
func (s *Store) Replace(next domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next.Clone()
}

// NewID returns an identity token unique across the store's entire history:
// the current unix-millisecond timestamp in base 36 joined with a per-store
// sequence number. Tokens are never reused after deletion.
func (s *Store) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return strconv.FormatInt(s.nowFn().UnixMilli(), 36) + "-" + strconv.FormatUint(s.seq, 36)
}

func (s *Store) now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn()
}

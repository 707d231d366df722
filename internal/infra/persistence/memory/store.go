// Package memory provides an in-process persistence bridge for tests and
// ephemeral deployments. It keeps the same bucket layout as the durable
// backends so corruption and absence behave identically.
package memory

import (
	"context"
	"sync"

	"fleetcore/internal/infra/persistence/state"
	"fleetcore/pkg/domain"
)

// Store holds encoded buckets in memory.
type Store struct {
	mu      sync.Mutex
	buckets map[string][]byte
}

// NewStore constructs an empty store. The first Load returns the seed.
func NewStore() *Store {
	return &Store{}
}

// Load decodes the stored buckets. An empty or unreadable slot yields the
// default seed.
func (s *Store) Load(_ context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buckets) == 0 {
		return domain.DefaultSnapshot(), nil
	}
	snapshot, err := state.Decode(s.buckets)
	if err != nil {
		return domain.DefaultSnapshot(), nil
	}
	return snapshot, nil
}

// Save replaces every bucket with the encoded snapshot.
func (s *Store) Save(_ context.Context, snapshot domain.Snapshot) error {
	encoded, err := state.Encode(snapshot)
	if err != nil {
		return domain.PersistenceError{Op: "save", Err: err}
	}
	s.mu.Lock()
	s.buckets = encoded
	s.mu.Unlock()
	return nil
}

// PutBucket overwrites one raw bucket payload. Tests use it to simulate
// partial or corrupt slots.
func (s *Store) PutBucket(bucket string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets == nil {
		s.buckets = make(map[string][]byte)
	}
	s.buckets[bucket] = append([]byte(nil), payload...)
}

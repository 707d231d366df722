package domain

import "context"

// PersistenceBridge is the durable snapshot slot that survives process
// restarts. Implementations write the full snapshot on every Save; there is
// no incremental or partial write.
//
// Load never fails on an absent or malformed slot: corrupt input is treated
// as absence and the default seed is returned instead. A non-nil error means
// the backend itself is unreachable.
type PersistenceBridge interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// Package sqlite persists the full snapshot to a single SQLite table as JSON
// bucket payloads, one row per collection.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"fleetcore/internal/infra/persistence/state"
	"fleetcore/pkg/domain"
)

var _ domain.PersistenceBridge = (*Store)(nil)

// Store is a SQLite-backed persistence bridge.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) the database file and ensures the state table
// exists.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "fleetcore.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Load reads every bucket row and decodes the snapshot. No rows or an
// undecodable payload yields the default seed; only a query failure is an
// error.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return domain.Snapshot{}, domain.PersistenceError{Op: "select state", Err: err}
	}
	defer func() { _ = rows.Close() }()

	raw := map[string][]byte{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return domain.Snapshot{}, domain.PersistenceError{Op: "scan state", Err: err}
		}
		raw[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, domain.PersistenceError{Op: "iterate state", Err: err}
	}
	if len(raw) == 0 {
		return domain.DefaultSnapshot(), nil
	}
	snapshot, err := state.Decode(raw)
	if err != nil {
		return domain.DefaultSnapshot(), nil
	}
	return snapshot, nil
}

// Save upserts every bucket within one transaction.
func (s *Store) Save(ctx context.Context, snapshot domain.Snapshot) (retErr error) {
	encoded, err := state.Encode(snapshot)
	if err != nil {
		return domain.PersistenceError{Op: "encode state", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.PersistenceError{Op: "begin tx", Err: err}
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range state.Buckets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
			bucket, encoded[bucket]); err != nil {
			retErr = domain.PersistenceError{Op: "upsert " + bucket, Err: err}
			return retErr
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

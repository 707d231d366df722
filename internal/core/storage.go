package core

import (
	"context"
	"fmt"
	"os"

	"fleetcore/internal/infra/persistence/memory"
	"fleetcore/internal/infra/persistence/postgres"
	"fleetcore/internal/infra/persistence/s3"
	"fleetcore/internal/infra/persistence/sqlite"
	"fleetcore/pkg/domain"
)

// StorageDriver identifies a concrete persistence bridge implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
	StorageS3       StorageDriver = "s3"       // S3-compatible object storage
)

// OpenPersistenceBridge selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	FLEETCORE_STORAGE_DRIVER: memory|sqlite|postgres|s3 (default sqlite)
//	FLEETCORE_SQLITE_PATH: path to sqlite file (default ./fleetcore.db)
//	FLEETCORE_POSTGRES_DSN: postgres DSN when driver=postgres
//	FLEETCORE_S3_BUCKET and friends when driver=s3
func OpenPersistenceBridge(ctx context.Context) (domain.PersistenceBridge, error) {
	driver := os.Getenv("FLEETCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("FLEETCORE_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.NewStore(os.Getenv("FLEETCORE_POSTGRES_DSN"))
	case StorageS3:
		return s3.OpenFromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

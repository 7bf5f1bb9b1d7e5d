package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no value is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// Store persists JSON blobs by key.
type Store interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Drivers lists the supported backends.
var Drivers = []string{DriverMemory, DriverSQLite, DriverPostgres}

// Open opens the backend named by driver. dsn is the database file for
// sqlite, the connection string for postgres, and ignored for memory.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("sqlite store: database path is required")
		}
		return OpenSQLite(dsn)
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("postgres store: connection string is required")
		}
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q: must be one of %v", driver, Drivers)
	}
}

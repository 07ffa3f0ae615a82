// Package db defines the narrow key-value store facade behind the external
// metadata index.
package db

import (
	"context"
	"time"
)

// Store is the database facade. Consumers depend on the narrow
// sub-interfaces, not on Store itself.
type Store interface {
	Pinger
	HashReader
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashReader provides read access to hash-shaped records.
type HashReader interface {
	// HGetMulti reads one field from many hashes in a single round-trip.
	// A missing key or field yields "" at its position.
	HGetMulti(ctx context.Context, keys []string, field string) ([]string, error)
	// HGetAll returns all fields of a hash.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

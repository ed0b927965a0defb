// Package store implements durable persistence for the library collections.
// Two backends exist: pretty-printed JSON files (one per collection, atomic
// temp-file/fsync/rename writes) and a single transactional SQLite store
// keyed by entity kind. Both rewrite every collection on each Save; there is
// no partial save.
package store

import (
	"fmt"
	"os"

	"librarium/pkg/types"
)

// Snapshot is the full persisted state: all three collections together,
// in display (insertion) order.
type Snapshot struct {
	Books []types.Book
	Users []types.User
	Loans []types.Loan
}

// Store is the persistence gateway. Load runs once at startup; Save runs
// after every successful mutation. Implementations report failures wrapped
// in types.ErrPersistence.
type Store interface {
	// Load reads all three collections. A store that does not exist, is
	// empty, or is unreadable as structured data yields an empty collection
	// rather than an error; only real I/O failures are reported.
	Load() (Snapshot, error)

	// Save rewrites all three collections from the snapshot.
	Save(Snapshot) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Open creates the store selected by config, creating the data directory
// if it does not exist.
func Open(config types.Config) (Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating data dir: %w", types.ErrPersistence, err)
	}

	switch config.Backend {
	case types.BackendJSON:
		return NewJSONStore(dataDir), nil
	case types.BackendSQLite:
		return OpenSQLiteStore(dataDir)
	default:
		return nil, types.ErrBackendUnknown
	}
}

// JSON file backend: three independent pretty-printed stores, one per
// collection. Writes use the temp-file, fsync, rename pattern so a crash
// never leaves a half-written store (cross-store consistency is still only
// as good as the order of the three renames).
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"librarium/pkg/types"
)

// Store file names, one per collection.
const (
	booksFile = "books.json"
	usersFile = "users.json"
	loansFile = "loans.json"
)

// JSONStore persists each collection to its own pretty-printed JSON file.
type JSONStore struct {
	dataDir string
}

// Compile-time interface check.
var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a JSON file store rooted at dataDir.
func NewJSONStore(dataDir string) *JSONStore {
	return &JSONStore{dataDir: dataDir}
}

// Load reads the three stores. Missing, empty, or unparseable files yield
// empty collections; startup never fails on malformed data.
func (s *JSONStore) Load() (Snapshot, error) {
	var snap Snapshot

	books, err := readCollection[types.Book](filepath.Join(s.dataDir, booksFile))
	if err != nil {
		return Snapshot{}, err
	}
	users, err := readCollection[types.User](filepath.Join(s.dataDir, usersFile))
	if err != nil {
		return Snapshot{}, err
	}
	loans, err := readCollection[types.Loan](filepath.Join(s.dataDir, loansFile))
	if err != nil {
		return Snapshot{}, err
	}

	snap.Books = books
	snap.Users = users
	snap.Loans = loans
	return snap, nil
}

// Save rewrites all three stores from the snapshot. Each file is written
// atomically; a nil collection is serialized as an empty array so a cleared
// store reads back empty rather than null.
func (s *JSONStore) Save(snap Snapshot) error {
	if err := writeCollection(filepath.Join(s.dataDir, booksFile), orEmpty(snap.Books)); err != nil {
		return err
	}
	if err := writeCollection(filepath.Join(s.dataDir, usersFile), orEmpty(snap.Users)); err != nil {
		return err
	}
	return writeCollection(filepath.Join(s.dataDir, loansFile), orEmpty(snap.Loans))
}

// Close is a no-op; the JSON store holds no open resources.
func (s *JSONStore) Close() error {
	return nil
}

// orEmpty replaces a nil slice with an empty one for serialization.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// readCollection reads one store file into a slice of entities. A missing
// file or malformed content yields a nil slice; other read failures are
// wrapped in types.ErrPersistence.
func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", types.ErrPersistence, path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		// Unreadable as structured data: initialize empty rather than
		// failing the whole startup.
		return nil, nil
	}
	return items, nil
}

// writeCollection serializes items pretty-printed and writes them with the
// temp-file, fsync, rename pattern.
func writeCollection[T any](path string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: serializing %s: %w", types.ErrPersistence, path, err)
	}
	if err := writeFileAtomic(path, append(data, '\n')); err != nil {
		return fmt.Errorf("%w: writing %s: %w", types.ErrPersistence, path, err)
	}
	return nil
}

// writeFileAtomic writes data to path via a temp file in the same
// directory, fsyncing before the rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming: %w", err)
	}
	return nil
}

package library

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/store"
	"librarium/pkg/types"
)

// openTestLibrary returns a Library over a JSON store in a temp dir,
// together with the store so tests can reopen the same state.
func openTestLibrary(t *testing.T) (*Library, *store.JSONStore) {
	t.Helper()
	st := store.NewJSONStore(t.TempDir())
	lib, err := Open(st)
	require.NoError(t, err)
	return lib, st
}

func hobbit() types.Book {
	return types.Book{
		Title:  "The Hobbit",
		Author: "J. R. R. Tolkien",
		ISBN:   "123-4567890123",
		Year:   1937,
		Genres: []string{"Fantasy", "Adventure"},
	}
}

func novak() types.User {
	return types.User{FirstName: "Jan", LastName: "Novak", CardNumber: "12-3456"}
}

func TestOpenEmpty(t *testing.T) {
	lib, _ := openTestLibrary(t)
	assert.Empty(t, lib.Books())
	assert.Empty(t, lib.Users())
	assert.Empty(t, lib.Loans())
}

func TestPersistenceRoundTrip(t *testing.T) {
	lib, st := openTestLibrary(t)

	_, err := lib.AddBook(hobbit())
	require.NoError(t, err)
	_, err = lib.AddBook(types.Book{
		Title: "Dune", Author: "Frank Herbert", ISBN: "321-0987654321",
		Year: 1965, Genres: []string{"Science Fiction"},
	})
	require.NoError(t, err)
	_, err = lib.AddUser(novak())
	require.NoError(t, err)

	_, err = lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)
	_, err = lib.LoanBook("321-0987654321", "12-3456")
	require.NoError(t, err)
	_, err = lib.ReturnBook("321-0987654321")
	require.NoError(t, err)

	// A fresh Library over the same store must reproduce the state.
	reloaded, err := Open(st)
	require.NoError(t, err)

	books := reloaded.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "The Hobbit", books[0].Title, "insertion order survives reload")
	assert.False(t, books[0].Available, "open loan keeps the book unavailable")
	assert.True(t, books[1].Available, "returned book is available again")

	users := reloaded.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "12-3456", users[0].CardNumber)

	loans := reloaded.Loans()
	require.Len(t, loans, 2)
	assert.True(t, loans[0].Open())
	assert.False(t, loans[1].Open())
	assert.Len(t, loans[1].History, 1)
}

func TestReload(t *testing.T) {
	lib, st := openTestLibrary(t)
	_, err := lib.AddBook(hobbit())
	require.NoError(t, err)

	// Another Library over the same store mutates state behind our back.
	other, err := Open(st)
	require.NoError(t, err)
	_, err = other.AddUser(novak())
	require.NoError(t, err)

	require.NoError(t, lib.Reload())
	assert.Len(t, lib.Users(), 1)
	assert.Len(t, lib.Books(), 1)
}

func TestClearBooks(t *testing.T) {
	lib, _ := openTestLibrary(t)
	_, err := lib.AddBook(hobbit())
	require.NoError(t, err)
	_, err = lib.AddUser(novak())
	require.NoError(t, err)
	_, err = lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)

	require.NoError(t, lib.ClearBooks())
	assert.Empty(t, lib.Books())
	assert.Empty(t, lib.Loans(), "clearing books clears the ledger with them")
	assert.Len(t, lib.Users(), 1, "users are untouched")
}

func TestClearUsers(t *testing.T) {
	lib, _ := openTestLibrary(t)
	_, err := lib.AddBook(hobbit())
	require.NoError(t, err)
	_, err = lib.AddUser(novak())
	require.NoError(t, err)
	_, err = lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)

	require.NoError(t, lib.ClearUsers())
	assert.Empty(t, lib.Users())
	assert.Len(t, lib.Loans(), 1, "loans keep their user snapshots")
	assert.Len(t, lib.Books(), 1)
}

func TestClearAll(t *testing.T) {
	lib, st := openTestLibrary(t)
	_, err := lib.AddBook(hobbit())
	require.NoError(t, err)
	_, err = lib.AddUser(novak())
	require.NoError(t, err)

	require.NoError(t, lib.ClearAll())

	reloaded, err := Open(st)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Books())
	assert.Empty(t, reloaded.Users())
	assert.Empty(t, reloaded.Loans())
}

// failingStore loads fine but refuses every save.
type failingStore struct{}

func (failingStore) Load() (store.Snapshot, error) { return store.Snapshot{}, nil }
func (failingStore) Save(store.Snapshot) error {
	return types.ErrPersistence
}
func (failingStore) Close() error { return nil }

func TestPersistenceErrorPropagates(t *testing.T) {
	lib, err := Open(failingStore{})
	require.NoError(t, err)

	_, err = lib.AddBook(hobbit())
	assert.True(t, errors.Is(err, types.ErrPersistence))
	// The in-memory mutation stands; memory and storage have diverged and
	// the core does not auto-heal that.
	assert.Len(t, lib.Books(), 1)
}

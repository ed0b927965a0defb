// Package library implements the core state of the system: the catalog of
// books, the roster of users, and the loan ledger binding them. One Library
// value owns all three collections for the lifetime of the process; every
// successful mutation flushes the full state through the persistence
// gateway. The package assumes a single actor invoking operations
// sequentially and does no locking.
package library

import (
	"fmt"

	"librarium/internal/store"
	"librarium/pkg/types"
)

// Library is the single owning state object. Books and users are held in
// maps keyed by their identifiers for O(1) lookup, with insertion order
// kept separately for display; loans are an append-only slice.
type Library struct {
	store store.Store

	books     map[string]*types.Book
	bookOrder []string

	users     map[string]*types.User
	userOrder []string

	loans []*types.Loan
}

// Open constructs a Library backed by the given store, loading the
// persisted collections into memory.
func Open(st store.Store) (*Library, error) {
	lib := &Library{store: st}
	if err := lib.Reload(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Reload replaces the in-memory collections with the persisted state.
func (l *Library) Reload() error {
	snap, err := l.store.Load()
	if err != nil {
		return err
	}

	l.books = make(map[string]*types.Book, len(snap.Books))
	l.bookOrder = l.bookOrder[:0]
	for i := range snap.Books {
		b := snap.Books[i]
		if _, dup := l.books[b.ISBN]; dup {
			continue
		}
		l.books[b.ISBN] = &b
		l.bookOrder = append(l.bookOrder, b.ISBN)
	}

	l.users = make(map[string]*types.User, len(snap.Users))
	l.userOrder = l.userOrder[:0]
	for i := range snap.Users {
		u := snap.Users[i]
		if _, dup := l.users[u.CardNumber]; dup {
			continue
		}
		l.users[u.CardNumber] = &u
		l.userOrder = append(l.userOrder, u.CardNumber)
	}

	l.loans = l.loans[:0]
	for i := range snap.Loans {
		loan := snap.Loans[i]
		l.loans = append(l.loans, &loan)
	}

	return nil
}

// persist flushes all three collections through the gateway. There is no
// partial save; the snapshot always carries everything.
func (l *Library) persist() error {
	snap := store.Snapshot{
		Books: l.Books(),
		Users: l.Users(),
		Loans: l.Loans(),
	}
	if err := l.store.Save(snap); err != nil {
		return fmt.Errorf("saving library state: %w", err)
	}
	return nil
}

// Books returns copies of all books in insertion order.
func (l *Library) Books() []types.Book {
	out := make([]types.Book, 0, len(l.bookOrder))
	for _, isbn := range l.bookOrder {
		out = append(out, *l.books[isbn])
	}
	return out
}

// Users returns copies of all users in insertion order.
func (l *Library) Users() []types.User {
	out := make([]types.User, 0, len(l.userOrder))
	for _, card := range l.userOrder {
		out = append(out, *l.users[card])
	}
	return out
}

// Loans returns copies of all loans, open and closed, in creation order.
func (l *Library) Loans() []types.Loan {
	out := make([]types.Loan, 0, len(l.loans))
	for _, loan := range l.loans {
		out = append(out, *loan)
	}
	return out
}

// ClearBooks removes every book and every loan. Loans cannot outlive the
// catalog they reference, so the two clear together.
func (l *Library) ClearBooks() error {
	l.books = make(map[string]*types.Book)
	l.bookOrder = nil
	l.loans = nil
	return l.persist()
}

// ClearUsers removes every user. Loans keep their embedded user snapshots,
// so existing open loans stay returnable by ISBN and book availability is
// untouched.
func (l *Library) ClearUsers() error {
	l.users = make(map[string]*types.User)
	l.userOrder = nil
	return l.persist()
}

// ClearAll removes everything.
func (l *Library) ClearAll() error {
	l.books = make(map[string]*types.Book)
	l.bookOrder = nil
	l.users = make(map[string]*types.User)
	l.userOrder = nil
	l.loans = nil
	return l.persist()
}

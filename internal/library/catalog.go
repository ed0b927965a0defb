package library

import (
	"strings"

	"librarium/pkg/types"
)

// BookChanges is a partial update for a book. Zero values mean "keep the
// current value"; a nil Genres slice keeps the current genres.
type BookChanges struct {
	Title  string
	Author string
	ISBN   string
	Year   int
	Genres []string
}

// AddBook validates and inserts a new book, available by default.
// Fails with a validation error on malformed fields or unknown genres and
// with types.ErrDuplicateISBN if the identifier is taken. Nothing is
// mutated on failure.
func (l *Library) AddBook(book types.Book) (types.Book, error) {
	book.Available = true
	if err := book.Validate(); err != nil {
		return types.Book{}, err
	}
	genres, err := types.NormalizeGenres(book.Genres)
	if err != nil {
		return types.Book{}, err
	}
	book.Genres = genres

	if _, exists := l.books[book.ISBN]; exists {
		return types.Book{}, types.ErrDuplicateISBN
	}

	l.books[book.ISBN] = &book
	l.bookOrder = append(l.bookOrder, book.ISBN)
	if err := l.persist(); err != nil {
		return types.Book{}, err
	}
	return book, nil
}

// GetBook returns a copy of the book with the given ISBN.
func (l *Library) GetBook(isbn string) (types.Book, error) {
	book, ok := l.books[isbn]
	if !ok {
		return types.Book{}, types.ErrBookNotFound
	}
	return *book, nil
}

// RemoveBook deletes a book from the catalog. Removal is refused with
// types.ErrOpenLoan while an open loan references the ISBN; closed loans
// keep their snapshots and do not block.
func (l *Library) RemoveBook(isbn string) error {
	if _, ok := l.books[isbn]; !ok {
		return types.ErrBookNotFound
	}
	if l.openLoanFor(isbn) != nil {
		return types.ErrOpenLoan
	}

	delete(l.books, isbn)
	l.bookOrder = removeKey(l.bookOrder, isbn)
	return l.persist()
}

// EditBook applies a partial update to the book with the given ISBN.
// Supplied fields are validated the same way AddBook validates them;
// omitted fields are preserved. Changing the ISBN re-keys the catalog;
// the new ISBN must be well-formed and unclaimed, and the change is
// refused while an open loan references the old one. Availability is
// never editable.
func (l *Library) EditBook(isbn string, changes BookChanges) (types.Book, error) {
	book, ok := l.books[isbn]
	if !ok {
		return types.Book{}, types.ErrBookNotFound
	}

	updated := *book
	if changes.Title != "" {
		updated.Title = changes.Title
	}
	if changes.Author != "" {
		updated.Author = changes.Author
	}
	if changes.Year != 0 {
		if changes.Year < 0 {
			return types.Book{}, types.ErrInvalidYear
		}
		updated.Year = changes.Year
	}
	if changes.Genres != nil {
		genres, err := types.NormalizeGenres(changes.Genres)
		if err != nil {
			return types.Book{}, err
		}
		updated.Genres = genres
	}

	rekey := changes.ISBN != "" && changes.ISBN != isbn
	if rekey {
		if !types.ValidISBN(changes.ISBN) {
			return types.Book{}, types.ErrInvalidISBN
		}
		if _, taken := l.books[changes.ISBN]; taken {
			return types.Book{}, types.ErrDuplicateISBN
		}
		if l.openLoanFor(isbn) != nil {
			return types.Book{}, types.ErrOpenLoan
		}
		updated.ISBN = changes.ISBN
	}

	if rekey {
		delete(l.books, isbn)
		l.books[updated.ISBN] = &updated
		for i, k := range l.bookOrder {
			if k == isbn {
				l.bookOrder[i] = updated.ISBN
			}
		}
	} else {
		*book = updated
	}

	if err := l.persist(); err != nil {
		return types.Book{}, err
	}
	return updated, nil
}

// MatchBooksByTitle returns every book whose title contains part,
// case-insensitively, in insertion order. Used to build the candidate set
// for name-based edits; the caller disambiguates by index.
func (l *Library) MatchBooksByTitle(part string) []types.Book {
	var out []types.Book
	for _, isbn := range l.bookOrder {
		book := l.books[isbn]
		if containsFold(book.Title, part) {
			out = append(out, *book)
		}
	}
	return out
}

// openLoanFor returns the open loan referencing isbn, or nil. The
// single-open-loan invariant guarantees at most one.
func (l *Library) openLoanFor(isbn string) *types.Loan {
	for _, loan := range l.loans {
		if loan.Open() && loan.Book.ISBN == isbn {
			return loan
		}
	}
	return nil
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// removeKey deletes the first occurrence of key from keys, preserving order.
func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

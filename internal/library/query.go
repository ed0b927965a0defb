package library

import "librarium/pkg/types"

// Read-only projections over the catalog. All of them are total: no
// matches means an empty result, never an error.

// SearchByTitle returns books whose title contains part, case-insensitively.
func (l *Library) SearchByTitle(part string) []types.Book {
	return l.filterBooks(func(b *types.Book) bool {
		return containsFold(b.Title, part)
	})
}

// SearchByAuthor returns books whose author contains part, case-insensitively.
func (l *Library) SearchByAuthor(part string) []types.Book {
	return l.filterBooks(func(b *types.Book) bool {
		return containsFold(b.Author, part)
	})
}

// SearchByYear returns books published exactly in year.
func (l *Library) SearchByYear(year int) []types.Book {
	return l.filterBooks(func(b *types.Book) bool {
		return b.Year == year
	})
}

// SearchByGenresAll returns books carrying every queried genre: each query
// entry must be contained, case-insensitively, in one of the book's genres.
func (l *Library) SearchByGenresAll(genres []string) []types.Book {
	return l.filterBooks(func(b *types.Book) bool {
		for _, queried := range genres {
			matched := false
			for _, g := range b.Genres {
				if containsFold(g, queried) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	})
}

// SearchByGenresAny returns books carrying at least one of the queried
// genres, compared case-insensitively.
func (l *Library) SearchByGenresAny(genres []string) []types.Book {
	return l.filterBooks(func(b *types.Book) bool {
		for _, queried := range genres {
			if b.HasGenre(queried) {
				return true
			}
		}
		return false
	})
}

func (l *Library) filterBooks(keep func(*types.Book) bool) []types.Book {
	var out []types.Book
	for _, isbn := range l.bookOrder {
		book := l.books[isbn]
		if keep(book) {
			out = append(out, *book)
		}
	}
	return out
}

package types

import (
	"regexp"
	"strings"
)

// isbnPattern is the fixed identifier format for books: three digits,
// a dash, ten digits.
var isbnPattern = regexp.MustCompile(`^\d{3}-\d{10}$`)

// Book represents a single catalogued title.
// Available is derived state: false exactly while an open Loan references
// the same ISBN. The ledger maintains it; nothing else should write it.
type Book struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	ISBN      string   `json:"isbn"`
	Year      int      `json:"year"`
	Genres    []string `json:"genres"`
	Available bool     `json:"available"`
}

// ValidISBN reports whether s matches the NNN-NNNNNNNNNN format.
func ValidISBN(s string) bool {
	return isbnPattern.MatchString(s)
}

// Validate checks the book's fields without consulting any collection.
// Uniqueness is the catalog's concern, not the entity's.
func (b *Book) Validate() error {
	if !ValidISBN(b.ISBN) {
		return ErrInvalidISBN
	}
	if b.Title == "" || b.Author == "" {
		return ErrEmptyField
	}
	if b.Year <= 0 {
		return ErrInvalidYear
	}
	return nil
}

// HasGenre reports whether the book carries the given genre,
// compared case-insensitively.
func (b *Book) HasGenre(genre string) bool {
	for _, g := range b.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

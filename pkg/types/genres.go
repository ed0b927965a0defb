package types

import "strings"

// GenreVocabulary is the fixed set of recognized genres. Books carry any
// subset of it; free-text genres are rejected on add and edit.
var GenreVocabulary = []string{
	"Fiction",
	"Non-fiction",
	"Science Fiction",
	"Fantasy",
	"Mystery",
	"Biography",
	"History",
	"Children's",
	"Romance",
	"Horror",
	"Thriller",
	"Adventure",
	"Self-help",
	"Philosophy",
	"Psychology",
	"Poetry",
	"Drama",
	"Graphic Novel",
	"Travel",
	"Religious",
}

// CanonicalGenre maps a case-insensitive genre name to its canonical
// vocabulary spelling. The second return is false for unknown genres.
func CanonicalGenre(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, g := range GenreVocabulary {
		if strings.EqualFold(g, trimmed) {
			return g, true
		}
	}
	return "", false
}

// NormalizeGenres canonicalizes each entry against the vocabulary,
// dropping duplicates while preserving first-seen order.
// Returns ErrUnknownGenre if any entry is not in the vocabulary.
func NormalizeGenres(genres []string) ([]string, error) {
	out := make([]string, 0, len(genres))
	seen := make(map[string]bool, len(genres))
	for _, name := range genres {
		canonical, ok := CanonicalGenre(name)
		if !ok {
			return nil, ErrUnknownGenre
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out, nil
}

// Shared helpers for librarium CLI commands.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"librarium/internal/library"
	"librarium/internal/store"
	"librarium/pkg/types"
)

// openLibrary resolves the data directory and backend, opens the store,
// and loads the library state. The caller must defer st.Close().
func openLibrary() (*library.Library, store.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: resolveBackend(),
		DataDir: dataDir,
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	lib, err := library.Open(st)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load library: %w", err)
	}
	return lib, st, nil
}

// promptSelection runs the bounded interactive disambiguation loop: print
// the candidates once, then read numeric selections from stdin until one
// resolves or the invalid-attempt budget is spent. The resolution itself
// is the pure library.Pick; only the prompting lives here.
func promptSelection[T any](candidates []T, describe func(T) string) (T, error) {
	var zero T
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	fmt.Println("Multiple matches found. Please choose one:")
	for i, c := range candidates {
		fmt.Printf("%d. %s\n", i+1, describe(c))
	}

	reader := bufio.NewReader(os.Stdin)
	invalid := 0
	for {
		fmt.Print("Enter the number of your choice: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return zero, fmt.Errorf("%w: reading selection: %v", types.ErrAmbiguousSelection, err)
		}

		picked, pickErr := library.Pick(candidates, strings.TrimSpace(line))
		if pickErr == nil {
			return picked, nil
		}
		invalid++
		if invalid >= library.MaxInvalidSelections {
			return zero, fmt.Errorf("%w: no valid selection within %d attempts",
				types.ErrAmbiguousSelection, library.MaxInvalidSelections)
		}
		fmt.Println("Invalid selection. Please enter a valid number from the list.")
	}
}

// confirm asks a yes/no question on stdin. Anything other than "yes"
// declines.
func confirm(question string) bool {
	fmt.Printf("%s Type 'yes' to confirm: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func formatBook(b types.Book) string {
	return fmt.Sprintf("Title: %s, Author: %s, Year: %d, Genres: %s, ISBN: %s, Available: %t",
		b.Title, b.Author, b.Year, strings.Join(b.Genres, ", "), b.ISBN, b.Available)
}

func formatUser(u types.User) string {
	return fmt.Sprintf("%s %s, Card: %s", u.FirstName, u.LastName, u.CardNumber)
}

func formatLoan(l types.Loan) string {
	returned := "Not yet"
	if l.ReturnedAt != nil {
		returned = l.ReturnedAt.Format(time.RFC3339)
	}
	return fmt.Sprintf("Book: %s, Borrower: %s %s, Borrowed: %s, Returned: %s",
		l.Book.Title, l.User.FirstName, l.User.LastName,
		l.BorrowedAt.Format(time.RFC3339), returned)
}

// printBooks renders a book list as text or JSON per the --json flag.
func printBooks(books []types.Book) error {
	if flagJSON {
		return printJSON(books)
	}
	if len(books) == 0 {
		fmt.Println("No books found.")
		return nil
	}
	for _, b := range books {
		fmt.Println(formatBook(b))
	}
	return nil
}

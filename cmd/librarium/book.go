// Book management commands: add, remove, edit, list.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"librarium/internal/library"
	"librarium/pkg/types"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the book catalogue",
}

var (
	bookTitle   string
	bookAuthor  string
	bookISBN    string
	bookYear    int
	bookGenres  []string
	bookMatch   string
	bookNewISBN string
)

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalogue",
	Long: `Add registers a new book. The ISBN must match NNN-NNNNNNNNNN and be
unused; genres must come from the fixed vocabulary (see 'librarium genres').

Example:
  librarium book add --title "The Hobbit" --author "J. R. R. Tolkien" \
    --isbn 123-4567890123 --year 1937 --genres Fantasy,Adventure`,
	RunE: runBookAdd,
}

var bookRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a book by ISBN",
	Long: `Remove deletes a book from the catalogue. A book with an open loan
cannot be removed; return it first.`,
	RunE: runBookRemove,
}

var bookEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a book's details",
	Long: `Edit updates the supplied fields of one book and preserves the rest.
Select the book either by --isbn or by --match (part of the title); when
several titles match, the command lists them and asks for a number.

Example:
  librarium book edit --match hobbit --year 1951`,
	RunE: runBookEdit,
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every book in the catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, st, err := openLibrary()
		if err != nil {
			return err
		}
		defer st.Close()
		return printBooks(lib.Books())
	},
}

func init() {
	bookAddCmd.Flags().StringVar(&bookTitle, "title", "", "book title (required)")
	bookAddCmd.Flags().StringVar(&bookAuthor, "author", "", "book author (required)")
	bookAddCmd.Flags().StringVar(&bookISBN, "isbn", "", "ISBN, format NNN-NNNNNNNNNN (required)")
	bookAddCmd.Flags().IntVar(&bookYear, "year", 0, "year of publication (required)")
	bookAddCmd.Flags().StringSliceVar(&bookGenres, "genres", nil, "comma-separated genres from the vocabulary")
	_ = bookAddCmd.MarkFlagRequired("title")
	_ = bookAddCmd.MarkFlagRequired("author")
	_ = bookAddCmd.MarkFlagRequired("isbn")
	_ = bookAddCmd.MarkFlagRequired("year")

	bookRemoveCmd.Flags().StringVar(&bookISBN, "isbn", "", "ISBN of the book to remove (required)")
	_ = bookRemoveCmd.MarkFlagRequired("isbn")

	bookEditCmd.Flags().StringVar(&bookISBN, "isbn", "", "ISBN of the book to edit")
	bookEditCmd.Flags().StringVar(&bookMatch, "match", "", "part of the title of the book to edit")
	bookEditCmd.Flags().StringVar(&bookTitle, "title", "", "new title")
	bookEditCmd.Flags().StringVar(&bookAuthor, "author", "", "new author")
	bookEditCmd.Flags().IntVar(&bookYear, "year", 0, "new year of publication")
	bookEditCmd.Flags().StringSliceVar(&bookGenres, "genres", nil, "new comma-separated genres")
	bookEditCmd.Flags().StringVar(&bookNewISBN, "new-isbn", "", "new ISBN, format NNN-NNNNNNNNNN")

	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookRemoveCmd)
	bookCmd.AddCommand(bookEditCmd)
	bookCmd.AddCommand(bookListCmd)
}

func runBookAdd(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	added, err := lib.AddBook(types.Book{
		Title:  bookTitle,
		Author: bookAuthor,
		ISBN:   bookISBN,
		Year:   bookYear,
		Genres: bookGenres,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(added)
	}
	fmt.Println("Book added successfully.")
	return nil
}

func runBookRemove(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := lib.RemoveBook(bookISBN); err != nil {
		return err
	}
	fmt.Println("Book removed successfully.")
	return nil
}

func runBookEdit(cmd *cobra.Command, args []string) error {
	if bookISBN == "" && bookMatch == "" {
		return fmt.Errorf("either --isbn or --match is required")
	}

	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	isbn := bookISBN
	if isbn == "" {
		candidates := lib.MatchBooksByTitle(bookMatch)
		if len(candidates) == 0 {
			return types.ErrBookNotFound
		}
		picked, err := promptSelection(candidates, func(b types.Book) string {
			return fmt.Sprintf("%s by %s, ISBN: %s", b.Title, b.Author, b.ISBN)
		})
		if err != nil {
			return err
		}
		isbn = picked.ISBN
	}

	edited, err := lib.EditBook(isbn, library.BookChanges{
		Title:  bookTitle,
		Author: bookAuthor,
		ISBN:   bookNewISBN,
		Year:   bookYear,
		Genres: bookGenres,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(edited)
	}
	fmt.Println("Book updated successfully.")
	return nil
}

// Search commands over the catalog.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var searchAnyGenre bool

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the book catalog",
}

var searchTitleCmd = &cobra.Command{
	Use:   "title <part>",
	Short: "Search books by part of the title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, st, err := openLibrary()
		if err != nil {
			return err
		}
		defer st.Close()
		return printBooks(lib.SearchByTitle(args[0]))
	},
}

var searchAuthorCmd = &cobra.Command{
	Use:   "author <part>",
	Short: "Search books by part of the author's name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, st, err := openLibrary()
		if err != nil {
			return err
		}
		defer st.Close()
		return printBooks(lib.SearchByAuthor(args[0]))
	},
}

var searchYearCmd = &cobra.Command{
	Use:   "year <year>",
	Short: "Search books by publication year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		lib, st, err := openLibrary()
		if err != nil {
			return err
		}
		defer st.Close()
		return printBooks(lib.SearchByYear(year))
	},
}

var searchGenreCmd = &cobra.Command{
	Use:   "genre <genre>...",
	Short: "Search books by genre",
	Long: `Search genre matches books carrying all of the given genres. With
--any, a book matches when it carries at least one of them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, st, err := openLibrary()
		if err != nil {
			return err
		}
		defer st.Close()
		if searchAnyGenre {
			return printBooks(lib.SearchByGenresAny(args))
		}
		return printBooks(lib.SearchByGenresAll(args))
	},
}

func init() {
	searchGenreCmd.Flags().BoolVar(&searchAnyGenre, "any", false, "match books carrying any of the genres")
	searchCmd.AddCommand(searchTitleCmd)
	searchCmd.AddCommand(searchAuthorCmd)
	searchCmd.AddCommand(searchYearCmd)
	searchCmd.AddCommand(searchGenreCmd)
}

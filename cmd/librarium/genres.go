package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"librarium/pkg/types"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the recognized genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			return printJSON(types.GenreVocabulary)
		}
		for _, g := range types.GenreVocabulary {
			fmt.Println(g)
		}
		return nil
	},
}

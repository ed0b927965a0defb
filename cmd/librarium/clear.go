package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear {books|users|all}",
	Short: "Remove stored records in bulk",
	Long: `Clear wipes stored records. Clearing books also removes the loan
ledger, since loans reference books. Clearing users leaves books and the
loan ledger in place.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"books", "users", "all"},
	RunE:      runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	target := args[0]
	if !clearYes && !confirm(fmt.Sprintf("Really clear %s?", target)) {
		fmt.Println("Aborted.")
		return nil
	}

	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	switch target {
	case "books":
		err = lib.ClearBooks()
	case "users":
		err = lib.ClearUsers()
	case "all":
		err = lib.ClearAll()
	default:
		return fmt.Errorf("unknown target %q (want books, users, or all)", target)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Cleared %s.\n", target)
	return nil
}

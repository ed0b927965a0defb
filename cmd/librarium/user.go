// User management commands: add, remove, edit, list.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"librarium/internal/library"
	"librarium/pkg/types"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the patron roster",
}

var (
	userFirst   string
	userLast    string
	userCard    string
	userNewCard string
)

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a patron",
	Long: `Add registers a new patron. The library card number must match
NN-NNNN and be unused.

Example:
  librarium user add --first Jan --last Novak --card 12-3456`,
	RunE: runUserAdd,
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a patron by card number",
	Long: `Remove deletes a patron from the roster. A patron with an open loan
cannot be removed; return the book first.`,
	RunE: runUserRemove,
}

var userEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a patron's details",
	Long: `Edit updates the supplied fields of one patron and preserves the
rest. --new-card re-issues the library card; the new number must be unused
and the patron must have no open loans.`,
	RunE: runUserEdit,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered patron",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, st, err := openLibrary()
		if err != nil {
			return err
		}
		defer st.Close()

		users := lib.Users()
		if flagJSON {
			return printJSON(users)
		}
		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}
		for _, u := range users {
			fmt.Println(formatUser(u))
		}
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userFirst, "first", "", "first name (required)")
	userAddCmd.Flags().StringVar(&userLast, "last", "", "last name (required)")
	userAddCmd.Flags().StringVar(&userCard, "card", "", "library card number, format NN-NNNN (required)")
	_ = userAddCmd.MarkFlagRequired("first")
	_ = userAddCmd.MarkFlagRequired("last")
	_ = userAddCmd.MarkFlagRequired("card")

	userRemoveCmd.Flags().StringVar(&userCard, "card", "", "card number of the patron to remove (required)")
	_ = userRemoveCmd.MarkFlagRequired("card")

	userEditCmd.Flags().StringVar(&userCard, "card", "", "card number of the patron to edit (required)")
	userEditCmd.Flags().StringVar(&userFirst, "first", "", "new first name")
	userEditCmd.Flags().StringVar(&userLast, "last", "", "new last name")
	userEditCmd.Flags().StringVar(&userNewCard, "new-card", "", "new card number")
	_ = userEditCmd.MarkFlagRequired("card")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userRemoveCmd)
	userCmd.AddCommand(userEditCmd)
	userCmd.AddCommand(userListCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	added, err := lib.AddUser(types.User{
		FirstName:  userFirst,
		LastName:   userLast,
		CardNumber: userCard,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(added)
	}
	fmt.Println("User added successfully.")
	return nil
}

func runUserRemove(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := lib.RemoveUser(userCard); err != nil {
		return err
	}
	fmt.Println("User removed successfully.")
	return nil
}

func runUserEdit(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	edited, err := lib.EditUser(userCard, library.UserChanges{
		FirstName:  userFirst,
		LastName:   userLast,
		CardNumber: userNewCard,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(edited)
	}
	fmt.Println("User information updated successfully.")
	return nil
}

// Loan commands: loan, return, loans (open loans per patron), history.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"librarium/pkg/types"
)

var (
	loanISBN  string
	loanTitle string
	loanCard  string
)

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Loan a book to a patron",
	Long: `Loan opens a loan for an available book. Select the book by --isbn
or by --title (part of the title); when several available books match, the
command lists them and asks for a number.

Example:
  librarium loan --isbn 123-4567890123 --card 12-3456
  librarium loan --title hobbit --card 12-3456`,
	RunE: runLoan,
}

var returnCmd = &cobra.Command{
	Use:   "return",
	Short: "Return a loaned book",
	Long: `Return closes the open loan for a book. Select it by --isbn, or by
--title and --card to pick among the patron's open loans.

Example:
  librarium return --isbn 123-4567890123
  librarium return --title hobbit --card 12-3456`,
	RunE: runReturn,
}

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List a patron's open loans",
	RunE:  runLoans,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show every loan with its audit trail",
	RunE:  runHistory,
}

func init() {
	loanCmd.Flags().StringVar(&loanISBN, "isbn", "", "ISBN of the book to loan")
	loanCmd.Flags().StringVar(&loanTitle, "title", "", "part of the title of the book to loan")
	loanCmd.Flags().StringVar(&loanCard, "card", "", "borrower's card number (required)")
	_ = loanCmd.MarkFlagRequired("card")

	returnCmd.Flags().StringVar(&loanISBN, "isbn", "", "ISBN of the book to return")
	returnCmd.Flags().StringVar(&loanTitle, "title", "", "part of the title of the book to return")
	returnCmd.Flags().StringVar(&loanCard, "card", "", "borrower's card number (required with --title)")

	loansCmd.Flags().StringVar(&loanCard, "card", "", "patron's card number (required)")
	_ = loansCmd.MarkFlagRequired("card")
}

func runLoan(cmd *cobra.Command, args []string) error {
	if loanISBN == "" && loanTitle == "" {
		return fmt.Errorf("either --isbn or --title is required")
	}

	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	isbn := loanISBN
	if isbn == "" {
		candidates := lib.AvailableBooksByTitle(loanTitle)
		if len(candidates) == 0 {
			return fmt.Errorf("no available books match %q: %w", loanTitle, types.ErrBookNotFound)
		}
		picked, err := promptSelection(candidates, func(b types.Book) string {
			return fmt.Sprintf("%s, ISBN: %s", b.Title, b.ISBN)
		})
		if err != nil {
			return err
		}
		isbn = picked.ISBN
	}

	loan, err := lib.LoanBook(isbn, loanCard)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(loan)
	}
	fmt.Printf("Book '%s' loaned successfully to %s.\n", loan.Book.Title, loan.User.FullName())
	return nil
}

func runReturn(cmd *cobra.Command, args []string) error {
	if loanISBN == "" && loanTitle == "" {
		return fmt.Errorf("either --isbn or --title is required")
	}
	if loanISBN == "" && loanCard == "" {
		return fmt.Errorf("--card is required when returning by title")
	}

	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	var loan types.Loan
	if loanISBN != "" {
		loan, err = lib.ReturnBook(loanISBN)
	} else {
		candidates := lib.OpenLoansByTitle(loanTitle, loanCard)
		if len(candidates) == 0 {
			return fmt.Errorf("no open loans match %q for card %s: %w", loanTitle, loanCard, types.ErrLoanNotFound)
		}
		var picked types.Loan
		picked, err = promptSelection(candidates, func(l types.Loan) string {
			return fmt.Sprintf("%s, ISBN: %s, Loan Date: %s",
				l.Book.Title, l.Book.ISBN, l.BorrowedAt.Format("2006-01-02"))
		})
		if err != nil {
			return err
		}
		loan, err = lib.ReturnLoan(picked.LoanID)
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(loan)
	}
	fmt.Printf("Book '%s' returned successfully by %s.\n", loan.Book.Title, loan.User.FullName())
	return nil
}

func runLoans(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	open := lib.OpenLoans(loanCard)
	if flagJSON {
		return printJSON(open)
	}
	if len(open) == 0 {
		fmt.Println("No current loans.")
		return nil
	}
	for _, l := range open {
		fmt.Println(formatLoan(l))
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	loans := lib.LoanHistory()
	if flagJSON {
		return printJSON(loans)
	}
	if len(loans) == 0 {
		fmt.Println("No loans found.")
		return nil
	}
	for _, l := range loans {
		fmt.Println(formatLoan(l))
		if len(l.History) == 0 {
			fmt.Println("  No history found for this loan.")
			continue
		}
		for _, entry := range l.History {
			fmt.Println("  " + entry)
		}
	}
	return nil
}

package library

import (
	"time"

	"librarium/pkg/types"
)

// LoanBook opens a loan: the book must exist and be available, the user
// must exist. On success the book becomes unavailable and the new loan is
// persisted. Order of checks matters for the error a caller sees: a
// missing book beats an unavailable one, which beats a missing user.
func (l *Library) LoanBook(isbn, card string) (types.Loan, error) {
	book, ok := l.books[isbn]
	if !ok {
		return types.Loan{}, types.ErrBookNotFound
	}
	if !book.Available {
		return types.Loan{}, types.ErrNotAvailable
	}
	user, ok := l.users[card]
	if !ok {
		return types.Loan{}, types.ErrUserNotFound
	}

	book.Available = false
	loan := types.NewLoan(*book, *user)
	l.loans = append(l.loans, loan)
	if err := l.persist(); err != nil {
		return types.Loan{}, err
	}
	return *loan, nil
}

// ReturnBook closes the open loan for the given ISBN, restoring the
// book's availability and appending the return entry to the loan's audit
// history. Fails with types.ErrLoanNotFound when no open loan matches.
func (l *Library) ReturnBook(isbn string) (types.Loan, error) {
	loan := l.openLoanFor(isbn)
	if loan == nil {
		return types.Loan{}, types.ErrLoanNotFound
	}
	return l.closeLoan(loan)
}

// ReturnLoan closes a specific open loan by its ID. Used after a
// name-scoped candidate selection.
func (l *Library) ReturnLoan(loanID string) (types.Loan, error) {
	for _, loan := range l.loans {
		if loan.LoanID == loanID {
			if !loan.Open() {
				return types.Loan{}, types.ErrAlreadyReturned
			}
			return l.closeLoan(loan)
		}
	}
	return types.Loan{}, types.ErrLoanNotFound
}

func (l *Library) closeLoan(loan *types.Loan) (types.Loan, error) {
	if err := loan.Close(time.Now().UTC()); err != nil {
		return types.Loan{}, err
	}
	// The book may have been cleared since the loan opened; availability
	// only needs restoring while it is still catalogued.
	if book, ok := l.books[loan.Book.ISBN]; ok {
		book.Available = true
	}
	if err := l.persist(); err != nil {
		return types.Loan{}, err
	}
	return *loan, nil
}

// AvailableBooksByTitle returns the available books whose title contains
// part, case-insensitively. This is the candidate set for a name-based
// loan; the caller disambiguates by index.
func (l *Library) AvailableBooksByTitle(part string) []types.Book {
	var out []types.Book
	for _, isbn := range l.bookOrder {
		book := l.books[isbn]
		if book.Available && containsFold(book.Title, part) {
			out = append(out, *book)
		}
	}
	return out
}

// OpenLoansByTitle returns the user's open loans whose book title contains
// part, case-insensitively. This is the candidate set for a name-based
// return.
func (l *Library) OpenLoansByTitle(part, card string) []types.Loan {
	var out []types.Loan
	for _, loan := range l.loans {
		if loan.Open() && loan.User.CardNumber == card && containsFold(loan.Book.Title, part) {
			out = append(out, *loan)
		}
	}
	return out
}

// OpenLoans returns all open loans for the given card number.
func (l *Library) OpenLoans(card string) []types.Loan {
	var out []types.Loan
	for _, loan := range l.loans {
		if loan.Open() && loan.User.CardNumber == card {
			out = append(out, *loan)
		}
	}
	return out
}

// LoanHistory returns every loan, open and closed, with its audit trail.
func (l *Library) LoanHistory() []types.Loan {
	return l.Loans()
}

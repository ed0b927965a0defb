package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Loan records one borrowing of a book by a user. The embedded Book and
// User are value snapshots captured at loan time; their ISBN and card
// number act as the foreign keys back into the owning collections. A loan
// is open while ReturnedAt is nil and is mutated exactly once, on return.
type Loan struct {
	LoanID     string     `json:"loanId"`
	Book       Book       `json:"book"`
	User       User       `json:"user"`
	BorrowedAt time.Time  `json:"borrowedDate"`
	ReturnedAt *time.Time `json:"returnedDate"`
	History    []string   `json:"history"`
}

// NewLoan opens a loan for the given book and user, snapshotting both.
func NewLoan(book Book, user User) *Loan {
	return &Loan{
		LoanID:     uuid.Must(uuid.NewV7()).String(),
		Book:       book,
		User:       user,
		BorrowedAt: time.Now().UTC(),
	}
}

// Open reports whether the loan has not been returned yet.
func (l *Loan) Open() bool {
	return l.ReturnedAt == nil
}

// Close marks the loan as returned at the given time and appends the
// return entry to the audit history. Returns ErrAlreadyReturned if the
// loan is already closed; the history is never truncated here.
func (l *Loan) Close(at time.Time) error {
	if l.ReturnedAt != nil {
		return ErrAlreadyReturned
	}
	if at.Before(l.BorrowedAt) {
		at = l.BorrowedAt
	}
	returned := at
	l.ReturnedAt = &returned
	l.History = append(l.History, fmt.Sprintf(
		"Returned Book: %s by %s, Returned Date: %s",
		l.Book.Title, l.User.FullName(), returned.Format(time.RFC3339)))
	return nil
}

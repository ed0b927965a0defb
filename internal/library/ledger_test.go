package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/pkg/types"
)

// loanSetup seeds a library with one book and one user.
func loanSetup(t *testing.T) *Library {
	t.Helper()
	lib, _ := openTestLibrary(t)
	_, err := lib.AddBook(hobbit())
	require.NoError(t, err)
	_, err = lib.AddUser(novak())
	require.NoError(t, err)
	return lib
}

func TestLoanReturnRoundTrip(t *testing.T) {
	lib := loanSetup(t)

	loan, err := lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)
	assert.True(t, loan.Open())
	assert.Equal(t, "12-3456", loan.User.CardNumber)

	book, err := lib.GetBook("123-4567890123")
	require.NoError(t, err)
	assert.False(t, book.Available, "loaned book becomes unavailable")

	returned, err := lib.ReturnBook("123-4567890123")
	require.NoError(t, err)
	assert.False(t, returned.Open())
	require.NotNil(t, returned.ReturnedAt)
	assert.False(t, returned.ReturnedAt.Before(returned.BorrowedAt))
	assert.Len(t, returned.History, 1, "return appends exactly one audit entry")

	book, err = lib.GetBook("123-4567890123")
	require.NoError(t, err)
	assert.True(t, book.Available, "returned book is available again")
}

func TestLoanRejections(t *testing.T) {
	lib := loanSetup(t)

	t.Run("missing book", func(t *testing.T) {
		_, err := lib.LoanBook("999-9999999999", "12-3456")
		assert.ErrorIs(t, err, types.ErrBookNotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := lib.LoanBook("123-4567890123", "99-9999")
		assert.ErrorIs(t, err, types.ErrUserNotFound)
		book, err := lib.GetBook("123-4567890123")
		require.NoError(t, err)
		assert.True(t, book.Available, "failed loan leaves availability untouched")
	})

	t.Run("second loan on loaned book", func(t *testing.T) {
		_, err := lib.LoanBook("123-4567890123", "12-3456")
		require.NoError(t, err)

		_, err = lib.LoanBook("123-4567890123", "12-3456")
		assert.ErrorIs(t, err, types.ErrNotAvailable)
		assert.ErrorIs(t, err, types.ErrConflict)

		open := 0
		for _, loan := range lib.Loans() {
			if loan.Open() && loan.Book.ISBN == "123-4567890123" {
				open++
			}
		}
		assert.Equal(t, 1, open, "at most one open loan per isbn")
	})
}

func TestReturnWithoutOpenLoan(t *testing.T) {
	lib := loanSetup(t)

	_, err := lib.ReturnBook("123-4567890123")
	assert.ErrorIs(t, err, types.ErrLoanNotFound)
}

func TestLifecycleScenario(t *testing.T) {
	// add -> loan -> second loan fails -> return, end to end.
	lib, _ := openTestLibrary(t)

	added, err := lib.AddBook(types.Book{
		Title: "Earthsea", Author: "Ursula K. Le Guin",
		ISBN: "123-4567890123", Year: 2001, Genres: []string{"Fantasy"},
	})
	require.NoError(t, err)
	assert.True(t, added.Available)

	_, err = lib.AddUser(types.User{FirstName: "Jan", LastName: "Novak", CardNumber: "12-3456"})
	require.NoError(t, err)

	_, err = lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)
	book, _ := lib.GetBook("123-4567890123")
	assert.False(t, book.Available)
	assert.Len(t, lib.OpenLoans("12-3456"), 1)

	_, err = lib.LoanBook("123-4567890123", "12-3456")
	assert.ErrorIs(t, err, types.ErrNotAvailable)

	returned, err := lib.ReturnBook("123-4567890123")
	require.NoError(t, err)
	book, _ = lib.GetBook("123-4567890123")
	assert.True(t, book.Available)
	assert.NotNil(t, returned.ReturnedAt)
	assert.Len(t, returned.History, 1)
}

func TestLoanAgainAfterReturn(t *testing.T) {
	lib := loanSetup(t)

	_, err := lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)
	_, err = lib.ReturnBook("123-4567890123")
	require.NoError(t, err)

	_, err = lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err, "a returned book can be loaned again")
	assert.Len(t, lib.Loans(), 2, "each borrowing is its own loan record")
}

func TestReturnLoanByID(t *testing.T) {
	lib := loanSetup(t)

	loan, err := lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)

	returned, err := lib.ReturnLoan(loan.LoanID)
	require.NoError(t, err)
	assert.False(t, returned.Open())

	_, err = lib.ReturnLoan(loan.LoanID)
	assert.ErrorIs(t, err, types.ErrAlreadyReturned)

	_, err = lib.ReturnLoan("no-such-loan")
	assert.ErrorIs(t, err, types.ErrLoanNotFound)
}

func TestOpenLoansScopedToUser(t *testing.T) {
	lib := loanSetup(t)
	_, err := lib.AddUser(types.User{FirstName: "Petr", LastName: "Svoboda", CardNumber: "98-7654"})
	require.NoError(t, err)

	_, err = lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)

	assert.Len(t, lib.OpenLoans("12-3456"), 1)
	assert.Empty(t, lib.OpenLoans("98-7654"))
	assert.Empty(t, lib.OpenLoans("00-0000"), "unknown card reads as no loans")
}

func TestAvailableBooksByTitle(t *testing.T) {
	lib := loanSetup(t)
	_, err := lib.AddBook(types.Book{
		Title: "The Hobbit, Annotated", Author: "Douglas A. Anderson",
		ISBN: "456-1112223334", Year: 1988, Genres: []string{"Fantasy"},
	})
	require.NoError(t, err)

	assert.Len(t, lib.AvailableBooksByTitle("hobbit"), 2)

	_, err = lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)

	candidates := lib.AvailableBooksByTitle("hobbit")
	require.Len(t, candidates, 1, "loaned copies drop out of the loan candidates")
	assert.Equal(t, "456-1112223334", candidates[0].ISBN)
}

func TestOpenLoansByTitle(t *testing.T) {
	lib := loanSetup(t)
	_, err := lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)

	assert.Len(t, lib.OpenLoansByTitle("hobbit", "12-3456"), 1)
	assert.Empty(t, lib.OpenLoansByTitle("hobbit", "98-7654"), "scoped to the borrower")
	assert.Empty(t, lib.OpenLoansByTitle("dune", "12-3456"))
}

func TestLoanHistoryListsEverything(t *testing.T) {
	lib := loanSetup(t)
	_, err := lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)
	_, err = lib.ReturnBook("123-4567890123")
	require.NoError(t, err)
	_, err = lib.LoanBook("123-4567890123", "12-3456")
	require.NoError(t, err)

	history := lib.LoanHistory()
	require.Len(t, history, 2)
	assert.False(t, history[0].Open())
	assert.True(t, history[1].Open())
}

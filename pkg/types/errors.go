package types

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the core wraps exactly one of
// these, so callers can classify with errors.Is without matching strings.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrAmbiguousSelection = errors.New("ambiguous selection")
	ErrPersistence        = errors.New("persistence failure")
)

// Validation errors.
var (
	ErrInvalidISBN       = fmt.Errorf("%w: isbn must match NNN-NNNNNNNNNN", ErrValidation)
	ErrInvalidCardNumber = fmt.Errorf("%w: card number must match NN-NNNN", ErrValidation)
	ErrInvalidYear       = fmt.Errorf("%w: year must be positive", ErrValidation)
	ErrEmptyField        = fmt.Errorf("%w: required field is empty", ErrValidation)
	ErrUnknownGenre      = fmt.Errorf("%w: genre not in vocabulary", ErrValidation)
)

// Conflict errors.
var (
	ErrDuplicateISBN       = fmt.Errorf("%w: isbn already registered", ErrConflict)
	ErrDuplicateCardNumber = fmt.Errorf("%w: card number already registered", ErrConflict)
	ErrNotAvailable        = fmt.Errorf("%w: book is on loan", ErrConflict)
	ErrOpenLoan            = fmt.Errorf("%w: an open loan references this entity", ErrConflict)
)

// Not-found errors.
var (
	ErrBookNotFound = fmt.Errorf("%w: no book with that isbn", ErrNotFound)
	ErrUserNotFound = fmt.Errorf("%w: no user with that card number", ErrNotFound)
	ErrLoanNotFound = fmt.Errorf("%w: no matching open loan", ErrNotFound)
)

// Loan state errors.
var (
	ErrAlreadyReturned = fmt.Errorf("%w: loan is already returned", ErrConflict)
)

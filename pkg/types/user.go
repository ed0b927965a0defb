package types

import "regexp"

// cardPattern is the fixed identifier format for library cards: two digits,
// a dash, four digits.
var cardPattern = regexp.MustCompile(`^\d{2}-\d{4}$`)

// User represents a registered patron, identified by library card number.
type User struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	CardNumber string `json:"libraryCardNumber"`
}

// ValidCardNumber reports whether s matches the NN-NNNN format.
func ValidCardNumber(s string) bool {
	return cardPattern.MatchString(s)
}

// Validate checks the user's fields without consulting any collection.
func (u *User) Validate() error {
	if !ValidCardNumber(u.CardNumber) {
		return ErrInvalidCardNumber
	}
	if u.FirstName == "" || u.LastName == "" {
		return ErrEmptyField
	}
	return nil
}

// FullName returns the display name used in loan audit entries.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

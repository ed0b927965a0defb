package library

import "librarium/pkg/types"

// UserChanges is a partial update for a user. Blank fields keep the
// current value.
type UserChanges struct {
	FirstName  string
	LastName   string
	CardNumber string
}

// AddUser validates and inserts a new user. Fails with a validation error
// on a malformed card number or empty names and with
// types.ErrDuplicateCardNumber if the card is taken.
func (l *Library) AddUser(user types.User) (types.User, error) {
	if err := user.Validate(); err != nil {
		return types.User{}, err
	}
	if _, exists := l.users[user.CardNumber]; exists {
		return types.User{}, types.ErrDuplicateCardNumber
	}

	l.users[user.CardNumber] = &user
	l.userOrder = append(l.userOrder, user.CardNumber)
	if err := l.persist(); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// GetUser returns a copy of the user with the given card number.
func (l *Library) GetUser(card string) (types.User, error) {
	user, ok := l.users[card]
	if !ok {
		return types.User{}, types.ErrUserNotFound
	}
	return *user, nil
}

// RemoveUser deletes a user from the roster. Removal is refused with
// types.ErrOpenLoan while the user has an open loan.
func (l *Library) RemoveUser(card string) error {
	if _, ok := l.users[card]; !ok {
		return types.ErrUserNotFound
	}
	for _, loan := range l.loans {
		if loan.Open() && loan.User.CardNumber == card {
			return types.ErrOpenLoan
		}
	}

	delete(l.users, card)
	l.userOrder = removeKey(l.userOrder, card)
	return l.persist()
}

// EditUser applies a partial update to the user with the given card number.
// Changing the card number re-keys the roster; the new card must be
// well-formed and unclaimed, and the change is refused while an open loan
// references the old card (the loan's foreign key would dangle).
func (l *Library) EditUser(card string, changes UserChanges) (types.User, error) {
	user, ok := l.users[card]
	if !ok {
		return types.User{}, types.ErrUserNotFound
	}

	updated := *user
	if changes.FirstName != "" {
		updated.FirstName = changes.FirstName
	}
	if changes.LastName != "" {
		updated.LastName = changes.LastName
	}

	rekey := changes.CardNumber != "" && changes.CardNumber != card
	if rekey {
		if !types.ValidCardNumber(changes.CardNumber) {
			return types.User{}, types.ErrInvalidCardNumber
		}
		if _, taken := l.users[changes.CardNumber]; taken {
			return types.User{}, types.ErrDuplicateCardNumber
		}
		for _, loan := range l.loans {
			if loan.Open() && loan.User.CardNumber == card {
				return types.User{}, types.ErrOpenLoan
			}
		}
		updated.CardNumber = changes.CardNumber
	}

	if rekey {
		delete(l.users, card)
		l.users[updated.CardNumber] = &updated
		for i, k := range l.userOrder {
			if k == card {
				l.userOrder[i] = updated.CardNumber
			}
		}
	} else {
		*user = updated
	}

	if err := l.persist(); err != nil {
		return types.User{}, err
	}
	return updated, nil
}

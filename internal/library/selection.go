package library

import (
	"fmt"
	"strconv"

	"librarium/pkg/types"
)

// MaxInvalidSelections is the retry budget for numeric disambiguation:
// after this many invalid inputs the operation aborts without mutating
// anything. The prompt loop itself lives in the presentation layer.
const MaxInvalidSelections = 2

// Pick resolves a 1-based numeric selection input against a candidate
// list. It is a pure function: non-numeric or out-of-range input yields a
// types.ErrAmbiguousSelection error and no other effect.
func Pick[T any](candidates []T, input string) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, types.ErrNotFound
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return zero, fmt.Errorf("%w: %q is not a number", types.ErrAmbiguousSelection, input)
	}
	if n < 1 || n > len(candidates) {
		return zero, fmt.Errorf("%w: %d is out of range 1-%d", types.ErrAmbiguousSelection, n, len(candidates))
	}
	return candidates[n-1], nil
}

// PickFrom resolves a selection against a sequence of inputs, consuming
// them until one resolves or the invalid-attempt budget is exhausted.
// A single candidate resolves immediately without consuming input.
func PickFrom[T any](candidates []T, inputs []string, maxInvalid int) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, types.ErrNotFound
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	invalid := 0
	for _, input := range inputs {
		picked, err := Pick(candidates, input)
		if err == nil {
			return picked, nil
		}
		invalid++
		if invalid >= maxInvalid {
			break
		}
	}
	return zero, fmt.Errorf("%w: no valid selection within %d attempts", types.ErrAmbiguousSelection, maxInvalid)
}

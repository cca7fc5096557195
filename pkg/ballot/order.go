package ballot

import (
	"slices"
	"strings"

	"github.com/matzehuels/coalition/pkg/errors"
)

// Order is an elimination order over all candidates. Position 0 is
// eliminated first; the last position is the intended winner.
type Order []Candidate

// Validate checks that o is a permutation of [1, candidates].
func (o Order) Validate(candidates int) error {
	if len(o) != candidates {
		return errors.New(errors.ErrCodeInvalidOrder, "order has %d candidates, want %d", len(o), candidates)
	}
	seen := make([]bool, candidates+1)
	for _, c := range o {
		if !c.Valid(candidates) {
			return errors.New(errors.ErrCodeInvalidOrder, "candidate %d outside [1, %d]", c, candidates)
		}
		if seen[c] {
			return errors.New(errors.ErrCodeInvalidOrder, "candidate %d appears twice", c)
		}
		seen[c] = true
	}
	return nil
}

// Winner returns the intended winner, the last candidate of the order.
func (o Order) Winner() Candidate {
	if len(o) == 0 {
		return 0
	}
	return o[len(o)-1]
}

// Reversed returns the order back to front: the intended winner first.
// This is the insincere ranking a coalition casts.
func (o Order) Reversed() Order {
	out := slices.Clone(o)
	slices.Reverse(out)
	return out
}

// Ballot converts the order into a strict ballot.
func (o Order) Ballot() Ballot {
	return StrictBallot(o...)
}

// String renders the order as space-separated ids, e.g. "3 1 2".
func (o Order) String() string {
	parts := make([]string, len(o))
	for i, c := range o {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

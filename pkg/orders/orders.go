package orders

import (
	"math/rand/v2"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/errors"
	"github.com/matzehuels/coalition/pkg/perm"
)

// Set is a read-only collection of elimination orders.
type Set interface {
	// Candidates returns the number of candidates each order ranks.
	Candidates() int

	// Len returns the number of orders, or 0 when the set is too large to
	// count and can only be sampled.
	Len() int

	// At returns the order at index i in [0, Len()).
	At(i int) ballot.Order

	// Sample draws one order uniformly at random.
	Sample(rng *rand.Rand) ballot.Order
}

// Full is the set of all permutations of [1, C].
type Full struct {
	candidates int
}

// NewFull returns the full order set over c candidates.
func NewFull(c int) (*Full, error) {
	if err := errors.ValidateCandidateCount(c); err != nil {
		return nil, err
	}
	return &Full{candidates: c}, nil
}

func (f *Full) Candidates() int { return f.candidates }

// Len returns C!, or 0 when C! overflows.
func (f *Full) Len() int {
	if f.candidates > perm.MaxFactorial {
		return 0
	}
	return perm.Factorial(f.candidates)
}

// At returns the order of lexicographic rank i.
func (f *Full) At(i int) ballot.Order {
	return fromIndices(perm.Unrank(f.candidates, i))
}

func (f *Full) Sample(rng *rand.Rand) ballot.Order {
	if n := f.Len(); n > 0 {
		return f.At(rng.IntN(n))
	}
	return fromIndices(perm.Random(f.candidates, rng))
}

// List is a materialized order set.
type List struct {
	candidates int
	orders     []ballot.Order
}

// NewList wraps orders, validating each against c candidates.
func NewList(c int, orders []ballot.Order) (*List, error) {
	if err := errors.ValidateCandidateCount(c); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "order list is empty")
	}
	for i, o := range orders {
		if err := o.Validate(c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidOrder, err, "order %d", i+1)
		}
	}
	return &List{candidates: c, orders: orders}, nil
}

func (l *List) Candidates() int           { return l.candidates }
func (l *List) Len() int                  { return len(l.orders) }
func (l *List) At(i int) ballot.Order     { return l.orders[i] }
func (l *List) Orders() []ballot.Order    { return l.orders }
func (l *List) Sample(rng *rand.Rand) ballot.Order {
	return l.orders[rng.IntN(len(l.orders))]
}

// MaxMaterialized caps the size of a [List] built by [Generate]. 10! fits;
// the full 11! set must be addressed lazily through [Full].
const MaxMaterialized = 1 << 22

// Generate materializes up to limit orders over c candidates.
//
// When limit is non-positive or covers all C! orders, the complete set is
// produced with Heap's algorithm. Otherwise limit distinct orders are drawn
// uniformly from a random stream seeded with seed, so the same arguments
// always yield the same list.
func Generate(c, limit int, seed uint64) (*List, error) {
	if err := errors.ValidateCandidateCount(c); err != nil {
		return nil, err
	}
	total := 0
	if c <= perm.MaxFactorial {
		total = perm.Factorial(c)
	}
	if limit <= 0 {
		if total == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"cannot materialize all orders of %d candidates; set a limit", c)
		}
		limit = total
	}
	if total > 0 && limit > total {
		limit = total
	}
	if limit > MaxMaterialized {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"refusing to materialize %d orders (max %d); lower the limit", limit, MaxMaterialized)
	}
	if limit == total {
		perms := perm.Generate(c, 0)
		out := make([]ballot.Order, len(perms))
		for i, p := range perms {
			out[i] = fromIndices(p)
		}
		return &List{candidates: c, orders: out}, nil
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	seen := make(map[string]struct{}, limit)
	out := make([]ballot.Order, 0, limit)
	for len(out) < limit {
		p := perm.Random(c, rng)
		key := string(encodeIndices(p))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, fromIndices(p))
	}
	return &List{candidates: c, orders: out}, nil
}

func fromIndices(p []int) ballot.Order {
	o := make(ballot.Order, len(p))
	for i, v := range p {
		o[i] = ballot.Candidate(v + 1)
	}
	return o
}

func encodeIndices(p []int) []byte {
	b := make([]byte, len(p))
	for i, v := range p {
		b[i] = byte(v)
	}
	return b
}

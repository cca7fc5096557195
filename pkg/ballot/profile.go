package ballot

import (
	"math/rand/v2"

	"github.com/matzehuels/coalition/pkg/errors"
)

// Profile is the ordered list of ballots cast in an election.
type Profile []Ballot

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	for i, b := range p {
		out[i] = b.Clone()
	}
	return out
}

// Usable reports whether at least one ballot is non-empty.
func (p Profile) Usable() bool {
	for _, b := range p {
		if !b.Empty() {
			return true
		}
	}
	return false
}

// Validate checks every ballot against the candidate range.
func (p Profile) Validate(candidates int) error {
	for i, b := range p {
		if err := b.Validate(candidates); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "ballot %d", i)
		}
	}
	return nil
}

// Equal reports whether two profiles hold equal ballots at every index.
func (p Profile) Equal(other Profile) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Diff counts the indices at which p and other hold different ballots.
// Indices present in only one profile count as different.
func (p Profile) Diff(other Profile) int {
	n := max(len(p), len(other))
	changed := 0
	for i := range n {
		if i >= len(p) || i >= len(other) || !p[i].Equal(other[i]) {
			changed++
		}
	}
	return changed
}

// Eliminate returns a new profile with every token naming c removed.
// Ballots that never mention c are copied unchanged.
func Eliminate(c Candidate, p Profile) Profile {
	out := make(Profile, len(p))
	for i, b := range p {
		if b.Contains(c) {
			out[i] = b.Without(c)
		} else {
			out[i] = b.Clone()
		}
	}
	return out
}

// Marking records, per profile index, whether a ballot is committed (true)
// or still free for the coalition to rewrite (false).
type Marking []bool

// Free returns the free indices in ascending order.
func (m Marking) Free() []int {
	var out []int
	for i, committed := range m {
		if !committed {
			out = append(out, i)
		}
	}
	return out
}

// NextFree returns the lowest free index, or -1 if every ballot is committed.
func (m Marking) NextFree() int {
	for i, committed := range m {
		if !committed {
			return i
		}
	}
	return -1
}

// CountFree returns the number of free indices.
func (m Marking) CountFree() int {
	n := 0
	for _, committed := range m {
		if !committed {
			n++
		}
	}
	return n
}

// EmptyRandomSubset picks k distinct ballot indices uniformly at random
// without replacement and empties them. It returns the new profile and a
// marking that is false exactly at the chosen indices.
//
// p is not modified. k must lie in [0, len(p)].
func EmptyRandomSubset(p Profile, k int, rng *rand.Rand) (Profile, Marking, error) {
	if err := errors.ValidateCoalitionSize(k, len(p)); err != nil {
		return nil, nil, err
	}

	out := p.Clone()
	marks := make(Marking, len(p))
	for i := range marks {
		marks[i] = true
	}
	for _, idx := range sample(len(p), k, rng) {
		out[idx] = Ballot{}
		marks[idx] = false
	}
	return out, marks, nil
}

// sample draws k distinct values from [0, n) with a partial Fisher-Yates
// shuffle.
func sample(n, k int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := range k {
		j := i + rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

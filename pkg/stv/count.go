package stv

import (
	"math"

	"github.com/matzehuels/coalition/pkg/ballot"
)

// TieShare is the support a tie-marked first preference contributes.
const TieShare = 0.5

// Count returns the first-preference support of c in p.
func Count(c ballot.Candidate, p ballot.Profile) float64 {
	var votes float64
	for _, b := range p {
		if tok, ok := b.First(); ok && tok.Candidate == c {
			votes += weight(tok)
		}
	}
	return votes
}

func weight(tok ballot.Token) float64 {
	if tok.Tied() {
		return TieShare
	}
	return 1
}

// Tally holds per-candidate vote counts, indexed by candidate id - 1.
type Tally []float64

// NewTally returns a zeroed tally for candidates [1, n].
func NewTally(n int) Tally { return make(Tally, n) }

// TallyAll counts first preferences for every candidate in one pass.
// Tokens outside [1, len] are ignored.
func TallyAll(p ballot.Profile, candidates int) Tally {
	t := NewTally(candidates)
	for _, b := range p {
		tok, ok := b.First()
		if !ok || !tok.Candidate.Valid(candidates) {
			continue
		}
		t[tok.Candidate-1] += weight(tok)
	}
	return t
}

// Get returns the count for c.
func (t Tally) Get(c ballot.Candidate) float64 { return t[c-1] }

// Add increases the count for c by v.
func (t Tally) Add(c ballot.Candidate, v float64) { t[c-1] += v }

// Pin excludes c from minimum selection.
func (t Tally) Pin(c ballot.Candidate) { t[c-1] = math.Inf(1) }

// Pinned reports whether c has been excluded.
func (t Tally) Pinned(c ballot.Candidate) bool { return math.IsInf(t[c-1], 1) }

// Min returns the candidate with the lowest count. Ties go to the lowest
// id. Min returns 0 for an empty tally.
func (t Tally) Min() ballot.Candidate {
	best := -1
	for i, v := range t {
		if best < 0 || v < t[best] {
			best = i
		}
	}
	return ballot.Candidate(best + 1)
}

package stv

import (
	"slices"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/errors"
)

// Round records one elimination step.
type Round struct {
	Tally      Tally            // counts before the elimination; pinned entries are +Inf
	Eliminated ballot.Candidate // the candidate removed in this round
}

// Result is the full record of an STV tabulation.
type Result struct {
	Candidates int
	Rounds     []Round
	Winner     ballot.Candidate
}

// Eliminations returns the eliminated candidates in order.
func (r *Result) Eliminations() ballot.Order {
	out := make(ballot.Order, len(r.Rounds))
	for i, rd := range r.Rounds {
		out[i] = rd.Eliminated
	}
	return out
}

// Order returns the realized elimination order with the winner last.
func (r *Result) Order() ballot.Order {
	return append(r.Eliminations(), r.Winner)
}

// Resolve returns the STV winner of p over candidates [1, candidates].
// p is not modified.
func Resolve(p ballot.Profile, candidates int) (ballot.Candidate, error) {
	res, err := Trace(p, candidates)
	if err != nil {
		return 0, err
	}
	return res.Winner, nil
}

// Trace runs STV on p and records every round. It performs exactly
// candidates-1 eliminations.
func Trace(p ballot.Profile, candidates int) (*Result, error) {
	if err := errors.ValidateCandidateCount(candidates); err != nil {
		return nil, err
	}
	if !p.Usable() {
		return nil, errors.New(errors.ErrCodeEmptyProfile, "profile of %d ballots has no usable ballot", len(p))
	}

	working := p.Clone()
	removed := make([]ballot.Candidate, 0, candidates-1)
	res := &Result{Candidates: candidates, Rounds: make([]Round, 0, candidates-1)}

	for len(removed) < candidates-1 {
		tally := TallyAll(working, candidates)
		for _, lost := range removed {
			tally.Pin(lost)
		}

		loser := tally.Min()
		res.Rounds = append(res.Rounds, Round{Tally: tally, Eliminated: loser})
		working = ballot.Eliminate(loser, working)
		removed = append(removed, loser)
	}

	for c := ballot.Candidate(1); int(c) <= candidates; c++ {
		if !slices.Contains(removed, c) {
			res.Winner = c
			break
		}
	}
	return res, nil
}

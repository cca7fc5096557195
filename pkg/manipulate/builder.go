package manipulate

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/errors"
	"github.com/matzehuels/coalition/pkg/stv"
)

// Builder runs the coalition heuristic. A Builder is not safe for concurrent
// use because it draws from Rand; give each goroutine its own.
type Builder struct {
	Candidates int
	Rand       *rand.Rand
	Logger     *log.Logger
}

// Result describes one attempt.
type Result struct {
	// Feasible is false when the free ballots ran out.
	Feasible bool
	// Profile is the original profile with every coalition ballot replaced
	// by the insincere ranking. Nil when infeasible.
	Profile ballot.Profile
	// Coalition lists the profile indices the coalition controls.
	Coalition []int
	// Boosts counts the free ballots rewritten during planning.
	Boosts int
	// Round is the 1-based round in which an infeasible attempt gave up.
	Round int
}

// New returns a builder for c candidates drawing from rng.
func New(c int, rng *rand.Rand, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{Candidates: c, Rand: rng, Logger: logger}
}

// Build plans a k-ballot coalition realizing order against p.
//
// p is never modified. An infeasible order is reported through
// Result.Feasible, not as an error; errors signal invalid input (bad order,
// k outside [0, len(p)]).
func (b *Builder) Build(order ballot.Order, p ballot.Profile, k int) (Result, error) {
	if err := order.Validate(b.Candidates); err != nil {
		return Result{}, err
	}
	if b.Rand == nil {
		return Result{}, errors.New(errors.ErrCodeInternal, "builder has no random source")
	}

	working, marks, err := ballot.EmptyRandomSubset(p, k, b.Rand)
	if err != nil {
		return Result{}, err
	}
	coalition := marks.Free()
	boosts := 0

	for i := 0; i < len(order)-2; i++ {
		loser := order[i]
		tally := stv.TallyAll(working, b.Candidates)
		for _, later := range order[i+1:] {
			for tally.Get(later) < tally.Get(loser) {
				idx := marks.NextFree()
				if idx < 0 {
					if b.Logger != nil {
						b.Logger.Debug("coalition exhausted",
							"round", i+1, "eliminate", loser, "short", later,
							"gap", tally.Get(loser)-tally.Get(later))
					}
					return Result{Coalition: coalition, Boosts: boosts, Round: i + 1}, nil
				}
				working[idx].Promote(later)
				marks[idx] = true
				tally.Add(later, 1)
				boosts++
			}
		}
		working = ballot.Eliminate(loser, working)
	}

	out := p.Clone()
	ranking := order.Reversed().Ballot()
	for _, idx := range coalition {
		out[idx] = ranking.Clone()
	}
	return Result{
		Feasible:  true,
		Profile:   out,
		Coalition: coalition,
		Boosts:    boosts,
	}, nil
}

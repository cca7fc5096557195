package search

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/errors"
	"github.com/matzehuels/coalition/pkg/manipulate"
	"github.com/matzehuels/coalition/pkg/observability"
	"github.com/matzehuels/coalition/pkg/orders"
	"github.com/matzehuels/coalition/pkg/results"
	"github.com/matzehuels/coalition/pkg/stv"
)

// Config configures a [Searcher].
type Config struct {
	Profile    ballot.Profile
	Candidates int
	Orders     orders.Set
	Seed       uint64
	// Workers is the number of concurrent attempt runners. Values below 2
	// run sequentially.
	Workers int
	// Sink receives every successful manipulation. Nil discards them.
	Sink   results.Sink
	Logger *log.Logger
}

// Searcher runs manipulation attempts against one profile.
type Searcher struct {
	profile    ballot.Profile
	candidates int
	orders     orders.Set
	seed       uint64
	workers    int
	sink       results.Sink
	logger     *log.Logger

	baseline *stv.Result
	rng      *rand.Rand
}

// Outcome reports one [Searcher.Search] call.
type Outcome struct {
	CoalitionSize int
	Attempts      int // attempts started
	Infeasible    int // attempts whose order could not be realized
	Found         bool

	// Set when Found.
	Attempt   int
	NewWinner ballot.Candidate
	Order     ballot.Order
	Coalition []int
	Profile   ballot.Profile
	RecordID  string
}

// New validates cfg and resolves the sincere winner once.
func New(cfg Config) (*Searcher, error) {
	if cfg.Orders == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no order set")
	}
	if cfg.Orders.Candidates() != cfg.Candidates {
		return nil, errors.New(errors.ErrCodeInvalidOrder,
			"order set ranks %d candidates, election has %d", cfg.Orders.Candidates(), cfg.Candidates)
	}
	if err := cfg.Profile.Validate(cfg.Candidates); err != nil {
		return nil, err
	}
	baseline, err := stv.Trace(cfg.Profile, cfg.Candidates)
	if err != nil {
		return nil, err
	}
	if cfg.Sink == nil {
		cfg.Sink = results.NullSink{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Searcher{
		profile:    cfg.Profile.Clone(),
		candidates: cfg.Candidates,
		orders:     cfg.Orders,
		seed:       cfg.Seed,
		workers:    max(cfg.Workers, 1),
		sink:       cfg.Sink,
		logger:     cfg.Logger,
		baseline:   baseline,
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5eed)),
	}, nil
}

// Baseline returns the sincere STV tabulation.
func (s *Searcher) Baseline() *stv.Result { return s.baseline }

// Winner returns the sincere winner.
func (s *Searcher) Winner() ballot.Candidate { return s.baseline.Winner }

// ProfileSize returns the number of voters.
func (s *Searcher) ProfileSize() int { return len(s.profile) }

// Search runs up to attempts manipulation attempts with a coalition of the
// given size. Exhausting the attempts is not an error; Outcome.Found is
// false. Errors are structural (invalid size) or come from ctx or the sink.
func (s *Searcher) Search(ctx context.Context, size, attempts int) (Outcome, error) {
	if err := errors.ValidateCoalitionSize(size, len(s.profile)); err != nil {
		return Outcome{}, err
	}
	hooks := observability.Search()
	hooks.OnSearchStart(ctx, size, attempts)
	start := time.Now()

	var (
		out Outcome
		err error
	)
	if s.workers > 1 {
		out, err = s.searchParallel(ctx, size, attempts)
	} else {
		out, err = s.searchSequential(ctx, size, attempts)
	}
	out.CoalitionSize = size

	if err == nil && out.Found {
		err = s.persist(ctx, &out)
	}
	hooks.OnSearchComplete(ctx, size, out.Found, time.Since(start), err)
	return out, err
}

func (s *Searcher) searchSequential(ctx context.Context, size, attempts int) (Outcome, error) {
	var out Outcome
	b := manipulate.New(s.candidates, s.rng, s.logger)
	for n := 1; n <= attempts; n++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out.Attempts++
		hit, err := s.attempt(ctx, b, s.rng, size, n)
		if err != nil {
			return out, err
		}
		if !hit.feasible {
			out.Infeasible++
			continue
		}
		if hit.winner != s.baseline.Winner {
			out.found(hit)
			return out, nil
		}
	}
	return out, nil
}

func (s *Searcher) searchParallel(ctx context.Context, size, attempts int) (Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var (
		next       atomic.Int64
		started    atomic.Int64
		infeasible atomic.Int64
		mu         sync.Mutex
		winner     *attemptResult
	)
	for w := range s.workers {
		rng := rand.New(rand.NewPCG(s.seed, uint64(size)<<16|uint64(w)))
		b := manipulate.New(s.candidates, rng, s.logger)
		g.Go(func() error {
			for {
				if gctx.Err() != nil {
					return nil
				}
				n := int(next.Add(1))
				if n > attempts {
					return nil
				}
				started.Add(1)
				hit, err := s.attempt(gctx, b, rng, size, n)
				if err != nil {
					return err
				}
				if !hit.feasible {
					infeasible.Add(1)
					continue
				}
				if hit.winner == s.baseline.Winner {
					continue
				}
				mu.Lock()
				if winner == nil || hit.attempt < winner.attempt {
					winner = hit
				}
				mu.Unlock()
				cancel()
				return nil
			}
		})
	}
	err := g.Wait()

	out := Outcome{Attempts: int(started.Load()), Infeasible: int(infeasible.Load())}
	if winner != nil {
		out.found(winner)
		return out, nil
	}
	if err != nil {
		return out, err
	}
	// Workers exit quietly on cancellation; report it if it came from outside.
	return out, context.Cause(ctx)
}

type attemptResult struct {
	attempt  int
	feasible bool
	winner   ballot.Candidate
	order    ballot.Order
	manip    manipulate.Result
}

// attempt runs one draw. The result is nil only alongside an error.
func (s *Searcher) attempt(ctx context.Context, b *manipulate.Builder, rng *rand.Rand, size, n int) (*attemptResult, error) {
	hooks := observability.Search()
	order := s.orders.Sample(rng)
	res, err := b.Build(order, s.profile, size)
	if err != nil {
		return nil, err
	}
	if !res.Feasible {
		hooks.OnAttempt(ctx, size, observability.OutcomeInfeasible)
		s.logger.Debug("attempt infeasible", "size", size, "attempt", n, "order", order, "round", res.Round)
		return &attemptResult{attempt: n, order: order}, nil
	}
	winner, err := stv.Resolve(res.Profile, s.candidates)
	if err != nil {
		return nil, err
	}
	outcome := observability.OutcomeUnchanged
	if winner != s.baseline.Winner {
		outcome = observability.OutcomeChanged
	}
	hooks.OnAttempt(ctx, size, outcome)
	s.logger.Debug("attempt resolved", "size", size, "attempt", n, "winner", winner, "boosts", res.Boosts)
	return &attemptResult{attempt: n, feasible: true, winner: winner, order: order, manip: res}, nil
}

func (o *Outcome) found(hit *attemptResult) {
	o.Found = true
	o.Attempt = hit.attempt
	o.NewWinner = hit.winner
	o.Order = hit.order
	o.Coalition = hit.manip.Coalition
	o.Profile = hit.manip.Profile
}

func (s *Searcher) persist(ctx context.Context, out *Outcome) error {
	rec := results.NewRecord(s.profile, out.Profile)
	rec.Candidates = s.candidates
	rec.CoalitionSize = out.CoalitionSize
	rec.Attempt = out.Attempt
	rec.OriginalWinner = s.baseline.Winner
	rec.NewWinner = out.NewWinner
	rec.Order = out.Order
	rec.Coalition = out.Coalition
	if err := s.sink.Save(ctx, rec); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save manipulation")
	}
	out.RecordID = rec.ID
	return nil
}

package search

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/errors"
)

// StopReason says why [Driver.Run] returned.
type StopReason string

const (
	StopFound    StopReason = "found"
	StopMaxSize  StopReason = "max_size"
	StopDeadline StopReason = "deadline"
	StopCanceled StopReason = "canceled"
)

// Driver escalates the coalition size until a manipulation is found.
type Driver struct {
	Searcher *Searcher
	// InitialSize is the first coalition size tried.
	InitialSize int
	// MaxSize bounds the coalition size. Zero means the profile size.
	MaxSize int
	// Attempts is the number of attempts per size.
	Attempts int
	// MaxDuration bounds the whole run. Zero means no limit.
	MaxDuration time.Duration
	Logger      *log.Logger
}

// Report summarizes a run.
type Report struct {
	OriginalWinner ballot.Candidate
	Found          bool
	Reason         StopReason
	// Outcome is the successful search, or the last one when nothing was found.
	Outcome Outcome
	Sizes   []Outcome
	Elapsed time.Duration
}

// TotalAttempts sums attempts over all sizes.
func (r *Report) TotalAttempts() int {
	n := 0
	for _, o := range r.Sizes {
		n += o.Attempts
	}
	return n
}

// Run searches sizes InitialSize, InitialSize+1, ... up to MaxSize.
//
// Hitting MaxSize or MaxDuration without success returns a report with
// Found false and no error. Structural errors end the run immediately; a
// canceled ctx returns the partial report together with the context error.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	if d.Searcher == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "driver has no searcher")
	}
	if d.Attempts < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "attempts per size must be positive, got %d", d.Attempts)
	}
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	n := d.Searcher.ProfileSize()
	maxSize := d.MaxSize
	if maxSize <= 0 || maxSize > n {
		maxSize = n
	}
	if err := errors.ValidateCoalitionSize(d.InitialSize, n); err != nil {
		return nil, err
	}
	if d.InitialSize > maxSize {
		return nil, errors.New(errors.ErrCodeInvalidCoalitionSize,
			"initial coalition size %d exceeds maximum %d", d.InitialSize, maxSize)
	}

	runCtx := ctx
	if d.MaxDuration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.MaxDuration)
		defer cancel()
	}

	start := time.Now()
	report := &Report{OriginalWinner: d.Searcher.Winner(), Reason: StopMaxSize}
	defer func() { report.Elapsed = time.Since(start) }()

	for size := d.InitialSize; size <= maxSize; size++ {
		if expired(runCtx) {
			logger.Warn("time budget exhausted", "size", size, "budget", d.MaxDuration)
			report.Reason = StopDeadline
			return report, nil
		}
		logger.Info("testing coalition size", "size", size, "attempts", d.Attempts)
		out, err := d.Searcher.Search(runCtx, size, d.Attempts)
		report.Sizes = append(report.Sizes, out)
		report.Outcome = out

		switch {
		case err == nil:
		case ctx.Err() != nil:
			report.Reason = StopCanceled
			return report, ctx.Err()
		case stderrors.Is(err, context.DeadlineExceeded):
			logger.Warn("time budget exhausted", "size", size, "budget", d.MaxDuration)
			report.Reason = StopDeadline
			return report, nil
		default:
			if errors.Structural(err) {
				logger.Error("search aborted", "size", size, "error", err)
			}
			return report, err
		}

		if out.Found {
			logger.Info("manipulation found", "size", size, "attempt", out.Attempt,
				"winner", report.OriginalWinner, "new_winner", out.NewWinner)
			report.Found = true
			report.Reason = StopFound
			return report, nil
		}
		logger.Debug("no manipulation", "size", size, "infeasible", out.Infeasible)
	}
	return report, nil
}

func expired(ctx context.Context) bool {
	dl, ok := ctx.Deadline()
	return ok && !time.Now().Before(dl)
}

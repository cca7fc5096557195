package search

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/matzehuels/coalition/pkg/errors"
)

func TestDriverFindsManipulation(t *testing.T) {
	d := &Driver{
		Searcher:    newSearcher(t, scenario(), 5, 1, nil),
		InitialSize: 0,
		Attempts:    40,
	}
	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !report.Found || report.Reason != StopFound {
		t.Fatalf("Run() = found %v reason %s, want found", report.Found, report.Reason)
	}
	if report.OriginalWinner != 1 {
		t.Errorf("OriginalWinner = %d, want 1", report.OriginalWinner)
	}
	size := report.Outcome.CoalitionSize
	if size < 1 || size > 6 {
		t.Errorf("coalition size = %d, want within [1, 6]", size)
	}
	if len(report.Sizes) != size+1 {
		t.Errorf("len(Sizes) = %d, want %d", len(report.Sizes), size+1)
	}
	for i, o := range report.Sizes[:len(report.Sizes)-1] {
		if o.Found {
			t.Errorf("Sizes[%d] found a manipulation before the last size", i)
		}
		if o.CoalitionSize != i {
			t.Errorf("Sizes[%d].CoalitionSize = %d, want %d", i, o.CoalitionSize, i)
		}
	}
	if report.TotalAttempts() < len(report.Sizes) {
		t.Errorf("TotalAttempts() = %d, want at least one per size", report.TotalAttempts())
	}
}

func TestDriverStopsAtMaxSize(t *testing.T) {
	d := &Driver{
		Searcher:    newSearcher(t, unanimous(5), 1, 1, nil),
		InitialSize: 0,
		MaxSize:     2,
		Attempts:    10,
	}
	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Found {
		t.Error("two voters cannot overturn a 5-0 election")
	}
	if report.Reason != StopMaxSize {
		t.Errorf("Reason = %s, want %s", report.Reason, StopMaxSize)
	}
	if len(report.Sizes) != 3 {
		t.Errorf("len(Sizes) = %d, want 3", len(report.Sizes))
	}
}

func TestDriverDeadline(t *testing.T) {
	d := &Driver{
		Searcher:    newSearcher(t, unanimous(5), 1, 1, nil),
		InitialSize: 1,
		Attempts:    10,
		MaxDuration: time.Nanosecond,
	}
	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, want nil on deadline", err)
	}
	if report.Reason != StopDeadline {
		t.Errorf("Reason = %s, want %s", report.Reason, StopDeadline)
	}
}

func TestDriverCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &Driver{Searcher: newSearcher(t, unanimous(5), 1, 1, nil), InitialSize: 1, Attempts: 10}
	report, err := d.Run(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if report == nil || report.Reason != StopCanceled {
		t.Errorf("report = %+v, want reason %s", report, StopCanceled)
	}
}

func TestDriverValidation(t *testing.T) {
	s := newSearcher(t, scenario(), 1, 1, nil)
	tests := []struct {
		name string
		d    Driver
		code errors.Code
	}{
		{"no searcher", Driver{Attempts: 1}, errors.ErrCodeInvalidInput},
		{"no attempts", Driver{Searcher: s}, errors.ErrCodeInvalidConfig},
		{"initial beyond profile", Driver{Searcher: s, InitialSize: 55, Attempts: 1}, errors.ErrCodeInvalidCoalitionSize},
		{"initial beyond max", Driver{Searcher: s, InitialSize: 4, MaxSize: 3, Attempts: 1}, errors.ErrCodeInvalidCoalitionSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.d.Run(context.Background())
			if !errors.Is(err, tt.code) {
				t.Errorf("Run() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

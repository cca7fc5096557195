// Package results persists successful manipulations.
//
// A [Record] captures one found manipulation: the coalition size, the
// winners before and after, the order the coalition cast and both
// profiles. A [Sink] stores records; three backends exist:
//
//   - [FileSink] writes original.txt and manipulated.txt in the profile
//     text format of package io, plus a record.json summary
//   - [SQLiteSink] appends records to a local SQLite database
//   - [MongoSink] inserts records into a MongoDB collection
package results

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/coalition/pkg/ballot"
)

// Record is one successful manipulation.
type Record struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	Candidates     int              `json:"candidates"`
	CoalitionSize  int              `json:"coalition_size"`
	Attempt        int              `json:"attempt"`
	OriginalWinner ballot.Candidate `json:"original_winner"`
	NewWinner      ballot.Candidate `json:"new_winner"`
	Order          ballot.Order     `json:"order"`
	Coalition      []int            `json:"coalition"`
	Changed        int              `json:"changed"`

	Original    ballot.Profile `json:"-"`
	Manipulated ballot.Profile `json:"-"`
}

// NewRecord stamps a record with a fresh id and the current time and
// computes the number of changed ballots.
func NewRecord(original, manipulated ballot.Profile) Record {
	return Record{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Changed:     original.Diff(manipulated),
		Original:    original,
		Manipulated: manipulated,
	}
}

// Sink stores records.
type Sink interface {
	Save(ctx context.Context, rec Record) error
	Close() error
}

// NullSink discards every record.
type NullSink struct{}

func (NullSink) Save(context.Context, Record) error { return nil }
func (NullSink) Close() error                       { return nil }

// profileLines renders a profile as its text lines for backends that store
// ballots as string arrays.
func profileLines(p ballot.Profile) []string {
	out := make([]string, len(p))
	for i, b := range p {
		out[i] = b.String()
	}
	return out
}

// Package pkg provides the libraries behind coalition, a search for
// strategic manipulations of Single Transferable Vote elections.
//
// # Overview
//
// Given a profile of ranked ballots, coalition looks for a small group of
// voters who, by all casting the same insincere ranking, change the STV
// winner. The search is heuristic: it picks random elimination orders and
// tries to force each one with as few rewritten ballots as possible.
//
// The typical data flow:
//
//	Ballot file (count: ranking)
//	         ↓
//	    [io] package (parse and replicate ballots)
//	         ↓
//	    [stv] package (sincere winner)
//	         ↓
//	    [search] package (coalition sizes × attempts)
//	         ↓
//	    [manipulate] package (force one elimination order)
//	         ↓
//	    [results] package (files, SQLite or MongoDB)
//
// # Quick Start
//
// Count an election and search for a manipulation:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/coalition/pkg/io"
//	    "github.com/matzehuels/coalition/pkg/orders"
//	    "github.com/matzehuels/coalition/pkg/search"
//	)
//
//	// 1. Read the ballots
//	p, _ := io.ImportBallots("votes.toi", io.ReadOptions{HeaderLines: 23, Candidates: 11})
//
//	// 2. Choose the elimination orders to try
//	set, _ := orders.NewFull(11)
//
//	// 3. Search from 55 voters upward
//	s, _ := search.New(search.Config{Profile: p, Candidates: 11, Orders: set, Seed: 1})
//	d := &search.Driver{Searcher: s, InitialSize: 55, Attempts: 75}
//	report, _ := d.Run(context.Background())
//
// # Main Packages
//
// ## Election Model
//
// [ballot] - Candidates, tie-marked tokens, ballots, profiles, markings and
// elimination orders. Profiles are values: every transformation returns a
// new profile.
//
// [stv] - First-preference counting and STV resolution. [stv.Trace] keeps
// every round's tally for reports and Graphviz rendering.
//
// ## Manipulation
//
// [manipulate] - The coalition builder: frees k ballots and spends them on
// making one elimination order happen.
//
// [orders] - Sets of elimination orders: all C! orders addressed lazily, or
// a materialized random subset cached between runs.
//
// [perm] - Heap's algorithm, Lehmer ranking and random permutations.
//
// [search] - Attempts per coalition size, optionally on parallel workers,
// and the driver that grows the coalition until the winner changes.
//
// ## Infrastructure
//
// [io] - Ballot file reader, profile writer and profile comparison.
//
// [results] - Sinks for successful manipulations: text files, SQLite and
// MongoDB.
//
// [cache] - File, Redis and null caches for materialized order sets.
//
// [config] - TOML and YAML run configuration.
//
// [observability] - Search and cache hooks, with a Prometheus
// implementation in [observability/prom].
//
// [errors] - Error codes shared by every package.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/search/...    # Specific package
//	go test -run Example        # Examples only
//
// [ballot]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/ballot
// [stv]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/stv
// [stv.Trace]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/stv#Trace
// [manipulate]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/manipulate
// [orders]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/orders
// [perm]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/perm
// [search]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/search
// [io]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/io
// [results]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/results
// [cache]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/observability/prom
// [errors]: https://pkg.go.dev/github.com/matzehuels/coalition/pkg/errors
package pkg

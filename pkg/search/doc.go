// Package search looks for coalition manipulations of an STV election.
//
// A [Searcher] runs a fixed number of attempts at one coalition size. Each
// attempt draws an elimination order, asks a [manipulate.Builder] to plan a
// coalition for it, and re-resolves the election. The first attempt that
// elects someone other than the sincere winner ends the search and is
// persisted through a [results.Sink]. Infeasible orders and unchanged
// winners are ordinary failures.
//
// A [Driver] escalates the coalition size one voter at a time until a
// search succeeds, the size bound is reached or the time budget runs out.
//
// # Randomness
//
// All random choices come from PCG streams seeded by Config.Seed, so a
// sequential run is reproducible. With Workers > 1 the attempts of one size
// run concurrently, each worker on its own stream derived from the seed,
// the size and the worker index; the first success cancels the rest, so
// which manipulation is reported may vary between parallel runs.
package search

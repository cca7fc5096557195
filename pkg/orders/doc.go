// Package orders provides the elimination orders a manipulation search draws
// from.
//
// An order is a permutation of all candidates; the search samples one per
// attempt and asks the coalition builder to realize it. Two sets exist:
//
//   - [Full] addresses every permutation of [1, C] lazily by lexicographic
//     rank, so even 11! orders cost no memory. Above [perm.MaxFactorial]
//     candidates the rank no longer fits an int and Full falls back to
//     drawing uniformly random permutations.
//   - [List] is a materialized subset, built by [Generate] and persisted
//     through a [cache.Cache] by [Load] so repeated runs with the same
//     (candidates, limit, seed) reuse it.
//
// Both are read-only after construction and safe for concurrent use.
package orders

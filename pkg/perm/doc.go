// Package perm provides permutation generation, ranking and sampling.
//
// # Overview
//
// Elimination orders over C candidates are the permutations of C items.
// For the reference election (C = 11) there are 39,916,800 of them, far too
// many to hold in memory as slices. This package offers three ways in:
//
//   - [Generate]: materialize permutations with Heap's algorithm, optionally
//     capped by a limit
//   - [Unrank] and [Rank]: map between a permutation and its lexicographic
//     index, so a set can be addressed without materializing it
//   - [Random]: draw a uniformly random permutation from a *rand.Rand
//
// Sampling a uniform index in [0, n!) and calling [Unrank] gives the same
// distribution as [Random]; the former is what a finite, indexable order set
// does, the latter works for any n.
//
// # Basic Usage
//
//	// All 24 permutations of 4 elements
//	all := perm.Generate(4, -1)
//
//	// The 1000th permutation of 11 elements in lexicographic order
//	p := perm.Unrank(11, 999)
//
//	// A random permutation
//	rng := rand.New(rand.NewPCG(seed, seed))
//	q := perm.Random(11, rng)
package perm

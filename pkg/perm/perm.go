package perm

import (
	"math/rand/v2"
	"slices"
)

// MaxFactorial is the largest n whose factorial fits in an int64.
const MaxFactorial = 20

// Seq returns the identity permutation [0, n). It is empty for n <= 0.
func Seq(n int) []int {
	s := make([]int, max(n, 0))
	for i := range s {
		s[i] = i
	}
	return s
}

// Factorial returns n!, or 1 for n <= 1. n must not exceed [MaxFactorial].
func Factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

// Generate lists permutations of [0, n) in Heap's order, the first limit of
// them when limit > 0 and all n! otherwise. Every permutation is its own
// slice. n = 0 yields one empty permutation.
//
// From 11 candidates on the full list runs to tens of millions of slices;
// pass a limit or address permutations lazily with [Unrank].
func Generate(n, limit int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	p := Seq(n)
	counters := make([]int, n)

	size := Factorial(min(n, 10))
	if limit > 0 && limit < size {
		size = limit
	}
	out := make([][]int, 0, size)
	out = append(out, slices.Clone(p))

	for i := 0; i < n && (limit <= 0 || len(out) < limit); {
		if counters[i] >= i {
			counters[i] = 0
			i++
			continue
		}
		j := 0
		if i%2 == 1 {
			j = counters[i]
		}
		p[j], p[i] = p[i], p[j]
		out = append(out, slices.Clone(p))
		counters[i]++
		i = 0
	}
	return out
}

// Unrank returns the permutation of [0, n) at the given lexicographic rank.
// rank must lie in [0, n!) and n must not exceed [MaxFactorial].
//
// Rank 0 is the identity; rank n!-1 is the reversed sequence.
func Unrank(n, rank int) []int {
	pool := Seq(n)
	out := make([]int, 0, n)
	for i := n; i > 0; i-- {
		f := Factorial(i - 1)
		idx := rank / f
		rank %= f
		out = append(out, pool[idx])
		pool = slices.Delete(pool, idx, idx+1)
	}
	return out
}

// Rank returns the lexicographic rank of p, a permutation of [0, len(p)).
// It is the inverse of [Unrank].
func Rank(p []int) int {
	n := len(p)
	pool := Seq(n)
	rank := 0
	for i, v := range p {
		idx := slices.Index(pool, v)
		rank += idx * Factorial(n-1-i)
		pool = slices.Delete(pool, idx, idx+1)
	}
	return rank
}

// Random returns a uniformly random permutation of [0, n).
func Random(n int, rng *rand.Rand) []int {
	p := Seq(n)
	rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

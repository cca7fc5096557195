// Package stv tabulates Single Transferable Vote elections with a single
// winner.
//
// # Counting
//
// [Count] looks only at the first token of each non-empty ballot. A strict
// first preference adds 1 to its candidate; a tie-marked first token adds
// 0.5. Tie markers are evaluated per ballot, so the shares of a tied group
// need not sum to 1.
//
// # Resolution
//
// [Resolve] repeatedly eliminates the candidate with the lowest tally until
// one remains. Ties for the lowest tally go to the lowest candidate id.
// Eliminated candidates are pinned to +Inf in the [Tally] so they are never
// selected again, and their tokens are removed from every ballot so support
// transfers to the next preference.
//
//	winner, err := stv.Resolve(profile, ballot.DefaultCandidates)
//
// [Trace] returns the same winner together with every round's tally, which
// [Result.ToDOT] and [Result.RenderSVG] turn into a diagram.
//
// Profiles without a single non-empty ballot have no winner; both functions
// return an EMPTY_PROFILE error for them.
package stv

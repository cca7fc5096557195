// Package ballot defines the data model of a ranked-choice election.
//
// A [Profile] is an ordered list of [Ballot] values, one per voter. Each
// ballot is an ordered list of [Token] values, most preferred first. A token
// names a [Candidate] and may carry a tie [Mark]: ballot files written as
// "1,{2,3},4" split into the tokens "1", "{2", "3}" and "4".
//
// # Value Semantics
//
// Every transformation in this package returns a new profile and never
// shares ballot storage with its input:
//
//	reduced := ballot.Eliminate(3, p) // p is unchanged
//
// Callers that need to edit ballots in place (the manipulation builder) work
// on a [Profile.Clone] they own exclusively.
//
// # Coalition Bookkeeping
//
// [EmptyRandomSubset] frees k ballots for a coalition and returns a
// [Marking] recording which indices are free (false) and which are
// committed (true). Randomness comes from an injected *rand.Rand so runs
// are reproducible under a fixed seed.
//
// # Elimination Orders
//
// An [Order] is a permutation of all candidates read positionally: the
// first candidate is eliminated first and the last one is the intended
// winner.
package ballot

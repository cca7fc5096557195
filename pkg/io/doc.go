// Package io reads and writes election profiles as text.
//
// # Ballot files
//
// Election data arrives as count-weighted records after a fixed-length
// header (PrefLib's layout; the reference data has 23 header lines):
//
//	3: 1,2,3
//	2: 2,{1,3}
//	1: 3,1,2
//
// Each record "<count>: <tokens>" expands to count identical ballots. Tokens
// are candidate ids; "{c" opens and "c}" closes a tied group. After the
// header, blank lines and lines starting with '#' are skipped.
//
// # Profile files
//
// Profiles written by this package hold one ballot per line in the same
// token notation, with no counts and no header. An empty line is an empty
// ballot, so line numbers always equal voter indices. [Compare] relies on
// that to report how many voters changed their ballot between two files.
//
// # Order files
//
// [WriteOrders] stores a materialized order set one order per line, ids
// separated by spaces, eliminated first.
package io

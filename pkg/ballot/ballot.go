package ballot

import (
	"strconv"
	"strings"

	"github.com/matzehuels/coalition/pkg/errors"
)

// DefaultCandidates is the candidate count of the reference election data.
const DefaultCandidates = 11

// Candidate identifies a candidate in the range [1, C].
type Candidate int

// String returns the decimal candidate id.
func (c Candidate) String() string { return strconv.Itoa(int(c)) }

// Valid reports whether c lies in [1, candidates].
func (c Candidate) Valid(candidates int) bool {
	return c >= 1 && int(c) <= candidates
}

// Mark flags a token as part of a tied group.
type Mark uint8

const (
	MarkNone     Mark = iota
	MarkTieOpen       // "{c": first member of a tied group
	MarkTieClose      // "c}": last member of a tied group
)

// Token is a single ballot entry.
type Token struct {
	Candidate Candidate
	Mark      Mark
}

// Tied reports whether the token carries a tie marker.
func (t Token) Tied() bool { return t.Mark != MarkNone }

// String renders the token in ballot-file notation.
func (t Token) String() string {
	switch t.Mark {
	case MarkTieOpen:
		return "{" + t.Candidate.String()
	case MarkTieClose:
		return t.Candidate.String() + "}"
	default:
		return t.Candidate.String()
	}
}

// Strict returns an unmarked token for c.
func Strict(c Candidate) Token { return Token{Candidate: c} }

// ParseToken parses "3", "{3" or "3}". A token carrying both braces, like
// "{3}", has no ballot-file notation and is rejected.
func ParseToken(s string) (Token, error) {
	s = strings.TrimSpace(s)
	var tok Token
	switch {
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && len(s) > 1:
		return Token{}, errors.New(errors.ErrCodeInvalidBallot, "token %q opens and closes a tie group", s)
	case strings.HasPrefix(s, "{"):
		tok.Mark = MarkTieOpen
		s = s[1:]
	case strings.HasSuffix(s, "}"):
		tok.Mark = MarkTieClose
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Token{}, errors.Wrap(errors.ErrCodeInvalidBallot, err, "invalid token %q", s)
	}
	tok.Candidate = Candidate(n)
	return tok, nil
}

// Ballot is one voter's ranking, most preferred first. An empty ballot is
// unused and contributes no support.
type Ballot []Token

// ParseBallot parses a comma-separated token list. An empty string yields
// an empty ballot.
func ParseBallot(s string) (Ballot, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ballot{}, nil
	}
	parts := strings.Split(s, ",")
	b := make(Ballot, 0, len(parts))
	for _, p := range parts {
		tok, err := ParseToken(p)
		if err != nil {
			return nil, err
		}
		b = append(b, tok)
	}
	return b, nil
}

// StrictBallot builds an unmarked ballot from candidate ids.
func StrictBallot(cs ...Candidate) Ballot {
	b := make(Ballot, len(cs))
	for i, c := range cs {
		b[i] = Strict(c)
	}
	return b
}

// Empty reports whether the ballot has no tokens.
func (b Ballot) Empty() bool { return len(b) == 0 }

// First returns the top token and false when the ballot is empty.
func (b Ballot) First() (Token, bool) {
	if len(b) == 0 {
		return Token{}, false
	}
	return b[0], true
}

// Contains reports whether any token names c.
func (b Ballot) Contains(c Candidate) bool {
	return b.Index(c) >= 0
}

// Index returns the position of the first token naming c, or -1.
func (b Ballot) Index(c Candidate) int {
	for i, t := range b {
		if t.Candidate == c {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no storage with b.
func (b Ballot) Clone() Ballot {
	if b == nil {
		return nil
	}
	out := make(Ballot, len(b))
	copy(out, b)
	return out
}

// Without returns a new ballot with every token naming c removed. The
// relative order of the remaining tokens is preserved.
func (b Ballot) Without(c Candidate) Ballot {
	out := make(Ballot, 0, len(b))
	for _, t := range b {
		if t.Candidate != c {
			out = append(out, t)
		}
	}
	return out
}

// Promote moves c to the front of the ballot as a strict preference,
// dropping any earlier occurrence. The ballot is edited in place.
func (b *Ballot) Promote(c Candidate) {
	rest := b.Without(c)
	out := make(Ballot, 0, len(rest)+1)
	out = append(out, Strict(c))
	*b = append(out, rest...)
}

// Validate checks that every token names a candidate in [1, candidates]
// and that no candidate appears twice.
func (b Ballot) Validate(candidates int) error {
	seen := make(map[Candidate]bool, len(b))
	for _, t := range b {
		if !t.Candidate.Valid(candidates) {
			return errors.New(errors.ErrCodeInvalidCandidate, "candidate %d outside [1, %d]", t.Candidate, candidates)
		}
		if seen[t.Candidate] {
			return errors.New(errors.ErrCodeInvalidBallot, "candidate %d ranked twice", t.Candidate)
		}
		seen[t.Candidate] = true
	}
	return nil
}

// String renders the ballot in ballot-file notation, e.g. "1,{2,3}".
func (b Ballot) String() string {
	parts := make([]string, len(b))
	for i, t := range b {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// Equal reports whether two ballots hold the same tokens in the same order.
func (b Ballot) Equal(other Ballot) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

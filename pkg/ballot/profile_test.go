package ballot

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coalition/pkg/errors"
)

func mustProfile(t *testing.T, lines ...string) Profile {
	t.Helper()
	p := make(Profile, len(lines))
	for i, l := range lines {
		b, err := ParseBallot(l)
		if err != nil {
			t.Fatalf("ParseBallot(%q): %v", l, err)
		}
		p[i] = b
	}
	return p
}

func TestEliminate(t *testing.T) {
	p := mustProfile(t, "1,2", "2", "")
	got := Eliminate(2, p)
	want := mustProfile(t, "1", "", "")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Eliminate(2) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mustProfile(t, "1,2", "2", ""), p); diff != "" {
		t.Errorf("Eliminate modified its input (-want +got):\n%s", diff)
	}
}

func TestEliminatePreservesOrder(t *testing.T) {
	p := mustProfile(t, "3,1,4,2", "4,{2,1}", "2,3")
	got := Eliminate(4, p)

	for i, b := range got {
		if b.Contains(4) {
			t.Errorf("ballot %d still contains 4: %v", i, b)
		}
		var kept []Candidate
		for _, tok := range p[i] {
			if tok.Candidate != 4 {
				kept = append(kept, tok.Candidate)
			}
		}
		var gotIDs []Candidate
		for _, tok := range b {
			gotIDs = append(gotIDs, tok.Candidate)
		}
		if !slices.Equal(kept, gotIDs) {
			t.Errorf("ballot %d = %v, want order %v", i, gotIDs, kept)
		}
	}
}

func TestEliminateTiedToken(t *testing.T) {
	p := mustProfile(t, "{2,3},1")
	got := Eliminate(2, p)
	want := Profile{{{3, MarkTieClose}, {1, MarkNone}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Eliminate tied token mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyRandomSubset(t *testing.T) {
	p := mustProfile(t, "1,2", "2,1", "1", "2", "1,2,3")
	rng := rand.New(rand.NewPCG(7, 7))

	out, marks, err := EmptyRandomSubset(p, 3, rng)
	if err != nil {
		t.Fatalf("EmptyRandomSubset error: %v", err)
	}
	if len(out) != len(p) || len(marks) != len(p) {
		t.Fatalf("lengths = %d/%d, want %d", len(out), len(marks), len(p))
	}
	if got := marks.CountFree(); got != 3 {
		t.Errorf("CountFree() = %d, want 3", got)
	}
	for i := range out {
		if !marks[i] && !out[i].Empty() {
			t.Errorf("free ballot %d not emptied: %v", i, out[i])
		}
		if marks[i] && !out[i].Equal(p[i]) {
			t.Errorf("committed ballot %d changed: %v, want %v", i, out[i], p[i])
		}
	}
	if p[0].Empty() || p[1].Empty() || p[2].Empty() || p[3].Empty() || p[4].Empty() {
		t.Error("EmptyRandomSubset modified its input")
	}
}

func TestEmptyRandomSubsetDeterministic(t *testing.T) {
	p := make(Profile, 50)
	for i := range p {
		p[i] = StrictBallot(1, 2)
	}

	_, m1, err := EmptyRandomSubset(p, 10, rand.New(rand.NewPCG(42, 1)))
	if err != nil {
		t.Fatal(err)
	}
	_, m2, err := EmptyRandomSubset(p, 10, rand.New(rand.NewPCG(42, 1)))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(m1.Free(), m2.Free()) {
		t.Errorf("same seed chose %v and %v", m1.Free(), m2.Free())
	}
}

func TestEmptyRandomSubsetBounds(t *testing.T) {
	p := mustProfile(t, "1", "2")
	rng := rand.New(rand.NewPCG(1, 2))

	for _, k := range []int{-1, 3} {
		_, _, err := EmptyRandomSubset(p, k, rng)
		if !errors.Is(err, errors.ErrCodeInvalidCoalitionSize) {
			t.Errorf("EmptyRandomSubset(k=%d) error = %v, want %s", k, err, errors.ErrCodeInvalidCoalitionSize)
		}
	}

	out, marks, err := EmptyRandomSubset(p, 2, rng)
	if err != nil {
		t.Fatalf("k = len(p) error: %v", err)
	}
	if out.Usable() || marks.CountFree() != 2 {
		t.Errorf("k = len(p): usable=%v free=%d", out.Usable(), marks.CountFree())
	}
}

func TestMarking(t *testing.T) {
	m := Marking{true, false, true, false}
	if got := m.Free(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("Free() = %v, want [1 3]", got)
	}
	if got := m.NextFree(); got != 1 {
		t.Errorf("NextFree() = %d, want 1", got)
	}
	m[1], m[3] = true, true
	if got := m.NextFree(); got != -1 {
		t.Errorf("NextFree() = %d, want -1", got)
	}
}

func TestProfileDiff(t *testing.T) {
	a := mustProfile(t, "1,2", "2,1", "3")
	b := mustProfile(t, "1,2", "1,2", "3", "1")
	if got := a.Diff(b); got != 2 {
		t.Errorf("Diff() = %d, want 2", got)
	}
	if got := a.Diff(a.Clone()); got != 0 {
		t.Errorf("Diff(clone) = %d, want 0", got)
	}
}

func TestProfileValidate(t *testing.T) {
	p := mustProfile(t, "1,2", "5")
	err := p.Validate(3)
	if !errors.Is(err, errors.ErrCodeInvalidCandidate) {
		t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeInvalidCandidate)
	}
}

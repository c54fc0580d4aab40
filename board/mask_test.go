package board

import (
	"testing"

	"github.com/valgard/hnefatafl/square"
)

func TestMaskAlgebra(t *testing.T) {
	t.Parallel()
	a := SquareMask(0).Union(SquareMask(40)).Union(SquareMask(80))
	b := SquareMask(40).Union(SquareMask(70))

	if got := a.Intersect(b); got != SquareMask(40) {
		t.Errorf("unexpected intersection: got=%v", got)
	}
	union := a.Union(b)
	if union.Count() != 4 {
		t.Errorf("unexpected union count: got=%d want=4", union.Count())
	}
	if got := a.Diff(b); got != SquareMask(0).Union(SquareMask(80)) {
		t.Errorf("unexpected difference: got=%v", got)
	}
	if !a.Overlaps(b) || a.Overlaps(SquareMask(1)) {
		t.Errorf("unexpected overlap results")
	}
	if (Mask{}).IsEmpty() != true || a.IsEmpty() {
		t.Errorf("unexpected emptiness results")
	}
}

func TestMaskNotStaysInDomain(t *testing.T) {
	t.Parallel()
	empty := Mask{}
	full := empty.Not()
	if full.Count() != TotalSquares {
		t.Errorf("unexpected full-board count: got=%d want=%d", full.Count(), TotalSquares)
	}
	if full.Hi&^maskUsedHi != 0 {
		t.Errorf("bits beyond the board are set: hi=%016x", full.Hi)
	}
	if full.Not() != empty {
		t.Errorf("double negation is not identity")
	}
}

func TestMaskSquares(t *testing.T) {
	t.Parallel()
	m := SquareMask(3).Union(SquareMask(64)).Union(SquareMask(80))
	want := []square.Square{3, 64, 80}
	got := m.Squares()
	if len(got) != len(want) {
		t.Fatalf("unexpected squares: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unexpected square at %d: got=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestMaskTextRoundTrip(t *testing.T) {
	t.Parallel()
	for _, m := range []Mask{
		{},
		SquareMask(0),
		SquareMask(80),
		{Lo: 0xdeadbeefcafef00d, Hi: 0x1ffff},
	} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var back Mask
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back != m {
			t.Errorf("unexpected round trip: got=%v want=%v", back, m)
		}
	}

	var m Mask
	if err := m.UnmarshalText([]byte("zz")); err == nil {
		t.Errorf("expected error on malformed text")
	}
	if err := m.UnmarshalText([]byte("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")); err == nil {
		t.Errorf("expected error on non-hex text")
	}
}

func TestSquareMaskBijection(t *testing.T) {
	t.Parallel()
	seen := map[Mask]bool{}
	for i := 0; i < TotalSquares; i++ {
		m := SquareMask(square.Square(i))
		if m.Count() != 1 {
			t.Fatalf("square %d: not a singleton", i)
		}
		if seen[m] {
			t.Fatalf("square %d: duplicate mask", i)
		}
		seen[m] = true
		if got := m.Squares()[0]; got != square.Square(i) {
			t.Errorf("square %d: unexpected round trip: got=%v", i, got)
		}
	}
}

package selector

import "testing"

func TestRandomIsDeterministicForSeed(t *testing.T) {
	a := Random(42)
	b := Random(42)
	for i := 0; i < 20; i++ {
		x, y := a(7), b(7)
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x < 0 || x >= 7 {
			t.Fatalf("draw out of range: %d", x)
		}
	}
}

func TestFixedWraps(t *testing.T) {
	if got := Fixed(5)(3); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := Fixed(-1)(3); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestPick(t *testing.T) {
	items := []string{"a", "b", "c"}
	if got := Pick(Fixed(1), items); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := Pick(nil, items); got != "a" {
		t.Fatalf("nil selector should pick first, got %q", got)
	}
	if got := Pick(First(), []string(nil)); got != "" {
		t.Fatalf("empty slice should give zero value, got %q", got)
	}
}

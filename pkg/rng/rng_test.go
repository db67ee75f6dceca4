package rng

import "testing"

func TestNew_SameSeedIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 50; i++ {
		if got, want := a.Intn(1000), b.Intn(1000); got != want {
			t.Fatalf("draw %d diverged: got %d, want %d", i, got, want)
		}
	}
}

func TestNew_DifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	diverged := false
	for i := 0; i < 20; i++ {
		if a.Intn(1_000_000) != b.Intn(1_000_000) {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Fatal("expected different seeds to diverge within 20 draws")
	}
}

func TestIntRange_Bounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 200; i++ {
		v := s.IntRange(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntRange(3,5) produced %d", v)
		}
	}
}

func TestIntRange_DegenerateWhenHiLessThanLo(t *testing.T) {
	s := New(7)
	if got := s.IntRange(5, 3); got != 5 {
		t.Errorf("IntRange(5,3) = %d, want 5", got)
	}
}

func TestFloatRange_Bounds(t *testing.T) {
	s := New(9)
	for i := 0; i < 200; i++ {
		v := s.FloatRange(-0.10, 0.10)
		if v < -0.10 || v >= 0.10 {
			t.Fatalf("FloatRange(-0.10,0.10) produced %v", v)
		}
	}
}

func TestPerm_IsPermutation(t *testing.T) {
	s := New(3)
	perm := s.Perm(10)
	seen := make(map[int]bool)
	for _, v := range perm {
		if v < 0 || v >= 10 || seen[v] {
			t.Fatalf("Perm(10) not a valid permutation: %v", perm)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Errorf("Perm(10) produced %d distinct values, want 10", len(seen))
	}
}

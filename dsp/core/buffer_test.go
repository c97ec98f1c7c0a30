package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestDeinterleave(t *testing.T) {
	src := []int16{1, -1, 2, -2, 3, -3}

	left := Deinterleave(nil, src, 2, 0)
	right := Deinterleave(nil, src, 2, 1)

	if len(left) != 3 || left[0] != 1 || left[2] != 3 {
		t.Fatalf("left = %v", left)
	}

	if len(right) != 3 || right[1] != -2 {
		t.Fatalf("right = %v", right)
	}

	if got := Deinterleave(nil, src[:5], 2, 0); len(got) != 2 {
		t.Fatalf("partial frame: len = %d, want 2", len(got))
	}
}

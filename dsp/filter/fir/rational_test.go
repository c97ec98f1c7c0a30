package fir

import "testing"

func TestZeroStuff(t *testing.T) {
	got := ZeroStuff([]float64{1, 2, 3}, 3)
	want := []float64{1, 0, 0, 2, 0, 0, 3, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if same := ZeroStuff([]float64{4, 5}, 0); len(same) != 2 || same[1] != 5 {
		t.Fatalf("factor 0 should behave as 1, got %v", same)
	}
}

func TestDecimate(t *testing.T) {
	got := Decimate([]float64{0, 1, 2, 3, 4, 5, 6}, 3)
	want := []float64{0, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUpFirDnLength(t *testing.T) {
	tests := []struct {
		n, up, down, want int
	}{
		{n: 441, up: 80, down: 441, want: 80},
		{n: 10, up: 3, down: 2, want: 15},
		{n: 7, up: 1, down: 2, want: 3},
	}

	for _, tc := range tests {
		x := make([]float64, tc.n)
		if got := len(New([]float64{1}).UpFirDn(x, tc.up, tc.down)); got != tc.want {
			t.Fatalf("n=%d %d/%d: len=%d, want %d", tc.n, tc.up, tc.down, got, tc.want)
		}
	}
}

func TestUpFirDnIdentity(t *testing.T) {
	x := []float64{3, -1, 4, -1, 5}
	got := New([]float64{1}).UpFirDn(x, 1, 1)
	for i := range x {
		if got[i] != x[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], x[i])
		}
	}
}

func TestUpFirDnResetsBetweenSignals(t *testing.T) {
	f := New([]float64{0.5, 1, 0.5})

	first := f.UpFirDn([]float64{2, 4, 6}, 2, 1)
	second := f.UpFirDn([]float64{2, 4, 6}, 2, 1)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("second run differs at %d: %v vs %v", i, second[i], first[i])
		}
	}
}

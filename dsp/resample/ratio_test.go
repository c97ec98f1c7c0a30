package resample

import (
	"errors"
	"testing"
)

func TestApproximateRatio(t *testing.T) {
	tests := []struct {
		v        float64
		maxDen   int
		num, den int
	}{
		{v: 2, maxDen: 100, num: 2, den: 1},
		{v: 0.5, maxDen: 100, num: 1, den: 2},
		{v: 8000.0 / 44100, maxDen: 4096, num: 80, den: 441},
		{v: 48000.0 / 44100, maxDen: 4096, num: 160, den: 147},
		{v: 3.14159265358979, maxDen: 10, num: 22, den: 7},
		{v: 0, maxDen: 10, num: 0, den: 0},
		{v: 1e-5, maxDen: 4096, num: 0, den: 0},
		{v: 1.5, maxDen: 0, num: 3, den: 2},
	}

	for _, tc := range tests {
		num, den := approximateRatio(tc.v, tc.maxDen)
		if num != tc.num || den != tc.den {
			t.Fatalf("approximateRatio(%v, %d) = %d/%d, want %d/%d", tc.v, tc.maxDen, num, den, tc.num, tc.den)
		}
	}
}

func TestReduce(t *testing.T) {
	if up, down := reduce(8000, 44100); up != 80 || down != 441 {
		t.Fatalf("reduce(8000, 44100) = %d/%d, want 80/441", up, down)
	}

	if up, down := reduce(0, 0); up != 0 || down != 0 {
		t.Fatalf("reduce(0, 0) = %d/%d, want 0/0", up, down)
	}
}

func TestRatioForRates(t *testing.T) {
	up, down, err := RatioForRates(44100, 8000, 4096)
	if err != nil || up != 80 || down != 441 {
		t.Fatalf("RatioForRates(44100, 8000) = %d/%d, %v", up, down, err)
	}

	up, down, err = RatioForRates(44100, 7999.5, 100)
	if err != nil || down > 100 {
		t.Fatalf("RatioForRates(44100, 7999.5) = %d/%d, %v", up, down, err)
	}

	if _, _, err := RatioForRates(-1, 8000, 0); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}

	// 0.5 Hz from 44.1 kHz needs a denominator far beyond 4096.
	if up, down, err := RatioForRates(44100.5, 0.5, 0); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("RatioForRates(44100.5, 0.5) = %d/%d, %v, want ErrInvalidRate", up, down, err)
	}
}

package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-rateconv/internal/testutil"
)

func TestGoertzel_Basic(t *testing.T) {
	sampleRate := 48000.0
	freq0 := 1000.0
	length := 1024
	sig := testutil.DeterministicSine(freq0, sampleRate, 1.0, length)

	goertzel, err := NewGoertzel(freq0, sampleRate)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}

	goertzel.ProcessBlock(sig)
	pwr := goertzel.Power()

	// Compare with a direct DFT calculation at that exact frequency.
	var dft complex128

	for n, x := range sig {
		angle := -2 * math.Pi * freq0 / sampleRate * float64(n)
		dft += complex(x, 0) * cmplx.Exp(complex(0, angle))
	}

	wantP := real(dft)*real(dft) + imag(dft)*imag(dft)

	// Use a relative tolerance for power as it can grow large
	if math.Abs(pwr-wantP) > 1e-7*wantP {
		t.Errorf("Power mismatch: got %v, want %v (diff %v)", pwr, wantP, math.Abs(pwr-wantP))
	}

	mag := goertzel.Magnitude()

	wantMag := cmplx.Abs(dft)
	if math.Abs(mag-wantMag) > 1e-7*wantMag {
		t.Errorf("Magnitude mismatch: got %v, want %v (diff %v)", mag, wantMag, math.Abs(mag-wantMag))
	}
}

func TestGoertzel_Validation(t *testing.T) {
	if _, err := NewGoertzel(-1, 48000); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("NewGoertzel(-1): expected ErrInvalidFrequency, got %v", err)
	}

	if _, err := NewGoertzel(24001, 48000); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("NewGoertzel(24001): expected ErrInvalidFrequency, got %v", err)
	}

	if _, err := NewGoertzel(100, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("NewGoertzel: expected ErrInvalidSampleRate, got %v", err)
	}

	if _, err := NewGoertzel(24000, 48000); err != nil {
		t.Errorf("NewGoertzel(Nyquist): %v", err)
	}
}

func TestGoertzel_Amplitude(t *testing.T) {
	const amp = 1234.5

	sig := testutil.DeterministicSine(1000, 8000, amp, 800)

	g, err := NewGoertzel(1000, 8000)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}

	if g.Amplitude() != 0 {
		t.Fatal("Amplitude should be zero before processing")
	}

	g.ProcessBlock(sig[:100])
	g.ProcessBlock(sig[100:])

	if got := g.Amplitude(); math.Abs(got-amp) > 1e-6*amp {
		t.Fatalf("Amplitude = %v, want %v", got, amp)
	}

	dc, _ := NewGoertzel(0, 8000)
	dc.ProcessBlock(testutil.DC(-3, 50))

	if got := dc.Amplitude(); math.Abs(got-3) > 1e-12 {
		t.Fatalf("DC amplitude = %v, want 3", got)
	}
}

func TestGoertzel_EdgeCases(t *testing.T) {
	// DC
	goertzel, _ := NewGoertzel(0, 48000)
	goertzel.ProcessBlock(testutil.DC(1.0, 100))
	pwr := goertzel.Power()
	// DFT sum for DC of 1.0 is 100. Power is 100^2 = 10000.
	if math.Abs(pwr-10000) > 1e-9 {
		t.Errorf("DC power mismatch: got %v, want 10000", pwr)
	}

	// Nyquist
	goertzel, _ = NewGoertzel(24000, 48000)

	sig := make([]float64, 100)
	for i := range sig {
		if i%2 == 0 {
			sig[i] = 1.0
		} else {
			sig[i] = -1.0
		}
	}

	goertzel.ProcessBlock(sig)

	pwr = goertzel.Power()
	if math.Abs(pwr-10000) > 1e-9 {
		t.Errorf("Nyquist power mismatch: got %v, want 10000", pwr)
	}
}

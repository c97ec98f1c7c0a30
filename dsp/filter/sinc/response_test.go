package sinc

import (
	"math"
	"testing"
)

func TestMagnitudeResponseMatchesDirect(t *testing.T) {
	taps := MustDesign(Spec{Length: 63, Up: 2, Down: 3})
	const rate = 96000.0

	spec, err := taps.MagnitudeResponse(256, rate)
	if err != nil {
		t.Fatalf("MagnitudeResponse() error = %v", err)
	}

	if len(spec.Magnitude) != 129 {
		t.Fatalf("bins = %d, want 129", len(spec.Magnitude))
	}

	for _, k := range []int{0, 5, 40, 128} {
		f := float64(k) * spec.BinHz()
		h := taps.Response(f, rate)
		want := math.Hypot(real(h), imag(h))
		if math.Abs(spec.Magnitude[k]-want) > 1e-9 {
			t.Fatalf("bin %d: fft=%v direct=%v", k, spec.Magnitude[k], want)
		}
	}
}

func TestMagnitudeResponseRoundsUp(t *testing.T) {
	taps := MustDesign(Spec{Length: 1025, Up: 80, Down: 441})

	spec, err := taps.MagnitudeResponse(100, 44100*80)
	if err != nil {
		t.Fatalf("MagnitudeResponse() error = %v", err)
	}

	if len(spec.Magnitude) != 1025 {
		t.Fatalf("bins = %d, want 1025 (fft 2048)", len(spec.Magnitude))
	}
}

func TestDefaultDesignCutoff(t *testing.T) {
	taps := MustDesign(DefaultSpec())
	const upRate = 44100 * 80

	spec, err := taps.MagnitudeResponse(1<<16, upRate)
	if err != nil {
		t.Fatalf("MagnitudeResponse() error = %v", err)
	}

	// The nominal cutoff is pi/441 of the upsampled rate, 4 kHz. The short
	// filter rolls off slowly, so -6 dB lands a little above it.
	if f6 := spec.FrequencyBelow(-6); f6 < 4000 || f6 > 5000 {
		t.Fatalf("-6 dB point = %.0f Hz, want 4-5 kHz", f6)
	}

	dc := taps.MagnitudeDB(0, upRate)
	at4k := taps.MagnitudeDB(4000, upRate)
	if d := dc - at4k; d < 4.5 || d > 6.5 {
		t.Fatalf("attenuation at 4 kHz = %.2f dB, want ~5.2 dB", d)
	}

	at12k := taps.MagnitudeDB(12000, upRate)
	if d := dc - at12k; d < 50 {
		t.Fatalf("attenuation at 12 kHz = %.2f dB, want > 50 dB", d)
	}
}

func TestPassbandGain(t *testing.T) {
	taps := MustDesign(DefaultSpec())

	g := taps.PassbandGain(1000, 44100, 80)
	if g < 0.86 || g > 0.89 {
		t.Fatalf("gain at 1 kHz = %v, want ~0.876", g)
	}

	if taps.PassbandGain(1000, 44100, 0) != 0 {
		t.Fatal("expected zero gain for invalid up")
	}
}

func TestGroupDelayIsCenter(t *testing.T) {
	taps := MustDesign(DefaultSpec())

	gd, err := taps.GroupDelay(1<<16, 50)
	if err != nil {
		t.Fatalf("GroupDelay() error = %v", err)
	}

	if len(gd) != 51 {
		t.Fatalf("len = %d, want 51", len(gd))
	}

	for k, d := range gd {
		if math.Abs(d-float64(taps.Center())) > 1e-6 {
			t.Fatalf("delay at bin %d = %v, want %d", k, d, taps.Center())
		}
	}

	if _, err := Taps(nil).GroupDelay(64, 4); err == nil {
		t.Fatal("expected error for empty taps")
	}
}

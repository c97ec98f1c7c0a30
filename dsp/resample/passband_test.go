package resample

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rateconv/dsp/filter/sinc"
	"github.com/cwbudde/algo-rateconv/dsp/spectrum"
	"github.com/cwbudde/algo-rateconv/internal/testutil"
)

const (
	inRate  = 44100.0
	outRate = 8000.0
	toneAmp = 10000.0
)

func convertStereoTone(t *testing.T, c *Converter, freq float64) (left, right []float64) {
	t.Helper()

	const frames = 44100

	l := testutil.SineInt16(freq, inRate, toneAmp, frames)
	r := testutil.SineInt16(freq, inRate, toneAmp/2, frames)

	out, n, err := c.Convert(testutil.InterleaveInt16(l, r), frames)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if n != 8000 {
		t.Fatalf("frames = %d, want 8000", n)
	}

	left = make([]float64, n)
	right = make([]float64, n)
	for m := range n {
		left[m] = float64(out[m*2])
		right[m] = float64(out[m*2+1])
	}

	return left, right
}

func TestPassbandToneAmplitude(t *testing.T) {
	c, err := New(sinc.DefaultSpec())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	g := c.Taps().PassbandGain(1000, inRate, 80)
	left, right := convertStereoTone(t, c, 1000)

	for ch, x := range [][]float64{left, right} {
		want := toneAmp * g / float64(ch+1)

		tone, err := spectrum.MeasureTone(x[1000:5000], 1000, outRate)
		if err != nil {
			t.Fatalf("MeasureTone() error = %v", err)
		}

		if math.Abs(tone.Amplitude-want) > 0.01*want {
			t.Fatalf("ch%d amplitude = %.1f, want %.1f", ch, tone.Amplitude, want)
		}
	}
}

func TestPassbandToneWaveform(t *testing.T) {
	c, err := New(sinc.DefaultSpec())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	g := c.Taps().PassbandGain(1000, inRate, 80)
	delay := c.Latency()
	left, _ := convertStereoTone(t, c, 1000)

	// Away from the edges the output is the input sine scaled by the
	// passband gain and delayed by the filter's center.
	step := 2 * math.Pi * 1000 / outRate
	for m := 100; m < len(left)-100; m++ {
		want := toneAmp * g * math.Sin(step*(float64(m)-delay))
		if d := math.Abs(left[m] - want); d > 0.005*toneAmp {
			t.Fatalf("frame %d = %.0f, want %.1f (diff %.1f)", m, left[m], want, d)
		}
	}
}

func TestNormalizedPassband(t *testing.T) {
	c, err := NewForRates(inRate, outRate, WithNormalize())
	if err != nil {
		t.Fatalf("NewForRates() error = %v", err)
	}

	left, _ := convertStereoTone(t, c, 1000)

	tone, err := spectrum.MeasureTone(left[1000:5000], 1000, outRate)
	if err != nil {
		t.Fatalf("MeasureTone() error = %v", err)
	}

	if math.Abs(tone.Amplitude-toneAmp) > 0.05*toneAmp {
		t.Fatalf("amplitude = %.1f, want within 5%% of %.0f", tone.Amplitude, toneAmp)
	}
}

func TestStopbandToneSuppressed(t *testing.T) {
	c, err := New(sinc.DefaultSpec())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// 10 kHz folds to 2 kHz at the 8 kHz output rate.
	left, _ := convertStereoTone(t, c, 10000)

	tone, err := spectrum.MeasureTone(left[1000:5000], 2000, outRate)
	if err != nil {
		t.Fatalf("MeasureTone() error = %v", err)
	}

	if tone.Amplitude > 0.005*toneAmp {
		t.Fatalf("alias amplitude = %.1f, want < %.0f", tone.Amplitude, 0.005*toneAmp)
	}
}

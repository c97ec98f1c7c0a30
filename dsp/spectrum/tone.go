package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-rateconv/dsp/core"
)

// FullScale is the int16 peak amplitude used as the 0 dBFS reference.
const FullScale = 32768.0

// ErrShortBlock indicates an analysis block with no whole period.
var ErrShortBlock = errors.New("spectrum: block shorter than one period")

// Tone is the measured level of a sinusoid.
type Tone struct {
	Frequency float64
	Amplitude float64
	// DBFS is Amplitude relative to FullScale.
	DBFS float64
}

// MeasureTone returns the amplitude of the frequency component of x. The
// block is cut to the largest whole number of periods so that bin-aligned
// tones measure without leakage.
func MeasureTone(x []float64, frequency, sampleRate float64) (Tone, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return Tone{}, err
	}

	n := WholePeriods(len(x), frequency, sampleRate)
	if n == 0 {
		return Tone{}, fmt.Errorf("%w: %d samples at %v Hz", ErrShortBlock, len(x), frequency)
	}

	g.ProcessBlock(x[:n])
	a := g.Amplitude()

	return Tone{Frequency: frequency, Amplitude: a, DBFS: core.LinearToDB(a / FullScale)}, nil
}

// MeasureTones measures several frequencies in x. Each tone is measured
// over its own whole number of periods.
func MeasureTones(x []float64, frequencies []float64, sampleRate float64) ([]Tone, error) {
	tones := make([]Tone, 0, len(frequencies))
	for _, f := range frequencies {
		tone, err := MeasureTone(x, f, sampleRate)
		if err != nil {
			return nil, err
		}

		tones = append(tones, tone)
	}

	return tones, nil
}

// WholePeriods returns the largest n <= length such that n samples hold an
// integer number of periods of frequency, as close as the rates allow. For
// DC the full length is returned.
func WholePeriods(length int, frequency, sampleRate float64) int {
	if frequency <= 0 {
		return length
	}

	period := sampleRate / frequency
	cycles := math.Floor(float64(length) / period)

	return int(math.Round(cycles * period))
}

package resample

import (
	"testing"

	"github.com/cwbudde/algo-rateconv/dsp/filter/sinc"
	"github.com/cwbudde/algo-rateconv/internal/testutil"
)

func benchmarkConvert(b *testing.B, workers int) {
	b.Helper()

	c, err := New(sinc.DefaultSpec(), WithWorkers(workers))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	const frames = 44100

	in := testutil.InterleaveInt16(
		testutil.SineInt16(1000, 44100, 10000, frames),
		testutil.NoiseInt16(1, 10000, frames),
	)

	b.SetBytes(int64(len(in) * 2))
	b.ReportAllocs()

	for b.Loop() {
		if _, _, err := c.Convert(in, frames); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConvertSerial(b *testing.B)   { benchmarkConvert(b, 1) }
func BenchmarkConvertParallel(b *testing.B) { benchmarkConvert(b, 0) }

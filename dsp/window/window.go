package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
//
// The zero value is TypeHamming, the taper used by the windowed-sinc
// designer unless another one is requested.
type Type int

const (
	TypeHamming Type = iota
	TypeHann
	TypeBlackman
	TypeKaiser
	TypeRectangular
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
}

var metadataByType = map[Type]Metadata{
	TypeHamming:     {Name: "Hamming", ENBW: 1.36, HighestSidelobe: -42.7},
	TypeHann:        {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5},
	TypeBlackman:    {Name: "Blackman", ENBW: 1.73, HighestSidelobe: -58.1},
	TypeKaiser:      {Name: "Kaiser"},
	TypeRectangular: {Name: "Rectangular", ENBW: 1, HighestSidelobe: -13.3},
}

var (
	hammingCoeffs  = []float64{0.54, -0.46}
	hannCoeffs     = []float64{0.5, -0.5}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: 8.6}
}

// WithAlpha configures the beta parameter of the Kaiser window.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
//
// The symmetric form evaluates w(n) at n/(length-1), so a Hamming window is
// 0.54 - 0.46*cos(2*pi*n/(length-1)). A single-point window is 1.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// String returns the lower-case window name.
func (t Type) String() string {
	if m, ok := metadataByType[t]; ok {
		return strings.ToLower(m.Name)
	}

	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType resolves a window name such as "hamming" or "kaiser".
// The empty string selects Hamming.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hamming":
		return TypeHamming, nil
	case "hann", "hanning":
		return TypeHann, nil
	case "blackman":
		return TypeBlackman, nil
	case "kaiser":
		return TypeKaiser, nil
	case "rectangular", "rect", "none":
		return TypeRectangular, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// Hamming returns Hamming window coefficients.
func Hamming(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHamming, size, opts...), validateLength(size)
}

// Kaiser returns Kaiser window coefficients.
func Kaiser(size int, beta float64, opts ...Option) ([]float64, error) {
	if size <= 0 || beta < 0 {
		return nil, validateKaiser(size, beta)
	}

	return Generate(TypeKaiser, size, append(opts, WithAlpha(beta))...), nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeKaiser:
		return kaiserAt(x, cfg.alpha)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 evaluates the modified Bessel function I0 by its power series.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}

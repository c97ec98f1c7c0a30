package resample

import (
	"fmt"
	"math"
)

// RatioForRates returns the conversion factors L/M for inRate -> outRate in
// lowest terms. Integral rates are reduced exactly (44100 -> 8000 gives
// 80/441); others are approximated with denominators up to maxDen.
func RatioForRates(inRate, outRate float64, maxDen int) (up, down int, err error) {
	if inRate <= 0 || outRate <= 0 || math.IsNaN(inRate) || math.IsNaN(outRate) ||
		math.IsInf(inRate, 0) || math.IsInf(outRate, 0) {
		return 0, 0, fmt.Errorf("%w: %v -> %v", ErrInvalidRate, inRate, outRate)
	}

	if inRate == math.Trunc(inRate) && outRate == math.Trunc(outRate) {
		up, down = reduce(int(outRate), int(inRate))
		return up, down, nil
	}

	up, down = approximateRatio(outRate/inRate, maxDen)
	if up == 0 {
		return 0, 0, fmt.Errorf("%w: %v -> %v has no ratio with denominator <= %d",
			ErrInvalidRate, inRate, outRate, effectiveMaxDen(maxDen))
	}

	return up, down, nil
}

// approximateRatio finds the best rational approximation num/den of v with
// den <= maxDen using continued fractions. It returns 0/0 when v is not a
// positive finite number or rounds to zero at that denominator.
func approximateRatio(v float64, maxDen int) (num, den int) {
	maxDen = effectiveMaxDen(maxDen)

	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, 0
	}

	a0 := math.Floor(v)
	p0, q0 := 1.0, 0.0
	p1, q1 := a0, 1.0
	x := v

	for {
		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}

		x = 1 / frac
		a := math.Floor(x)
		p2 := a*p1 + p0

		q2 := a*q1 + q0
		if q2 > float64(maxDen) {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2
	}

	num = int(math.Round(p1))

	den = int(math.Round(q1))
	if num <= 0 || den <= 0 {
		return 0, 0
	}

	g := gcd(num, den)

	return num / g, den / g
}

func effectiveMaxDen(maxDen int) int {
	if maxDen <= 0 {
		return 4096
	}

	return maxDen
}

// reduce returns up/down in lowest terms.
func reduce(up, down int) (int, int) {
	g := gcd(up, down)
	return up / g, down / g
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}

	if b < 0 {
		b = -b
	}

	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return 1
	}

	return a
}

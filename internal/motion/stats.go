package motion

import "math"

// Statistics over the rolling window. All functions are pure: they keep no
// state and defined degenerate inputs (empty windows, zero vectors, zero
// intervals) yield a neutral 0 instead of an error.

// MagnitudeStats returns the mean and population standard deviation of the
// movement magnitudes of the given deltas.
func MagnitudeStats(deltas []Vec) (mean, std float64) {
	if len(deltas) == 0 {
		return 0, 0
	}
	for _, d := range deltas {
		mean += d.Magnitude()
	}
	mean /= float64(len(deltas))

	var variance float64
	for _, d := range deltas {
		diff := d.Magnitude() - mean
		variance += diff * diff
	}
	variance /= float64(len(deltas))
	return mean, math.Sqrt(variance)
}

// DirectionChangeRatio returns the fraction of consecutive delta pairs whose
// angle exceeds 90 degrees (negative cosine). Pairs with a zero-length vector
// are not evaluated. Returns 0 when no pair could be evaluated.
func DirectionChangeRatio(deltas []Vec) float64 {
	var evaluated, changes int
	for i := 1; i < len(deltas); i++ {
		prev, curr := deltas[i-1], deltas[i]
		if prev.IsZero() || curr.IsZero() {
			continue
		}
		magProduct := prev.Magnitude() * curr.Magnitude()
		if magProduct == 0 {
			continue
		}
		cos := (prev.X*curr.X + prev.Y*curr.Y) / magProduct
		evaluated++
		if cos < 0 {
			changes++
		}
	}
	if evaluated == 0 {
		return 0
	}
	return float64(changes) / float64(evaluated)
}

// EstimateFrequency estimates the movement frequency in Hz from the most
// recent min(window, len(times)) timestamps. Returns 0 with fewer than two
// usable intervals or a zero mean interval.
func EstimateFrequency(times []float64, window int) float64 {
	if window > 0 && len(times) > window {
		times = times[len(times)-window:]
	}
	if len(times) < 3 {
		return 0
	}
	var sum float64
	for i := 1; i < len(times); i++ {
		sum += times[i] - times[i-1]
	}
	avg := sum / float64(len(times)-1)
	if avg <= 0 {
		return 0
	}
	return 1.0 / avg
}

// Jitter returns the mean magnitude of the second finite difference of the
// position sequence, a proxy for acceleration irregularity. Requires at least
// three positions, otherwise 0.
func Jitter(positions []Vec) float64 {
	if len(positions) < 3 {
		return 0
	}
	var sum float64
	n := 0
	for i := 2; i < len(positions); i++ {
		d2x := (positions[i].X - positions[i-1].X) - (positions[i-1].X - positions[i-2].X)
		d2y := (positions[i].Y - positions[i-1].Y) - (positions[i-1].Y - positions[i-2].Y)
		sum += math.Hypot(d2x, d2y)
		n++
	}
	return sum / float64(n)
}

// CoefficientOfVariation returns std/mean, a scale-free dispersion measure.
// Returns 0 when the mean is not positive.
func CoefficientOfVariation(mean, std float64) float64 {
	if mean <= 0 {
		return 0
	}
	return std / mean
}

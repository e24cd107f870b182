package motion

import "math"

// Floor for the adaptive blend factor so the filter never freezes entirely.
const minSmoothingFactor = 0.1

// Filter is an exponential smoother for cursor positions. In adaptive mode
// the blend factor shrinks with tremor intensity, damping harder exactly when
// the tremor is strong. State is kept in floats; coordinates are rounded to
// integer device units only at the output boundary.
type Filter struct {
	factor   float64
	adaptive bool
	lastX    float64
	lastY    float64
}

// NewFilter creates a smoothing filter with the given base blend factor.
func NewFilter(factor float64, adaptive bool) *Filter {
	return &Filter{factor: factor, adaptive: adaptive}
}

// Seed resets the smoothing continuity state to the given position. Must be
// called when stabilization is re-enabled so the next output does not snap
// toward a stale position.
func (f *Filter) Seed(x, y float64) {
	f.lastX = x
	f.lastY = y
}

// Configure updates the base factor and adaptive mode, preserving the
// continuity state.
func (f *Filter) Configure(factor float64, adaptive bool) {
	f.factor = factor
	f.adaptive = adaptive
}

// Smooth blends the raw position with the previous filtered output and
// returns the result in integer device units.
func (f *Filter) Smooth(x, y, intensity float64) (int, int) {
	alpha := f.factor
	if f.adaptive {
		alpha = math.Max(minSmoothingFactor, f.factor*(1.0-intensity))
	}

	fx := alpha*x + (1.0-alpha)*f.lastX
	fy := alpha*y + (1.0-alpha)*f.lastY
	f.lastX = fx
	f.lastY = fy

	return int(math.Round(fx)), int(math.Round(fy))
}

package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterFixedFactor(t *testing.T) {
	t.Parallel()

	f := NewFilter(0.4, false)
	x, y := f.Smooth(10, 10, 0.8) // intensity irrelevant in fixed mode
	assert.Equal(t, 4, x)
	assert.Equal(t, 4, y)
}

func TestFilterAdaptiveFactorFloor(t *testing.T) {
	t.Parallel()

	// 0.4 * (1 - 0.8) = 0.08 which is clamped to the 0.1 floor.
	f := NewFilter(0.4, true)
	x, y := f.Smooth(10, 10, 0.8)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
}

func TestFilterConvergesUnderConstantInput(t *testing.T) {
	t.Parallel()

	for _, alpha := range []float64{0.1, 0.4, 0.8, 1.0} {
		f := NewFilter(alpha, false)
		var x, y int
		for i := 0; i < 500; i++ {
			x, y = f.Smooth(100, 50, 0)
		}
		assert.Equal(t, 100, x, "alpha %v", alpha)
		assert.Equal(t, 50, y, "alpha %v", alpha)
		assert.InDelta(t, 100, f.lastX, 1e-6, "alpha %v", alpha)
		assert.InDelta(t, 50, f.lastY, 1e-6, "alpha %v", alpha)
	}
}

func TestFilterSeedAvoidsSnap(t *testing.T) {
	t.Parallel()

	f := NewFilter(0.4, true)
	// Old continuity state far away from the cursor.
	f.Smooth(1000, 1000, 0)

	f.Seed(40, 60)
	x, y := f.Smooth(40, 60, 1.0)
	assert.Equal(t, 40, x)
	assert.Equal(t, 60, y)
}

func TestFilterRoundsOnlyAtTheBoundary(t *testing.T) {
	t.Parallel()

	f := NewFilter(0.5, false)
	f.Smooth(1, 0, 0) // internal state 0.5, emitted as 1
	f.Smooth(1, 0, 0) // internal state 0.75

	assert.InDelta(t, 0.75, f.lastX, 1e-9)
	assert.False(t, math.Trunc(f.lastX) == f.lastX)
}

package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedAlternating pushes tremor-like motion through the controller and
// returns the last emitted correction, if any.
func feedAlternating(c *Controller, n int, startX, startY, startT float64) (Correction, bool) {
	x := startX
	var (
		corr     Correction
		detected bool
	)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			x += 5
		} else {
			x -= 5
		}
		if out, ok := c.OnSample(x, startY, startT+float64(i)*0.005); ok {
			corr, detected = out, true
			// Keep the raw stream independent of the correction: the
			// physical hand keeps oscillating around the same spot.
		}
	}
	return corr, detected
}

func TestControllerFirstSampleOnlySeeds(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	_, ok := c.OnSample(100, 200, 0)
	assert.False(t, ok)
	assert.Equal(t, 0, c.window.Len())
}

func TestControllerIgnoresZeroDelta(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	c.OnSample(100, 200, 0)

	_, ok := c.OnSample(100, 200, 0.005)
	assert.False(t, ok)
	assert.Equal(t, 0, c.window.Len(), "duplicate polls must not pollute statistics")
}

func TestControllerDetectsAndCorrectsTremor(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	c.OnSample(0, 0, 0) // seed

	corr, detected := feedAlternating(c, 40, 0, 0, 0.005)
	require.True(t, detected, "oscillating motion should be stabilized")

	st := c.Status()
	assert.True(t, st.Detected)
	assert.Contains(t, st.Causes, CauseDirectional)
	assert.Greater(t, st.Intensity, 0.3)

	// Corrections stay near the oscillation center, not outside it.
	assert.LessOrEqual(t, math.Abs(float64(corr.X)), 10.0)
}

func TestControllerPassesSmoothMotionThrough(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	c.OnSample(0, 0, 0)
	for i := 1; i <= 40; i++ {
		_, ok := c.OnSample(float64(i), 0, float64(i)*0.002)
		assert.False(t, ok, "sample %d: smooth drift must pass through", i)
	}
	assert.False(t, c.Status().Detected)
}

func TestControllerSuppressesOwnEcho(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	c.OnSample(0, 0, 0)

	var corr Correction
	var ok bool
	x := 0.0
	i := 0
	for ; i < 60 && !ok; i++ {
		if i%2 == 0 {
			x += 5
		} else {
			x -= 5
		}
		corr, ok = c.OnSample(x, 0, float64(i)*0.005)
	}
	require.True(t, ok)

	// The injected correction comes back as the next observed position.
	before := c.window.Len()
	_, again := c.OnSample(float64(corr.X), float64(corr.Y), float64(i)*0.005)
	assert.False(t, again)
	assert.Equal(t, before, c.window.Len(), "echo must not enter the window")
}

func TestControllerDisabledIsInert(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	c.SetEnabled(false)

	for i := 0; i < 40; i++ {
		_, ok := c.OnSample(float64(i%2)*5, 0, float64(i)*0.005)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, c.window.Len())
	assert.False(t, c.Status().Enabled)

	// Disabling twice is a safe no-op.
	c.SetEnabled(false)
	assert.False(t, c.Enabled())
}

func TestControllerReenableReseedsWithoutSnap(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	c.OnSample(0, 0, 0)
	_, detected := feedAlternating(c, 40, 0, 0, 0.005)
	require.True(t, detected)

	c.SetEnabled(false)
	require.True(t, c.Toggle(), "toggle back on")

	// The hand has moved far away while disabled. The seed sample and the
	// corrections that follow must track the new position instead of
	// snapping back toward stale filter state.
	_, ok := c.OnSample(5000, 5000, 1.0)
	assert.False(t, ok, "first sample after enable only seeds")

	corr, ok := feedAlternating(c, 40, 5000, 5000, 1.0)
	require.True(t, ok)
	assert.InDelta(t, 5000, float64(corr.X), 15)
	assert.InDelta(t, 5000, float64(corr.Y), 15)
}

func TestControllerToggleIsLinearized(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	assert.False(t, c.Toggle())
	assert.True(t, c.Toggle())
	assert.True(t, c.Enabled())
}

func TestControllerApplySwapsParameters(t *testing.T) {
	t.Parallel()

	c := NewController(DefaultParams())
	c.OnSample(0, 0, 0)
	feedAlternating(c, 40, 0, 0, 0.005)
	require.True(t, c.Status().Detected)

	p := DefaultParams()
	p.Profile = ProfileBasic
	p.WindowSize = 10
	c.Apply(p)

	st := c.Status()
	assert.False(t, st.Detected, "apply restarts the window and clears the last result")
	assert.Equal(t, 10, c.window.Capacity())
}

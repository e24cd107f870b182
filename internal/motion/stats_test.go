package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMagnitudeStats(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		mean, std := MagnitudeStats(nil)
		assert.Zero(t, mean)
		assert.Zero(t, std)
	})

	t.Run("constant magnitudes have zero deviation", func(t *testing.T) {
		t.Parallel()
		deltas := []Vec{{X: 3, Y: 4}, {X: -3, Y: 4}, {X: 0, Y: 5}}
		mean, std := MagnitudeStats(deltas)
		assert.InDelta(t, 5.0, mean, 1e-9)
		assert.InDelta(t, 0.0, std, 1e-9)
	})

	t.Run("population std over mixed magnitudes", func(t *testing.T) {
		t.Parallel()
		deltas := []Vec{{X: 2, Y: 0}, {X: 4, Y: 0}}
		mean, std := MagnitudeStats(deltas)
		assert.InDelta(t, 3.0, mean, 1e-9)
		assert.InDelta(t, 1.0, std, 1e-9)
	})
}

func TestDirectionChangeRatio(t *testing.T) {
	t.Parallel()

	t.Run("all forward motion", func(t *testing.T) {
		t.Parallel()
		deltas := make([]Vec, 10)
		for i := range deltas {
			deltas[i] = Vec{X: 1, Y: 0}
		}
		assert.Zero(t, DirectionChangeRatio(deltas))
	})

	t.Run("perfect alternation approaches one", func(t *testing.T) {
		t.Parallel()
		deltas := make([]Vec, 10)
		for i := range deltas {
			deltas[i] = Vec{X: 5, Y: 0}
			if i%2 == 1 {
				deltas[i].X = -5
			}
		}
		assert.InDelta(t, 1.0, DirectionChangeRatio(deltas), 1e-9)
	})

	t.Run("zero vectors are not evaluated", func(t *testing.T) {
		t.Parallel()
		deltas := []Vec{{X: 1}, {}, {X: -1}}
		assert.Zero(t, DirectionChangeRatio(deltas))
	})

	t.Run("no pairs", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, DirectionChangeRatio([]Vec{{X: 1}}))
	})
}

func TestEstimateFrequency(t *testing.T) {
	t.Parallel()

	t.Run("uniform spacing", func(t *testing.T) {
		t.Parallel()
		times := make([]float64, 15)
		for i := range times {
			times[i] = float64(i) * 0.125
		}
		assert.InDelta(t, 8.0, EstimateFrequency(times, 15), 1e-9)
	})

	t.Run("only the most recent window counts", func(t *testing.T) {
		t.Parallel()
		// Slow start, fast tail: only the tail should be measured.
		times := []float64{0, 10, 20}
		for i := 0; i < 15; i++ {
			times = append(times, 20+float64(i+1)*0.1)
		}
		assert.InDelta(t, 10.0, EstimateFrequency(times, 15), 1e-9)
	})

	t.Run("too few timestamps", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, EstimateFrequency([]float64{0.1, 0.2}, 15))
	})

	t.Run("zero mean interval", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, EstimateFrequency([]float64{1, 1, 1, 1}, 15))
	})
}

func TestJitter(t *testing.T) {
	t.Parallel()

	t.Run("linear motion has no jitter", func(t *testing.T) {
		t.Parallel()
		positions := make([]Vec, 10)
		for i := range positions {
			positions[i] = Vec{X: float64(i) * 2, Y: float64(i)}
		}
		assert.Zero(t, Jitter(positions))
	})

	t.Run("oscillation produces jitter", func(t *testing.T) {
		t.Parallel()
		// x: 0,5,0,5 -> velocity +5,-5,+5 -> acceleration magnitude 10.
		positions := []Vec{{X: 0}, {X: 5}, {X: 0}, {X: 5}}
		assert.InDelta(t, 10.0, Jitter(positions), 1e-9)
	})

	t.Run("needs at least three positions", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Jitter([]Vec{{X: 0}, {X: 100}}))
	})
}

func TestCoefficientOfVariation(t *testing.T) {
	t.Parallel()

	assert.Zero(t, CoefficientOfVariation(0, 5))
	assert.InDelta(t, 0.5, CoefficientOfVariation(10, 5), 1e-9)
}

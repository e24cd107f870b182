package motion

import "math"

// Sample represents a single observed cursor movement event.
type Sample struct {
	DX float64 // movement delta since the previous sample
	DY float64
	X  float64 // absolute cursor position
	Y  float64
	T  float64 // monotonic seconds
}

// Vec is a 2D movement vector.
type Vec struct {
	X float64
	Y float64
}

// Magnitude returns the Euclidean length of the vector.
func (v Vec) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

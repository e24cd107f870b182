package motion

// DefaultWindowSize is the number of samples analyzed for tremor detection.
const DefaultWindowSize = 25

// Window is a fixed-capacity ring of recent motion samples. It keeps three
// parallel sequences (deltas, absolute positions, timestamps) that always
// cover the same temporal slice. Oldest samples are evicted once full.
type Window struct {
	capacity  int
	deltas    []Vec
	positions []Vec
	times     []float64
	head      int
	count     int
}

// NewWindow creates a window holding up to capacity samples.
func NewWindow(capacity int) *Window {
	if capacity < 2 {
		capacity = DefaultWindowSize
	}
	return &Window{
		capacity:  capacity,
		deltas:    make([]Vec, capacity),
		positions: make([]Vec, capacity),
		times:     make([]float64, capacity),
	}
}

// Push appends a sample, evicting the oldest one if the window is full.
func (w *Window) Push(s Sample) {
	w.deltas[w.head] = Vec{X: s.DX, Y: s.DY}
	w.positions[w.head] = Vec{X: s.X, Y: s.Y}
	w.times[w.head] = s.T
	w.head = (w.head + 1) % w.capacity
	if w.count < w.capacity {
		w.count++
	}
}

// Len returns the number of stored samples.
func (w *Window) Len() int {
	return w.count
}

// Capacity returns the fixed capacity of the window.
func (w *Window) Capacity() int {
	return w.capacity
}

// Deltas returns the stored movement deltas, ordered oldest to newest.
func (w *Window) Deltas() []Vec {
	out := make([]Vec, w.count)
	w.copyOrdered(func(dst, src int) { out[dst] = w.deltas[src] })
	return out
}

// Positions returns the stored absolute positions, ordered oldest to newest.
func (w *Window) Positions() []Vec {
	out := make([]Vec, w.count)
	w.copyOrdered(func(dst, src int) { out[dst] = w.positions[src] })
	return out
}

// Timestamps returns the stored timestamps, ordered oldest to newest.
func (w *Window) Timestamps() []float64 {
	out := make([]float64, w.count)
	w.copyOrdered(func(dst, src int) { out[dst] = w.times[src] })
	return out
}

func (w *Window) copyOrdered(set func(dst, src int)) {
	start := 0
	if w.count == w.capacity {
		start = w.head
	}
	for i := 0; i < w.count; i++ {
		set(i, (start+i)%w.capacity)
	}
}

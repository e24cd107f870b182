// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import "sync"

// Params bundles everything the controller needs: window size, classifier
// profile and thresholds, and smoothing settings.
type Params struct {
	WindowSize        int
	Profile           string
	Thresholds        Thresholds
	SmoothingFactor   float64
	AdaptiveSmoothing bool
}

// DefaultParams returns the stock stabilization parameters.
func DefaultParams() Params {
	return Params{
		WindowSize:        DefaultWindowSize,
		Profile:           ProfileEnhanced,
		Thresholds:        DefaultThresholds(),
		SmoothingFactor:   0.4,
		AdaptiveSmoothing: true,
	}
}

// Correction is a stabilized absolute cursor position in device units.
type Correction struct {
	X int
	Y int
}

// Status is a read-only snapshot of the controller state for reporting.
type Status struct {
	Detected    bool    `json:"detected"`
	Causes      []Cause `json:"causes,omitempty"`
	Intensity   float64 `json:"intensity"`
	FrequencyHz float64 `json:"frequency_hz"`
	Enabled     bool    `json:"enabled"`
}

// Controller orchestrates the tremor pipeline: it feeds incoming samples to
// the window and classifier and, when tremor is detected while stabilization
// is active, substitutes a smoothed position for the raw one.
//
// One mutex guards all mutable state so that toggles and status reads are
// linearized with in-flight sample processing.
type Controller struct {
	mu         sync.Mutex
	params     Params
	window     *Window
	classifier Classifier
	filter     *Filter

	enabled bool
	seeded  bool

	lastRealX float64
	lastRealY float64

	// Last emitted correction, used to suppress the echo the correction
	// itself produces on poll-style sources.
	echoX   float64
	echoY   float64
	hasEcho bool

	last Result
}

// NewController creates an enabled controller with the given parameters.
func NewController(p Params) *Controller {
	c := &Controller{enabled: true}
	c.configure(p)
	return c
}

func (c *Controller) configure(p Params) {
	if p.WindowSize < 2 {
		p.WindowSize = DefaultWindowSize
	}
	c.params = p
	c.window = NewWindow(p.WindowSize)
	c.classifier = NewClassifier(p.Profile, p.Thresholds)
	if c.filter == nil {
		c.filter = NewFilter(p.SmoothingFactor, p.AdaptiveSmoothing)
	} else {
		c.filter.Configure(p.SmoothingFactor, p.AdaptiveSmoothing)
	}
}

// Apply swaps the detection and smoothing parameters at runtime. The sample
// window restarts empty; smoothing continuity is preserved.
func (c *Controller) Apply(p Params) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configure(p)
	c.last = Result{}
}

// OnSample processes one raw absolute cursor sample. It returns a corrected
// position and true when the sample was classified as tremor and a smoothed
// substitute should be injected; otherwise the raw motion passes through.
func (c *Controller) OnSample(x, y, t float64) (Correction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return Correction{}, false
	}

	// First sample after enabling only seeds the delta reference and the
	// filter state.
	if !c.seeded {
		c.seed(x, y)
		return Correction{}, false
	}

	// A sample matching the correction we just injected is our own echo,
	// not user motion.
	if c.hasEcho && x == c.echoX && y == c.echoY {
		c.hasEcho = false
		return Correction{}, false
	}
	c.hasEcho = false

	dx := x - c.lastRealX
	dy := y - c.lastRealY
	if dx == 0 && dy == 0 {
		return Correction{}, false
	}

	c.window.Push(Sample{DX: dx, DY: dy, X: x, Y: y, T: t})
	res := c.classifier.Classify(c.window, Vec{X: dx, Y: dy})
	c.last = res

	if !res.Detected {
		c.lastRealX = x
		c.lastRealY = y
		return Correction{}, false
	}

	fx, fy := c.filter.Smooth(x, y, res.Intensity)
	c.lastRealX = float64(fx)
	c.lastRealY = float64(fy)
	c.echoX = float64(fx)
	c.echoY = float64(fy)
	c.hasEcho = true
	return Correction{X: fx, Y: fy}, true
}

func (c *Controller) seed(x, y float64) {
	c.lastRealX = x
	c.lastRealY = y
	c.filter.Seed(x, y)
	c.seeded = true
	c.hasEcho = false
}

// SetEnabled switches stabilization on or off. Enabling forces a re-seed on
// the next sample; calls that do not change the state are no-ops.
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if enabled {
		c.seeded = false
		c.last = Result{}
	}
}

// Toggle flips the enabled state and returns the new value.
func (c *Controller) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
	if c.enabled {
		c.seeded = false
		c.last = Result{}
	}
	return c.enabled
}

// Enabled reports whether stabilization is active.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Status returns a snapshot of the last classification and the enabled flag.
// It never blocks sample processing for longer than the snapshot copy.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	causes := make([]Cause, len(c.last.Causes))
	copy(causes, c.last.Causes)
	return Status{
		Detected:    c.last.Detected,
		Causes:      causes,
		Intensity:   c.last.Intensity,
		FrequencyHz: c.last.FrequencyHz,
		Enabled:     c.enabled,
	}
}

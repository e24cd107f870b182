// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

// Cause names one tremor criterion that fired during classification.
type Cause string

const (
	CauseFrequency   Cause = "Frequency"
	CauseDirectional Cause = "Directional"
	CauseMagnitude   Cause = "Magnitude"
	CauseJitter      Cause = "Jitter"
	CauseVariance    Cause = "Variance"
)

// Result is the outcome of classifying the current window contents.
type Result struct {
	Detected    bool    `json:"detected"`
	Intensity   float64 `json:"intensity"` // 0..1
	Causes      []Cause `json:"causes,omitempty"`
	FrequencyHz float64 `json:"frequency_hz"`
}

// Thresholds holds the tunable detection parameters. Defaults follow the
// physiological tremor band of roughly 3-12 Hz.
type Thresholds struct {
	ShakeThreshold           float64
	DirectionChangeThreshold float64
	MinFrequency             float64
	MaxFrequency             float64
	FrequencyWindow          int
	StdDevThreshold          float64
	JitterThreshold          float64
}

// DefaultThresholds returns the stock detection parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ShakeThreshold:           1.7,
		DirectionChangeThreshold: 0.4,
		MinFrequency:             3.0,
		MaxFrequency:             12.0,
		FrequencyWindow:          15,
		StdDevThreshold:          0.75,
		JitterThreshold:          2.0,
	}
}

// Classifier decides whether the motion stored in a window looks like tremor.
// Classification is a pure function of the window contents and the current
// delta; below half window capacity it always reports no tremor.
type Classifier interface {
	Classify(w *Window, current Vec) Result
}

// Classifier profiles selectable via configuration.
const (
	ProfileEnhanced = "enhanced"
	ProfileBasic    = "basic"
)

// NewClassifier returns the classifier for the given profile name. Unknown
// profiles fall back to the enhanced classifier.
func NewClassifier(profile string, th Thresholds) Classifier {
	if profile == ProfileBasic {
		return &BasicClassifier{Thresholds: th}
	}
	return &EnhancedClassifier{Thresholds: th}
}

// EnhancedClassifier scores five independent criteria (magnitude spike,
// direction reversals, tremor-band frequency, jitter, magnitude variance)
// with equal weight. Tremor is reported when at least two criteria fire.
type EnhancedClassifier struct {
	Thresholds
}

const enhancedScoreThreshold = 0.3 // 1/5 fails, 2/5 passes

func (c *EnhancedClassifier) Classify(w *Window, current Vec) Result {
	if w.Len() < w.Capacity()/2 {
		return Result{}
	}

	deltas := w.Deltas()
	mean, std := MagnitudeStats(deltas)
	ratio := DirectionChangeRatio(deltas)
	freq := EstimateFrequency(w.Timestamps(), c.FrequencyWindow)
	jitter := Jitter(w.Positions())
	cv := CoefficientOfVariation(mean, std)

	var causes []Cause
	if freq >= c.MinFrequency && freq <= c.MaxFrequency {
		causes = append(causes, CauseFrequency)
	}
	if ratio > c.DirectionChangeThreshold {
		causes = append(causes, CauseDirectional)
	}
	if current.Magnitude() > mean*c.ShakeThreshold {
		causes = append(causes, CauseMagnitude)
	}
	if jitter > c.JitterThreshold {
		causes = append(causes, CauseJitter)
	}
	if cv > c.StdDevThreshold {
		causes = append(causes, CauseVariance)
	}

	score := float64(len(causes)) / 5.0
	res := Result{
		Detected:    score > enhancedScoreThreshold,
		Intensity:   score,
		FrequencyHz: freq,
	}
	if res.Detected {
		res.Causes = causes
	}
	return res
}

// BasicClassifier is the minimal single-criterion profile: a magnitude spike,
// a high direction-change ratio, or a raw standard-deviation check each
// suffice on their own.
type BasicClassifier struct {
	Thresholds
}

// Raw std check of the basic profile: std above this fraction of the mean
// magnitude counts as tremor.
const basicStdRatio = 0.8

func (c *BasicClassifier) Classify(w *Window, current Vec) Result {
	if w.Len() < w.Capacity()/2 {
		return Result{}
	}

	deltas := w.Deltas()
	mean, std := MagnitudeStats(deltas)
	ratio := DirectionChangeRatio(deltas)
	freq := EstimateFrequency(w.Timestamps(), c.FrequencyWindow)

	var causes []Cause
	if current.Magnitude() > mean*c.ShakeThreshold {
		causes = append(causes, CauseMagnitude)
	}
	if ratio > c.DirectionChangeThreshold {
		causes = append(causes, CauseDirectional)
	}
	if std > mean*basicStdRatio {
		causes = append(causes, CauseVariance)
	}

	res := Result{
		Detected:    len(causes) > 0,
		Intensity:   float64(len(causes)) / 3.0,
		FrequencyHz: freq,
	}
	if res.Detected {
		res.Causes = causes
	}
	return res
}

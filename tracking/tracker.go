package tracking

import (
	"math"

	"github.com/theoremus-urban-solutions/arnav/route"
)

// Config tunes a Tracker.
type Config struct {
	// WindowSize is the moving-average capacity.
	WindowSize int
	// AlignTolerance is subtracted from the smoothed along when matching it
	// to a step end, meters.
	AlignTolerance float64
	// StepAdvanceMeters advances to the next step once the remaining
	// distance to the current step's end drops to this value.
	StepAdvanceMeters float64
	// StepEndSlack advances when the smoothed along is within this many
	// meters of the step end, regardless of StepAdvanceMeters.
	StepEndSlack float64
}

// DefaultConfig returns the tracker defaults.
func DefaultConfig() Config {
	return Config{
		WindowSize:        4,
		AlignTolerance:    0.5,
		StepAdvanceMeters: 8,
		StepEndSlack:      1,
	}
}

// Tracker holds ProgressState for one route.
type Tracker struct {
	route *route.Route
	cfg   Config

	history  []float64
	smoothed float64
	raw      float64
	step     int
}

// NewTracker returns a Tracker for r. Zero or negative config values fall
// back to their defaults.
func NewTracker(r *route.Route, cfg Config) *Tracker {
	def := DefaultConfig()
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.AlignTolerance <= 0 {
		cfg.AlignTolerance = def.AlignTolerance
	}
	if cfg.StepAdvanceMeters <= 0 {
		cfg.StepAdvanceMeters = def.StepAdvanceMeters
	}
	if cfg.StepEndSlack <= 0 {
		cfg.StepEndSlack = def.StepEndSlack
	}
	if r == nil {
		r = &route.Route{}
	}
	return &Tracker{
		route:   r,
		cfg:     cfg,
		history: make([]float64, 0, cfg.WindowSize),
	}
}

// Route returns the route being tracked.
func (t *Tracker) Route() *route.Route { return t.route }

// Update projects a fix, smooths the result and updates the current step.
func (t *Tracker) Update(lat, lon float64) (smoothedAlong float64, stepIndex int) {
	t.raw = Project(t.route.Path, lat, lon).Along
	t.smooth(t.raw)
	t.alignStep()
	t.advanceStep()
	return t.smoothed, t.step
}

// smooth pushes v into the FIFO and recomputes the mean.
func (t *Tracker) smooth(v float64) {
	if len(t.history) == t.cfg.WindowSize {
		copy(t.history, t.history[1:])
		t.history = t.history[:len(t.history)-1]
	}
	t.history = append(t.history, v)

	sum := 0.0
	for _, h := range t.history {
		sum += h
	}
	t.smoothed = sum / float64(len(t.history))
	if math.IsNaN(t.smoothed) {
		t.smoothed = 0
	}
}

// alignStep moves the step index forward to the first step whose end lies
// beyond the smoothed along-distance; the index never moves back.
func (t *Tracker) alignStep() {
	aligned := len(t.route.Ranges)
	for i, rg := range t.route.Ranges {
		if rg.EndAlong > t.smoothed-t.cfg.AlignTolerance {
			aligned = i
			break
		}
	}
	if aligned > t.step {
		t.step = aligned
	}
}

func (t *Tracker) advanceStep() {
	if t.step >= len(t.route.Ranges) {
		return
	}
	stepEnd := t.route.Ranges[t.step].EndAlong
	remaining := math.Max(0, stepEnd-t.smoothed)
	if t.smoothed >= stepEnd-t.cfg.StepEndSlack || remaining <= t.cfg.StepAdvanceMeters {
		t.step++
	}
}

// Reset clears progress; used when the same route restarts.
func (t *Tracker) Reset() {
	t.history = t.history[:0]
	t.smoothed = 0
	t.raw = 0
	t.step = 0
}

// SmoothedAlong returns the latest smoothed along-distance.
func (t *Tracker) SmoothedAlong() float64 { return t.smoothed }

// RawAlong returns the latest unsmoothed along-distance.
func (t *Tracker) RawAlong() float64 { return t.raw }

// CurrentStep returns the current step index; it equals the step count
// once every step has been passed.
func (t *Tracker) CurrentStep() int { return t.step }

// PastAllSteps reports whether the walker has passed the last step.
func (t *Tracker) PastAllSteps() bool { return t.step >= len(t.route.Ranges) }

// Remaining returns the distance left to the end of the route.
func (t *Tracker) Remaining() float64 {
	return math.Max(0, t.route.EndAlong()-t.smoothed)
}

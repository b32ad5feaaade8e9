package course

import (
	"math"

	"github.com/theoremus-urban-solutions/arnav/geo"
)

// Fix is a timestamped GPS position. Timestamp is in seconds.
type Fix struct {
	Lat       float64
	Lon       float64
	Timestamp float64
}

// Config tunes an Estimator.
type Config struct {
	// WindowSeconds bounds the age spread of retained fixes.
	WindowSeconds float64
	// MinSpeed is the speed in m/s below which no course is reported.
	MinSpeed float64
}

// DefaultConfig returns a 5 s window and a 0.5 m/s speed gate.
func DefaultConfig() Config {
	return Config{WindowSeconds: 5, MinSpeed: 0.5}
}

// minElapsed keeps the speed finite when two fixes share a timestamp.
const minElapsed = 0.001

// Estimator keeps a time window of fixes.
type Estimator struct {
	cfg   Config
	fixes []Fix
}

// NewEstimator returns an Estimator with cfg, substituting defaults for
// non-positive values.
func NewEstimator(cfg Config) *Estimator {
	def := DefaultConfig()
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = def.WindowSeconds
	}
	if cfg.MinSpeed < 0 {
		cfg.MinSpeed = def.MinSpeed
	}
	return &Estimator{cfg: cfg}
}

// Push appends a fix and evicts fixes older than the window relative to it.
func (e *Estimator) Push(lat, lon, timestamp float64) {
	e.fixes = append(e.fixes, Fix{Lat: lat, Lon: lon, Timestamp: timestamp})
	newest := e.fixes[len(e.fixes)-1].Timestamp
	drop := 0
	for drop < len(e.fixes)-1 && newest-e.fixes[drop].Timestamp > e.cfg.WindowSeconds {
		drop++
	}
	if drop > 0 {
		e.fixes = append(e.fixes[:0], e.fixes[drop:]...)
	}
}

// Estimate returns the current course in degrees [0,360) when one is
// available.
func (e *Estimator) Estimate() (hasCourse bool, degrees float64) {
	speed, ok := e.Speed()
	if !ok || speed < e.cfg.MinSpeed {
		return false, 0
	}
	oldest, newest := e.fixes[0], e.fixes[len(e.fixes)-1]
	return true, geo.Bearing(oldest.Lat, oldest.Lon, newest.Lat, newest.Lon)
}

// Speed returns the average speed in m/s across the window. ok is false
// with fewer than two fixes.
func (e *Estimator) Speed() (speed float64, ok bool) {
	if len(e.fixes) < 2 {
		return 0, false
	}
	oldest, newest := e.fixes[0], e.fixes[len(e.fixes)-1]
	dist := geo.Haversine(oldest.Lat, oldest.Lon, newest.Lat, newest.Lon)
	elapsed := math.Max(minElapsed, newest.Timestamp-oldest.Timestamp)
	return dist / elapsed, true
}

// Heading returns the course when available and fallback otherwise, for
// callers that need a direction every frame (camera yaw, for instance).
func (e *Estimator) Heading(fallback float64) (degrees float64, fromCourse bool) {
	if ok, c := e.Estimate(); ok {
		return c, true
	}
	return geo.Normalize360(fallback), false
}

// Len returns the number of fixes in the window.
func (e *Estimator) Len() int { return len(e.fixes) }

// Reset drops every fix.
func (e *Estimator) Reset() { e.fixes = e.fixes[:0] }

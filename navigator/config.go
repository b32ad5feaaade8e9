package navigator

import (
	"github.com/theoremus-urban-solutions/arnav/arrival"
	"github.com/theoremus-urban-solutions/arnav/course"
	"github.com/theoremus-urban-solutions/arnav/guidance"
	"github.com/theoremus-urban-solutions/arnav/route"
	"github.com/theoremus-urban-solutions/arnav/tracking"
)

// Config gathers the tuning of every pipeline stage.
type Config struct {
	Build    route.BuildOptions
	Tracking tracking.Config
	Course   course.Config
	Guidance guidance.Config
	Arrival  arrival.Config

	// ArrowSmoothTime is the guidance arrow damping time, seconds.
	ArrowSmoothTime float64
	// LookaheadMeters is how far ahead of the walker the UI arrow aims.
	LookaheadMeters float64
	// UIArrowSmoothing is the UI arrow lerp rate per second.
	UIArrowSmoothing float64
}

// DefaultConfig returns the defaults of every stage.
func DefaultConfig() Config {
	return Config{
		Build:            route.DefaultBuildOptions(),
		Tracking:         tracking.DefaultConfig(),
		Course:           course.DefaultConfig(),
		Guidance:         guidance.DefaultConfig(),
		Arrival:          arrival.DefaultConfig(),
		ArrowSmoothTime:  guidance.DefaultSmoothTime,
		LookaheadMeters:  guidance.DefaultLookaheadMeters,
		UIArrowSmoothing: 4,
	}
}

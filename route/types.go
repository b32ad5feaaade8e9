package route

// Point is a WGS84 latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat" msgpack:"lat"`
	Lon float64 `json:"lng" msgpack:"lng"`
}

// IsZero reports whether p is the zero coordinate, which the directions
// provider never returns for a real location.
func (p Point) IsZero() bool { return p.Lat == 0 && p.Lon == 0 }

// Step is one instruction of a walking route as delivered by the routing
// provider.
type Step struct {
	Maneuver        string `json:"maneuver,omitempty" msgpack:"maneuver"`
	InstructionHTML string `json:"html_instructions,omitempty" msgpack:"html"`
	Start           Point  `json:"start_location" msgpack:"start"`
	End             Point  `json:"end_location" msgpack:"end"`
	Polyline        string `json:"polyline,omitempty" msgpack:"polyline"`
}

// PathTable is the flattened, resampled route geometry. Points and
// Cumulative always have the same length, Cumulative[0] is 0 and the
// sequence is non-decreasing.
type PathTable struct {
	Points     []Point
	Cumulative []float64
}

// Len returns the number of path points.
func (p PathTable) Len() int { return len(p.Points) }

// StepRange locates a step on the path, both by point index and by
// along-distance in meters.
type StepRange struct {
	StartIndex int
	EndIndex   int
	StartAlong float64
	EndAlong   float64
}

// Route bundles a path with its post-dedup steps. Steps and Ranges are
// parallel slices.
type Route struct {
	Path   PathTable
	Steps  []Step
	Ranges []StepRange
}

// BuildOptions tunes Build.
type BuildOptions struct {
	// ResampleInterval is the maximum spacing between path points, meters.
	ResampleInterval float64
	// DedupThreshold merges steps whose end along-distances differ by at most
	// this many meters. Zero or negative disables the merge.
	DedupThreshold float64
}

// DefaultBuildOptions returns a 5 m resample interval and a 12 m dedup
// threshold.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		ResampleInterval: 5,
		DedupThreshold:   12,
	}
}

package route

import (
	"math"

	"github.com/theoremus-urban-solutions/arnav/geo"
	"github.com/theoremus-urban-solutions/arnav/polyline"
)

// Build flattens steps into a resampled path and merges steps whose ends
// fall within opts.DedupThreshold of each other. An empty step list yields
// an empty Route.
func Build(steps []Step, opts BuildOptions) *Route {
	if opts.ResampleInterval <= 0 {
		opts.ResampleInterval = DefaultBuildOptions().ResampleInterval
	}

	b := &pathBuilder{
		points:     make([]Point, 0, len(steps)*8),
		cumulative: make([]float64, 0, len(steps)*8),
	}
	ranges := make([]StepRange, 0, len(steps))

	for _, st := range steps {
		geom := stepGeometry(st)

		startIndex := -1
		for i := 0; i < len(geom)-1; i++ {
			a, c := geom[i], geom[i+1]
			segLen := geo.Haversine(a.Lat, a.Lon, c.Lat, c.Lon)
			subdivisions := int(math.Max(1, math.Ceil(segLen/opts.ResampleInterval)))

			for j := 0; j <= subdivisions; j++ {
				t := float64(j) / float64(subdivisions)
				lat, lon := geo.Lerp(a.Lat, a.Lon, c.Lat, c.Lon, t)
				idx := b.add(Point{Lat: lat, Lon: lon})
				if startIndex < 0 {
					startIndex = idx
				}
			}
		}
		if startIndex < 0 {
			startIndex = b.add(geom[0])
		}

		endIndex := len(b.points) - 1
		ranges = append(ranges, StepRange{
			StartIndex: startIndex,
			EndIndex:   endIndex,
			StartAlong: b.cumulative[startIndex],
			EndAlong:   b.cumulative[endIndex],
		})
	}

	out := &Route{
		Path:   PathTable{Points: b.points, Cumulative: b.cumulative},
		Steps:  append([]Step(nil), steps...),
		Ranges: ranges,
	}
	out.Steps, out.Ranges = Dedup(out.Steps, out.Ranges, opts.DedupThreshold)
	return out
}

// stepGeometry returns the decoded polyline when it has at least two
// points, otherwise the straight segment from the step's start to its end.
func stepGeometry(st Step) []Point {
	if st.Polyline != "" {
		coords := polyline.Decode(st.Polyline)
		if len(coords) >= 2 {
			pts := make([]Point, len(coords))
			for i, c := range coords {
				pts[i] = Point{Lat: c.Lat, Lon: c.Lon}
			}
			return pts
		}
	}
	return []Point{st.Start, st.End}
}

type pathBuilder struct {
	points     []Point
	cumulative []float64
}

// add appends p unless it equals the last point and returns the index p
// occupies in the path either way.
func (b *pathBuilder) add(p Point) int {
	n := len(b.points)
	if n == 0 {
		b.points = append(b.points, p)
		b.cumulative = append(b.cumulative, 0)
		return 0
	}
	last := b.points[n-1]
	if last == p {
		return n - 1
	}
	d := geo.Haversine(last.Lat, last.Lon, p.Lat, p.Lon)
	b.points = append(b.points, p)
	b.cumulative = append(b.cumulative, b.cumulative[n-1]+d)
	return n
}

// Dedup merges each step into the last kept step when their end
// along-distances differ by no more than threshold. The kept step's range
// is extended to the merged step's end, and a kept step without a maneuver
// adopts the merged step when that one has a maneuver. The first step is
// always kept.
func Dedup(steps []Step, ranges []StepRange, threshold float64) ([]Step, []StepRange) {
	if len(steps) <= 1 || threshold <= 0 || len(ranges) != len(steps) {
		return steps, ranges
	}

	keptSteps := make([]Step, 0, len(steps))
	keptRanges := make([]StepRange, 0, len(ranges))
	keptSteps = append(keptSteps, steps[0])
	keptRanges = append(keptRanges, ranges[0])

	for i := 1; i < len(steps); i++ {
		last := len(keptRanges) - 1
		if math.Abs(ranges[i].EndAlong-keptRanges[last].EndAlong) <= threshold {
			if keptSteps[last].Maneuver == "" && steps[i].Maneuver != "" {
				keptSteps[last] = steps[i]
			}
			keptRanges[last].EndIndex = ranges[i].EndIndex
			keptRanges[last].EndAlong = ranges[i].EndAlong
			continue
		}
		keptSteps = append(keptSteps, steps[i])
		keptRanges = append(keptRanges, ranges[i])
	}
	return keptSteps, keptRanges
}

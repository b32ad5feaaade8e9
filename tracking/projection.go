package tracking

import (
	"math"

	"github.com/theoremus-urban-solutions/arnav/geo"
	"github.com/theoremus-urban-solutions/arnav/route"
)

// Projection is the closest point on a path to a fix.
type Projection struct {
	// Along is the along-distance of the snapped point, meters.
	Along float64
	// Segment is the index i of the winning segment [i, i+1].
	Segment int
	// T is the fraction along the winning segment, in [0,1].
	T float64
	// Distance is the cross-track distance from the fix, meters.
	Distance float64
	// Point is the snapped position.
	Point route.Point
}

// Project snaps a fix onto path. Paths with fewer than two points project
// to their first point (or the zero value) with Along 0.
func Project(path route.PathTable, lat, lon float64) Projection {
	n := len(path.Points)
	if n == 0 {
		return Projection{}
	}
	if n < 2 || len(path.Cumulative) != n {
		p := path.Points[0]
		return Projection{
			Point:    p,
			Distance: geo.Haversine(lat, lon, p.Lat, p.Lon),
		}
	}

	// Work in meters around the fix so the fix itself sits at the origin.
	minDist2 := math.MaxFloat64
	bestSeg := 0
	bestT := 0.0

	ax, ay := geo.LocalMeters(lat, lon, path.Points[0].Lat, path.Points[0].Lon)
	for i := 0; i < n-1; i++ {
		b := path.Points[i+1]
		bx, by := geo.LocalMeters(lat, lon, b.Lat, b.Lon)

		t, d2 := geo.ProjectOnSegment(ax, ay, bx, by, 0, 0)
		if d2 < minDist2 {
			minDist2 = d2
			bestSeg = i
			bestT = t
		}
		ax, ay = bx, by
	}

	a := path.Points[bestSeg]
	b := path.Points[bestSeg+1]
	segLen := path.Cumulative[bestSeg+1] - path.Cumulative[bestSeg]
	snapLat, snapLon := geo.Lerp(a.Lat, a.Lon, b.Lat, b.Lon, bestT)

	along := path.Cumulative[bestSeg] + segLen*bestT
	if math.IsNaN(along) {
		along = 0
	}
	return Projection{
		Along:    along,
		Segment:  bestSeg,
		T:        bestT,
		Distance: math.Sqrt(minDist2),
		Point:    route.Point{Lat: snapLat, Lon: snapLon},
	}
}

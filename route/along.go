package route

import (
	"sort"

	"github.com/theoremus-urban-solutions/arnav/geo"
)

// EndAlong returns the total path length in meters, 0 for an empty path.
func (p PathTable) EndAlong() float64 {
	if len(p.Cumulative) == 0 {
		return 0
	}
	return p.Cumulative[len(p.Cumulative)-1]
}

// segmentAt returns the index i of the segment [i, i+1] containing along
// and the fraction of the way through it. along must lie strictly inside
// the path and the path must have at least two points.
func (p PathTable) segmentAt(along float64) (int, float64) {
	idx := sort.SearchFloat64s(p.Cumulative, along)
	if idx < 1 {
		idx = 1
	} else if idx > len(p.Points)-1 {
		idx = len(p.Points) - 1
	}
	a, b := p.Cumulative[idx-1], p.Cumulative[idx]
	t := 0.0
	if b-a > 0 {
		t = (along - a) / (b - a)
	}
	return idx - 1, t
}

// PointAtAlong returns the path position at along meters, clamped to the
// path ends. ok is false for an empty path.
func (p PathTable) PointAtAlong(along float64) (Point, bool) {
	switch len(p.Points) {
	case 0:
		return Point{}, false
	case 1:
		return p.Points[0], true
	}
	if along <= 0 {
		return p.Points[0], true
	}
	if along >= p.EndAlong() {
		return p.Points[len(p.Points)-1], true
	}
	i, t := p.segmentAt(along)
	a, b := p.Points[i], p.Points[i+1]
	lat, lon := geo.Lerp(a.Lat, a.Lon, b.Lat, b.Lon, t)
	return Point{Lat: lat, Lon: lon}, true
}

// HeadingAtAlong returns the bearing of the path segment containing along.
// Paths shorter than two points have heading 0.
func (p PathTable) HeadingAtAlong(along float64) float64 {
	if len(p.Points) < 2 {
		return 0
	}
	i := 0
	switch {
	case along <= 0:
		i = 0
	case along >= p.EndAlong():
		i = len(p.Points) - 2
	default:
		i, _ = p.segmentAt(along)
	}
	a, b := p.Points[i], p.Points[i+1]
	return geo.Bearing(a.Lat, a.Lon, b.Lat, b.Lon)
}

// EndAlong is a shorthand for r.Path.EndAlong.
func (r *Route) EndAlong() float64 {
	if r == nil {
		return 0
	}
	return r.Path.EndAlong()
}

// Destination returns the last path point, or the last step's end when the
// path is empty.
func (r *Route) Destination() (Point, bool) {
	if r == nil {
		return Point{}, false
	}
	if n := len(r.Path.Points); n > 0 {
		return r.Path.Points[n-1], true
	}
	if n := len(r.Steps); n > 0 {
		return r.Steps[n-1].End, true
	}
	return Point{}, false
}

package tracking

import (
	"math"
	"testing"

	"github.com/theoremus-urban-solutions/arnav/geo"
	"github.com/theoremus-urban-solutions/arnav/route"
)

const originLat, originLon = 40.7128, -74.0060

func north(m float64) route.Point {
	lat, lon := geo.Destination(originLat, originLon, 0, m)
	return route.Point{Lat: lat, Lon: lon}
}

func offsetPoint(east, northM float64) route.Point {
	lat, lon := geo.Destination(originLat, originLon, 0, northM)
	lat, lon = geo.Destination(lat, lon, 90, east)
	return route.Point{Lat: lat, Lon: lon}
}

// straightRoute builds a route due north with step boundaries at the given
// along-distances.
func straightRoute(t *testing.T, bounds ...float64) *route.Route {
	t.Helper()
	steps := make([]route.Step, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		steps = append(steps, route.Step{Start: north(bounds[i]), End: north(bounds[i+1])})
	}
	return route.Build(steps, route.BuildOptions{ResampleInterval: 5})
}

func TestProject_AtPathPoints(t *testing.T) {
	r := straightRoute(t, 0, 60, 130)
	for i, p := range r.Path.Points {
		got := Project(r.Path, p.Lat, p.Lon)
		if math.Abs(got.Along-r.Path.Cumulative[i]) > 0.05 {
			t.Errorf("point %d: expected along %f, got %f", i, r.Path.Cumulative[i], got.Along)
		}
		if got.Distance > 0.05 {
			t.Errorf("point %d: expected zero cross-track, got %f", i, got.Distance)
		}
	}
}

func TestProject_OffPath(t *testing.T) {
	r := straightRoute(t, 0, 100)

	tests := []struct {
		name      string
		fix       route.Point
		wantAlong float64
		wantDist  float64
	}{
		{"east of middle", offsetPoint(7, 42), 42, 7},
		{"west of start", offsetPoint(-3, 0), 0, 3},
		{"before start", offsetPoint(0, -20), 0, 20},
		{"beyond end", offsetPoint(0, 130), 100, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(r.Path, tt.fix.Lat, tt.fix.Lon)
			if math.Abs(got.Along-tt.wantAlong) > 0.3 {
				t.Errorf("expected along %f, got %f", tt.wantAlong, got.Along)
			}
			if math.Abs(got.Distance-tt.wantDist) > 0.3 {
				t.Errorf("expected distance %f, got %f", tt.wantDist, got.Distance)
			}
		})
	}
}

func TestProject_DegeneratePaths(t *testing.T) {
	if got := Project(route.PathTable{}, 1, 1); got.Along != 0 || math.IsNaN(got.Distance) {
		t.Errorf("empty path: unexpected %+v", got)
	}

	single := route.PathTable{Points: []route.Point{north(0)}, Cumulative: []float64{0}}
	got := Project(single, north(10).Lat, north(10).Lon)
	if got.Along != 0 || math.Abs(got.Distance-10) > 0.1 {
		t.Errorf("single point path: unexpected %+v", got)
	}

	// Two identical points: zero-length segment must not divide by zero.
	dup := route.PathTable{Points: []route.Point{north(0), north(0)}, Cumulative: []float64{0, 0}}
	got = Project(dup, north(5).Lat, north(5).Lon)
	if got.Along != 0 || got.T != 0 || math.IsNaN(got.Distance) {
		t.Errorf("zero-length segment: unexpected %+v", got)
	}
}

func TestTracker_SmoothingConverges(t *testing.T) {
	r := straightRoute(t, 0, 200)
	tr := NewTracker(r, DefaultConfig())

	fix := north(73)
	var along float64
	for i := 0; i < DefaultConfig().WindowSize; i++ {
		along, _ = tr.Update(fix.Lat, fix.Lon)
	}
	if math.Abs(along-tr.RawAlong()) > 1e-9 {
		t.Errorf("expected smoothed %f to equal raw %f after a full window", along, tr.RawAlong())
	}
	if math.Abs(along-73) > 0.1 {
		t.Errorf("expected ~73 m, got %f", along)
	}
}

func TestTracker_MovingAverage(t *testing.T) {
	r := straightRoute(t, 0, 200)
	tr := NewTracker(r, Config{WindowSize: 2})

	a, b, c := north(10), north(20), north(40)
	tr.Update(a.Lat, a.Lon)
	got, _ := tr.Update(b.Lat, b.Lon)
	if math.Abs(got-15) > 0.1 {
		t.Errorf("expected mean 15, got %f", got)
	}
	got, _ = tr.Update(c.Lat, c.Lon)
	if math.Abs(got-30) > 0.1 {
		t.Errorf("expected oldest value evicted and mean 30, got %f", got)
	}
}

func TestTracker_StepAdvanceIsMonotonic(t *testing.T) {
	r := straightRoute(t, 0, 50, 100, 150)
	cfg := DefaultConfig()
	cfg.WindowSize = 1
	tr := NewTracker(r, cfg)

	tests := []struct {
		along    float64
		wantStep int
	}{
		{10, 0},
		{41, 0}, // 9 m to the end of step 0
		{43, 1}, // within 8 m: advance
		{20, 1}, // walking back never rewinds
		{75, 1},
		{95, 2},  // within 8 m of step 1's end
		{160, 3}, // past the route: step count
	}
	for _, tt := range tests {
		p := north(tt.along)
		_, step := tr.Update(p.Lat, p.Lon)
		if step != tt.wantStep {
			t.Errorf("along %v: expected step %d, got %d", tt.along, tt.wantStep, step)
		}
	}
	if !tr.PastAllSteps() {
		t.Errorf("expected tracker past all steps")
	}

	tr.Reset()
	if tr.CurrentStep() != 0 || tr.SmoothedAlong() != 0 {
		t.Errorf("reset should clear progress")
	}
}

func TestNewTracker_ZeroConfigTakesDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"window only", Config{WindowSize: 1}},
		{"negative values", Config{WindowSize: 1, AlignTolerance: -1, StepAdvanceMeters: -2, StepEndSlack: -3}},
	}
	def := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(nil, tt.cfg)
			if tr.cfg.WindowSize != 1 {
				t.Errorf("expected window 1, got %d", tr.cfg.WindowSize)
			}
			if tr.cfg.AlignTolerance != def.AlignTolerance {
				t.Errorf("expected align tolerance %v, got %v", def.AlignTolerance, tr.cfg.AlignTolerance)
			}
			if tr.cfg.StepAdvanceMeters != def.StepAdvanceMeters {
				t.Errorf("expected step advance %v, got %v", def.StepAdvanceMeters, tr.cfg.StepAdvanceMeters)
			}
			if tr.cfg.StepEndSlack != def.StepEndSlack {
				t.Errorf("expected step end slack %v, got %v", def.StepEndSlack, tr.cfg.StepEndSlack)
			}
		})
	}

	// A zero-valued window-one config advances exactly like the defaults.
	r := straightRoute(t, 0, 50, 100)
	tr := NewTracker(r, Config{WindowSize: 1})
	p := north(43)
	if _, step := tr.Update(p.Lat, p.Lon); step != 1 {
		t.Errorf("expected step 1 within advance distance, got %d", step)
	}
}

func TestTracker_EmptyRoute(t *testing.T) {
	tr := NewTracker(nil, DefaultConfig())
	along, step := tr.Update(1, 2)
	if along != 0 || step != 0 {
		t.Errorf("expected zero progress on empty route, got %f/%d", along, step)
	}
	if tr.Remaining() != 0 {
		t.Errorf("expected no remaining distance, got %f", tr.Remaining())
	}
}

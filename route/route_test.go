package route

import (
	"math"
	"testing"

	"github.com/theoremus-urban-solutions/arnav/geo"
	"github.com/theoremus-urban-solutions/arnav/polyline"
)

const originLat, originLon = 48.137, 11.575

// north returns the point m meters north of the test origin.
func north(m float64) Point {
	lat, lon := geo.Destination(originLat, originLon, 0, m)
	return Point{Lat: lat, Lon: lon}
}

func straightStep(fromM, toM float64, maneuver string) Step {
	return Step{Maneuver: maneuver, Start: north(fromM), End: north(toM)}
}

func assertPathInvariants(t *testing.T, p PathTable) {
	t.Helper()
	if len(p.Points) != len(p.Cumulative) {
		t.Fatalf("points/cumulative length mismatch: %d vs %d", len(p.Points), len(p.Cumulative))
	}
	if len(p.Cumulative) > 0 && p.Cumulative[0] != 0 {
		t.Errorf("cumulative[0] = %f, expected 0", p.Cumulative[0])
	}
	for i := 1; i < len(p.Cumulative); i++ {
		if p.Cumulative[i] < p.Cumulative[i-1] {
			t.Fatalf("cumulative decreases at %d: %f < %f", i, p.Cumulative[i], p.Cumulative[i-1])
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	r := Build(nil, DefaultBuildOptions())
	if r.Path.Len() != 0 || len(r.Steps) != 0 || len(r.Ranges) != 0 {
		t.Errorf("expected empty route, got %d points, %d steps", r.Path.Len(), len(r.Steps))
	}
	if r.EndAlong() != 0 {
		t.Errorf("expected 0 end along, got %f", r.EndAlong())
	}
	if _, ok := r.Path.PointAtAlong(10); ok {
		t.Errorf("expected no point on empty path")
	}
}

func TestBuild_ResampleAndRanges(t *testing.T) {
	steps := []Step{
		straightStep(0, 40, ""),
		straightStep(40, 100, "turn-left"),
		straightStep(100, 130, ""),
	}
	r := Build(steps, BuildOptions{ResampleInterval: 5})
	assertPathInvariants(t, r.Path)

	for i := 1; i < r.Path.Len(); i++ {
		if d := r.Path.Cumulative[i] - r.Path.Cumulative[i-1]; d > 5.01 {
			t.Fatalf("spacing %f at %d exceeds resample interval", d, i)
		}
	}
	if got := r.EndAlong(); math.Abs(got-130) > 0.5 {
		t.Errorf("expected ~130 m route, got %f", got)
	}
	if len(r.Ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(r.Ranges))
	}
	for i := 1; i < len(r.Ranges); i++ {
		if r.Ranges[i].StartIndex != r.Ranges[i-1].EndIndex {
			t.Errorf("step %d starts at %d, previous ends at %d", i, r.Ranges[i].StartIndex, r.Ranges[i-1].EndIndex)
		}
		if r.Ranges[i].StartAlong != r.Ranges[i-1].EndAlong {
			t.Errorf("step %d start along %f != previous end %f", i, r.Ranges[i].StartAlong, r.Ranges[i-1].EndAlong)
		}
	}
	for i, rg := range r.Ranges {
		if rg.EndAlong < rg.StartAlong {
			t.Errorf("range %d: end %f before start %f", i, rg.EndAlong, rg.StartAlong)
		}
	}
	if math.Abs(r.Ranges[1].StartAlong-40) > 0.5 || math.Abs(r.Ranges[1].EndAlong-100) > 0.5 {
		t.Errorf("unexpected middle range %+v", r.Ranges[1])
	}
}

func TestBuild_PolylinePreferredOverEndpoints(t *testing.T) {
	// Polyline goes 0 -> 20 m north -> 20 m north + 20 m east; start/end are bogus.
	lat1, lon1 := geo.Destination(originLat, originLon, 0, 20)
	lat2, lon2 := geo.Destination(lat1, lon1, 90, 20)
	enc := polyline.Encode([]polyline.Coordinate{
		{Lat: originLat, Lon: originLon},
		{Lat: lat1, Lon: lon1},
		{Lat: lat2, Lon: lon2},
	})
	st := Step{Start: north(500), End: north(900), Polyline: enc}

	r := Build([]Step{st}, DefaultBuildOptions())
	assertPathInvariants(t, r.Path)
	if got := r.EndAlong(); math.Abs(got-40) > 0.5 {
		t.Errorf("expected ~40 m along polyline, got %f", got)
	}
}

func TestBuild_MalformedPolylineFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		polyline string
	}{
		{"garbage", "\x01\x02\x03"},
		{"single point", polyline.Encode([]polyline.Coordinate{{Lat: 1, Lon: 1}})},
		{"truncated", "_p~iF~ps|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Step{Start: north(0), End: north(25), Polyline: tt.polyline}
			r := Build([]Step{st}, DefaultBuildOptions())
			assertPathInvariants(t, r.Path)
			if got := r.EndAlong(); math.Abs(got-25) > 0.5 {
				t.Errorf("expected fallback ~25 m, got %f", got)
			}
		})
	}
}

func TestBuild_DegenerateStep(t *testing.T) {
	steps := []Step{
		straightStep(0, 30, ""),
		straightStep(30, 30, "turn-right"),
		straightStep(30, 60, ""),
	}
	r := Build(steps, BuildOptions{ResampleInterval: 5})
	assertPathInvariants(t, r.Path)

	if len(r.Ranges) != 3 {
		t.Fatalf("expected 3 ranges without dedup, got %d", len(r.Ranges))
	}
	rg := r.Ranges[1]
	if rg.StartIndex != rg.EndIndex || rg.StartIndex >= r.Path.Len() {
		t.Errorf("degenerate step should cover one valid index, got %+v", rg)
	}

	only := Build([]Step{straightStep(10, 10, "")}, DefaultBuildOptions())
	if only.Path.Len() != 1 || only.EndAlong() != 0 {
		t.Errorf("expected a single point path, got %d points, %f m", only.Path.Len(), only.EndAlong())
	}
}

func TestDedup(t *testing.T) {
	tests := []struct {
		name       string
		secondEnd  float64
		wantSteps  int
		wantEndIdx int
	}{
		{"5 m apart merge", 105, 1, 21},
		{"20 m apart stay", 120, 2, 10},
		{"exactly at threshold merges", 112, 1, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := []Step{{}, {Maneuver: "turn-left"}}
			ranges := []StepRange{
				{StartIndex: 0, EndIndex: 10, StartAlong: 0, EndAlong: 100},
				{StartIndex: 10, EndIndex: 21, StartAlong: 100, EndAlong: tt.secondEnd},
			}
			gotSteps, gotRanges := Dedup(steps, ranges, 12)
			if len(gotSteps) != tt.wantSteps || len(gotRanges) != tt.wantSteps {
				t.Fatalf("expected %d steps, got %d/%d", tt.wantSteps, len(gotSteps), len(gotRanges))
			}
			if gotRanges[0].EndIndex != tt.wantEndIdx {
				t.Errorf("expected first end index %d, got %d", tt.wantEndIdx, gotRanges[0].EndIndex)
			}
			if tt.wantSteps == 1 {
				if gotSteps[0].Maneuver != "turn-left" {
					t.Errorf("merged step should adopt maneuver, got %q", gotSteps[0].Maneuver)
				}
				if gotRanges[0].EndAlong != tt.secondEnd || gotRanges[0].StartAlong != 0 {
					t.Errorf("unexpected merged range %+v", gotRanges[0])
				}
			}
		})
	}
}

func TestDedup_KeepsExistingManeuver(t *testing.T) {
	steps := []Step{{Maneuver: "turn-right"}, {Maneuver: "turn-left"}}
	ranges := []StepRange{{EndAlong: 50}, {EndAlong: 52}}
	got, _ := Dedup(steps, ranges, 12)
	if len(got) != 1 || got[0].Maneuver != "turn-right" {
		t.Errorf("expected kept turn-right, got %+v", got)
	}
}

func TestBuild_DedupCollapsesFragments(t *testing.T) {
	steps := []Step{
		straightStep(0, 50, ""),
		straightStep(50, 54, ""),
		straightStep(54, 58, "turn-left"),
		straightStep(58, 120, ""),
	}
	r := Build(steps, DefaultBuildOptions())
	assertPathInvariants(t, r.Path)
	if len(r.Steps) != 2 || len(r.Ranges) != 2 {
		t.Fatalf("expected 2 steps after dedup, got %d", len(r.Steps))
	}
	if r.Steps[0].Maneuver != "turn-left" {
		t.Errorf("expected merged maneuver turn-left, got %q", r.Steps[0].Maneuver)
	}
	if math.Abs(r.Ranges[0].EndAlong-58) > 0.5 {
		t.Errorf("expected merged end ~58 m, got %f", r.Ranges[0].EndAlong)
	}
}

func TestPathTable_AlongLookups(t *testing.T) {
	r := Build([]Step{straightStep(0, 100, "")}, DefaultBuildOptions())

	p, ok := r.Path.PointAtAlong(37)
	if !ok {
		t.Fatalf("expected point")
	}
	want := north(37)
	if d := geo.Haversine(p.Lat, p.Lon, want.Lat, want.Lon); d > 0.5 {
		t.Errorf("PointAtAlong(37) off by %f m", d)
	}

	if p, _ := r.Path.PointAtAlong(-5); p != r.Path.Points[0] {
		t.Errorf("negative along should clamp to first point")
	}
	if p, _ := r.Path.PointAtAlong(1e6); p != r.Path.Points[r.Path.Len()-1] {
		t.Errorf("large along should clamp to last point")
	}

	for _, along := range []float64{-1, 0, 50, 100, 200} {
		h := r.Path.HeadingAtAlong(along)
		if math.Abs(geo.NormalizeSigned(h)) > 0.01 {
			t.Errorf("HeadingAtAlong(%v) = %f, expected north", along, h)
		}
	}

	dest, ok := r.Destination()
	if !ok || geo.Haversine(dest.Lat, dest.Lon, north(100).Lat, north(100).Lon) > 0.01 {
		t.Errorf("unexpected destination %+v", dest)
	}
}

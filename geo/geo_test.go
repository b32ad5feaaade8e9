package geo

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want, tol              float64
	}{
		{"same point", 52.52, 13.405, 52.52, 13.405, 0, 0},
		{"one degree latitude", 0, 0, 1, 0, 111195, 1},
		{"one degree longitude at equator", 0, 0, 0, 1, 111195, 1},
		{"berlin to paris", 52.5200, 13.4050, 48.8566, 2.3522, 877464, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("expected %.1f (±%.1f), got %.1f", tt.want, tt.tol, got)
			}
			back := Haversine(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			if math.Abs(got-back) > 1e-6 {
				t.Errorf("distance not symmetric: %f vs %f", got, back)
			}
		})
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"north", 0, 0, 1, 0, 0},
		{"east", 0, 0, 0, 1, 90},
		{"south", 1, 0, 0, 0, 180},
		{"west", 0, 1, 0, 0, 270},
		{"identical", 10, 10, 10, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if got < 0 || got >= 360 {
				t.Fatalf("bearing %f out of [0,360)", got)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestNormalizeSigned(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{540, 180},
		{360, 0},
		{-45, -45},
		{725, 5},
	}
	for _, tt := range tests {
		got := NormalizeSigned(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeSigned(%v): expected %v, got %v", tt.in, tt.want, got)
		}
		if got <= -180 || got > 180 {
			t.Errorf("NormalizeSigned(%v) = %v outside (-180,180]", tt.in, got)
		}
	}
}

func TestLocalMetersAndOffset(t *testing.T) {
	const lat0, lon0 = 48.137, 11.575

	east, north := LocalMeters(lat0, lon0, lat0+0.001, lon0)
	if math.Abs(east) > 1e-9 || math.Abs(north-110.574) > 1e-6 {
		t.Errorf("expected (0, 110.574), got (%f, %f)", east, north)
	}

	lat, lon := Offset(lat0, lon0, 30, -40)
	e, n := LocalMeters(lat0, lon0, lat, lon)
	if math.Abs(e-30) > 1e-6 || math.Abs(n+40) > 1e-6 {
		t.Errorf("offset round trip: expected (30, -40), got (%f, %f)", e, n)
	}

	// The approximation should agree with haversine at pedestrian scale.
	d := Haversine(lat0, lon0, lat, lon)
	if math.Abs(d-50) > 0.5 {
		t.Errorf("expected ~50 m, got %f", d)
	}
}

func TestDestination(t *testing.T) {
	const lat0, lon0 = 40.7128, -74.0060
	tests := []struct {
		name    string
		bearing float64
		meters  float64
	}{
		{"north", 0, 130},
		{"east", 90, 7},
		{"south-west", 225, 500},
		{"zero", 45, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon := Destination(lat0, lon0, tt.bearing, tt.meters)
			if d := Haversine(lat0, lon0, lat, lon); math.Abs(d-tt.meters) > 1e-4 {
				t.Errorf("expected distance %v, got %v", tt.meters, d)
			}
			if tt.meters == 0 {
				return
			}
			if b := Bearing(lat0, lon0, lat, lon); math.Abs(NormalizeSigned(b-tt.bearing)) > 0.01 {
				t.Errorf("expected bearing %v, got %v", tt.bearing, b)
			}
		})
	}
}

func TestProjectOnSegment(t *testing.T) {
	tests := []struct {
		name                   string
		ax, ay, bx, by, px, py float64
		wantT, wantD2          float64
	}{
		{"midpoint", 0, 0, 10, 0, 5, 3, 0.5, 9},
		{"before start clamps", 0, 0, 10, 0, -4, 0, 0, 16},
		{"past end clamps", 0, 0, 10, 0, 12, 0, 1, 4},
		{"zero length", 2, 2, 2, 2, 5, 6, 0, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotT, gotD2 := ProjectOnSegment(tt.ax, tt.ay, tt.bx, tt.by, tt.px, tt.py)
			if math.Abs(gotT-tt.wantT) > 1e-9 || math.Abs(gotD2-tt.wantD2) > 1e-9 {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.wantT, tt.wantD2, gotT, gotD2)
			}
		})
	}
}

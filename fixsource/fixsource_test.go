package fixsource

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func walk() []Sample {
	return []Sample{
		{Lat: 52.52001, Lon: 13.40495, Timestamp: 1700000002, Status: Running},
		{Lat: 52.52000, Lon: 13.40490, Timestamp: 1700000000, Status: Running, Bearing: 90, HasBearing: true},
		{Lat: 52.52002, Lon: 13.40500, Timestamp: 1700000004, Status: Failed},
		{Lat: 52.52003, Lon: 13.40505, Timestamp: 1700000006, Status: Stopped},
	}
}

func TestEncodeDecodeVehiclePositions(t *testing.T) {
	data, err := EncodeVehiclePositions("walker-1", walk())
	if err != nil {
		t.Fatalf("EncodeVehiclePositions: %v", err)
	}
	got, err := DecodeVehiclePositions(data, "walker-1")
	if err != nil {
		t.Fatalf("DecodeVehiclePositions: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(got))
	}

	tests := []struct {
		name   string
		sample Sample
		ts     float64
		status Status
	}{
		{"sorted first", got[0], 1700000000, Running},
		{"sorted second", got[1], 1700000002, Running},
		{"missing position", got[2], 1700000004, Failed},
		{"deleted entity", got[3], 1700000006, Stopped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sample.Timestamp != tt.ts || tt.sample.Status != tt.status {
				t.Errorf("expected %v/%s, got %v/%s", tt.ts, tt.status, tt.sample.Timestamp, tt.sample.Status)
			}
			if !math.IsNaN(tt.sample.Alt) {
				t.Errorf("expected unknown altitude, got %v", tt.sample.Alt)
			}
		})
	}
	if math.Abs(got[0].Lat-52.52) > 1e-5 || math.Abs(got[0].Lon-13.4049) > 1e-5 {
		t.Errorf("unexpected position %v,%v", got[0].Lat, got[0].Lon)
	}
	if !got[0].HasBearing || got[0].Bearing != 90 {
		t.Errorf("expected bearing 90, got %v (%v)", got[0].Bearing, got[0].HasBearing)
	}
}

func TestDecodeVehiclePositions_Errors(t *testing.T) {
	if _, err := DecodeVehiclePositions([]byte{0xff, 0xff, 0xff}, ""); err == nil {
		t.Errorf("expected decode error for garbage")
	}
	data, _ := EncodeVehiclePositions("walker-1", walk())
	if _, err := DecodeVehiclePositions(data, "someone-else"); !errors.Is(err, ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
}

func TestReplay(t *testing.T) {
	samples := []Sample{
		{Lat: 1, Timestamp: 10, Status: Running},
		{Lat: 2, Timestamp: 11, Status: Running},
		{Lat: 3, Timestamp: 13, Status: Running},
	}
	r := NewReplay(samples)

	wantLat := []float64{1, 2, 2, 3}
	for i, want := range wantLat {
		s, ok := r.Next(1)
		if !ok {
			t.Fatalf("tick %d: replay ended early", i)
		}
		if s.Lat != want {
			t.Errorf("tick %d (clock %.1f): expected lat %v, got %v", i, r.Clock(), want, s.Lat)
		}
	}
	if !r.Done() {
		t.Errorf("expected replay done")
	}
	s, ok := r.Next(1)
	if ok || s.Status != Stopped {
		t.Errorf("expected stopped after the trace, got %v/%s", ok, s.Status)
	}
}

func TestSample_Usable(t *testing.T) {
	tests := []struct {
		s    Sample
		want bool
	}{
		{Sample{Status: Running}, true},
		{Sample{Status: Initializing}, false},
		{Sample{Status: Failed}, false},
		{Sample{Status: Running, Lat: math.NaN()}, false},
	}
	for _, tt := range tests {
		if got := tt.s.Usable(); got != tt.want {
			t.Errorf("%+v: expected %v, got %v", tt.s, tt.want, got)
		}
	}
}

func TestFeed_Poll(t *testing.T) {
	data, err := EncodeVehiclePositions("walker-1", walk()[:2])
	if err != nil {
		t.Fatalf("EncodeVehiclePositions: %v", err)
	}
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	f := NewFeed(NewClient(0), srv.URL, "walker-1")
	s, err := f.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if s.Timestamp != 1700000002 || s.Status != Running {
		t.Errorf("expected newest running sample, got %+v", s)
	}

	fail.Store(true)
	s, err = f.Poll(context.Background())
	if err == nil {
		t.Errorf("expected error on HTTP 503")
	}
	if s.Status != Failed || s.Timestamp != 1700000002 {
		t.Errorf("expected last sample marked failed, got %+v", s)
	}
}

func TestFeed_InitializingBeforeFirstFix(t *testing.T) {
	f := NewFeed(NewClient(0), filepath.Join(t.TempDir(), "missing.pb"), "")
	s, err := f.Poll(context.Background())
	if err == nil || s.Status != Initializing {
		t.Errorf("expected initializing sample with error, got %s / %v", s.Status, err)
	}
}

func TestClient_FetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.pb")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := NewClient(0).Fetch(context.Background(), path)
	if err != nil || string(got) != "abc" {
		t.Errorf("expected file contents, got %q (%v)", got, err)
	}
	if got, err := NewClient(0).Fetch(context.Background(), ""); got != nil || err != nil {
		t.Errorf("expected nil for empty source")
	}
}

package arrival

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/theoremus-urban-solutions/arnav/route"
)

func TestMachine_ArrivalFiresOnce(t *testing.T) {
	var fired []string
	m, err := NewMachine(DefaultConfig(), route.Point{}, "Library", Hooks{
		OnArrived: func(name string) { fired = append(fired, name) },
	})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	distances := []float64{50, 20, 8, 3, 1, 8, 20}
	for i, d := range distances {
		res := m.Update(d)
		if res.FiredArrival != (i == 2) {
			t.Errorf("distance %v (step %d): expected fired=%v, got %v", d, i, i == 2, res.FiredArrival)
		}
	}
	if len(fired) != 1 || fired[0] != "Library" {
		t.Errorf("expected one arrival for Library, got %v", fired)
	}
	if m.State() != Arrived {
		t.Errorf("expected terminal state arrived, got %s", m.State())
	}
}

func TestMachine_PreviewHysteresis(t *testing.T) {
	var toggles []bool
	m, _ := NewMachine(DefaultConfig(), route.Point{}, "", Hooks{
		OnPreview: func(_ string, shown bool) { toggles = append(toggles, shown) },
	})

	tests := []struct {
		distance    float64
		wantVisible bool
		wantState   State
	}{
		{100, false, Approaching},
		{45, false, Approaching},
		{40, true, WorldMarkerSpawned},
		{50, true, WorldMarkerSpawned},
		{56, false, WorldMarkerSpawned},
		{39, true, WorldMarkerSpawned},
	}
	for _, tt := range tests {
		res := m.Update(tt.distance)
		if res.PreviewVisible != tt.wantVisible || res.State != tt.wantState {
			t.Errorf("distance %v: expected visible=%v state=%s, got visible=%v state=%s",
				tt.distance, tt.wantVisible, tt.wantState, res.PreviewVisible, res.State)
		}
	}
	want := []bool{true, false, true}
	if len(toggles) != len(want) {
		t.Fatalf("expected %d preview toggles, got %v", len(want), toggles)
	}
	for i := range want {
		if toggles[i] != want[i] {
			t.Errorf("toggle %d: expected %v, got %v", i, want[i], toggles[i])
		}
	}
}

func TestMachine_WorldMarkerOnce(t *testing.T) {
	spawns := 0
	dest := route.Point{Lat: 48.2, Lon: 16.37}
	m, _ := NewMachine(DefaultConfig(), dest, "Museum", Hooks{
		OnWorldMarker: func(name string, at route.Point) {
			spawns++
			if at != dest || name != "Museum" {
				t.Errorf("unexpected marker %s at %+v", name, at)
			}
		},
	})
	for _, d := range []float64{30, 80, 30, 10} {
		m.Update(d)
	}
	if spawns != 1 {
		t.Errorf("expected one world marker, got %d", spawns)
	}
}

func TestMachine_StatusText(t *testing.T) {
	m, _ := NewMachine(DefaultConfig(), route.Point{}, "", Hooks{})
	tests := []struct {
		distance float64
		want     string
	}{
		{1530, "Destination — 1.5 km away"},
		{42.4, "Destination — 42 m away"},
		{7.9, "Destination — Arrived!"},
	}
	for _, tt := range tests {
		if got := m.Update(tt.distance).Status; got != tt.want {
			t.Errorf("distance %v: expected %q, got %q", tt.distance, tt.want, got)
		}
	}
}

func TestMachine_UpdateAt(t *testing.T) {
	dest := route.Point{Lat: 51.5007, Lon: -0.1246}
	m, _ := NewMachine(DefaultConfig(), dest, "Big Ben", Hooks{})
	res := m.UpdateAt(dest.Lat, dest.Lon)
	if !res.FiredArrival || res.Distance != 0 {
		t.Errorf("expected arrival at the destination, got %+v", res)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"hide not above preview", Config{PreviewMeters: 40, PreviewHideMeters: 40, ArrivalMeters: 8}, false},
		{"zero arrival", Config{PreviewMeters: 40, PreviewHideMeters: 55}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidThresholds) {
				t.Errorf("expected ErrInvalidThresholds, got %v", err)
			}
		})
	}
}

func TestState_Text(t *testing.T) {
	b, err := json.Marshal(Result{State: Arrived})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var r Result
	if err := json.Unmarshal(b, &r); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	if r.State != Arrived {
		t.Errorf("expected %v, got %v", Arrived, r.State)
	}
	var s State
	if err := s.UnmarshalText([]byte("lost")); err == nil {
		t.Errorf("expected error for unknown state")
	}
}

package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/arnav/anchors"
	"github.com/theoremus-urban-solutions/arnav/navigator"
	"github.com/theoremus-urban-solutions/arnav/route"
)

func testRoute() *route.Route {
	steps := []route.Step{
		{InstructionHTML: "Head <b>north</b>", Start: route.Point{Lat: 45.0, Lon: 7.0}, End: route.Point{Lat: 45.001, Lon: 7.0}},
		{Maneuver: "turn-right", InstructionHTML: "Turn <b>right</b> onto Via Roma & Co", Start: route.Point{Lat: 45.001, Lon: 7.0}, End: route.Point{Lat: 45.001, Lon: 7.001}},
	}
	return route.Build(steps, route.DefaultBuildOptions())
}

func TestRouteGeoJSON(t *testing.T) {
	r := testRoute()
	views := []anchors.View{{ID: "a1", Name: "Fountain", Lat: 45.0005, Lon: 7.0002, Visible: true}}

	fc := RouteGeoJSON(r, views, false)
	if len(fc.Features) != 1+len(r.Steps)+1 {
		t.Fatalf("expected path, %d steps and one anchor, got %d features", len(r.Steps), len(fc.Features))
	}
	line, ok := fc.Features[0].Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("expected a line string, got %T", fc.Features[0].Geometry)
	}
	if len(line) != r.Path.Len() {
		t.Errorf("expected %d vertices, got %d", r.Path.Len(), len(line))
	}
	if line[0][0] != 7.0 || line[0][1] != 45.0 {
		t.Errorf("expected lon/lat order, got %v", line[0])
	}
	if got := fc.Features[2].Properties["label"]; got != "Turn right" {
		t.Errorf("expected step label Turn right, got %v", got)
	}
	if fc.Features[3].Properties["name"] != "Fountain" {
		t.Errorf("unexpected anchor feature %+v", fc.Features[3].Properties)
	}

	simple := RouteGeoJSON(r, nil, true)
	sl := simple.Features[0].Geometry.(orb.LineString)
	if len(sl) != 3 {
		t.Errorf("expected the resampled L-shaped path to simplify to 3 vertices, got %d", len(sl))
	}

	b, err := NewResponseBuilder().BuildGeoJSON(r, views, true)
	if err != nil {
		t.Fatalf("BuildGeoJSON: %v", err)
	}
	if !strings.Contains(string(b), `"FeatureCollection"`) {
		t.Errorf("expected a FeatureCollection, got %s", b)
	}
}

func TestRouteGeoJSON_EmptyRoute(t *testing.T) {
	fc := RouteGeoJSON(nil, nil, true)
	if len(fc.Features) != 0 {
		t.Errorf("expected no features, got %d", len(fc.Features))
	}
}

func TestBuildGPX(t *testing.T) {
	r := testRoute()
	views := []anchors.View{{Name: "Caffè <Roma>", Lat: 45.0005, Lon: 7.0002, Direction: anchors.DirectionAhead}}
	out := string(NewResponseBuilder().BuildGPX("Walk & Talk", r, views))

	tests := []struct {
		name string
		want string
	}{
		{"header", `<gpx version="1.1"`},
		{"escaped route name", "<name>Walk &amp; Talk</name>"},
		{"escaped waypoint", "<name>Caffè &lt;Roma&gt;</name>"},
		{"route point label", "<name>Turn right</name>"},
		{"stripped instruction", "<desc>Turn right onto Via Roma &amp; Co</desc>"},
		{"track point", `<trkpt lat="45.0000000" lon="7.0000000"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in output", tt.want)
			}
		})
	}
	if strings.Count(out, "<trkpt") != r.Path.Len() {
		t.Errorf("expected one track point per path point")
	}
}

func TestWrapState(t *testing.T) {
	rb := NewResponseBuilder()

	res := WrapState(navigator.Frame{}, false, "")
	if res.ProducerRef != "UNKNOWN" || res.Ready || res.Frame != nil {
		t.Errorf("unexpected empty state %+v", res)
	}

	frame := navigator.Frame{
		Instruction: "Turn left in 10 m",
		Anchors: []anchors.View{
			{ID: "a", Visible: true},
			{ID: "b", Visible: false},
		},
	}
	res = WrapState(FilterVisibleAnchors(frame), true, "museum-walk")
	var decoded map[string]any
	if err := json.Unmarshal(rb.BuildJSON(res), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	f, ok := decoded["Frame"].(map[string]any)
	if !ok {
		t.Fatalf("expected a frame, got %v", decoded)
	}
	if f["instruction"] != "Turn left in 10 m" {
		t.Errorf("unexpected instruction %v", f["instruction"])
	}
	if got := f["anchors"].([]any); len(got) != 1 {
		t.Errorf("expected one visible anchor, got %d", len(got))
	}
	if len(frame.Anchors) != 2 {
		t.Errorf("filtering must not modify the input frame")
	}

	line := rb.BuildFrameJSON(frame)
	if line[len(line)-1] != '\n' {
		t.Errorf("expected newline-terminated frame")
	}
}

package directions

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/arnav/route"
)

var (
	// ErrMalformed is returned when the document is not valid JSON.
	ErrMalformed = errors.New("directions: malformed response")
	// ErrNoRoute is returned when the document holds no route or leg.
	ErrNoRoute = errors.New("directions: no route in response")
	// ErrStatus is returned for a non-OK provider status.
	ErrStatus = errors.New("directions: provider status")
)

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l *location) point() (route.Point, bool) {
	if l == nil {
		return route.Point{}, false
	}
	p := route.Point{Lat: l.Lat, Lon: l.Lng}
	return p, !p.IsZero()
}

type wireStep struct {
	Maneuver         string        `json:"maneuver"`
	HTMLInstructions string        `json:"html_instructions"`
	StartLocation    *location     `json:"start_location"`
	EndLocation      *location     `json:"end_location"`
	Polyline         *wirePolyline `json:"polyline"`
}

type wirePolyline struct {
	Points string `json:"points"`
}

type wireLeg struct {
	StartLocation *location         `json:"start_location"`
	EndLocation   *location         `json:"end_location"`
	Steps         []json.RawMessage `json:"steps"`
}

// decodeStep decodes one step. A step that does not decode as a whole keeps
// every field that does; a non-object step decodes as empty.
func decodeStep(raw json.RawMessage) wireStep {
	var ws wireStep
	if err := json.Unmarshal(raw, &ws); err == nil {
		return ws
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return wireStep{}
	}
	ws = wireStep{}
	ws.Maneuver, _ = field[string](fields, "maneuver")
	ws.HTMLInstructions, _ = field[string](fields, "html_instructions")
	ws.StartLocation, _ = field[*location](fields, "start_location")
	ws.EndLocation, _ = field[*location](fields, "end_location")
	ws.Polyline, _ = field[*wirePolyline](fields, "polyline")
	return ws
}

func field[T any](fields map[string]json.RawMessage, key string) (T, bool) {
	var v T
	raw, ok := fields[key]
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

type wireResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []wireLeg `json:"legs"`
	} `json:"routes"`
}

// Leg is the parsed first leg of a directions response.
type Leg struct {
	Start route.Point  `msgpack:"start"`
	End   route.Point  `msgpack:"end"`
	Steps []route.Step `msgpack:"steps"`
}

// ParseSteps parses a directions document. Steps missing a start location
// take the leg start (first step) or the previous step's end; steps missing
// an end location collapse onto their start. A malformed step keeps the
// fields that decode instead of failing the route.
func ParseSteps(data []byte) (Leg, error) {
	var resp wireResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Leg{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if resp.Status != "" && resp.Status != "OK" {
		if resp.Status == "ZERO_RESULTS" {
			return Leg{}, ErrNoRoute
		}
		if resp.ErrorMessage != "" {
			return Leg{}, fmt.Errorf("%w %s: %s", ErrStatus, resp.Status, resp.ErrorMessage)
		}
		return Leg{}, fmt.Errorf("%w %s", ErrStatus, resp.Status)
	}
	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return Leg{}, ErrNoRoute
	}

	wl := resp.Routes[0].Legs[0]
	var leg Leg
	legStart, hasLegStart := wl.StartLocation.point()
	leg.Start = legStart
	leg.End, _ = wl.EndLocation.point()

	leg.Steps = make([]route.Step, 0, len(wl.Steps))
	for i, raw := range wl.Steps {
		ws := decodeStep(raw)
		st := route.Step{
			Maneuver:        ws.Maneuver,
			InstructionHTML: ws.HTMLInstructions,
		}
		if ws.Polyline != nil {
			st.Polyline = ws.Polyline.Points
		}

		end, hasEnd := ws.EndLocation.point()
		start, hasStart := ws.StartLocation.point()
		if !hasStart {
			switch {
			case i == 0 && hasLegStart:
				start = legStart
			case i == 0:
				start = end
			default:
				start = leg.Steps[i-1].End
			}
		}
		if !hasEnd {
			end = start
		}
		st.Start, st.End = start, end
		leg.Steps = append(leg.Steps, st)
	}

	if !hasLegStart && len(leg.Steps) > 0 {
		leg.Start = leg.Steps[0].Start
	}
	if leg.End.IsZero() && len(leg.Steps) > 0 {
		leg.End = leg.Steps[len(leg.Steps)-1].End
	}
	return leg, nil
}

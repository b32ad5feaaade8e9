package arnav

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/arnav/route"
)

// QueryError is a client error in request parameters.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// parseCoordinate parses "lat,lon".
func parseCoordinate(name, s string) (route.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return route.Point{}, &QueryError{Msg: "Missing parameter: " + name}
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return route.Point{}, &QueryError{Msg: name + " must be formatted as lat,lon"}
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return route.Point{}, &QueryError{Msg: name + " must be numeric"}
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return route.Point{}, &QueryError{Msg: name + " is out of range"}
	}
	return route.Point{Lat: lat, Lon: lon}, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func buildErrorPayload(callType, msg string) []byte {
	type errPayload struct {
		Error struct {
			Call        string `json:"Call"`
			Description string `json:"Description"`
		} `json:"Error"`
	}
	var e errPayload
	e.Error.Call = callType
	e.Error.Description = msg
	b, _ := json.Marshal(e)
	return b
}

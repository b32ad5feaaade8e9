package fixsource

import (
	"fmt"
	"math"
)

// Status is the location service state reported with each sample.
type Status int

const (
	Initializing Status = iota
	Running
	Failed
	Stopped
)

func (s Status) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Failed:
		return "failed"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Sample is one GPS reading. Alt is NaN when unknown; Timestamp is in
// seconds.
type Sample struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Alt        float64 `json:"alt"`
	Timestamp  float64 `json:"timestamp"`
	Status     Status  `json:"status"`
	Bearing    float64 `json:"bearing,omitempty"`
	HasBearing bool    `json:"has_bearing,omitempty"`
}

// Usable reports whether the sample may drive a tick.
func (s Sample) Usable() bool {
	return s.Status == Running && !math.IsNaN(s.Lat) && !math.IsNaN(s.Lon)
}

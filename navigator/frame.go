package navigator

import (
	"github.com/theoremus-urban-solutions/arnav/anchors"
	"github.com/theoremus-urban-solutions/arnav/arrival"
	"github.com/theoremus-urban-solutions/arnav/guidance"
)

// Frame is the output of one Tick.
type Frame struct {
	Timestamp string  `json:"timestamp"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`

	HasCourse bool    `json:"has_course"`
	Course    float64 `json:"course"`
	// Heading is the course when known, else the camera yaw.
	Heading float64 `json:"heading"`

	RouteLoaded   bool               `json:"route_loaded"`
	Along         float64            `json:"along_m"`
	RawAlong      float64            `json:"raw_along_m"`
	Remaining     float64            `json:"remaining_m"`
	Step          int                `json:"step"`
	Instruction   string             `json:"instruction,omitempty"`
	ThresholdTurn string             `json:"threshold_turn,omitempty"`
	Preview       []guidance.Segment `json:"preview,omitempty"`
	PreviewText   string             `json:"preview_text,omitempty"`

	ArrowVisible bool    `json:"arrow_visible"`
	ArrowYaw     float64 `json:"arrow_yaw"`
	UIArrowAngle float64 `json:"ui_arrow_angle"`

	Arrival *arrival.Result `json:"arrival,omitempty"`
	Anchors []anchors.View  `json:"anchors,omitempty"`
}

package formatter

import (
	"strings"

	"github.com/theoremus-urban-solutions/arnav/navigator"
	"github.com/theoremus-urban-solutions/arnav/utils"
)

// StateResponse is the envelope served for the navigator state.
type StateResponse struct {
	ResponseTimestamp string           `json:"ResponseTimestamp"`
	ProducerRef       string           `json:"ProducerRef,omitempty"`
	Ready             bool             `json:"Ready"`
	Frame             *navigator.Frame `json:"Frame,omitempty"`
}

// WrapState wraps the latest frame, if any, in a StateResponse.
func WrapState(frame navigator.Frame, ok bool, producer string) *StateResponse {
	producer = strings.TrimSpace(producer)
	if producer == "" {
		producer = "UNKNOWN"
	}
	res := &StateResponse{
		ResponseTimestamp: utils.Iso8601Now(),
		ProducerRef:       producer,
		Ready:             ok,
	}
	if ok {
		f := frame
		res.Frame = &f
	}
	return res
}

// FilterVisibleAnchors drops hidden anchors from a frame.
func FilterVisibleAnchors(frame navigator.Frame) navigator.Frame {
	if len(frame.Anchors) == 0 {
		return frame
	}
	visible := frame.Anchors[:0:0]
	for _, a := range frame.Anchors {
		if a.Visible {
			visible = append(visible, a)
		}
	}
	frame.Anchors = visible
	return frame
}

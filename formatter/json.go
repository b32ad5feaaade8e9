package formatter

import (
	"encoding/json"

	"github.com/theoremus-urban-solutions/arnav/navigator"
)

type responseBuilder struct{}

func newResponseBuilder() *responseBuilder { return &responseBuilder{} }

// NewResponseBuilder creates a new response builder for navigation output
func NewResponseBuilder() *responseBuilder {
	return newResponseBuilder()
}

// BuildJSON serializes a state response to JSON
func (rb *responseBuilder) BuildJSON(res *StateResponse) []byte {
	b, _ := json.Marshal(res)
	return b
}

// BuildFrameJSON serializes one frame as a single JSON line, for streaming
// replay output.
func (rb *responseBuilder) BuildFrameJSON(f navigator.Frame) []byte {
	b, _ := json.Marshal(f)
	return append(b, '\n')
}

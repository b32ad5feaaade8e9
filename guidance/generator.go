package guidance

import (
	"fmt"
	"math"
	"strings"

	"github.com/theoremus-urban-solutions/arnav/route"
)

// Config tunes a Generator.
type Config struct {
	// TurnAnnouncementThreshold is the distance to a turn, in meters, below
	// which the turn is announced.
	TurnAnnouncementThreshold float64
	// PreviewSegmentLimit caps the number of preview entries.
	PreviewSegmentLimit int
	// Tolerance keeps a turn the walker is standing on from being reported
	// as the next one, meters.
	Tolerance float64
}

// DefaultConfig returns a 50 m announcement threshold, six preview segments
// and a 0.5 m tolerance.
func DefaultConfig() Config {
	return Config{
		TurnAnnouncementThreshold: 50,
		PreviewSegmentLimit:       6,
		Tolerance:                 0.5,
	}
}

// Segment is one entry of the route preview.
type Segment struct {
	Label  string  `json:"label"`
	Meters float64 `json:"meters"`
}

// Generator builds guidance text for one route.
type Generator struct {
	route  *route.Route
	cfg    Config
	labels []string
}

// NewGenerator precomputes step labels for r.
func NewGenerator(r *route.Route, cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.TurnAnnouncementThreshold <= 0 {
		cfg.TurnAnnouncementThreshold = def.TurnAnnouncementThreshold
	}
	if cfg.PreviewSegmentLimit <= 0 {
		cfg.PreviewSegmentLimit = def.PreviewSegmentLimit
	}
	if cfg.Tolerance < 0 {
		cfg.Tolerance = def.Tolerance
	}
	if r == nil {
		r = &route.Route{}
	}
	labels := make([]string, len(r.Steps))
	for i, st := range r.Steps {
		labels[i] = StepLabel(st)
	}
	return &Generator{route: r, cfg: cfg, labels: labels}
}

// Label returns the label of step i, "Go straight" when out of range.
func (g *Generator) Label(i int) string {
	if i < 0 || i >= len(g.labels) {
		return LabelStraight
	}
	return g.labels[i]
}

// NextTurnAfter returns the first turn-class step starting beyond along.
func (g *Generator) NextTurnAfter(along float64) (int, bool) {
	for i, rg := range g.route.Ranges {
		if i >= len(g.labels) {
			break
		}
		if rg.StartAlong <= along+g.cfg.Tolerance {
			continue
		}
		if IsTurnLabel(g.labels[i]) {
			return i, true
		}
	}
	return -1, false
}

// distanceToTurn returns the label and distance of the next turn.
func (g *Generator) distanceToTurn(along float64) (string, float64, bool) {
	i, ok := g.NextTurnAfter(along)
	if !ok {
		return "", 0, false
	}
	return g.labels[i], math.Max(0, g.route.Ranges[i].StartAlong-along), true
}

// Instruction returns the main instruction text at along.
func (g *Generator) Instruction(along float64) string {
	label, dist, ok := g.distanceToTurn(along)
	if !ok {
		return straightText(math.Max(0, g.route.EndAlong()-along))
	}
	if dist > g.cfg.TurnAnnouncementThreshold {
		return straightText(dist)
	}
	return fmt.Sprintf("%s in %d m", label, roundMeters(dist))
}

// ProceedText is shown once every step has been passed.
const ProceedText = "Proceed to destination"

// InstructionForStep is Instruction, except that it reports ProceedText
// once stepIndex is past the last step.
func (g *Generator) InstructionForStep(along float64, stepIndex int) string {
	if len(g.route.Ranges) > 0 && stepIndex >= len(g.route.Ranges) {
		return ProceedText
	}
	return g.Instruction(along)
}

// ThresholdTurn returns "<Label> in N m" only while the next turn is within
// the announcement threshold, otherwise "".
func (g *Generator) ThresholdTurn(along float64) string {
	label, dist, ok := g.distanceToTurn(along)
	if !ok || dist > g.cfg.TurnAnnouncementThreshold {
		return ""
	}
	return fmt.Sprintf("%s in %d m", label, roundMeters(dist))
}

// UpcomingLabel returns the label the guidance arrow follows: the next
// turn while it is within the announcement threshold, else LabelStraight.
func (g *Generator) UpcomingLabel(along float64) string {
	label, dist, ok := g.distanceToTurn(along)
	if !ok || dist > g.cfg.TurnAnnouncementThreshold {
		return LabelStraight
	}
	return label
}

type turnEvent struct {
	label string
	along float64
}

// previewEpsilon absorbs float drift when the cursor reaches a turn.
const previewEpsilon = 0.01

// Preview walks forward from along and alternates straight stretches with
// the turns ahead. Each turn segment covers at most the announcement
// threshold before the turn. When the second entry is itself longer than
// the threshold nothing noteworthy is close, so the preview collapses to a
// single straight entry.
func (g *Generator) Preview(along float64) []Segment {
	threshold := g.cfg.TurnAnnouncementThreshold
	routeEnd := g.route.EndAlong()
	limit := g.cfg.PreviewSegmentLimit

	var events []turnEvent
	for i, rg := range g.route.Ranges {
		if i >= len(g.labels) {
			break
		}
		if rg.StartAlong < along+previewEpsilon {
			continue
		}
		if IsTurnLabel(g.labels[i]) {
			events = append(events, turnEvent{label: g.labels[i], along: rg.StartAlong})
		}
	}

	var out []Segment
	add := func(label string, meters float64) {
		if n := len(out); n > 0 && label == LabelStraight && out[n-1].Label == LabelStraight {
			out[n-1].Meters += meters
			return
		}
		out = append(out, Segment{Label: label, Meters: meters})
	}

	cursor := along
	ei := 0
	for guard := 0; len(out) < limit && guard < 2*(limit+len(events))+2; guard++ {
		hasEvent := ei < len(events)
		nextAlong := routeEnd
		if hasEvent {
			nextAlong = events[ei].along
		}

		preLen := math.Max(0, math.Max(cursor, nextAlong-threshold)-cursor)
		if preLen > 0 {
			add(LabelStraight, preLen)
			cursor += preLen
			if len(out) >= limit {
				break
			}
		}

		if !hasEvent {
			if tail := routeEnd - cursor; tail > 0 {
				add(LabelStraight, tail)
			}
			break
		}

		toEvent := math.Max(0, nextAlong-cursor)
		if turnLen := math.Min(threshold, toEvent); turnLen > 0 {
			add(events[ei].label, turnLen)
			cursor += turnLen
		}
		if math.Abs(cursor-nextAlong) <= previewEpsilon || toEvent <= previewEpsilon {
			cursor = nextAlong
			ei++
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	if len(out) > 1 && out[1].Meters > threshold {
		out = []Segment{{Label: LabelStraight, Meters: out[0].Meters}}
	}
	return out
}

// PreviewText joins a preview as "Go straight (120m) → Turn right (40m)".
func PreviewText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, fmt.Sprintf("%s (%dm)", s.Label, roundMeters(s.Meters)))
	}
	return strings.Join(parts, " → ")
}

func straightText(meters float64) string {
	return fmt.Sprintf("%s — %d m", LabelStraight, roundMeters(meters))
}

func roundMeters(m float64) int {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0
	}
	return int(math.Round(m))
}

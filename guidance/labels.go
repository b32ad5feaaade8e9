package guidance

import (
	"regexp"
	"strings"

	"github.com/theoremus-urban-solutions/arnav/route"
)

// Maneuver labels shown to the walker.
const (
	LabelStraight    = "Go straight"
	LabelSlightLeft  = "Slight left"
	LabelSlightRight = "Slight right"
	LabelLeft        = "Turn left"
	LabelRight       = "Turn right"
	LabelRoundabout  = "Roundabout"
	LabelUTurn       = "U-turn"
)

var (
	htmlTag = regexp.MustCompile(`<[^>]*>`)
	// Providers append side notes such as "Destination will be on the
	// right" in their own div.
	htmlNote = regexp.MustCompile(`(?is)<div[^>]*>.*?</div>`)

	leftWord  = regexp.MustCompile(`\bleft\b`)
	rightWord = regexp.MustCompile(`\bright\b`)
)

// StripHTML removes markup and side notes from a provider instruction and
// collapses whitespace.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	s := htmlNote.ReplaceAllString(html, " ")
	s = htmlTag.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// StepLabel returns the display label for a step. The maneuver hint takes
// priority over the instruction text.
func StepLabel(st route.Step) string {
	if st.Maneuver != "" {
		return LabelFromManeuver(st.Maneuver)
	}
	return LabelFromInstruction(st.InstructionHTML)
}

// LabelFromManeuver maps a provider maneuver code such as "turn-slight-left"
// or "roundabout-right" to a label.
func LabelFromManeuver(maneuver string) string {
	m := strings.ToLower(strings.ReplaceAll(maneuver, "-", " "))
	switch {
	case m == "":
		return LabelStraight
	case strings.Contains(m, "uturn") || strings.Contains(m, "u turn"):
		return LabelUTurn
	case strings.Contains(m, "slight left"):
		return LabelSlightLeft
	case strings.Contains(m, "slight right"):
		return LabelSlightRight
	case strings.Contains(m, "left"):
		return LabelLeft
	case strings.Contains(m, "right"):
		return LabelRight
	case strings.Contains(m, "roundabout"):
		return LabelRoundabout
	}
	return LabelStraight
}

// LabelFromInstruction parses free instruction text. Any standalone word
// "left" or "right" counts as a turn, not only "turn left"/"turn right", so
// "Keep left at the fork" announces a left turn.
func LabelFromInstruction(html string) string {
	plain := strings.ToLower(StripHTML(html))
	switch {
	case plain == "":
		return LabelStraight
	case strings.Contains(plain, "u-turn") || strings.Contains(plain, "uturn"):
		return LabelUTurn
	case strings.Contains(plain, "slight left"):
		return LabelSlightLeft
	case strings.Contains(plain, "slight right"):
		return LabelSlightRight
	case leftWord.MatchString(plain):
		return LabelLeft
	case rightWord.MatchString(plain):
		return LabelRight
	case strings.Contains(plain, "roundabout"):
		return LabelRoundabout
	}
	return LabelStraight
}

// IsTurnLabel reports whether a label or maneuver text implies a change of
// direction worth announcing.
func IsTurnLabel(label string) bool {
	l := strings.ToLower(label)
	return strings.Contains(l, "turn") ||
		strings.Contains(l, "slight") ||
		strings.Contains(l, "u-turn") ||
		strings.Contains(l, "roundabout")
}

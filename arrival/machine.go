package arrival

import (
	"errors"
	"fmt"
	"math"

	"github.com/theoremus-urban-solutions/arnav/geo"
	"github.com/theoremus-urban-solutions/arnav/route"
	"github.com/theoremus-urban-solutions/arnav/utils"
)

// ErrInvalidThresholds is returned when the preview hide radius does not
// exceed the preview radius, or the arrival radius is not positive.
var ErrInvalidThresholds = errors.New("arrival: invalid thresholds")

// DefaultName is used when the destination has no display name.
const DefaultName = "Destination"

// ArrivedText replaces the instruction once the destination is reached.
const ArrivedText = "You have reached your destination"

// State is the arrival progress.
type State int

const (
	Approaching State = iota
	PreviewShown
	WorldMarkerSpawned
	Arrived
)

func (s State) String() string {
	switch s {
	case Approaching:
		return "approaching"
	case PreviewShown:
		return "preview_shown"
	case WorldMarkerSpawned:
		return "world_marker_spawned"
	case Arrived:
		return "arrived"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for st := Approaching; st <= Arrived; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("arrival: unknown state %q", text)
}

// Config holds the arrival radii in meters.
type Config struct {
	PreviewMeters     float64
	PreviewHideMeters float64
	ArrivalMeters     float64
}

// DefaultConfig returns the default radii: preview at 40 m, hidden again
// beyond 55 m, arrival at 8 m.
func DefaultConfig() Config {
	return Config{PreviewMeters: 40, PreviewHideMeters: 55, ArrivalMeters: 8}
}

// Validate checks the radii.
func (c Config) Validate() error {
	if c.PreviewMeters <= 0 || c.PreviewHideMeters <= c.PreviewMeters || c.ArrivalMeters <= 0 {
		return fmt.Errorf("preview %.1f, hide %.1f, arrival %.1f: %w",
			c.PreviewMeters, c.PreviewHideMeters, c.ArrivalMeters, ErrInvalidThresholds)
	}
	return nil
}

// Hooks are the external collaborators notified by a Machine. Any may be nil.
type Hooks struct {
	// OnPreview is called when the preview marker is shown or hidden.
	OnPreview func(name string, shown bool)
	// OnWorldMarker is called once when the world marker should be spawned.
	OnWorldMarker func(name string, destination route.Point)
	// OnArrived is called once, at the first arrival.
	OnArrived func(name string)
}

// Result is the outcome of one Update.
type Result struct {
	State    State   `json:"state"`
	Distance float64 `json:"distance_m"`
	Status   string  `json:"status"`
	// Reached is true while the walker is within the arrival radius.
	Reached        bool `json:"reached"`
	PreviewVisible bool `json:"preview_visible"`
	// The fields below report transitions made by this Update.
	PreviewChanged   bool `json:"-"`
	SpawnWorldMarker bool `json:"-"`
	FiredArrival     bool `json:"-"`
}

// Machine tracks arrival for one destination. A new route needs a new
// Machine; nothing here is reset in place.
type Machine struct {
	cfg         Config
	destination route.Point
	name        string
	hooks       Hooks

	previewShown       bool
	worldMarkerSpawned bool
	arrivedFired       bool
}

// NewMachine returns a Machine for destination. An empty name becomes
// DefaultName.
func NewMachine(cfg Config, destination route.Point, name string, hooks Hooks) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultName
	}
	return &Machine{cfg: cfg, destination: destination, name: name, hooks: hooks}, nil
}

// Name returns the destination display name.
func (m *Machine) Name() string { return m.name }

// Destination returns the destination coordinate.
func (m *Machine) Destination() route.Point { return m.destination }

// State returns the current state.
func (m *Machine) State() State {
	switch {
	case m.arrivedFired:
		return Arrived
	case m.worldMarkerSpawned:
		return WorldMarkerSpawned
	case m.previewShown:
		return PreviewShown
	}
	return Approaching
}

// ArrivedFired reports whether the arrival event has fired.
func (m *Machine) ArrivedFired() bool { return m.arrivedFired }

// UpdateAt runs Update with the distance from (lat, lon) to the destination.
func (m *Machine) UpdateAt(lat, lon float64) Result {
	return m.Update(geo.Haversine(lat, lon, m.destination.Lat, m.destination.Lon))
}

// Update advances the machine for the current distance to the destination.
func (m *Machine) Update(distance float64) Result {
	if math.IsNaN(distance) {
		distance = math.Inf(1)
	}
	res := Result{Distance: distance}

	switch {
	case distance <= m.cfg.PreviewMeters && !m.previewShown:
		m.previewShown = true
		res.PreviewChanged = true
	case m.previewShown && distance > m.cfg.PreviewHideMeters:
		m.previewShown = false
		res.PreviewChanged = true
	}
	if res.PreviewChanged && m.hooks.OnPreview != nil {
		m.hooks.OnPreview(m.name, m.previewShown)
	}

	if !m.worldMarkerSpawned && distance <= m.cfg.PreviewMeters {
		m.worldMarkerSpawned = true
		res.SpawnWorldMarker = true
		if m.hooks.OnWorldMarker != nil {
			m.hooks.OnWorldMarker(m.name, m.destination)
		}
	}

	res.Reached = distance <= m.cfg.ArrivalMeters
	if res.Reached && !m.arrivedFired {
		m.arrivedFired = true
		res.FiredArrival = true
		if m.hooks.OnArrived != nil {
			m.hooks.OnArrived(m.name)
		}
	}

	res.State = m.State()
	res.PreviewVisible = m.previewShown
	res.Status = m.status(distance, res.Reached)
	return res
}

func (m *Machine) status(distance float64, reached bool) string {
	if reached {
		return fmt.Sprintf("%s — Arrived!", m.name)
	}
	if math.IsInf(distance, 1) {
		return m.name
	}
	return fmt.Sprintf("%s — %s away", m.name, utils.PresentableDistance(distance))
}

package navigator

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/theoremus-urban-solutions/arnav/anchors"
	"github.com/theoremus-urban-solutions/arnav/arrival"
	"github.com/theoremus-urban-solutions/arnav/course"
	"github.com/theoremus-urban-solutions/arnav/fixsource"
	"github.com/theoremus-urban-solutions/arnav/geo"
	"github.com/theoremus-urban-solutions/arnav/guidance"
	"github.com/theoremus-urban-solutions/arnav/internal/logging"
	"github.com/theoremus-urban-solutions/arnav/route"
	"github.com/theoremus-urban-solutions/arnav/tracking"
	"github.com/theoremus-urban-solutions/arnav/utils"
)

// ErrNoRoute is returned by LoadRoute when the steps produce no path.
var ErrNoRoute = errors.New("navigator: route has no geometry")

// Sinks receive UI text when it changes. Any may be nil. Sinks run inside
// Tick and must not call back into the Navigator.
type Sinks struct {
	Instruction func(text string)
	Preview     func(text string)
	Status      func(text string)
	// DestinationPreview is called when the destination preview marker is
	// shown or hidden.
	DestinationPreview func(name string, shown bool)
	// Arrived is called once per route.
	Arrived func(name string)
}

// Deps are the optional collaborators of a Navigator.
type Deps struct {
	Anchors *anchors.Registry
	Spawner *anchors.ProximitySpawner
	// Points are spawned into Anchors again whenever a route is loaded or
	// cleared. Ignored when a Spawner manages the points.
	Points []anchors.SpawnPoint
	Sinks  Sinks
	Logger *slog.Logger
}

// session is everything derived from one loaded route.
type session struct {
	route   *route.Route
	name    string
	tracker *tracking.Tracker
	guide   *guidance.Generator
	arrival *arrival.Machine
	arrow   *guidance.ArrowSmoother
	uiArrow *guidance.UIArrow
}

// Navigator runs the per-frame pipeline. Tick and LoadRoute may be called
// from different goroutines; everything else is single-threaded.
type Navigator struct {
	cfg     Config
	anchors *anchors.Registry
	spawner *anchors.ProximitySpawner
	points  []anchors.SpawnPoint
	sinks   Sinks
	logger  *slog.Logger

	mu      sync.Mutex
	course  *course.Estimator
	session *session
	last    Frame
	hasLast bool

	lastInstruction string
	lastPreview     string
	lastStatus      string
}

// New returns a Navigator with no route loaded.
func New(cfg Config, deps Deps) *Navigator {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Navigator{
		cfg:     cfg,
		anchors: deps.Anchors,
		spawner: deps.Spawner,
		points:  append([]anchors.SpawnPoint(nil), deps.Points...),
		sinks:   deps.Sinks,
		logger:  logger,
		course:  course.NewEstimator(cfg.Course),
	}
}

// LoadRoute builds a route from steps and replaces the current one
// wholesale. destination may be zero to use the end of the path; name may
// be empty.
func (n *Navigator) LoadRoute(steps []route.Step, destination route.Point, name string) (*route.Route, error) {
	r := route.Build(steps, n.cfg.Build)
	if r.Path.Len() == 0 {
		return nil, ErrNoRoute
	}
	if destination.IsZero() {
		destination, _ = r.Destination()
	}

	machine, err := arrival.NewMachine(n.cfg.Arrival, destination, name, n.arrivalHooks())
	if err != nil {
		return nil, err
	}
	s := &session{
		route:   r,
		name:    machine.Name(),
		tracker: tracking.NewTracker(r, n.cfg.Tracking),
		guide:   guidance.NewGenerator(r, n.cfg.Guidance),
		arrival: machine,
		arrow:   guidance.NewArrowSmoother(n.cfg.ArrowSmoothTime),
		uiArrow: guidance.NewUIArrow(n.cfg.UIArrowSmoothing),
	}

	n.mu.Lock()
	n.session = s
	n.lastInstruction, n.lastPreview, n.lastStatus = "", "", ""
	n.resetAnchors(r.Path.Points[0])
	if n.spawner != nil {
		n.spawner.SetDestination(s.name, destination)
	}
	n.mu.Unlock()

	n.logger.Info("route loaded",
		"steps", len(r.Steps),
		"points", r.Path.Len(),
		"length_m", utils.RoundMeters(r.EndAlong()),
		"destination", s.name)
	return r, nil
}

// ClearRoute unloads the current route and its destination marker.
func (n *Navigator) ClearRoute() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.session = nil
	if n.spawner != nil {
		n.spawner.ClearDestination()
	}
	at := route.Point{}
	if n.hasLast {
		at = route.Point{Lat: n.last.Lat, Lon: n.last.Lon}
	}
	n.resetAnchors(at)
}

// resetAnchors drops every anchor of the previous route. Configured points
// come back nearest to at first, or through the spawner on the next tick.
// Callers hold n.mu.
func (n *Navigator) resetAnchors(at route.Point) {
	if n.anchors == nil {
		return
	}
	n.anchors.Clear()
	if n.spawner != nil {
		n.spawner.Reset()
		return
	}
	if len(n.points) > 0 {
		n.anchors.SpawnAll(n.points, at.Lat, at.Lon)
	}
}

// Route returns the loaded route, or nil.
func (n *Navigator) Route() *route.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.session == nil {
		return nil
	}
	return n.session.route
}

// Last returns the most recent frame.
func (n *Navigator) Last() (Frame, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last, n.hasLast
}

func (n *Navigator) arrivalHooks() arrival.Hooks {
	return arrival.Hooks{
		OnPreview: func(name string, shown bool) {
			n.logger.Debug("destination preview", "name", name, "shown", shown)
			if n.sinks.DestinationPreview != nil {
				n.sinks.DestinationPreview(name, shown)
			}
		},
		OnWorldMarker: func(name string, at route.Point) {
			if n.anchors == nil || n.spawner != nil {
				return
			}
			n.anchors.Spawn(at, anchors.Metadata{Name: name})
		},
		OnArrived: func(name string) {
			n.logger.Info("arrived", "destination", name)
			if n.sinks.Arrived != nil {
				n.sinks.Arrived(name)
			}
		},
	}
}

// Tick runs one frame for sample. dt is the time since the previous frame
// in seconds and cameraYaw the device heading used when no course is
// known. The tick is skipped, returning false, unless the sample is
// usable.
func (n *Navigator) Tick(sample fixsource.Sample, dt, cameraYaw float64) (Frame, bool) {
	if !sample.Usable() {
		return Frame{}, false
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.course.Push(sample.Lat, sample.Lon, sample.Timestamp)
	hasCourse, courseDeg := n.course.Estimate()
	heading, _ := n.course.Heading(cameraYaw)

	f := Frame{
		Timestamp: utils.Iso8601FromFixSeconds(sample.Timestamp),
		Lat:       sample.Lat,
		Lon:       sample.Lon,
		HasCourse: hasCourse,
		Course:    courseDeg,
		Heading:   heading,
	}

	if n.spawner != nil {
		n.spawner.Update(sample.Lat, sample.Lon)
	}
	if n.anchors != nil {
		f.Anchors = n.anchors.Tick(
			anchors.Viewer{Lat: sample.Lat, Lon: sample.Lon, Alt: sample.Alt, CameraYaw: cameraYaw},
			anchors.Course{Valid: hasCourse, Degrees: courseDeg},
		)
	}

	if s := n.session; s != nil {
		n.tickRoute(s, &f, sample, dt, heading)
	}

	n.last, n.hasLast = f, true
	return f, true
}

func (n *Navigator) tickRoute(s *session, f *Frame, sample fixsource.Sample, dt, heading float64) {
	along, step := s.tracker.Update(sample.Lat, sample.Lon)
	f.RouteLoaded = true
	f.Along = along
	f.RawAlong = s.tracker.RawAlong()
	f.Remaining = s.tracker.Remaining()
	f.Step = step

	res := s.arrival.UpdateAt(sample.Lat, sample.Lon)
	f.Arrival = &res

	if res.Reached {
		f.Instruction = arrival.ArrivedText
		f.ArrowVisible = false
	} else {
		f.Instruction = s.guide.InstructionForStep(along, step)
		f.ThresholdTurn = s.guide.ThresholdTurn(along)
		f.Preview = s.guide.Preview(along)
		f.PreviewText = guidance.PreviewText(f.Preview)
		f.ArrowVisible = true
	}

	target := guidance.ArrowTargetAngle(s.guide.UpcomingLabel(along))
	f.ArrowYaw = s.arrow.Update(target, dt)

	if p, ok := s.route.Path.PointAtAlong(f.RawAlong + n.cfg.LookaheadMeters); ok {
		bearing := geo.Bearing(sample.Lat, sample.Lon, p.Lat, p.Lon)
		f.UIArrowAngle = s.uiArrow.Update(bearing, heading, dt)
	}

	n.publish(f.Instruction, f.PreviewText, res.Status)
}

func (n *Navigator) publish(instruction, preview, status string) {
	if instruction != n.lastInstruction {
		n.lastInstruction = instruction
		if n.sinks.Instruction != nil {
			n.sinks.Instruction(instruction)
		}
	}
	if preview != n.lastPreview {
		n.lastPreview = preview
		if n.sinks.Preview != nil {
			n.sinks.Preview(preview)
		}
	}
	if status != n.lastStatus {
		n.lastStatus = status
		if n.sinks.Status != nil {
			n.sinks.Status(status)
		}
	}
}

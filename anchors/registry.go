package anchors

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/arnav/geo"
	"github.com/theoremus-urban-solutions/arnav/internal/logging"
	"github.com/theoremus-urban-solutions/arnav/route"
)

type anchor struct {
	id    string
	coord route.Point
	meta  Metadata

	handle    Handle
	hasHandle bool
	tried     bool

	placed  bool
	placedE float64
	placedN float64
	placedU float64

	// visible is written only by Registry.Tick.
	visible     bool
	visibleSent bool
	sentVisible bool

	view View
}

// Registry owns the spawned anchors and their visibility state.
type Registry struct {
	cfg     Config
	creator Creator
	placer  Placer
	logger  *slog.Logger

	originSet bool
	originLat float64
	originLon float64
	originAlt float64

	anchors []*anchor
	byID    map[string]*anchor
}

// NewRegistry returns an empty registry. creator, placer and logger may be
// nil.
func NewRegistry(cfg Config, creator Creator, placer Placer, logger *slog.Logger) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Registry{
		cfg:     cfg,
		creator: creator,
		placer:  placer,
		logger:  logger,
		byID:    map[string]*anchor{},
	}, nil
}

// SetOrigin fixes the ENU origin. Only the first call has an effect; it
// reports whether the origin was set by this call.
func (r *Registry) SetOrigin(lat, lon, alt float64) bool {
	if r.originSet {
		return false
	}
	r.originLat, r.originLon, r.originAlt = lat, lon, finite(alt)
	r.originSet = true
	r.logger.Info("anchor origin set", "lat", lat, "lon", lon, "alt", r.originAlt)
	return true
}

// Origin returns the ENU origin once set.
func (r *Registry) Origin() (lat, lon, alt float64, ok bool) {
	return r.originLat, r.originLon, r.originAlt, r.originSet
}

// Spawn registers an anchor at coord and returns its ID. The platform
// anchor, if any, is created at the first tick after the origin is known.
func (r *Registry) Spawn(coord route.Point, meta Metadata) string {
	a := &anchor{
		id:    uuid.New().String(),
		coord: coord,
		meta:  meta,
	}
	r.anchors = append(r.anchors, a)
	r.byID[a.id] = a
	r.logger.Debug("anchor spawned", "id", a.id, "name", meta.Name, "lat", coord.Lat, "lon", coord.Lon, "camera_relative", meta.CameraRelative)
	return a.id
}

// Remove destroys one anchor.
func (r *Registry) Remove(id string) error {
	a, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	r.release(a)
	delete(r.byID, id)
	for i, x := range r.anchors {
		if x == a {
			r.anchors = append(r.anchors[:i], r.anchors[i+1:]...)
			break
		}
	}
	return nil
}

// Clear destroys every anchor. The origin is kept.
func (r *Registry) Clear() {
	for _, a := range r.anchors {
		r.release(a)
	}
	r.anchors = nil
	r.byID = map[string]*anchor{}
}

func (r *Registry) release(a *anchor) {
	if r.placer != nil && a.hasHandle {
		r.placer.Release(a.handle)
	}
}

// Len returns the number of anchors.
func (r *Registry) Len() int { return len(r.anchors) }

// Get returns the latest view of an anchor.
func (r *Registry) Get(id string) (View, bool) {
	a, ok := r.byID[id]
	if !ok {
		return View{}, false
	}
	return a.view, true
}

// Views returns the latest view of every anchor in spawn order.
func (r *Registry) Views() []View {
	out := make([]View, len(r.anchors))
	for i, a := range r.anchors {
		out[i] = a.view
	}
	return out
}

// Tick updates placement and visibility for every anchor and returns their
// views. The first tick captures the origin.
func (r *Registry) Tick(v Viewer, c Course) []View {
	r.SetOrigin(v.Lat, v.Lon, v.Alt)

	viewerE, viewerN := geo.LocalMeters(r.originLat, r.originLon, v.Lat, v.Lon)
	viewerAlt := finite(v.Alt)
	heading := v.CameraYaw
	if c.Valid {
		heading = c.Degrees
	}

	nearestRel := -1
	bestRel := math.MaxFloat64
	dists := make([]float64, len(r.anchors))
	for i, a := range r.anchors {
		dists[i] = geo.Haversine(v.Lat, v.Lon, a.coord.Lat, a.coord.Lon)
		if a.meta.CameraRelative && dists[i] < bestRel {
			bestRel = dists[i]
			nearestRel = i
		}
	}

	out := make([]View, len(r.anchors))
	for i, a := range r.anchors {
		dist := dists[i]

		if a.meta.CameraRelative {
			a.visible = i == nearestRel
		} else {
			a.visible = Hysteresis(a.visible, dist, r.cfg.ShowRadius, r.cfg.HideRadius)
		}

		pose := r.place(a, viewerE, viewerN, viewerAlt)

		bearing := geo.Bearing(v.Lat, v.Lon, a.coord.Lat, a.coord.Lon)
		dir := DirectionLabel(bearing, heading)
		a.view = View{
			ID:             a.id,
			Name:           a.meta.Name,
			Lat:            a.coord.Lat,
			Lon:            a.coord.Lon,
			Pose:           pose,
			Visible:        a.visible,
			CameraRelative: a.meta.CameraRelative,
			Distance:       dist,
			Direction:      dir,
			Label:          fmt.Sprintf("%s — %d m %s", a.meta.Name, int(math.Round(dist)), dir),
		}
		out[i] = a.view
	}
	return out
}

// place computes the anchor pose and forwards it to the platform.
func (r *Registry) place(a *anchor, viewerE, viewerN, viewerAlt float64) Pose {
	extra := r.cfg.FacingExtraYaw
	if r.cfg.FlipFacing {
		extra += 180
	}

	if a.meta.CameraRelative {
		offset := Pose{
			North: r.cfg.ViewerDistance,
			Up:    r.cfg.ViewerHeight + a.meta.HeightOffset,
			Yaw:   geo.Normalize360(180 + extra),
		}
		r.ensureHandle(a, offset)
		if r.placer != nil && a.hasHandle {
			r.placer.PlaceAtViewerOffset(a.handle, offset)
		}
		r.sendVisibility(a)
		return offset
	}

	east, north := geo.LocalMeters(r.originLat, r.originLon, a.coord.Lat, a.coord.Lon)
	alt := ClampAltitude(r.originAlt, r.cfg.GlobalHeightOffset, a.meta.HeightOffset, viewerAlt, r.cfg.MaxVerticalDelta)
	up := alt - r.originAlt

	// Small corrections are ignored so anchors do not drift with the
	// viewer's altitude noise.
	if !a.placed || math.Sqrt(sq(east-a.placedE)+sq(north-a.placedN)+sq(up-a.placedU)) > r.cfg.ReprojectMeters {
		a.placedE, a.placedN, a.placedU = east, north, up
		a.placed = true
	}
	// A held placement still honors the altitude clamp.
	if limit := r.cfg.MaxVerticalDelta; limit > 0 {
		lo := viewerAlt - limit - r.originAlt
		hi := viewerAlt + limit - r.originAlt
		a.placedU = math.Min(math.Max(a.placedU, lo), hi)
	}

	yaw, ok := FacingYaw(a.placedE, a.placedN, viewerE, viewerN)
	if !ok {
		yaw = 0
	}
	pose := Pose{East: a.placedE, North: a.placedN, Up: a.placedU, Yaw: geo.Normalize360(yaw + extra)}

	r.ensureHandle(a, pose)
	if r.placer != nil && a.hasHandle {
		r.placer.PlaceAtWorld(a.handle, pose)
	}
	r.sendVisibility(a)
	return pose
}

func (r *Registry) ensureHandle(a *anchor, pose Pose) {
	if a.tried || r.creator == nil {
		return
	}
	a.tried = true
	h, ok := r.creator.CreateAnchor(pose)
	if !ok {
		r.logger.Warn("platform anchor not created", "id", a.id, "name", a.meta.Name)
		return
	}
	a.handle, a.hasHandle = h, true
}

func (r *Registry) sendVisibility(a *anchor) {
	if r.placer == nil || !a.hasHandle {
		return
	}
	if a.visibleSent && a.sentVisible == a.visible {
		return
	}
	r.placer.SetVisible(a.handle, a.visible)
	a.visibleSent, a.sentVisible = true, a.visible
}

func sq(x float64) float64 { return x * x }

// finite maps NaN and infinities to 0; platforms report unknown altitude as
// NaN.
func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

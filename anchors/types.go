package anchors

import "errors"

var (
	// ErrInvalidRadii is returned when the show radius is not smaller than
	// the hide radius.
	ErrInvalidRadii = errors.New("anchors: show radius must be smaller than hide radius")
	// ErrNotFound is returned for an unknown anchor ID.
	ErrNotFound = errors.New("anchors: anchor not found")
)

// Pose is a position in local ENU meters plus a yaw in degrees, clockwise
// from north.
type Pose struct {
	East  float64 `json:"east"`
	North float64 `json:"north"`
	Up    float64 `json:"up"`
	Yaw   float64 `json:"yaw"`
}

// Handle is an opaque platform anchor returned by a Creator.
type Handle any

// Creator creates platform anchors. ok is false when the platform could not
// create one; the anchor is then tracked without a handle.
type Creator interface {
	CreateAnchor(pose Pose) (h Handle, ok bool)
}

// Placer positions rendered objects. PlaceAtViewerOffset is used for
// camera-relative anchors, whose pose is relative to the viewer rather than
// the origin.
type Placer interface {
	PlaceAtWorld(h Handle, pose Pose)
	PlaceAtViewerOffset(h Handle, offset Pose)
	SetVisible(h Handle, visible bool)
	Release(h Handle)
}

// Viewer is the current observer state fed to Tick.
type Viewer struct {
	Lat       float64
	Lon       float64
	Alt       float64
	CameraYaw float64
}

// Course is the walking course, when one is known.
type Course struct {
	Valid   bool
	Degrees float64
}

// Metadata describes an anchor at spawn time.
type Metadata struct {
	Name           string
	HeightOffset   float64
	CameraRelative bool
	// Visual is an opaque rendering reference (a prefab, a model path)
	// passed through untouched.
	Visual any
}

// Direction labels relative to the walker's heading.
const (
	DirectionAhead  = "ahead"
	DirectionRight  = "on right"
	DirectionLeft   = "on left"
	DirectionBehind = "behind"
)

// View is the per-tick output for one anchor.
type View struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Pose           Pose    `json:"pose"`
	Visible        bool    `json:"visible"`
	CameraRelative bool    `json:"camera_relative"`
	Distance       float64 `json:"distance_m"`
	Direction      string  `json:"direction"`
	Label          string  `json:"label"`
}

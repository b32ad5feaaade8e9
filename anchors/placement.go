package anchors

import (
	"math"

	"github.com/theoremus-urban-solutions/arnav/geo"
)

// ClampAltitude returns the anchor altitude for the given origin altitude
// and offsets, kept within maxDelta of the viewer altitude.
func ClampAltitude(originAlt, globalOffset, anchorOffset, viewerAlt, maxDelta float64) float64 {
	alt := originAlt + globalOffset + anchorOffset
	if maxDelta > 0 && math.Abs(alt-viewerAlt) > maxDelta {
		if alt > viewerAlt {
			alt = viewerAlt + maxDelta
		} else {
			alt = viewerAlt - maxDelta
		}
	}
	return alt
}

// FacingYaw returns the yaw, clockwise from north, that turns an object at
// (east, north) toward a viewer at (viewerEast, viewerNorth). Only the
// horizontal component is used. ok is false when both coincide.
func FacingYaw(east, north, viewerEast, viewerNorth float64) (yaw float64, ok bool) {
	dx := viewerEast - east
	dy := viewerNorth - north
	if dx*dx+dy*dy <= 1e-6 {
		return 0, false
	}
	return geo.Normalize360(math.Atan2(dx, dy) * 180 / math.Pi), true
}

// DirectionLabel classifies the bearing to an anchor relative to heading.
func DirectionLabel(bearingToAnchor, heading float64) string {
	rel := geo.NormalizeSigned(bearingToAnchor - heading)
	abs := math.Abs(rel)
	switch {
	case abs <= 25:
		return DirectionAhead
	case abs <= 110:
		if rel > 0 {
			return DirectionRight
		}
		return DirectionLeft
	}
	return DirectionBehind
}

// Hysteresis returns the next visibility state for an anchor at distance.
func Hysteresis(visible bool, distance, showRadius, hideRadius float64) bool {
	if visible {
		return !(distance > hideRadius)
	}
	return distance < showRadius
}

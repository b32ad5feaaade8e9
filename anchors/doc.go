// Package anchors keeps virtual objects pinned to geographic coordinates.
//
// Coordinates are converted to east/north/up meters relative to an origin
// captured at the first GPS fix. Every tick the Registry recomputes each
// anchor's placement and visibility and reports them as Views; a rendering
// collaborator may additionally be plugged in through the Creator and Placer
// interfaces to receive the same information as it changes.
//
// Visibility uses two radii so that GPS noise near a single boundary does not
// make anchors flicker: a hidden anchor appears once it is closer than the
// show radius and disappears only once it is farther than the hide radius.
package anchors

// Package geo provides the spherical and planar helpers used by the route,
// tracking and anchor packages.
//
// Distances are great-circle meters on a sphere of radius 6,371,000 m.
// Local planar conversions use an equirectangular approximation around an
// origin, which is accurate to well under a meter for the few hundred meters
// a pedestrian route or anchor set spans.
package geo

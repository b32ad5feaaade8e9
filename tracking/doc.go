// Package tracking turns raw GPS fixes into progress along a route.
//
// Each fix is projected onto the nearest path segment to obtain a raw
// along-distance, which is then damped with a short moving average. The
// smoothed value selects the current step; the step index only moves
// forward for the lifetime of a route.
//
// The projection is a linear scan over every path segment. Paths are
// resampled at a few meters, so a route of a couple of kilometers stays in
// the hundreds of points.
package tracking

// Package route flattens a walking route's steps into a single resampled
// path with a cumulative along-distance table and per-step ranges.
//
// Build decodes each step's polyline (falling back to a straight start→end
// segment), resamples every segment at a fixed interval, drops exact
// duplicate points and records where each step begins and ends both as path
// indices and as along-distance. Adjacent steps whose ends lie within a
// threshold of each other are then merged so that fragmented "continue"
// steps do not produce a stream of announcements.
//
// A Route is immutable once built; callers replace it wholesale when a new
// route arrives.
package route

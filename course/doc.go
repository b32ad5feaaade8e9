// Package course estimates the walking direction from recent GPS fixes.
//
// It replaces a magnetic compass: the course is the bearing from the oldest
// to the newest fix in a short time window, reported only while the walker
// moves fast enough for that bearing to be meaningful.
package course

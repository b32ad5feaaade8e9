// Package polyline decodes and encodes Google's Encoded Polyline Algorithm
// Format. Route steps from the walking-directions provider carry their
// geometry in this form.
//
// Decoding is tolerant of untrusted input: a truncated or corrupt string
// yields every point decoded before the fault and never panics.
package polyline

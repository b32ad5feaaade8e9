// Package arrival implements the destination arrival state machine.
//
// A Machine moves through Approaching, PreviewShown, WorldMarkerSpawned and
// Arrived as the walker nears the destination. The preview marker uses the
// same two-radius hysteresis as anchor visibility, the world marker is
// spawned once per route, and the arrival event fires exactly once.
package arrival

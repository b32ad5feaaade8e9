// Package guidance produces the turn-by-turn text and arrow angles shown to
// the walker.
//
// Steps are classified from the provider's maneuver hint first and from
// their HTML instruction text second. Turn announcements are held back until
// the walker is within an announcement threshold of the turn; until then the
// instruction reads "Go straight" with the distance to the turn.
//
// Two arrows are driven from here. The 3D guidance arrow rotates toward a
// fixed yaw per maneuver label with critically damped smoothing. The 2D
// compass arrow points at a look-ahead point on the path relative to the
// walker's heading.
package guidance

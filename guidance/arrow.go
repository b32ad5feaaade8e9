package guidance

import (
	"math"
	"strings"

	"github.com/theoremus-urban-solutions/arnav/geo"
)

// ArrowTargetAngle returns the guidance arrow yaw for a label, degrees,
// negative to the left.
func ArrowTargetAngle(label string) float64 {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "u-turn"):
		return 180
	case strings.Contains(l, "left"):
		if strings.Contains(l, "slight") {
			return -35
		}
		return -90
	case strings.Contains(l, "right"):
		if strings.Contains(l, "slight") {
			return 35
		}
		return 90
	}
	return 0
}

// DefaultSmoothTime is the arrow's smoothing time constant, seconds.
const DefaultSmoothTime = 0.15

// ArrowSmoother rotates the guidance arrow toward its target with a
// critically damped spring so it never overshoots or snaps.
type ArrowSmoother struct {
	SmoothTime float64

	yaw      float64
	velocity float64
}

// NewArrowSmoother returns a smoother starting at yaw 0.
func NewArrowSmoother(smoothTime float64) *ArrowSmoother {
	if smoothTime <= 0 {
		smoothTime = DefaultSmoothTime
	}
	return &ArrowSmoother{SmoothTime: smoothTime}
}

// Yaw returns the current arrow yaw in (-180, 180].
func (s *ArrowSmoother) Yaw() float64 { return geo.NormalizeSigned(s.yaw) }

// Reset snaps the arrow to yaw and stops it.
func (s *ArrowSmoother) Reset(yaw float64) {
	s.yaw = yaw
	s.velocity = 0
}

// Update advances the arrow toward target by dt seconds along the shortest
// turn and returns the new yaw.
func (s *ArrowSmoother) Update(target, dt float64) float64 {
	if dt <= 0 || math.IsNaN(dt) {
		return s.Yaw()
	}
	target = s.yaw + geo.NormalizeSigned(target-s.yaw)
	s.yaw, s.velocity = smoothDamp(s.yaw, target, s.velocity, math.Max(0.0001, s.SmoothTime), dt)
	if math.IsNaN(s.yaw) {
		s.Reset(0)
	}
	return s.Yaw()
}

// smoothDamp is the critically damped spring step with the usual cubic
// approximation of exp(-omega*dt).
func smoothDamp(current, target, velocity, smoothTime, dt float64) (float64, float64) {
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * decay
	out := target + (change+temp)*decay

	// Clamp overshoot.
	if (target-current > 0) == (out > target) {
		out = target
		velocity = (out - target) / dt
	}
	return out, velocity
}

// DefaultLookaheadMeters is how far ahead on the path the compass arrow
// aims.
const DefaultLookaheadMeters = 12

// UIArrow is the 2D compass arrow. Its angle is the screen rotation, positive
// counter-clockwise, that points it at a look-ahead point on the path.
type UIArrow struct {
	// Smoothing is the lerp rate per second; values below 1 are raised to 1.
	Smoothing float64

	angle float64
}

// NewUIArrow returns an arrow with the given smoothing rate.
func NewUIArrow(smoothing float64) *UIArrow {
	return &UIArrow{Smoothing: smoothing}
}

// DesiredAngle is the unsmoothed screen rotation for an arrow that should
// point at bearingToTarget when the walker faces heading.
func DesiredAngle(bearingToTarget, heading float64) float64 {
	return -geo.NormalizeSigned(bearingToTarget - heading)
}

// Update moves the arrow toward the desired angle and returns it.
func (a *UIArrow) Update(bearingToTarget, heading, dt float64) float64 {
	desired := DesiredAngle(bearingToTarget, heading)
	rate := math.Max(1, a.Smoothing)
	a.angle = lerpAngle(a.angle, desired, dt*rate)
	return a.angle
}

// Angle returns the current arrow rotation.
func (a *UIArrow) Angle() float64 { return a.angle }

// lerpAngle interpolates along the shortest arc; t is clamped to [0,1].
func lerpAngle(from, to, t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return geo.NormalizeSigned(from + geo.NormalizeSigned(to-from)*t)
}

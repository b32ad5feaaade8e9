package fixsource

import "math"

// Replay steps through recorded samples on a fixed tick. Each call to Next
// advances the clock by dt seconds and returns the latest sample at or
// before that time; between samples the previous fix is repeated, as a
// device would report it.
type Replay struct {
	samples []Sample
	next    int
	clock   float64
	current Sample
	started bool
}

// NewReplay returns a replay over samples, which must be sorted by
// timestamp.
func NewReplay(samples []Sample) *Replay {
	r := &Replay{samples: samples}
	if len(samples) > 0 {
		r.clock = samples[0].Timestamp
	}
	r.current = Sample{Alt: math.NaN(), Status: Initializing}
	return r
}

// Next advances the replay by dt seconds. ok is false once the trace is
// exhausted; the returned sample then has status Stopped.
func (r *Replay) Next(dt float64) (Sample, bool) {
	if r.next >= len(r.samples) && r.started {
		s := r.current
		s.Status = Stopped
		return s, false
	}
	if r.started {
		r.clock += dt
	}
	r.started = true

	for r.next < len(r.samples) && r.samples[r.next].Timestamp <= r.clock {
		r.current = r.samples[r.next]
		r.next++
	}
	return r.current, true
}

// Done reports whether every sample has been emitted.
func (r *Replay) Done() bool { return r.next >= len(r.samples) }

// Clock returns the current replay time in seconds.
func (r *Replay) Clock() float64 { return r.clock }

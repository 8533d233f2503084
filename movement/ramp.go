package movement

import (
	"math"

	"github.com/oomph-ac/parkour/omath"
)

// speedRamp is a resumable transition of the move speed. Time is accumulated in scaled seconds and the
// ramp completes once it reaches the size of the gap, so a larger change takes proportionally longer.
// Restarting overwrites the ramp in place.
type speedRamp struct {
	start, target float64
	elapsed, span float64
	active        bool
}

// restart begins a new ramp from one speed to another, discarding any ramp in flight.
func (r *speedRamp) restart(from, to float64) {
	*r = speedRamp{
		start:  from,
		target: to,
		span:   math.Abs(to - from),
		active: true,
	}
}

// cancel stops the ramp where it is.
func (r *speedRamp) cancel() {
	r.active = false
}

// advance progresses the ramp by dt seconds scaled by rate and returns the speed for this frame. A ramp with
// no gap or no usable rate finishes immediately. The final value is exactly the target.
func (r *speedRamp) advance(dt, rate float64) float64 {
	if !r.active {
		return r.target
	}
	if rate <= 0 || math.IsNaN(rate) || r.span <= 0 {
		r.active = false
		return r.target
	}
	r.elapsed += math.Max(0, dt) * rate
	if r.elapsed >= r.span {
		r.active = false
		return r.target
	}
	return omath.Lerp(r.start, r.target, r.elapsed/r.span)
}

// progress returns how far through the ramp is, from 0 to 1.
func (r *speedRamp) progress() float64 {
	if !r.active || r.span <= 0 {
		return 1
	}
	return omath.ClampFloat(r.elapsed/r.span, 0, 1)
}

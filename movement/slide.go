package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/camera"
	"github.com/oomph-ac/parkour/omath"
	"github.com/oomph-ac/parkour/physics"
	"github.com/oomph-ac/parkour/settings"
)

// descendThreshold is the vertical velocity under which a slide counts as descending a slope.
const descendThreshold = -0.1

// Slide is a time-boxed, high speed crouch slide.
type Slide struct {
	c   *Controller
	cam *camera.Rig
	s   settings.SlidingSettings

	active bool
	timer  float64
	input  Input
}

// NewSlide returns a slide module for c. The module still has to be attached to the controller.
func NewSlide(c *Controller, cam *camera.Rig, s settings.SlidingSettings) *Slide {
	return &Slide{c: c, cam: cam, s: s}
}

func (sl *Slide) Owner() Owner {
	return OwnerSlide
}

func (sl *Slide) Enabled() bool {
	return sl.c.SlidingEnabled()
}

func (sl *Slide) Active() bool {
	return sl.active
}

// Timer returns the remaining slide time in seconds.
func (sl *Slide) Timer() float64 {
	return sl.timer
}

// DesiredSpeed is the slide speed while descending a slope and the sprint speed otherwise.
func (sl *Slide) DesiredSpeed() float64 {
	if sl.c.OnSlope() && sl.c.body.Vel().Y() < 0.1 {
		return sl.c.s.SlideSpeed
	}
	return sl.c.s.SprintSpeed
}

// Update starts the slide on the press of the slide action and ends it once the action is released.
func (sl *Slide) Update(_ float64, in Input) {
	sl.input = in
	if sl.active {
		if in.Slide.Released || !in.Slide.Down {
			sl.stop("released")
		}
		return
	}
	if in.Slide.Pressed && sl.canStart() {
		sl.start()
	}
}

func (sl *Slide) canStart() bool {
	return sl.input.Moving() && !sl.c.WallRunning() && sl.c.CanSlide()
}

func (sl *Slide) start() {
	if !sl.c.override.TryAcquire(OwnerSlide) {
		return
	}
	sl.active = true
	sl.timer = sl.s.MaxSlideTime

	body := sl.c.body
	body.SetYScale(max(minYScale, sl.s.SlideYScale))
	body.AddForce(omath.Up.Mul(-sl.s.SlideDownForce), physics.ForceModeImpulse)
	if sl.cam != nil {
		sl.cam.RequestFOV(float32(sl.s.SlideFOV), float32(sl.s.CameraTransitionSpeed))
	}
	sl.c.dbg.Notify(DebugModeSlide, true, "slide started (timer=%.2f)", sl.timer)
}

// FixedUpdate pushes the body along the input direction. Descending a walkable slope pushes along the slope
// and does not use up slide time.
func (sl *Slide) FixedUpdate(dt float64) {
	if !sl.active {
		return
	}
	body := sl.c.body
	dir := body.Forward().Mul(sl.input.Move.Y()).Add(body.Right().Mul(sl.input.Move.X()))

	var force mgl64.Vec3
	if !sl.c.OnSlope() || body.Vel().Y() > descendThreshold {
		force = omath.SafeNormalize(dir).Mul(sl.s.SlideForce)
		sl.timer -= dt
	} else {
		force = sl.c.SlopeMoveDirection(dir).Mul(sl.s.SlideForce)
	}
	body.AddForce(force, physics.ForceModeForce)

	if sl.timer <= 0 {
		sl.stop("timeout")
	}
}

// Stop ends the slide if it is active.
func (sl *Slide) Stop() {
	if sl.active {
		sl.stop("stopped")
	}
}

// stop releases the lock and restores the body scale and the field of view.
func (sl *Slide) stop(reason string) {
	sl.active = false
	sl.timer = 0
	sl.c.override.Release(OwnerSlide)

	sl.c.body.SetYScale(sl.c.restingYScale())
	if sl.cam != nil {
		sl.cam.RequestFOV(float32(sl.s.NormalFOV), float32(sl.s.CameraTransitionSpeed))
	}
	sl.c.dbg.Notify(DebugModeSlide, true, "slide ended (%s)", reason)
}

func (sl *Slide) fillSnapshot(s *Snapshot) {
	s.Sliding = sl.active
	s.SlideTimer = sl.timer
}

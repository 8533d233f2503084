package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/camera"
	"github.com/oomph-ac/parkour/omath"
	"github.com/oomph-ac/parkour/physics"
	"github.com/oomph-ac/parkour/settings"
)

// WallRunPhase is the phase of the wall-run module.
type WallRunPhase uint8

const (
	WallRunIdle WallRunPhase = iota
	WallRunRunning
	// WallRunExiting refuses new wall-runs until the exit timer runs out.
	WallRunExiting
)

func (p WallRunPhase) String() string {
	switch p {
	case WallRunRunning:
		return "running"
	case WallRunExiting:
		return "exiting"
	default:
		return "idle"
	}
}

// WallRun lets the character run along walls to its side while airborne.
type WallRun struct {
	c   *Controller
	cam *camera.Rig
	s   settings.WallRunningSettings

	phase     WallRunPhase
	runTimer  float64
	exitTimer float64

	wallLeft, wallRight bool
	leftHit, rightHit   physics.Hit

	input      Input
	useGravity bool
}

// NewWallRun returns a wall-run module for c. The module still has to be attached to the controller.
func NewWallRun(c *Controller, cam *camera.Rig, s settings.WallRunningSettings) *WallRun {
	return &WallRun{c: c, cam: cam, s: s}
}

func (w *WallRun) Owner() Owner {
	return OwnerWallRun
}

func (w *WallRun) Enabled() bool {
	return w.c.WallRunningEnabled()
}

func (w *WallRun) Active() bool {
	return w.phase == WallRunRunning
}

// Phase returns the current phase of the module.
func (w *WallRun) Phase() WallRunPhase {
	return w.phase
}

// WallLeft returns true if a wall was found to the left during the last logic frame.
func (w *WallRun) WallLeft() bool {
	return w.wallLeft
}

// WallRight returns true if a wall was found to the right during the last logic frame.
func (w *WallRun) WallRight() bool {
	return w.wallRight
}

// RunTimer returns the remaining wall-run time in seconds.
func (w *WallRun) RunTimer() float64 {
	return w.runTimer
}

// ExitTimer returns the remaining exit cooldown in seconds.
func (w *WallRun) ExitTimer() float64 {
	return w.exitTimer
}

func (w *WallRun) DesiredSpeed() float64 {
	return w.c.s.WallRunningSpeed
}

// Update probes for walls and advances the wall-run state machine.
func (w *WallRun) Update(dt float64, in Input) {
	w.input = in
	w.checkForWall()

	switch {
	case w.canStart():
		if w.phase == WallRunIdle && !w.start() {
			return
		}
		w.runTimer = max(0, w.runTimer-dt)
		if w.runTimer <= 0 {
			w.exit("timeout")
			return
		}
		if in.Jump.Pressed {
			w.wallJump()
		}
	case w.phase == WallRunExiting:
		w.exitTimer = max(0, w.exitTimer-dt)
		if w.exitTimer <= 0 {
			w.phase = WallRunIdle
			w.c.dbg.Notify(DebugModeWallRun, true, "wall-run exit cooldown over")
		}
	case w.phase == WallRunRunning:
		w.stop("lost wall")
	}
}

func (w *WallRun) checkForWall() {
	pos, right := w.c.body.Pos(), w.c.body.Right()
	w.rightHit, w.wallRight = w.c.world.CastRay(pos, right, w.s.WallCheckDistance, w.s.WallLayer)
	w.leftHit, w.wallLeft = w.c.world.CastRay(pos, right.Mul(-1), w.s.WallCheckDistance, w.s.WallLayer)
}

// aboveGround returns true if there is no ground within the minimum wall-run height.
func (w *WallRun) aboveGround() bool {
	_, ok := w.c.world.CastRay(w.c.body.Pos(), mgl64.Vec3{0, -1, 0}, w.s.MinJumpHeight, w.s.GroundLayer)
	return !ok
}

func (w *WallRun) canStart() bool {
	return (w.wallLeft || w.wallRight) && w.input.Move.Y() > 0 && w.aboveGround() && w.phase != WallRunExiting
}

func (w *WallRun) start() bool {
	if !w.c.override.TryAcquire(OwnerWallRun) {
		return false
	}
	w.phase = WallRunRunning
	w.runTimer = w.s.MaxWallRunTime

	body := w.c.body
	w.useGravity = body.UseGravity()
	body.SetVel(omath.WithY(body.Vel(), 0))
	if w.cam != nil {
		w.cam.RequestFOV(float32(w.s.WallRunFOV), float32(w.s.CameraTransitionSpeed))
	}
	w.c.dbg.Notify(DebugModeWallRun, true, "wall-run started (left=%v right=%v)", w.wallLeft, w.wallRight)
	return true
}

// stop ends the run without an exit cooldown.
func (w *WallRun) stop(reason string) {
	w.phase = WallRunIdle
	w.runTimer = 0
	w.c.override.Release(OwnerWallRun)

	w.c.body.SetUseGravity(w.useGravity)
	if w.cam != nil {
		w.cam.RequestFOV(float32(w.s.NormalFOV), float32(w.s.CameraTransitionSpeed))
	}
	w.c.dbg.Notify(DebugModeWallRun, true, "wall-run ended (%s)", reason)
}

// exit ends the run and starts the exit cooldown.
func (w *WallRun) exit(reason string) {
	w.stop(reason)
	w.phase = WallRunExiting
	w.exitTimer = max(0, w.s.ExitWallTime)
}

// Stop ends the run if it is active.
func (w *WallRun) Stop() {
	if w.phase == WallRunRunning {
		w.stop("stopped")
	}
}

// wallJump pushes the body up and away from the wall and ends the run.
func (w *WallRun) wallJump() {
	normal := w.wallNormal()
	w.exit("wall jump")

	body := w.c.body
	body.SetVel(mgl64.Vec3{})
	body.AddForce(body.Up().Mul(w.s.WallJumpUpForce).Add(normal.Mul(w.s.WallJumpSideForce)), physics.ForceModeImpulse)
}

func (w *WallRun) wallNormal() mgl64.Vec3 {
	if w.wallRight {
		return w.rightHit.Normal
	}
	return w.leftHit.Normal
}

// wallForward returns the direction along the wall closest to where the body faces.
func (w *WallRun) wallForward(normal mgl64.Vec3) mgl64.Vec3 {
	along := normal.Cross(omath.Up)
	fwd := w.c.body.Forward()
	if fwd.Sub(along).Len() > fwd.Add(along).Len() {
		along = along.Mul(-1)
	}
	return along
}

// FixedUpdate drives the body along the wall, pins its climb speed and keeps it against the wall.
func (w *WallRun) FixedUpdate(float64) {
	if w.phase != WallRunRunning {
		return
	}
	body := w.c.body
	body.SetUseGravity(w.s.UseGravity)

	normal := w.wallNormal()
	body.AddForce(w.wallForward(normal).Mul(w.s.WallRunForce), physics.ForceModeForce)
	body.SetVel(omath.WithY(body.Vel(), w.s.WallClimbSpeed))

	steeringAway := (w.wallLeft && w.input.Move.X() > 0) || (w.wallRight && w.input.Move.X() < 0)
	if !steeringAway {
		body.AddForce(normal.Mul(-w.s.WallStickForce), physics.ForceModeForce)
	}
	if w.s.UseGravity {
		body.AddForce(body.Up().Mul(w.s.GravityCounterForce), physics.ForceModeForce)
	}
}

func (w *WallRun) fillSnapshot(s *Snapshot) {
	s.WallRunPhase = w.phase
	s.WallRunTimer = w.runTimer
	s.WallLeft, s.WallRight = w.wallLeft, w.wallRight
}

package movement

import (
	"log/slog"
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/assert"
	"github.com/oomph-ac/parkour/camera"
	"github.com/oomph-ac/parkour/oerror"
	"github.com/oomph-ac/parkour/omath"
	"github.com/oomph-ac/parkour/physics"
	"github.com/oomph-ac/parkour/settings"
)

// minYScale is the smallest vertical scale the controller will shrink the body to.
const minYScale = 0.05

// Controller owns the velocity and movement state of a character. Update runs once per logic frame,
// FixedUpdate once per physics step and LateUpdate after every logic frame.
type Controller struct {
	log *slog.Logger
	dbg *Debugger

	s settings.ControllerSettings

	body  *physics.Body
	world physics.Query
	cam   *camera.Rig

	override Override
	modules  []Module

	input   Input
	state   State
	moveDir mgl64.Vec3

	moveSpeed            float64
	desiredMoveSpeed     float64
	lastDesiredMoveSpeed float64
	ramp                 speedRamp

	ground       GroundProbe
	jump         jumpState
	exitingSlope bool

	frozen      bool
	canMove     bool
	crouching   bool
	startYScale float64
}

// headAnchor is the camera target: a point above the body centre that follows its vertical scale.
type headAnchor struct {
	body   *physics.Body
	offset float64
}

func (h headAnchor) Pos() mgl64.Vec3 {
	return h.body.Pos().Add(omath.Up.Mul(h.offset * h.body.Scale().Y()))
}

// NewController returns a controller driving body. A nil world makes every probe miss and a nil camera rig
// disables look input and field of view changes; both are logged.
func NewController(body *physics.Body, world physics.Query, cam *camera.Rig, s settings.Settings, log *slog.Logger) *Controller {
	assert.IsTrue(body != nil, "movement controller created without a body")
	if log == nil {
		log = slog.Default()
	}

	c := &Controller{
		log:         log,
		dbg:         NewDebugger(log),
		s:           s.Controller,
		body:        body,
		world:       world,
		cam:         cam,
		canMove:     true,
		startYScale: body.Scale().Y(),
		jump:        jumpState{ready: true},
	}
	if world == nil {
		log.Error("movement controller degraded", "err", oerror.Newf(oerror.KindMissingDependency, "no physics query, probes will never hit"))
		c.world = physics.NopQuery{}
	}
	if cam == nil {
		log.Error("movement controller degraded", "err", oerror.Newf(oerror.KindMissingDependency, "no camera rig, camera updates skipped"))
	} else {
		cam.Initialize(headAnchor{body: body, offset: s.Camera.HeadOffset})
	}
	return c
}

// Attach registers a module with the controller. Only one module per owner may be attached.
func (c *Controller) Attach(m Module) {
	if m == nil {
		return
	}
	for _, existing := range c.modules {
		if existing.Owner() == m.Owner() {
			c.log.Warn("movement module already attached", "module", m.Owner().String())
			return
		}
	}
	c.modules = append(c.modules, m)
	if !m.Enabled() {
		c.log.Info("movement module disabled", "module", m.Owner().String())
	}
}

// Update runs the logic frame: input, ground probe, jump, modules, state machine and timers.
func (c *Controller) Update(dt float64, in Input) {
	dt = math.Max(0, dt)
	if !c.canMove {
		c.updateCamera(dt)
		return
	}

	c.input = in
	c.handleCrouch(in.Crouch.Down)

	c.ground = ProbeGround(c.world, c.body.Pos(), c.s.PlayerHeight*0.5, c.s.GroundCheckDistance, c.s.GroundLayer, c.s.MaxSlopeAngle)
	c.dbg.Notify(DebugModeGround, true, "grounded=%v onSlope=%v angle=%.2f", c.ground.Grounded, c.ground.OnSlope(), c.ground.Angle)

	if in.Jump.Pressed && c.canJump() {
		c.doJump()
		in.Jump.Pressed = false
	} else {
		c.dbg.Notify(DebugModeJump, in.Jump.Pressed, "jump refused (ready=%v grounded=%v crouching=%v cooldown=%.3f)",
			c.jump.ready, c.ground.Grounded, c.crouching, c.jump.cooldown)
	}

	if c.cam != nil {
		c.cam.InputLook(in.Look, float32(c.s.SensX), float32(c.s.SensY), float32(dt))
	}
	active := 0
	for _, m := range c.modules {
		if m.Enabled() {
			m.Update(dt, in)
		}
		if m.Active() {
			active++
		}
	}
	assert.IsTrue(active <= 1, "%d movement modules active at once", active)

	c.stateHandler(dt)
	if c.jump.tick(dt) {
		c.exitingSlope = false
		c.dbg.Notify(DebugModeJump, true, "jump ready")
	}
	c.updateSpeedEffect()
	c.updateCamera(dt)
}

// FixedUpdate runs the physics step: velocity blending, the active module and integration of the body.
func (c *Controller) FixedUpdate(dt float64) {
	if dt <= 0 {
		return
	}
	if c.frozen {
		c.body.SetVel(mgl64.Vec3{})
	} else if c.canMove {
		c.movePlayer(dt)
		for _, m := range c.modules {
			if m.Enabled() && m.Active() {
				m.FixedUpdate(dt)
			}
		}
	}
	c.body.Integrate(dt, c.world)
}

// LateUpdate turns the body to the camera yaw and moves the camera holder to the head.
func (c *Controller) LateUpdate() {
	if c.cam != nil {
		c.cam.Apply(c.body)
	}
}

// handleCrouch shrinks the body when crouching starts and restores it when crouching ends.
func (c *Controller) handleCrouch(down bool) {
	if down == c.crouching {
		return
	}
	c.crouching = down
	if down {
		c.body.SetYScale(math.Max(minYScale, c.s.CrouchYScale))
		c.body.AddForce(omath.Up.Mul(-c.s.CrouchDownForce), physics.ForceModeImpulse)
		return
	}
	// A slide keeps the body shrunk until it ends.
	if c.override.Held(OwnerSlide) {
		return
	}
	c.body.SetYScale(c.startYScale)
}

// restingYScale returns the vertical scale the body has when no module changes it.
func (c *Controller) restingYScale() float64 {
	if c.crouching {
		return math.Max(minYScale, c.s.CrouchYScale)
	}
	return c.startYScale
}

func (c *Controller) canJump() bool {
	return c.jump.canJump() && c.ground.Grounded && !c.crouching
}

func (c *Controller) doJump() {
	c.exitingSlope = true
	c.jump.trigger(c.s.JumpCooldown)

	c.body.SetVel(omath.WithY(c.body.Vel(), 0))
	c.body.AddForce(c.body.Up().Mul(c.s.JumpForce), physics.ForceModeImpulse)
	c.dbg.Notify(DebugModeJump, true, "jumped (force=%.2f cooldown=%.3f)", c.s.JumpForce, c.jump.cooldown)
}

// stateHandler selects the movement state and the desired speed for this frame.
func (c *Controller) stateHandler(dt float64) {
	prev := c.state
	switch {
	case c.frozen:
		c.state = StateFreeze
		c.desiredMoveSpeed, c.lastDesiredMoveSpeed, c.moveSpeed = 0, 0, 0
		c.ramp.cancel()
		c.body.SetVel(mgl64.Vec3{})
	case c.moduleActive(OwnerWallRun):
		c.state = StateWallRunning
		c.desiredMoveSpeed = c.module(OwnerWallRun).DesiredSpeed()
	case c.moduleActive(OwnerSlide):
		c.state = StateSliding
		c.desiredMoveSpeed = c.module(OwnerSlide).DesiredSpeed()
	case c.crouching:
		c.state = StateCrouching
		c.desiredMoveSpeed = c.s.CrouchSpeed
	case c.ground.Grounded && c.input.Sprint.Down:
		c.state = StateSprinting
		c.desiredMoveSpeed = c.s.SprintSpeed
	case c.ground.Grounded:
		c.state = StateWalking
		c.desiredMoveSpeed = c.s.WalkSpeed
	default:
		// The speed carried into the air is kept.
		c.state = StateAir
	}

	if !c.frozen {
		c.updateMoveSpeed(dt)
	}

	if prev != c.state && c.dbg.Enabled(DebugModeState) {
		params := orderedmap.NewOrderedMap[string, any]()
		params.Set("from", prev.String())
		params.Set("to", c.state.String())
		params.Set("desired", c.desiredMoveSpeed)
		params.Set("speed", c.moveSpeed)
		params.Set("grounded", c.ground.Grounded)
		c.dbg.NotifyParams(DebugModeState, "movement state changed", params)
	}
}

// updateMoveSpeed moves the move speed towards the desired speed. Large changes ramp over several frames,
// small changes apply at once.
func (c *Controller) updateMoveSpeed(dt float64) {
	threshold := math.Max(0, c.s.SpeedChangeThreshold)
	switch {
	case math.Abs(c.desiredMoveSpeed-c.lastDesiredMoveSpeed) > threshold && c.moveSpeed != 0:
		c.ramp.restart(c.moveSpeed, c.desiredMoveSpeed)
	case c.ramp.active && c.ramp.target == c.desiredMoveSpeed:
		// The ramp in flight already heads for this speed.
	default:
		c.ramp.cancel()
		c.moveSpeed = c.desiredMoveSpeed
	}
	c.lastDesiredMoveSpeed = c.desiredMoveSpeed

	if c.ramp.active {
		c.moveSpeed = c.ramp.advance(dt, c.rampRate())
	}
}

// rampRate returns how fast the speed ramp advances. Steeper slopes ramp faster.
func (c *Controller) rampRate() float64 {
	rate := c.s.SpeedIncreaseMultiplier
	if c.ground.OnSlope() {
		rate *= c.s.SlopeIncreaseMultiplier * (1 + c.ground.Angle/90)
	}
	return rate
}

// movePlayer blends the horizontal velocity towards the desired velocity. Vertical velocity is untouched.
func (c *Controller) movePlayer(dt float64) {
	c.moveDir = c.body.Forward().Mul(c.input.Move.Y()).Add(c.body.Right().Mul(c.input.Move.X()))
	target := c.targetVelocity()

	accel := c.s.AirAcceleration
	if c.ground.Grounded {
		accel = c.s.GroundAcceleration
	}
	t := accel * dt

	vel := c.body.Vel()
	c.body.SetVel(mgl64.Vec3{
		omath.Lerp(vel.X(), target.X(), t),
		vel.Y(),
		omath.Lerp(vel.Z(), target.Z(), t),
	})
}

func (c *Controller) targetVelocity() mgl64.Vec3 {
	if c.ground.OnSlope() && !c.exitingSlope {
		return c.ground.ProjectOntoSlope(c.moveDir).Mul(c.moveSpeed)
	}
	return omath.SafeNormalize(c.moveDir).Mul(c.moveSpeed)
}

func (c *Controller) updateSpeedEffect() {
	if c.cam == nil || !c.s.SpeedEffect {
		return
	}
	c.cam.ToggleSpeedEffect(omath.Vec3HzDistSqr(c.body.Vel()) > c.s.SprintSpeed*c.s.SprintSpeed)
}

func (c *Controller) updateCamera(dt float64) {
	if c.cam != nil {
		c.cam.Update(float32(dt))
	}
}

func (c *Controller) module(owner Owner) Module {
	for _, m := range c.modules {
		if m.Owner() == owner {
			return m
		}
	}
	return nil
}

func (c *Controller) moduleActive(owner Owner) bool {
	m := c.module(owner)
	return m != nil && m.Enabled() && c.override.Held(owner)
}

// CanSlide returns true if there is ground within sliding range below the body.
func (c *Controller) CanSlide() bool {
	_, ok := c.world.CastRay(c.body.Pos(), mgl64.Vec3{0, -1, 0}, c.s.PlayerHeight+c.s.SlideCheckDistance, c.s.GroundLayer)
	return ok
}

// OnSlope returns true if the character stands on walkable inclined ground.
func (c *Controller) OnSlope() bool {
	return c.ground.OnSlope()
}

// SlopeMoveDirection returns dir projected onto the ground under the character.
func (c *Controller) SlopeMoveDirection(dir mgl64.Vec3) mgl64.Vec3 {
	return c.ground.ProjectOntoSlope(dir)
}

// Ground returns the ground probe of the last logic frame.
func (c *Controller) Ground() GroundProbe {
	return c.ground
}

// Grounded returns true if the character stood on ground during the last logic frame.
func (c *Controller) Grounded() bool {
	return c.ground.Grounded
}

// State returns the current movement state.
func (c *Controller) State() State {
	return c.state
}

// Body returns the body driven by the controller.
func (c *Controller) Body() *physics.Body {
	return c.body
}

// World returns the physics query used by the controller.
func (c *Controller) World() physics.Query {
	return c.world
}

// Override returns the locomotion override lock.
func (c *Controller) Override() *Override {
	return &c.override
}

// Settings returns the controller settings.
func (c *Controller) Settings() settings.ControllerSettings {
	return c.s
}

// Debugger returns the debugger of the controller.
func (c *Controller) Debugger() *Debugger {
	return c.dbg
}

// MoveSpeed returns the current move speed.
func (c *Controller) MoveSpeed() float64 {
	return c.moveSpeed
}

// DesiredMoveSpeed returns the speed the move speed converges to.
func (c *Controller) DesiredMoveSpeed() float64 {
	return c.desiredMoveSpeed
}

// MoveDirection returns the unnormalized movement direction of the last physics step.
func (c *Controller) MoveDirection() mgl64.Vec3 {
	return c.moveDir
}

// JumpCooldown returns the remaining jump cooldown in seconds.
func (c *Controller) JumpCooldown() float64 {
	return c.jump.cooldown
}

// ReadyToJump returns true once the jump cooldown has run out.
func (c *Controller) ReadyToJump() bool {
	return c.jump.ready
}

// ExitingSlope returns true during the jump cooldown, while slope projection is suppressed.
func (c *Controller) ExitingSlope() bool {
	return c.exitingSlope
}

// Crouching returns true while crouch is held.
func (c *Controller) Crouching() bool {
	return c.crouching
}

// Sliding returns true while the slide module holds the override lock.
func (c *Controller) Sliding() bool {
	return c.override.Held(OwnerSlide)
}

// WallRunning returns true while the wall-run module holds the override lock.
func (c *Controller) WallRunning() bool {
	return c.override.Held(OwnerWallRun)
}

// SlidingEnabled returns true if the slide module is switched on.
func (c *Controller) SlidingEnabled() bool {
	return c.s.EnableSliding
}

// WallRunningEnabled returns true if the wall-run module is switched on.
func (c *Controller) WallRunningEnabled() bool {
	return c.s.EnableWallRunning
}

// SetMove toggles whether the controller processes input. The body keeps integrating while it is off.
func (c *Controller) SetMove(move bool) {
	c.canMove = move
}

// SetFrozen toggles the freeze state, which stops the character in place. While frozen, neither the
// velocity blend nor the active module runs, and the move speed stays at zero.
func (c *Controller) SetFrozen(frozen bool) {
	c.frozen = frozen
}

// SetCollider toggles collision of the body with the world.
func (c *Controller) SetCollider(enabled bool) {
	c.body.SetNoClip(!enabled)
}

// ResetVelocity stops the character.
func (c *Controller) ResetVelocity() {
	c.body.ResetVelocity()
}

// Snapshot returns a copy of the observable state of the controller and its modules.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:            c.state,
		Position:         c.body.Pos(),
		Velocity:         c.body.Vel(),
		Grounded:         c.ground.Grounded,
		OnSlope:          c.ground.OnSlope(),
		SlopeAngle:       c.ground.Angle,
		MoveSpeed:        c.moveSpeed,
		DesiredMoveSpeed: c.desiredMoveSpeed,
		Override:         c.override.Holder(),
		JumpReady:        c.jump.ready,
		JumpCooldown:     c.jump.cooldown,
		Crouching:        c.crouching,
		YScale:           c.body.Scale().Y(),
	}
	if c.cam != nil {
		s.FOV = c.cam.FOV()
		s.Yaw, s.Pitch = c.cam.Yaw(), c.cam.Pitch()
	}
	for _, m := range c.modules {
		if sn, ok := m.(snapshotter); ok {
			sn.fillSnapshot(&s)
		}
	}
	return s
}

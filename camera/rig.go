package camera

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/omath"
	"github.com/oomph-ac/parkour/settings"
)

// Target is the anchor the camera holder follows, usually the head of the character.
type Target interface {
	Pos() mgl64.Vec3
}

// Orientable is something the rig can turn to face its yaw.
type Orientable interface {
	SetYaw(yaw float32)
}

// View is the output of the rig for a frame.
type View struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Yaw      float32
	Pitch    float32
	FOV      float32
}

// Rig owns the view orientation and field of view of a first-person camera.
type Rig struct {
	log *slog.Logger

	verticalLimit float32
	defaultFOV    float32
	defaultSpeed  float32

	yaw, pitch float32

	currentFOV      float32
	targetFOV       float32
	transitionSpeed float32

	target   Target
	position mgl32.Vec3
	rotation mgl32.Quat

	speedEffect bool
}

// NewRig returns a rig at the default field of view. This is the only point where the field of view is set
// without smoothing.
func NewRig(s settings.CameraSettings, log *slog.Logger) *Rig {
	if log == nil {
		log = slog.Default()
	}
	r := &Rig{
		log:             log,
		verticalLimit:   math32.Abs(float32(s.VerticalLimit)),
		defaultFOV:      float32(s.DefaultFOV),
		defaultSpeed:    float32(s.FOVTransitionSpeed),
		transitionSpeed: float32(s.FOVTransitionSpeed),
		rotation:        mgl32.QuatIdent(),
	}
	r.currentFOV, r.targetFOV = r.defaultFOV, r.defaultFOV
	return r
}

// Initialize sets the target the holder follows and snaps the holder to it.
func (r *Rig) Initialize(target Target) {
	r.target = target
	if target == nil {
		r.log.Warn("camera initialised without a target, orientation output disabled")
		return
	}
	r.position = omath.Vec64To32(target.Pos())
}

// InputLook accumulates look input scaled by sensitivity and elapsed time. Pitch is clamped to the vertical limit.
func (r *Rig) InputLook(look mgl32.Vec2, sensX, sensY, dt float32) {
	r.yaw += look.X() * sensX * dt
	r.pitch -= look.Y() * sensY * dt
	r.pitch = mgl32.Clamp(r.pitch, -r.verticalLimit, r.verticalLimit)
}

// RequestFOV sets the field of view the rig converges to. A positive speed replaces the transition rate.
func (r *Rig) RequestFOV(target, speed float32) {
	r.targetFOV = target
	if speed > 0 {
		r.transitionSpeed = speed
	}
}

// Update smooths the current field of view towards the target.
func (r *Rig) Update(dt float32) {
	if dt <= 0 {
		return
	}
	r.currentFOV = omath.Lerp32(r.currentFOV, r.targetFOV, dt*r.transitionSpeed)
}

// Apply turns o to the rig yaw, rotates the holder by yaw and pitch, and snaps the holder to the target.
// It does nothing if the rig has no target.
func (r *Rig) Apply(o Orientable) {
	if r.target == nil {
		return
	}
	if o != nil {
		o.SetYaw(r.yaw)
	}
	yaw := mgl32.QuatRotate(mgl32.DegToRad(r.yaw), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(r.pitch), mgl32.Vec3{1, 0, 0})
	r.rotation = yaw.Mul(pitch)
	r.position = omath.Vec64To32(r.target.Pos())
}

// ToggleSpeedEffect toggles the speed effect.
func (r *Rig) ToggleSpeedEffect(active bool) {
	if r.speedEffect != active {
		r.log.Debug("camera speed effect toggled", "active", active)
	}
	r.speedEffect = active
}

// SpeedEffectActive returns true if the speed effect is shown.
func (r *Rig) SpeedEffectActive() bool {
	return r.speedEffect
}

// ResetEffects returns the field of view to the default and disables the speed effect.
func (r *Rig) ResetEffects() {
	r.RequestFOV(r.defaultFOV, -1)
	r.ToggleSpeedEffect(false)
}

// Yaw returns the accumulated yaw in degrees.
func (r *Rig) Yaw() float32 {
	return r.yaw
}

// Pitch returns the pitch in degrees. Positive pitch looks down.
func (r *Rig) Pitch() float32 {
	return r.pitch
}

// SetRotation sets yaw and pitch directly, clamping pitch.
func (r *Rig) SetRotation(yaw, pitch float32) {
	r.yaw = yaw
	r.pitch = mgl32.Clamp(pitch, -r.verticalLimit, r.verticalLimit)
}

// FOV returns the current field of view.
func (r *Rig) FOV() float32 {
	return r.currentFOV
}

// TargetFOV returns the field of view the rig is converging to.
func (r *Rig) TargetFOV() float32 {
	return r.targetFOV
}

// DefaultFOV returns the neutral field of view.
func (r *Rig) DefaultFOV() float32 {
	return r.defaultFOV
}

// Forward returns the direction the camera looks in.
func (r *Rig) Forward() mgl32.Vec3 {
	return omath.DirectionVector(r.yaw, r.pitch)
}

// View returns the output of the rig for the current frame.
func (r *Rig) View() View {
	return View{
		Position: r.position,
		Rotation: r.rotation,
		Yaw:      r.yaw,
		Pitch:    r.pitch,
		FOV:      r.currentFOV,
	}
}

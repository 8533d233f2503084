package physics

import (
	"math"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/omath"
)

// ForceMode selects how AddForce changes velocity.
type ForceMode uint8

const (
	// ForceModeForce is a continuous force in newtons, applied over the next Integrate call.
	ForceModeForce ForceMode = iota
	// ForceModeImpulse is an instant change of momentum.
	ForceModeImpulse
	// ForceModeVelocityChange is an instant change of velocity, ignoring mass.
	ForceModeVelocityChange
)

const (
	// walkableNormalY is the minimum vertical component of a normal the body can stand on. Anything
	// steeper is treated as a wall.
	walkableNormalY = 0.5
	// skinWidth is the gap kept between the body and geometry it is resting on.
	skinWidth = 0.01
)

// Body is a rigid body with locked rotation, driven by the movement controller.
type Body struct {
	pos, lastPos mgl64.Vec3
	vel, lastVel mgl64.Vec3
	yaw          float64

	size  mgl64.Vec3
	scale mgl64.Vec3

	mass       float64
	gravity    float64
	useGravity bool
	force      mgl64.Vec3

	noClip               bool
	onGround             bool
	collidedHorizontally bool
}

// NewBody returns a body centred on pos with the given collision width and height.
func NewBody(pos mgl64.Vec3, width, height, mass, gravity float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		pos:        pos,
		lastPos:    pos,
		size:       mgl64.Vec3{width, height, width},
		scale:      mgl64.Vec3{1, 1, 1},
		mass:       mass,
		gravity:    gravity,
		useGravity: true,
	}
}

// Pos returns the centre of the body.
func (b *Body) Pos() mgl64.Vec3 {
	return b.pos
}

// LastPos returns the centre of the body before the last position update.
func (b *Body) LastPos() mgl64.Vec3 {
	return b.lastPos
}

// SetPos sets the centre of the body.
func (b *Body) SetPos(pos mgl64.Vec3) {
	b.lastPos = b.pos
	b.pos = pos
}

// Vel returns the velocity of the body.
func (b *Body) Vel() mgl64.Vec3 {
	return b.vel
}

// LastVel returns the velocity of the body before the last velocity update.
func (b *Body) LastVel() mgl64.Vec3 {
	return b.lastVel
}

// SetVel sets the velocity of the body.
func (b *Body) SetVel(vel mgl64.Vec3) {
	b.lastVel = b.vel
	b.vel = vel
}

// ResetVelocity stops the body and drops any pending force.
func (b *Body) ResetVelocity() {
	b.SetVel(mgl64.Vec3{})
	b.force = mgl64.Vec3{}
}

// Yaw returns the facing yaw of the body in degrees.
func (b *Body) Yaw() float64 {
	return b.yaw
}

// SetYaw sets the facing yaw of the body in degrees.
func (b *Body) SetYaw(yaw float32) {
	b.yaw = float64(yaw)
}

// Forward returns the horizontal direction the body faces.
func (b *Body) Forward() mgl64.Vec3 {
	return omath.Forward(b.yaw)
}

// Right returns the horizontal direction to the right of the body.
func (b *Body) Right() mgl64.Vec3 {
	return omath.Right(b.yaw)
}

// Up returns the up axis of the body. The body never tilts.
func (b *Body) Up() mgl64.Vec3 {
	return omath.Up
}

// Scale returns the per-axis scale of the collision volume.
func (b *Body) Scale() mgl64.Vec3 {
	return b.scale
}

// SetScale sets the per-axis scale of the collision volume.
func (b *Body) SetScale(scale mgl64.Vec3) {
	b.scale = scale
}

// SetYScale sets the vertical scale of the collision volume.
func (b *Body) SetYScale(y float64) {
	b.scale[1] = y
}

// Size returns the unscaled collision size.
func (b *Body) Size() mgl64.Vec3 {
	return b.size
}

// HalfHeight returns half of the scaled collision height.
func (b *Body) HalfHeight() float64 {
	return b.size[1] * b.scale[1] / 2
}

// Radius returns half of the scaled collision width.
func (b *Body) Radius() float64 {
	return b.size[0] * b.scale[0] / 2
}

// BoundingBox returns the scaled collision box of the body in world space.
func (b *Body) BoundingBox() cube.BBox {
	half := omath.Vec64To32(mgl64.Vec3{b.Radius(), b.HalfHeight(), b.size[2] * b.scale[2] / 2})
	centre := omath.Vec64To32(b.pos)
	return cube.Box(
		centre[0]-half[0], centre[1]-half[1], centre[2]-half[2],
		centre[0]+half[0], centre[1]+half[1], centre[2]+half[2],
	)
}

// Mass returns the mass of the body.
func (b *Body) Mass() float64 {
	return b.mass
}

// UseGravity returns true if gravity is applied to the body.
func (b *Body) UseGravity() bool {
	return b.useGravity
}

// SetUseGravity toggles gravity.
func (b *Body) SetUseGravity(use bool) {
	b.useGravity = use
}

// NoClip returns true if the body passes through geometry.
func (b *Body) NoClip() bool {
	return b.noClip
}

// SetNoClip toggles collision with geometry.
func (b *Body) SetNoClip(noClip bool) {
	b.noClip = noClip
}

// OnGround returns true if the body came to rest on walkable geometry during the last Integrate call.
func (b *Body) OnGround() bool {
	return b.onGround
}

// CollidedHorizontally returns true if the body was stopped by a wall during the last Integrate call.
func (b *Body) CollidedHorizontally() bool {
	return b.collidedHorizontally
}

// AddForce applies f to the body using the given mode.
func (b *Body) AddForce(f mgl64.Vec3, mode ForceMode) {
	switch mode {
	case ForceModeImpulse:
		b.SetVel(b.vel.Add(f.Mul(1 / b.mass)))
	case ForceModeVelocityChange:
		b.SetVel(b.vel.Add(f))
	default:
		b.force = b.force.Add(f)
	}
}

// Integrate advances the body by dt seconds: accumulated forces and gravity are applied to the velocity,
// and the body is moved, resting on walkable geometry and stopping at walls.
func (b *Body) Integrate(dt float64, q Query) {
	if dt <= 0 {
		return
	}
	if q == nil || b.noClip {
		q = NopQuery{}
	}

	acc := b.force.Mul(1 / b.mass)
	if b.useGravity {
		acc[1] -= b.gravity
	}
	b.force = mgl64.Vec3{}
	vel := b.vel.Add(acc.Mul(dt))
	motion := vel.Mul(dt)
	pos := b.pos

	// Horizontal motion is resolved one axis at a time so the body slides along walls it touches.
	b.collidedHorizontally = false
	radius := b.Radius()
	for _, axis := range [2]int{0, 2} {
		d := motion[axis]
		if d == 0 {
			continue
		}
		var dir mgl64.Vec3
		dir[axis] = math.Copysign(1, d)
		if hit, ok := q.CastRay(pos, dir, math.Abs(d)+radius, LayerAll); ok && math.Abs(hit.Normal.Y()) < walkableNormalY {
			d = math.Copysign(math.Max(0, hit.Distance-radius-skinWidth), d)
			vel[axis] = 0
			b.collidedHorizontally = true
		}
		pos[axis] += d
	}

	b.onGround = false
	half, dy := b.HalfHeight(), motion.Y()
	if dy <= 0 {
		down := mgl64.Vec3{0, -1, 0}
		if hit, ok := q.CastRay(pos, down, half-dy+skinWidth, LayerAll); ok && hit.Normal.Y() >= walkableNormalY {
			if hit.Distance-half <= -dy+skinWidth {
				pos[1] = hit.Point.Y() + half
				if vel[1] < 0 {
					vel[1] = 0
				}
				b.onGround = true
			} else {
				pos[1] += dy
			}
		} else {
			pos[1] += dy
		}
	} else {
		if hit, ok := q.CastRay(pos, omath.Up, half+dy, LayerAll); ok && hit.Normal.Y() <= -walkableNormalY {
			pos[1] = hit.Point.Y() - half - skinWidth
			vel[1] = 0
		} else {
			pos[1] += dy
		}
	}

	b.SetVel(vel)
	b.SetPos(pos)
}

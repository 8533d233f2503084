package omath

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// epsilon is the length under which a vector is treated as having no direction.
const epsilon = 1e-6

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// Lerp linearly interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*ClampFloat(t, 0, 1)
}

// Lerp32 linearly interpolates between a and b. t is clamped to [0, 1].
func Lerp32(a, b, t float32) float32 {
	t = math32.Max(0, math32.Min(t, 1))
	return a + (b-a)*t
}

// ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func ApproxEq(a, b float64) bool {
	return math.Abs(a-b) <= 1e-5
}

// Float32ApproxEq is ApproxEq for float32 values.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// SafeNormalize normalizes v, returning a zero vector if v has no meaningful direction.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < epsilon || math.IsNaN(l) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// AngleBetween returns the angle in degrees between a and b. Zero vectors yield 0.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < epsilon || lb < epsilon {
		return 0
	}
	cos := ClampFloat(a.Dot(b)/(la*lb), -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	sqr := n.Dot(n)
	if sqr < epsilon*epsilon {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / sqr))
}

// Horizontal returns v with its vertical component removed.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// WithY returns v with its vertical component replaced by y.
func WithY(v mgl64.Vec3, y float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], y, v[2]}
}

// Forward returns the horizontal facing direction for a yaw in degrees. A yaw of 0 faces +Z.
func Forward(yaw float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{math.Sin(rad), 0, math.Cos(rad)}
}

// Right returns the horizontal right-hand direction for a yaw in degrees. A yaw of 0 gives +X.
func Right(yaw float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{math.Cos(rad), 0, -math.Sin(rad)}
}

// DirectionVector returns a look direction from the given yaw and pitch values. Positive pitch looks down.
func DirectionVector(yaw, pitch float32) mgl32.Vec3 {
	yawRad, pitchRad := mgl32.DegToRad(yaw), mgl32.DegToRad(pitch)
	m := math32.Cos(pitchRad)

	return mgl32.Vec3{
		m * math32.Sin(yawRad),
		-math32.Sin(pitchRad),
		m * math32.Cos(yawRad),
	}
}

// Vec32To64 converts a 32-bit vector to a 64-bit one.
func Vec32To64(vec3 mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(vec3[0]), float64(vec3[1]), float64(vec3[2])}
}

// Vec64To32 converts a 64-bit vector to a 32-bit one.
func Vec64To32(vec3 mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(vec3[0]), float32(vec3[1]), float32(vec3[2])}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl64.Vec3) float64 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

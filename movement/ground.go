package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/omath"
	"github.com/oomph-ac/parkour/physics"
)

// flatAngle is the slope angle in degrees under which ground is considered flat.
const flatAngle = 0.01

// GroundProbe is the result of the downward ground probe for a frame.
type GroundProbe struct {
	Grounded bool
	Hit      physics.Hit
	// Angle is the angle between world up and the hit normal in degrees.
	Angle float64

	maxSlope float64
}

// ProbeGround casts once downwards from pos. The ground is found if a surface lies within halfHeight+margin.
func ProbeGround(q physics.Query, pos mgl64.Vec3, halfHeight, margin float64, mask physics.LayerMask, maxSlope float64) GroundProbe {
	g := GroundProbe{maxSlope: maxSlope}
	if q == nil {
		return g
	}
	hit, ok := q.CastRay(pos, mgl64.Vec3{0, -1, 0}, halfHeight+margin, mask)
	if !ok {
		return g
	}
	g.Grounded = true
	g.Hit = hit
	g.Angle = omath.AngleBetween(omath.Up, hit.Normal)
	return g
}

// OnSlope returns true if the ground is inclined but still walkable.
func (g GroundProbe) OnSlope() bool {
	return g.Grounded && g.Angle > flatAngle && g.Angle < g.maxSlope
}

// ProjectOntoSlope returns dir projected onto the ground plane and normalized. Without ground, dir is only
// normalized.
func (g GroundProbe) ProjectOntoSlope(dir mgl64.Vec3) mgl64.Vec3 {
	if !g.Grounded {
		return omath.SafeNormalize(dir)
	}
	return omath.SafeNormalize(omath.ProjectOnPlane(dir, g.Hit.Normal))
}

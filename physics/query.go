package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LayerMask selects which geometry a probe may hit.
type LayerMask uint32

const (
	LayerGround LayerMask = 1 << iota
	LayerWall

	LayerAll LayerMask = math.MaxUint32
)

// Has returns true if the mask shares any layer with l.
func (m LayerMask) Has(l LayerMask) bool {
	return m&l != 0
}

// Hit is the result of a successful probe.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Layer    LayerMask
}

// Query answers ray and sphere casts against world geometry. A probe with degenerate parameters
// (zero-length direction, non-positive distance, negative radius) never hits.
type Query interface {
	CastRay(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool)
	CastSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool)
}

// NopQuery is a Query over an empty world.
type NopQuery struct{}

func (NopQuery) CastRay(mgl64.Vec3, mgl64.Vec3, float64, LayerMask) (Hit, bool) {
	return Hit{}, false
}

func (NopQuery) CastSphere(mgl64.Vec3, float64, mgl64.Vec3, float64, LayerMask) (Hit, bool) {
	return Hit{}, false
}

// validProbe normalizes dir and reports whether the probe parameters can produce a hit.
func validProbe(origin, dir mgl64.Vec3, maxDistance float64) (mgl64.Vec3, bool) {
	if math.IsNaN(maxDistance) || maxDistance <= 0 || math.IsInf(maxDistance, 0) {
		return dir, false
	}
	for _, c := range origin {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return dir, false
		}
	}
	l := dir.Len()
	if l < 1e-9 || math.IsNaN(l) {
		return dir, false
	}
	return dir.Mul(1 / l), true
}

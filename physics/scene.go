package physics

import (
	"math"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/omath"
	"github.com/samber/lo"
	"github.com/sasha-s/go-deadlock"
)

// shape is a piece of static geometry in a Scene.
type shape interface {
	// intercept casts the segment from start to end against the shape inflated by radius.
	intercept(start, end mgl64.Vec3, radius float64) (point, normal mgl64.Vec3, ok bool)
	layer() LayerMask
}

// Scene is an in-memory Query over static boxes and ramps.
type Scene struct {
	shapes []shape
	deadlock.RWMutex
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddBox adds an axis-aligned box on the given layer.
func (s *Scene) AddBox(bb cube.BBox, l LayerMask) {
	s.Lock()
	defer s.Unlock()
	s.shapes = append(s.shapes, boxShape{bb: bb, l: l})
}

// AddRamp adds a bounded inclined plane. The plane faces along normal, is centred on center and extends
// halfWidth across and halfLength along its slope.
func (s *Scene) AddRamp(center, normal mgl64.Vec3, halfWidth, halfLength float64, l LayerMask) {
	n := omath.SafeNormalize(normal)
	if n == (mgl64.Vec3{}) {
		n = omath.Up
	}
	across := omath.SafeNormalize(n.Cross(omath.Up))
	if across == (mgl64.Vec3{}) {
		across = mgl64.Vec3{1, 0, 0}
	}
	along := across.Cross(n)

	s.Lock()
	defer s.Unlock()
	s.shapes = append(s.shapes, rampShape{
		center: center, normal: n,
		across: across, along: along,
		halfWidth: halfWidth, halfLength: halfLength,
		l: l,
	})
}

// Len returns the amount of shapes in the scene.
func (s *Scene) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.shapes)
}

// CastRay returns the nearest hit along the ray within maxDistance on the given layers.
func (s *Scene) CastRay(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool) {
	return s.cast(origin, 0, dir, maxDistance, mask)
}

// CastSphere sweeps a sphere along dir and returns the first contact. Hit.Point is the contact point on
// the geometry and Hit.Distance is how far the centre travelled.
func (s *Scene) CastSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool) {
	if radius < 0 || math.IsNaN(radius) {
		return Hit{}, false
	}
	return s.cast(origin, radius, dir, maxDistance, mask)
}

func (s *Scene) cast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool) {
	dir, ok := validProbe(origin, dir, maxDistance)
	if !ok {
		return Hit{}, false
	}
	end := origin.Add(dir.Mul(maxDistance))

	s.RLock()
	defer s.RUnlock()

	hits := make([]Hit, 0, 4)
	for _, sh := range s.shapes {
		if !mask.Has(sh.layer()) {
			continue
		}
		point, normal, ok := sh.intercept(origin, end, radius)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Point:    point.Sub(normal.Mul(radius)),
			Normal:   normal,
			Distance: point.Sub(origin).Len(),
			Layer:    sh.layer(),
		})
	}
	if len(hits) == 0 {
		return Hit{}, false
	}
	return lo.MinBy(hits, func(a, b Hit) bool {
		return a.Distance < b.Distance
	}), true
}

type boxShape struct {
	bb cube.BBox
	l  LayerMask
}

func (b boxShape) intercept(start, end mgl64.Vec3, radius float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	bb := b.bb
	if radius > 0 {
		bb = bb.Grow(float32(radius))
	}
	res, ok := trace.BBoxIntercept(bb, omath.Vec64To32(start), omath.Vec64To32(end))
	if !ok {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return omath.Vec32To64(res.Position()), faceNormal(res.Face()), true
}

func (b boxShape) layer() LayerMask {
	return b.l
}

// faceNormal returns the outward normal of a box face.
func faceNormal(f cube.Face) mgl64.Vec3 {
	switch f {
	case cube.FaceDown:
		return mgl64.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl64.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl64.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl64.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl64.Vec3{-1, 0, 0}
	default:
		return mgl64.Vec3{1, 0, 0}
	}
}

type rampShape struct {
	center, normal        mgl64.Vec3
	across, along         mgl64.Vec3
	halfWidth, halfLength float64
	l                     LayerMask
}

func (r rampShape) intercept(start, end mgl64.Vec3, radius float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	seg := end.Sub(start)
	denom := seg.Dot(r.normal)
	// Only the front face collides.
	if denom >= -1e-9 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	plane := r.center.Add(r.normal.Mul(radius))
	t := plane.Sub(start).Dot(r.normal) / denom
	if t < 0 || t > 1 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	point := start.Add(seg.Mul(t))
	d := point.Sub(plane)
	if math.Abs(d.Dot(r.across)) > r.halfWidth || math.Abs(d.Dot(r.along)) > r.halfLength {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return point, r.normal, true
}

func (r rampShape) layer() LayerMask {
	return r.l
}

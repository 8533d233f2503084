package physics

import (
	"math"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-3
}

func testScene() *Scene {
	s := NewScene()
	// Floor with its top at y=0.
	s.AddBox(cube.Box(-50, -1, -50, 50, 0, 50), LayerGround)
	// Wall whose west face sits at x=5.
	s.AddBox(cube.Box(5, 0, -50, 6, 10, 50), LayerWall)
	return s
}

func TestSceneCastRayBox(t *testing.T) {
	s := testScene()

	hit, ok := s.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0}, 2, LayerAll)
	if !ok {
		t.Fatal("expected the floor to be hit")
	}
	if !approx(hit.Distance, 1) || !approx(hit.Point.Y(), 0) {
		t.Fatalf("expected hit at distance 1 on y=0, got %+v", hit)
	}
	if hit.Normal != (mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("expected up normal, got %v", hit.Normal)
	}
	if hit.Layer != LayerGround {
		t.Fatalf("expected ground layer, got %v", hit.Layer)
	}

	hit, ok = s.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, 10, LayerWall)
	if !ok || !approx(hit.Distance, 5) {
		t.Fatalf("expected wall hit at distance 5, got %+v (%v)", hit, ok)
	}
	if hit.Normal != (mgl64.Vec3{-1, 0, 0}) {
		t.Fatalf("expected wall normal facing -X, got %v", hit.Normal)
	}
}

func TestSceneCastRayRespectsMaskAndDistance(t *testing.T) {
	s := testScene()
	if _, ok := s.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, 10, LayerGround); ok {
		t.Fatal("expected the wall to be filtered out by the mask")
	}
	if _, ok := s.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0}, 0.5, LayerAll); ok {
		t.Fatal("expected no hit beyond the maximum distance")
	}
}

func TestSceneDegenerateQueries(t *testing.T) {
	s := testScene()
	tests := []struct {
		name   string
		dir    mgl64.Vec3
		dist   float64
		radius float64
	}{
		{"zero direction", mgl64.Vec3{}, 5, 0},
		{"zero distance", mgl64.Vec3{0, -1, 0}, 0, 0},
		{"negative distance", mgl64.Vec3{0, -1, 0}, -1, 0},
		{"NaN distance", mgl64.Vec3{0, -1, 0}, math.NaN(), 0},
		{"negative radius", mgl64.Vec3{0, -1, 0}, 5, -1},
	}
	for _, tt := range tests {
		if _, ok := s.CastSphere(mgl64.Vec3{0, 1, 0}, tt.radius, tt.dir, tt.dist, LayerAll); ok {
			t.Fatalf("%s: expected no hit", tt.name)
		}
		if tt.radius == 0 {
			if _, ok := s.CastRay(mgl64.Vec3{0, 1, 0}, tt.dir, tt.dist, LayerAll); ok {
				t.Fatalf("%s: expected no ray hit", tt.name)
			}
		}
	}
	if _, ok := (NopQuery{}).CastRay(mgl64.Vec3{}, mgl64.Vec3{0, -1, 0}, 10, LayerAll); ok {
		t.Fatal("expected NopQuery never to hit")
	}
}

func TestSceneCastSphere(t *testing.T) {
	s := testScene()
	hit, ok := s.CastSphere(mgl64.Vec3{0, 2, 0}, 0.5, mgl64.Vec3{0, -1, 0}, 5, LayerAll)
	if !ok {
		t.Fatal("expected the sphere to touch the floor")
	}
	if !approx(hit.Distance, 1.5) {
		t.Fatalf("expected sphere centre to travel 1.5, got %v", hit.Distance)
	}
	if !approx(hit.Point.Y(), 0) {
		t.Fatalf("expected contact point on the floor, got %v", hit.Point)
	}
}

func TestSceneRamp(t *testing.T) {
	s := NewScene()
	normal := mgl64.Vec3{0, 1, -1}.Normalize()
	s.AddRamp(mgl64.Vec3{0, 0, 0}, normal, 2, 4, LayerGround)

	hit, ok := s.CastRay(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, -1, 0}, 5, LayerGround)
	if !ok {
		t.Fatal("expected the ramp to be hit")
	}
	if !approx(hit.Distance, 3) || !approx(hit.Normal.Dot(normal), 1) {
		t.Fatalf("unexpected ramp hit %+v", hit)
	}
	if _, ok := s.CastRay(mgl64.Vec3{10, 3, 0}, mgl64.Vec3{0, -1, 0}, 5, LayerGround); ok {
		t.Fatal("expected a ray outside the ramp bounds to miss")
	}
	if _, ok := s.CastRay(mgl64.Vec3{0, -3, 0}, mgl64.Vec3{0, 1, 0}, 5, LayerGround); ok {
		t.Fatal("expected the back face of the ramp not to collide")
	}
}

func TestBodyFallsAndLands(t *testing.T) {
	s := testScene()
	b := NewBody(mgl64.Vec3{0, 3, 0}, 1, 2, 1, 9.81)
	for i := 0; i < 200; i++ {
		b.Integrate(0.02, s)
	}
	if !b.OnGround() {
		t.Fatalf("expected body to rest on the floor, at %v", b.Pos())
	}
	if !approx(b.Pos().Y(), 1) {
		t.Fatalf("expected body centre one half-height above the floor, got %v", b.Pos())
	}
	if b.Vel().Y() != 0 {
		t.Fatalf("expected no vertical velocity at rest, got %v", b.Vel())
	}
}

func TestBodyStopsAtWall(t *testing.T) {
	s := testScene()
	b := NewBody(mgl64.Vec3{0, 1, 0}, 1, 2, 1, 9.81)
	for i := 0; i < 100; i++ {
		b.SetVel(mgl64.Vec3{10, b.Vel().Y(), 0})
		b.Integrate(0.02, s)
	}
	if b.Pos().X() > 5-b.Radius() {
		t.Fatalf("expected body to stop at the wall, at %v", b.Pos())
	}
	if !b.CollidedHorizontally() {
		t.Fatal("expected a horizontal collision")
	}
	if b.Vel().X() > 0 {
		t.Fatalf("expected velocity into the wall to be removed, got %v", b.Vel())
	}
}

func TestBodyForceModes(t *testing.T) {
	b := NewBody(mgl64.Vec3{}, 1, 2, 2, 0)
	b.AddForce(mgl64.Vec3{0, 4, 0}, ForceModeImpulse)
	if b.Vel() != (mgl64.Vec3{0, 2, 0}) {
		t.Fatalf("expected impulse to be divided by mass, got %v", b.Vel())
	}
	b.AddForce(mgl64.Vec3{1, 0, 0}, ForceModeVelocityChange)
	if b.Vel() != (mgl64.Vec3{1, 2, 0}) {
		t.Fatalf("expected velocity change to ignore mass, got %v", b.Vel())
	}

	b.ResetVelocity()
	b.AddForce(mgl64.Vec3{10, 0, 0}, ForceModeForce)
	if b.Vel() != (mgl64.Vec3{}) {
		t.Fatalf("expected continuous force to wait for integration, got %v", b.Vel())
	}
	b.Integrate(0.1, nil)
	if !approx(b.Vel().X(), 0.5) {
		t.Fatalf("expected force/mass*dt, got %v", b.Vel())
	}
}

func TestBodyScale(t *testing.T) {
	b := NewBody(mgl64.Vec3{0, 1, 0}, 1, 2, 1, 9.81)
	b.SetYScale(0.5)
	if b.HalfHeight() != 0.5 {
		t.Fatalf("expected scaled half height 0.5, got %v", b.HalfHeight())
	}
	bb := b.BoundingBox()
	if bb.Max().Y()-bb.Min().Y() != 1 {
		t.Fatalf("expected scaled box height 1, got %v", bb.Max().Y()-bb.Min().Y())
	}
}

func TestBodySlidesAlongWall(t *testing.T) {
	s := testScene()
	b := NewBody(mgl64.Vec3{4, 1, 0}, 1, 2, 1, 9.81)
	for i := 0; i < 50; i++ {
		b.SetVel(mgl64.Vec3{5, b.Vel().Y(), 5})
		b.Integrate(0.02, s)
	}
	if b.Pos().X() > 5-b.Radius() {
		t.Fatalf("expected body to stay out of the wall, at %v", b.Pos())
	}
	if !approx(b.Pos().Z(), 5) {
		t.Fatalf("expected motion along the wall to continue, at %v", b.Pos())
	}
}

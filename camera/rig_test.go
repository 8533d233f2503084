package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/settings"
)

type mockTarget struct {
	pos mgl64.Vec3
}

func (m *mockTarget) Pos() mgl64.Vec3 {
	return m.pos
}

type mockOrientable struct {
	yaw float32
}

func (m *mockOrientable) SetYaw(yaw float32) {
	m.yaw = yaw
}

func newTestRig() *Rig {
	return NewRig(settings.DefaultSettings().Camera, nil)
}

func TestRigStartsAtDefaultFOV(t *testing.T) {
	r := newTestRig()
	if r.FOV() != 80 || r.TargetFOV() != 80 {
		t.Fatalf("expected current and target FOV 80, got %v/%v", r.FOV(), r.TargetFOV())
	}
}

func TestRigPitchClamp(t *testing.T) {
	r := newTestRig()
	for i := 0; i < 100; i++ {
		r.InputLook(mgl32.Vec2{0, -1}, 400, 400, 0.016)
	}
	if r.Pitch() != 80 {
		t.Fatalf("expected pitch clamped to 80, got %v", r.Pitch())
	}
	for i := 0; i < 100; i++ {
		r.InputLook(mgl32.Vec2{0, 1}, 400, 400, 0.016)
	}
	if r.Pitch() != -80 {
		t.Fatalf("expected pitch clamped to -80, got %v", r.Pitch())
	}
}

func TestRigYawAccumulates(t *testing.T) {
	r := newTestRig()
	r.InputLook(mgl32.Vec2{1, 0}, 100, 100, 0.5)
	r.InputLook(mgl32.Vec2{1, 0}, 100, 100, 0.5)
	if r.Yaw() != 100 {
		t.Fatalf("expected yaw 100, got %v", r.Yaw())
	}
}

func TestRigFOVSmoothing(t *testing.T) {
	r := newTestRig()
	r.RequestFOV(100, 10)

	r.Update(0.016)
	if r.FOV() <= 80 || r.FOV() >= 100 {
		t.Fatalf("expected FOV to move part of the way towards 100, got %v", r.FOV())
	}

	prev := r.FOV()
	for i := 0; i < 300; i++ {
		r.Update(0.016)
		if r.FOV() < prev {
			t.Fatalf("expected FOV to increase monotonically, got %v after %v", r.FOV(), prev)
		}
		prev = r.FOV()
	}
	if math32.Abs(r.FOV()-100) > 0.01 {
		t.Fatalf("expected FOV to converge on 100, got %v", r.FOV())
	}
}

func TestRigRequestFOVKeepsRateWithoutSpeed(t *testing.T) {
	r := newTestRig()
	r.RequestFOV(90, 2)
	r.RequestFOV(100, -1)
	r.Update(0.1)
	// 80 + (100-80)*0.1*2
	if math32.Abs(r.FOV()-84) > 1e-4 {
		t.Fatalf("expected the previous transition rate to be kept, got %v", r.FOV())
	}
}

func TestRigApply(t *testing.T) {
	r := newTestRig()
	o := &mockOrientable{}
	r.Apply(o)
	if o.yaw != 0 {
		t.Fatal("expected Apply without a target to do nothing")
	}

	target := &mockTarget{pos: mgl64.Vec3{1, 2, 3}}
	r.Initialize(target)
	if r.View().Position != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("expected holder to snap to target on initialise, got %v", r.View().Position)
	}

	r.SetRotation(90, 0)
	target.pos = mgl64.Vec3{4, 5, 6}
	r.Apply(o)
	if o.yaw != 90 {
		t.Fatalf("expected facing yaw 90, got %v", o.yaw)
	}
	if r.View().Position != (mgl32.Vec3{4, 5, 6}) {
		t.Fatalf("expected holder to follow target without lag, got %v", r.View().Position)
	}
	fwd := r.View().Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	if math32.Abs(fwd.X()-1) > 1e-4 {
		t.Fatalf("expected yaw 90 to look along +X, got %v", fwd)
	}
}

func TestRigResetEffects(t *testing.T) {
	r := newTestRig()
	r.RequestFOV(100, 10)
	r.ToggleSpeedEffect(true)
	r.ResetEffects()
	if r.TargetFOV() != 80 || r.SpeedEffectActive() {
		t.Fatalf("expected effects reset, got target %v effect %v", r.TargetFOV(), r.SpeedEffectActive())
	}
}

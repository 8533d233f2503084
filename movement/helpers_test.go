package movement

import (
	"io"
	"log/slog"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/camera"
	"github.com/oomph-ac/parkour/physics"
	"github.com/oomph-ac/parkour/settings"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// flatWorld returns a scene with a large floor whose top is at y=0.
func flatWorld() *physics.Scene {
	s := physics.NewScene()
	s.AddBox(cube.Box(-500, -1, -500, 500, 0, 500), physics.LayerGround)
	return s
}

// wallWorld returns a scene with a tall wall whose west face is at x=0.6 and no ground.
func wallWorld() *physics.Scene {
	s := physics.NewScene()
	s.AddBox(cube.Box(0.6, -1000, -1000, 1.6, 1000, 1000), physics.LayerWall)
	return s
}

type testRig struct {
	c   *Controller
	cam *camera.Rig
	sl  *Slide
	wr  *WallRun
}

func newTestRig(s settings.Settings, world physics.Query, pos mgl64.Vec3) testRig {
	body := physics.NewBody(pos, s.Simulation.Width, s.Controller.PlayerHeight, s.Simulation.Mass, s.Simulation.Gravity)
	cam := camera.NewRig(s.Camera, discardLog)
	c := NewController(body, world, cam, s, discardLog)
	sl := NewSlide(c, cam, s.Sliding)
	wr := NewWallRun(c, cam, s.WallRunning)
	c.Attach(sl)
	c.Attach(wr)
	return testRig{c: c, cam: cam, sl: sl, wr: wr}
}

// step runs one logic frame with a single physics step of the same length.
func (r testRig) step(dt float64, in Input) {
	r.c.Update(dt, in)
	r.c.FixedUpdate(dt)
	r.c.LateUpdate()
}

func forward() Input {
	return Input{Move: mgl64.Vec2{0, 1}}
}

// fakeModule is a module whose lock is acquired by the test itself.
type fakeModule struct {
	c       *Controller
	owner   Owner
	enabled bool
	speed   float64
}

func (f *fakeModule) Owner() Owner          { return f.owner }
func (f *fakeModule) Enabled() bool         { return f.enabled }
func (f *fakeModule) Active() bool          { return f.c.override.Held(f.owner) }
func (f *fakeModule) Update(float64, Input) {}
func (f *fakeModule) FixedUpdate(float64)   {}
func (f *fakeModule) DesiredSpeed() float64 { return f.speed }
func (f *fakeModule) Stop()                 { f.c.override.Release(f.owner) }

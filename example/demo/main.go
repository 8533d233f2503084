package main

import (
	"context"
	"flag"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/parkour/camera"
	"github.com/oomph-ac/parkour/movement"
	"github.com/oomph-ac/parkour/physics"
	"github.com/oomph-ac/parkour/settings"
	"github.com/oomph-ac/parkour/simulation"
)

var (
	configPath = flag.String("config", "", "path to a settings file, written with the defaults if it does not exist")
	realtime   = flag.Bool("realtime", false, "play the script in real time instead of as fast as possible")
	debugModes = flag.String("debug", "", "comma separated debug modes to enable (state,ground,jump,slide,wall_run)")
	logEvery   = flag.Int("log-every", 15, "log a snapshot every n frames")
)

// The following program plays a scripted parkour run through a small course and logs the character state.
func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debugModes != "" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Error("unable to initialize sentry", "err", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	s, err := loadSettings(*configPath)
	if err != nil {
		log.Error("unable to load settings", "err", err)
		return
	}
	log.Info("settings loaded", "fingerprint", s.Fingerprint())

	body := physics.NewBody(mgl64.Vec3{0, 1, 0}, s.Simulation.Width, s.Controller.PlayerHeight, s.Simulation.Mass, s.Simulation.Gravity)
	cam := camera.NewRig(s.Camera, log)
	c := movement.NewController(body, course(), cam, s, log)
	c.Attach(movement.NewSlide(c, cam, s.Sliding))
	c.Attach(movement.NewWallRun(c, cam, s.WallRunning))
	toggleDebug(c.Debugger(), *debugModes)

	frame := 1 / s.Simulation.LogicRate
	script := route(frame)
	runner := simulation.NewRunner(c, s.Simulation, log)

	if *realtime {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(script.Length()*float64(time.Second)))
		defer cancel()
		if err := <-runner.Start(ctx, script); err != nil && ctx.Err() == nil {
			log.Error("simulation stopped", "err", err)
		}
		logSnapshot(log, runner.Frames(), runner.Snapshot())
		return
	}

	for n := uint64(1); !script.Done(); n++ {
		snap := runner.Frame(frame, script.Poll())
		if *logEvery > 0 && n%uint64(*logEvery) == 0 {
			logSnapshot(log, n, snap)
		}
	}
	logSnapshot(log, runner.Frames(), runner.Snapshot())

	var peak float64
	for _, snap := range runner.History() {
		peak = max(peak, snap.MoveSpeed)
	}
	log.Info("run finished", "frames", runner.Frames(), "peak_recent_speed", peak)
}

func loadSettings(path string) (settings.Settings, error) {
	if path == "" {
		return settings.DefaultSettings(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
	}
	return settings.Load(path)
}

// course returns a floor with a ramp on it, ending at a pit with a wall to the right.
func course() *physics.Scene {
	s := physics.NewScene()
	s.AddBox(cube.Box(-20, -1, -10, 20, 0, 22), physics.LayerGround)
	s.AddBox(cube.Box(-20, -1, 60, 20, 0, 90), physics.LayerGround)

	rad := mgl64.DegToRad(15)
	s.AddRamp(mgl64.Vec3{-8, 0.5, 8}, mgl64.Vec3{0, math.Cos(rad), -math.Sin(rad)}, 2, 4, physics.LayerGround)

	s.AddBox(cube.Box(0.65, -30, 14, 1.65, 20, 70), physics.LayerWall)
	return s
}

// route returns the scripted run: walk, sprint, slide, sprint and jump towards the pit, run along the
// wall and jump off it.
func route(frame float64) *simulation.Script {
	fwd := mgl64.Vec2{0, 1}
	return simulation.NewScript(frame,
		simulation.Step{Duration: 1, Input: movement.RawInput{Move: fwd}},
		simulation.Step{Duration: 1.5, Input: movement.RawInput{Move: fwd, Sprint: true}},
		simulation.Step{Duration: 0.8, Input: movement.RawInput{Move: fwd, Slide: true}},
		simulation.Step{Duration: 0.6, Input: movement.RawInput{Move: fwd, Sprint: true}},
		simulation.Step{Duration: 0.1, Input: movement.RawInput{Move: fwd, Sprint: true, Jump: true}},
		simulation.Step{Duration: 1.2, Input: movement.RawInput{Move: fwd}},
		simulation.Step{Duration: 0.1, Input: movement.RawInput{Move: fwd, Jump: true}},
		simulation.Step{Duration: 1, Input: movement.RawInput{Move: fwd}},
	)
}

func toggleDebug(dbg *movement.Debugger, modes string) {
	if modes == "" {
		return
	}
	names := map[string]movement.DebugMode{
		"state":    movement.DebugModeState,
		"ground":   movement.DebugModeGround,
		"jump":     movement.DebugModeJump,
		"slide":    movement.DebugModeSlide,
		"wall_run": movement.DebugModeWallRun,
	}
	for _, name := range strings.Split(modes, ",") {
		if mode, ok := names[strings.TrimSpace(name)]; ok {
			dbg.Toggle(mode)
		}
	}
}

func logSnapshot(log *slog.Logger, frame uint64, s movement.Snapshot) {
	log.Info("snapshot",
		"frame", frame,
		"state", s.State.String(),
		"pos", s.Position,
		"vel", s.Velocity,
		"speed", s.MoveSpeed,
		"grounded", s.Grounded,
		"slope", s.SlopeAngle,
		"override", s.Override.String(),
		"wall_run", s.WallRunPhase.String(),
		"fov", s.FOV,
	)
}

package settings

import (
	"fmt"
	"os"

	"github.com/oomph-ac/parkour/physics"
	"github.com/pelletier/go-toml"
	"github.com/zeebo/xxh3"
)

// Settings contains every tunable of the locomotion core. It is supplied once at construction and
// components copy the section they need, so changes after construction have no effect.
type Settings struct {
	Controller  ControllerSettings
	Sliding     SlidingSettings
	WallRunning WallRunningSettings
	Camera      CameraSettings
	Simulation  SimulationSettings
}

// ControllerSettings are the tunables of the movement controller.
type ControllerSettings struct {
	WalkSpeed        float64
	SprintSpeed      float64
	CrouchSpeed      float64
	SlideSpeed       float64
	WallRunningSpeed float64

	GroundAcceleration float64
	AirAcceleration    float64

	JumpForce    float64
	JumpCooldown float64

	PlayerHeight        float64
	GroundCheckDistance float64
	SlideCheckDistance  float64
	GroundLayer         physics.LayerMask

	// MaxSlopeAngle is the steepest walkable surface in degrees.
	MaxSlopeAngle           float64
	SlopeIncreaseMultiplier float64

	CrouchYScale    float64
	CrouchDownForce float64

	SpeedIncreaseMultiplier float64
	SpeedChangeThreshold    float64

	SensX float64
	SensY float64

	EnableSliding     bool
	EnableWallRunning bool
	// SpeedEffect toggles the camera speed effect while moving faster than SprintSpeed.
	SpeedEffect bool
}

// SlidingSettings are the tunables of the slide module.
type SlidingSettings struct {
	SlideYScale    float64
	SlideForce     float64
	SlideDownForce float64
	MaxSlideTime   float64

	SlideFOV              float64
	NormalFOV             float64
	CameraTransitionSpeed float64
}

// WallRunningSettings are the tunables of the wall-run module.
type WallRunningSettings struct {
	WallCheckDistance float64
	MinJumpHeight     float64
	WallLayer         physics.LayerMask
	GroundLayer       physics.LayerMask

	WallRunForce   float64
	WallClimbSpeed float64
	WallStickForce float64

	UseGravity          bool
	GravityCounterForce float64

	MaxWallRunTime float64
	ExitWallTime   float64

	WallJumpUpForce   float64
	WallJumpSideForce float64

	WallRunFOV            float64
	NormalFOV             float64
	CameraTransitionSpeed float64
}

// CameraSettings are the tunables of the camera rig.
type CameraSettings struct {
	// VerticalLimit is the maximum absolute pitch in degrees.
	VerticalLimit      float64
	DefaultFOV         float64
	FOVTransitionSpeed float64
	// HeadOffset is the height of the camera anchor above the body centre, before scaling.
	HeadOffset float64
}

// SimulationSettings configure the two loop cadences and the body.
type SimulationSettings struct {
	// PhysicsStep is the fixed physics tick length in seconds.
	PhysicsStep float64
	// LogicRate is the target logic frame rate in hertz, used by the real-time loop.
	LogicRate float64
	// MaxPhysicsSteps caps the number of physics ticks run to catch up in a single frame.
	MaxPhysicsSteps int
	// HistoryFrames is the amount of recent snapshots kept by the runner.
	HistoryFrames int
	Gravity       float64
	Mass          float64
	Width         float64
}

// DefaultSettings returns the default tunables.
func DefaultSettings() Settings {
	s := Settings{}

	s.Controller.WalkSpeed = 7
	s.Controller.SprintSpeed = 10
	s.Controller.CrouchSpeed = 3.5
	s.Controller.SlideSpeed = 15
	s.Controller.WallRunningSpeed = 8.5
	s.Controller.GroundAcceleration = 20
	s.Controller.AirAcceleration = 10
	s.Controller.JumpForce = 12
	s.Controller.JumpCooldown = 0.25
	s.Controller.PlayerHeight = 2
	s.Controller.GroundCheckDistance = 0.2
	s.Controller.SlideCheckDistance = 3
	s.Controller.GroundLayer = physics.LayerGround
	s.Controller.MaxSlopeAngle = 40
	s.Controller.SlopeIncreaseMultiplier = 2.5
	s.Controller.CrouchYScale = 0.5
	s.Controller.CrouchDownForce = 5
	s.Controller.SpeedIncreaseMultiplier = 10
	s.Controller.SpeedChangeThreshold = 4
	s.Controller.SensX = 400
	s.Controller.SensY = 400
	s.Controller.EnableSliding = true
	s.Controller.EnableWallRunning = true

	s.Sliding.SlideYScale = 0.5
	s.Sliding.SlideForce = 400
	s.Sliding.SlideDownForce = 5
	s.Sliding.MaxSlideTime = 1
	s.Sliding.SlideFOV = 100
	s.Sliding.NormalFOV = 80
	s.Sliding.CameraTransitionSpeed = 10

	s.WallRunning.WallCheckDistance = 0.7
	s.WallRunning.MinJumpHeight = 1.5
	s.WallRunning.WallLayer = physics.LayerWall
	s.WallRunning.GroundLayer = physics.LayerGround
	s.WallRunning.WallRunForce = 200
	s.WallRunning.WallClimbSpeed = 3
	s.WallRunning.WallStickForce = 100
	s.WallRunning.UseGravity = true
	s.WallRunning.GravityCounterForce = 300
	s.WallRunning.MaxWallRunTime = 1
	s.WallRunning.ExitWallTime = 0.2
	s.WallRunning.WallJumpUpForce = 7
	s.WallRunning.WallJumpSideForce = 12
	s.WallRunning.WallRunFOV = 90
	s.WallRunning.NormalFOV = 80
	s.WallRunning.CameraTransitionSpeed = 10

	s.Camera.VerticalLimit = 80
	s.Camera.DefaultFOV = 80
	s.Camera.FOVTransitionSpeed = 10
	s.Camera.HeadOffset = 0.6

	s.Simulation.PhysicsStep = 0.02
	s.Simulation.LogicRate = 60
	s.Simulation.MaxPhysicsSteps = 8
	s.Simulation.HistoryFrames = 120
	s.Simulation.Gravity = 9.81
	s.Simulation.Mass = 1
	s.Simulation.Width = 1
	return s
}

// Fingerprint returns a hash of the encoded settings, used to tell tunable sets apart in logs.
func (s Settings) Fingerprint() uint64 {
	data, err := toml.Marshal(s)
	if err != nil {
		return 0
	}
	return xxh3.Hash(data)
}

// SaveDefault writes the default settings to path. An existing file is never overwritten.
func SaveDefault(path string) error {
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("encode default settings: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create settings file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write settings file: %w", err)
	}
	return f.Close()
}

// Load reads the settings at path. Keys missing from the file keep their default value.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}
	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings file %s: %w", path, err)
	}
	return s, nil
}

package movement

import "github.com/go-gl/mathgl/mgl64"

// Snapshot is a copy of the observable state of a controller and its modules at the end of a frame.
type Snapshot struct {
	State    State
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	Grounded   bool
	OnSlope    bool
	SlopeAngle float64

	MoveSpeed        float64
	DesiredMoveSpeed float64

	Override     Owner
	Sliding      bool
	SlideTimer   float64
	WallRunPhase WallRunPhase
	WallRunTimer float64
	WallLeft     bool
	WallRight    bool

	JumpReady    bool
	JumpCooldown float64
	Crouching    bool
	YScale       float64

	FOV        float32
	Yaw, Pitch float32
}

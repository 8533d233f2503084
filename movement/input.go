package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Button is the state of a digital action for a single logic frame.
type Button struct {
	// Down is true while the action is held.
	Down bool
	// Pressed is true only on the frame the action went down.
	Pressed bool
	// Released is true only on the frame the action went up.
	Released bool
}

// NextButton derives the button state for this frame from the previous frame and whether the action is held.
func NextButton(prev Button, down bool) Button {
	return Button{
		Down:     down,
		Pressed:  down && !prev.Down,
		Released: !down && prev.Down,
	}
}

// Input is a snapshot of every action, sampled once per logic frame.
type Input struct {
	// Move is the horizontal movement input: X strafes right, Y moves forward.
	Move mgl64.Vec2
	// Look is the look input for this frame: X turns right, Y looks up.
	Look mgl32.Vec2

	Jump   Button
	Sprint Button
	Crouch Button
	Slide  Button
}

// Moving returns true if there is any horizontal movement input.
func (in Input) Moving() bool {
	return in.Move.X() != 0 || in.Move.Y() != 0
}

// Source supplies the input snapshot for each logic frame.
type Source interface {
	Poll() Input
}

// RawInput is the held state of every action, as read from a device.
type RawInput struct {
	Move mgl64.Vec2
	Look mgl32.Vec2

	Jump, Sprint, Crouch, Slide bool
}

// Sampler turns successive RawInput readings into Input snapshots with press and release edges.
type Sampler struct {
	last Input
}

// Sample returns the snapshot for this frame.
func (s *Sampler) Sample(raw RawInput) Input {
	in := Input{
		Move:   raw.Move,
		Look:   raw.Look,
		Jump:   NextButton(s.last.Jump, raw.Jump),
		Sprint: NextButton(s.last.Sprint, raw.Sprint),
		Crouch: NextButton(s.last.Crouch, raw.Crouch),
		Slide:  NextButton(s.last.Slide, raw.Slide),
	}
	s.last = in
	return in
}

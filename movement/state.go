package movement

// State is the movement state of the character. Exactly one is active per logic frame.
type State uint8

const (
	StateWalking State = iota
	StateSprinting
	StateAir
	StateCrouching
	StateSliding
	StateWallRunning
	StateFreeze
)

func (s State) String() string {
	switch s {
	case StateWalking:
		return "walking"
	case StateSprinting:
		return "sprinting"
	case StateAir:
		return "air"
	case StateCrouching:
		return "crouching"
	case StateSliding:
		return "sliding"
	case StateWallRunning:
		return "wall_running"
	case StateFreeze:
		return "freeze"
	default:
		return "unknown"
	}
}

package movement

// Module is a movement ability that temporarily takes over the velocity of the character by holding the
// override lock.
type Module interface {
	// Owner returns the identity the module holds the override lock under.
	Owner() Owner
	// Enabled returns false if the module is switched off in the settings.
	Enabled() bool
	// Active returns true while the module holds the override lock.
	Active() bool
	// Update runs the trigger checks and timers of the module once per logic frame.
	Update(dt float64, in Input)
	// FixedUpdate applies the forces of the module once per physics step while it is active.
	FixedUpdate(dt float64)
	// DesiredSpeed returns the move speed the controller should converge to while the module is active.
	DesiredSpeed() float64
	// Stop ends the module if it is active.
	Stop()
}

// snapshotter is implemented by modules that expose state in a Snapshot.
type snapshotter interface {
	fillSnapshot(s *Snapshot)
}

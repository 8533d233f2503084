package movement

// Owner identifies a module that can take over the velocity of the character.
type Owner uint8

const (
	OwnerNone Owner = iota
	OwnerSlide
	OwnerWallRun
)

func (o Owner) String() string {
	switch o {
	case OwnerSlide:
		return "slide"
	case OwnerWallRun:
		return "wall_run"
	default:
		return "none"
	}
}

// Override is the locomotion override lock. At most one owner holds it at a time, and only the holder may
// write the velocity components it overrides.
type Override struct {
	holder Owner
}

// TryAcquire gives the lock to owner if it is free. It returns true if owner holds the lock afterwards.
func (o *Override) TryAcquire(owner Owner) bool {
	if owner == OwnerNone {
		return false
	}
	if o.holder == OwnerNone {
		o.holder = owner
	}
	return o.holder == owner
}

// Release frees the lock if owner holds it.
func (o *Override) Release(owner Owner) {
	if o.holder == owner {
		o.holder = OwnerNone
	}
}

// Holder returns the current holder of the lock.
func (o *Override) Holder() Owner {
	return o.holder
}

// Held returns true if owner holds the lock.
func (o *Override) Held(owner Owner) bool {
	return owner != OwnerNone && o.holder == owner
}

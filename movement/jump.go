package movement

import "math"

// jumpState tracks whether the character may jump again.
type jumpState struct {
	ready    bool
	cooldown float64
}

// canJump returns true if no cooldown is pending.
func (j *jumpState) canJump() bool {
	return j.ready && j.cooldown <= 0
}

// trigger marks a jump and starts the cooldown.
func (j *jumpState) trigger(cooldown float64) {
	j.ready = false
	j.cooldown = math.Max(0, cooldown)
}

// tick counts the cooldown down to exactly zero. It returns true on the frame the character becomes ready.
func (j *jumpState) tick(dt float64) bool {
	if j.cooldown > 0 {
		j.cooldown = math.Max(0, j.cooldown-math.Max(0, dt))
	}
	if j.cooldown == 0 && !j.ready {
		j.ready = true
		return true
	}
	return false
}

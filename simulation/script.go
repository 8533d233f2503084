package simulation

import (
	"github.com/oomph-ac/parkour/movement"
)

// Step holds an input for a duration in seconds.
type Step struct {
	Duration float64
	Input    movement.RawInput
}

// Script is an input source that plays a list of steps, advancing by a fixed frame length on every poll.
// Press and release edges are derived from the held state of consecutive frames.
type Script struct {
	steps   []Step
	frame   float64
	index   int
	elapsed float64
	sampler movement.Sampler
}

// NewScript returns a script that advances by frame seconds per poll.
func NewScript(frame float64, steps ...Step) *Script {
	return &Script{steps: steps, frame: frame}
}

// Poll returns the input of the current step and advances the script. Once every step has played, the
// input is neutral.
func (s *Script) Poll() movement.Input {
	if s.Done() {
		return s.sampler.Sample(movement.RawInput{})
	}
	in := s.sampler.Sample(s.steps[s.index].Input)
	s.elapsed += s.frame
	for !s.Done() && s.elapsed >= s.steps[s.index].Duration-1e-9 {
		s.elapsed -= s.steps[s.index].Duration
		s.index++
	}
	return in
}

// Done returns true once every step has played.
func (s *Script) Done() bool {
	return s.index >= len(s.steps) || s.frame <= 0
}

// Step returns the index of the step that plays next.
func (s *Script) Step() int {
	return s.index
}

// Length returns the total duration of the script in seconds.
func (s *Script) Length() float64 {
	var total float64
	for _, st := range s.steps {
		total += st.Duration
	}
	return total
}

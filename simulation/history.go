package simulation

import (
	"iter"

	"github.com/oomph-ac/parkour/movement"
)

// history is a ring of the most recent snapshots. Once full, pushing drops the oldest snapshot.
type history struct {
	items []movement.Snapshot
	head  int
	size  int
}

func newHistory(capacity int) *history {
	return &history{items: make([]movement.Snapshot, max(0, capacity))}
}

// push appends a snapshot, overwriting the oldest one if the ring is full.
func (h *history) push(s movement.Snapshot) {
	if len(h.items) == 0 {
		return
	}
	h.items[(h.head+h.size)%len(h.items)] = s
	if h.size == len(h.items) {
		h.head = (h.head + 1) % len(h.items)
		return
	}
	h.size++
}

// all yields the snapshots from oldest to newest.
func (h *history) all() iter.Seq[movement.Snapshot] {
	return func(yield func(movement.Snapshot) bool) {
		for i := range h.size {
			if !yield(h.items[(h.head+i)%len(h.items)]) {
				return
			}
		}
	}
}

func (h *history) len() int {
	return h.size
}

package session

import (
	"time"

	"github.com/google/uuid"

	"qbloch/internal/qubit"
)

// DefaultHistorySize is the number of snapshots kept when none is configured.
const DefaultHistorySize = 4

// Snapshot is an independent copy of the (gate, state) pair taken before an
// apply action.
type Snapshot struct {
	ID    uuid.UUID
	Gate  qubit.Gate
	State qubit.State
	Taken time.Time
}

// History is a bounded FIFO of snapshots. Pushing beyond capacity evicts the
// oldest entry; Pop returns the newest. It is not safe for concurrent use on
// its own; Session guards it.
type History struct {
	size    int
	entries []Snapshot
}

// NewHistory returns an empty history holding at most size snapshots.
// A size below 1 selects DefaultHistorySize.
func NewHistory(size int) *History {
	if size < 1 {
		size = DefaultHistorySize
	}
	return &History{size: size, entries: make([]Snapshot, 0, size)}
}

// Push appends s and reports the evicted snapshot, if any.
func (h *History) Push(s Snapshot) (evicted Snapshot, ok bool) {
	if len(h.entries) == h.size {
		evicted, ok = h.entries[0], true
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, s)
	return evicted, ok
}

// Pop removes and returns the newest snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.entries) == 0 {
		return Snapshot{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cap returns the capacity.
func (h *History) Cap() int { return h.size }

// Entries returns a copy of the snapshots, oldest first.
func (h *History) Entries() []Snapshot {
	out := make([]Snapshot, len(h.entries))
	copy(out, h.entries)
	return out
}

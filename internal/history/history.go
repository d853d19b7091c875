// Package history keeps a bounded undo log of scene snapshots.
package history

import "citymap/internal/scene"

// DefaultCapacity is the number of undo steps kept.
const DefaultCapacity = 50

// Stack is a LIFO of deep-copied object lists. When a push exceeds the
// capacity the oldest entry is dropped.
type Stack struct {
	entries  [][]scene.Object
	capacity int
}

// New returns an empty stack. A capacity below 1 falls back to
// DefaultCapacity.
func New(capacity int) *Stack {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

// Snapshot pushes a copy of objs.
func (h *Stack) Snapshot(objs []scene.Object) {
	entry := make([]scene.Object, len(objs))
	copy(entry, objs)
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.capacity {
		// drop oldest; clear the slot so the evicted slice can be collected
		h.entries[0] = nil
		h.entries = h.entries[1:]
	}
}

// Undo pops the newest entry. ok is false when there is nothing to undo.
func (h *Stack) Undo() (objs []scene.Object, ok bool) {
	n := len(h.entries)
	if n == 0 {
		return nil, false
	}
	objs = h.entries[n-1]
	h.entries[n-1] = nil
	h.entries = h.entries[:n-1]
	return objs, true
}

// Len is the number of stored entries.
func (h *Stack) Len() int { return len(h.entries) }

// CanUndo reports whether Undo would succeed.
func (h *Stack) CanUndo() bool { return len(h.entries) > 0 }

// Capacity is the maximum number of entries kept.
func (h *Stack) Capacity() int { return h.capacity }

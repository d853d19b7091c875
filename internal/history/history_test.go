package history

import (
	"testing"

	"citymap/internal/catalog"
	"citymap/internal/scene"
)

func objs(ids ...int64) []scene.Object {
	out := make([]scene.Object, 0, len(ids))
	for _, id := range ids {
		out = append(out, scene.Object{ID: id, Type: catalog.House, Size: 40})
	}
	return out
}

func TestUndoEmpty(t *testing.T) {
	h := New(0)
	if h.Capacity() != DefaultCapacity {
		t.Fatalf("capacity = %d", h.Capacity())
	}
	if got, ok := h.Undo(); ok || got != nil || h.CanUndo() {
		t.Fatalf("expected empty undo, got %v %v", got, ok)
	}
}

func TestLIFO(t *testing.T) {
	h := New(DefaultCapacity)
	h.Snapshot(objs(1))
	h.Snapshot(objs(1, 2))
	got, ok := h.Undo()
	if !ok || len(got) != 2 {
		t.Fatalf("expected newest entry, got %v", got)
	}
	got, _ = h.Undo()
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected oldest entry, got %v", got)
	}
	if h.CanUndo() {
		t.Fatalf("stack should be empty")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	h := New(DefaultCapacity)
	for i := int64(1); i <= 60; i++ {
		h.Snapshot(objs(i))
	}
	if h.Len() != 50 {
		t.Fatalf("len = %d, want 50", h.Len())
	}
	var last int64
	for h.CanUndo() {
		e, _ := h.Undo()
		last = e[0].ID
	}
	if last != 11 {
		t.Fatalf("oldest surviving entry = %d, want 11", last)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	h := New(5)
	live := objs(1)
	h.Snapshot(live)
	live[0].X = 500
	got, _ := h.Undo()
	if got[0].X != 0 {
		t.Fatalf("snapshot aliased caller slice")
	}
}

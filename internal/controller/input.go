package controller

import (
	"context"
	"fmt"

	"citymap/internal/catalog"
	"citymap/internal/scene"
)

// ToolSelected arms t, or disarms it when t is already armed.
func (c *Controller) ToolSelected(t catalog.Type) error {
	if !t.Valid() {
		err := fmt.Errorf("select tool: %w: %q", catalog.ErrInvalidType, string(t))
		c.logger.Error("tool selection rejected", "err", err)
		return err
	}
	if c.modal() {
		return nil
	}
	c.metrics.Event("tool")
	if c.mode == Dragging {
		c.endDrag()
	}
	if c.mode == ToolArmed && c.tool == t {
		c.disarm()
		c.cursor = CursorDefault
		return nil
	}
	c.mode = ToolArmed
	c.tool = t
	c.cursor = CursorCrosshair
	return nil
}

// CanvasPrimaryClick starts a drag on a visible object, otherwise places the
// armed tool. Clicking an object never places one, and it disarms the tool.
func (c *Controller) CanvasPrimaryClick(x, y float64) {
	if c.modal() {
		return
	}
	if obj, ok := c.scene.HitTest(x, y); ok {
		c.disarm()
		c.scene.BeginDrag(obj.ID, x, y)
		c.dragBase = c.scene.Objects()
		c.dragMoved = false
		c.mode = Dragging
		c.cursor = CursorGrabbing
		c.metrics.Event("drag")
		return
	}
	if c.mode != ToolArmed {
		c.scene.ClearSelection()
		return
	}
	c.snapshot()
	obj, err := c.scene.Place(c.tool, x, y)
	if err != nil {
		// unreachable with a validated tool; undo the speculative snapshot
		c.history.Undo()
		c.logger.Error("place failed", "err", err)
		return
	}
	c.logger.Debug("object placed", "id", obj.ID, "type", obj.Type, "x", x, "y", y)
	c.metrics.Event("place")
	c.disarm()
	c.cursor = CursorGrab
	c.observe()
}

// CanvasPointerMove drags the selected object, or updates the hover cursor.
func (c *Controller) CanvasPointerMove(x, y float64) {
	if c.mode != Dragging {
		c.cursor = c.hover(x, y)
		return
	}
	before, ok := c.scene.Selected()
	if !ok {
		c.endDrag()
		return
	}
	c.scene.DragTo(x, y, c.width, c.height)
	after, _ := c.scene.Selected()
	if !c.dragMoved && (after.X != before.X || after.Y != before.Y) {
		c.history.Snapshot(c.dragBase)
		c.dragBase = nil
		c.dragMoved = true
		c.observe()
	}
}

func (c *Controller) hover(x, y float64) Cursor {
	if c.modal() {
		return CursorDefault
	}
	if _, ok := c.scene.HitTest(x, y); ok {
		return CursorGrab
	}
	if c.mode == ToolArmed {
		return CursorCrosshair
	}
	return CursorDefault
}

// CanvasPointerRelease ends a drag. The position already applied stays.
func (c *Controller) CanvasPointerRelease() {
	if c.mode != Dragging {
		return
	}
	if c.dragMoved {
		if o, ok := c.scene.Selected(); ok {
			c.logger.Debug("object moved", "id", o.ID, "x", o.X, "y", o.Y)
		}
	}
	c.endDrag()
	c.cursor = CursorGrab
}

// CanvasPointerLeave behaves like a release.
func (c *Controller) CanvasPointerLeave() {
	c.CanvasPointerRelease()
	c.cursor = CursorDefault
}

// FilterToggled shows or hides a type. Hiding the selected object's type
// drops the selection.
func (c *Controller) FilterToggled(t catalog.Type, enabled bool) error {
	if !t.Valid() {
		err := fmt.Errorf("toggle filter: %w: %q", catalog.ErrInvalidType, string(t))
		c.logger.Error("filter toggle rejected", "err", err)
		return err
	}
	c.metrics.Event("filter")
	c.scene.SetFilter(t, enabled)
	if sel, ok := c.scene.Selected(); ok && !enabled && sel.Type == t {
		c.endDrag()
		c.scene.ClearSelection()
		c.deletePending = false
	}
	return nil
}

// SaveRequested writes the full scene through the saver.
func (c *Controller) SaveRequested(ctx context.Context) error {
	c.metrics.Event("save")
	if c.saver == nil {
		err := fmt.Errorf("save: no store configured")
		c.metrics.Save(err)
		c.notify(NoticeSaveFailed)
		return err
	}
	err := c.saver.Save(ctx, c.scene.Objects())
	c.metrics.Save(err)
	if err != nil {
		c.logger.Error("save failed", "err", err)
		c.notify(NoticeSaveFailed)
		return err
	}
	c.notify(NoticeSaved)
	return nil
}

// UndoRequested restores the newest snapshot. Empty history is a silent
// no-op.
func (c *Controller) UndoRequested() {
	objs, ok := c.history.Undo()
	if !ok {
		return
	}
	c.metrics.Event("undo")
	c.endDrag()
	c.scene.Replace(objs)
	c.scene.ClearSelection()
	c.deletePending = false
	c.notify(NoticeUndone)
	c.observe()
}

// ClearRequested asks for confirmation, or only notifies when the scene is
// already empty.
func (c *Controller) ClearRequested() {
	if c.scene.Len() == 0 {
		c.notify(NoticeAlreadyEmpty)
		return
	}
	c.deletePending = false
	c.clearPending = true
}

// ClearConfirmed snapshots and empties the scene.
func (c *Controller) ClearConfirmed() {
	if !c.clearPending {
		return
	}
	c.clearPending = false
	if c.scene.Len() == 0 {
		return
	}
	c.metrics.Event("clear")
	c.endDrag()
	c.snapshot()
	c.scene.ClearAll()
	c.logger.Info("map cleared")
	c.notify(NoticeCleared)
	c.observe()
}

// ClearCancelled closes the clear confirmation.
func (c *Controller) ClearCancelled() { c.clearPending = false }

// DeleteKeyPressed opens the delete confirmation for the selection.
func (c *Controller) DeleteKeyPressed() {
	sel, ok := c.scene.Selected()
	if !ok || c.clearPending {
		return
	}
	if c.mode == Dragging {
		c.endDrag()
		c.scene.Select(sel.ID)
	}
	c.deletePending = true
}

// ObjectDoubleClicked selects id without dragging and asks to delete it.
func (c *Controller) ObjectDoubleClicked(id int64) { c.requestDelete(id) }

// ObjectSecondaryClicked is the context-menu path to deletion.
func (c *Controller) ObjectSecondaryClicked(id int64) { c.requestDelete(id) }

func (c *Controller) requestDelete(id int64) {
	if c.clearPending {
		return
	}
	o, ok := c.scene.Get(id)
	if !ok || !c.scene.Visible(o.Type) {
		return
	}
	if c.mode == Dragging {
		c.endDrag()
	}
	c.scene.Select(id)
	c.deletePending = true
}

// DeleteConfirmed snapshots, removes the selection and closes the dialog.
func (c *Controller) DeleteConfirmed() {
	if !c.deletePending {
		return
	}
	c.deletePending = false
	sel, ok := c.scene.Selected()
	if !ok {
		return
	}
	c.metrics.Event("delete")
	c.endDrag()
	c.snapshot()
	c.scene.Remove(sel.ID)
	c.scene.ClearSelection()
	c.logger.Debug("object deleted", "id", sel.ID, "type", sel.Type)
	c.notify(NoticeDeleted)
	c.observe()
}

// DeleteCancelled closes the dialog; the scene and selection stay.
func (c *Controller) DeleteCancelled() { c.deletePending = false }

// EscapePressed returns to Idle, disarming the tool, ending any drag and
// dismissing open confirmations.
func (c *Controller) EscapePressed() {
	c.endDrag()
	c.disarm()
	c.scene.ClearSelection()
	c.deletePending = false
	c.clearPending = false
	c.mode = Idle
	c.cursor = CursorDefault
}

// Import replaces the scene with objs as one undoable step.
func (c *Controller) Import(objs []scene.Object) {
	if c.modal() {
		return
	}
	if len(objs) == 0 {
		c.notify(NoticeNothingToAdd)
		return
	}
	c.metrics.Event("import")
	c.endDrag()
	c.disarm()
	c.snapshot()
	c.scene.Replace(objs)
	c.scene.ClearSelection()
	c.logger.Info("plan imported", "objects", len(objs))
	c.notify(NoticeImported)
	c.observe()
}

// Select marks id as selected without a drag, as for keyboard navigation in
// the object table.
func (c *Controller) Select(id int64) bool {
	if c.mode == Dragging || c.modal() {
		return false
	}
	o, ok := c.scene.Get(id)
	if !ok || !c.scene.Visible(o.Type) {
		return false
	}
	return c.scene.Select(id)
}

// Package controller turns host input events into scene, history and
// persistence operations. It owns all editor state; hosts only read Frame.
package controller

import (
	"context"
	"log/slog"

	"citymap/internal/catalog"
	"citymap/internal/history"
	"citymap/internal/logging"
	"citymap/internal/metrics"
	"citymap/internal/scene"
)

// Mode is the interaction state.
type Mode int

const (
	Idle Mode = iota
	ToolArmed
	Dragging
)

func (m Mode) String() string {
	switch m {
	case ToolArmed:
		return "tool-armed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Notices shown to the user.
const (
	NoticeSaved        = "Plan saved successfully!"
	NoticeSaveFailed   = "Could not save the plan"
	NoticeAlreadyEmpty = "The map is already empty"
	NoticeCleared      = "Map cleared"
	NoticeDeleted      = "Object deleted"
	NoticeUndone       = "Action undone"
	NoticeImported     = "Plan imported"
	NoticeNothingToAdd = "Nothing to import"
)

// Saver persists the full object list.
type Saver interface {
	Save(ctx context.Context, objs []scene.Object) error
}

// Options configures a Controller. Zero values are usable: an 800x600
// canvas, the default history capacity, no saver, no metrics, no logs.
type Options struct {
	Width           float64
	Height          float64
	HistoryCapacity int
	Saver           Saver
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
}

// Controller is the editor state machine. It is driven from a single event
// loop and is not safe for concurrent use.
type Controller struct {
	scene   *scene.Scene
	history *history.Stack
	saver   Saver
	metrics *metrics.Metrics
	logger  *slog.Logger

	width, height float64

	mode Mode
	tool catalog.Type

	deletePending bool
	clearPending  bool

	// pre-drag copy, pushed to history on the first move that changes
	// the position
	dragBase  []scene.Object
	dragMoved bool

	cursor    Cursor
	notice    string
	noticeSeq int
}

// New builds a controller over an initial object list, typically the one
// returned by the persistence gateway.
func New(initial []scene.Object, opts Options) *Controller {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	sc := scene.New()
	sc.Replace(initial)
	c := &Controller{
		scene:   sc,
		history: history.New(opts.HistoryCapacity),
		saver:   opts.Saver,
		metrics: opts.Metrics,
		logger:  logging.OrNop(opts.Logger),
		width:   opts.Width,
		height:  opts.Height,
		cursor:  CursorDefault,
	}
	c.observe()
	return c
}

// Objects returns a copy of the full, unfiltered object list.
func (c *Controller) Objects() []scene.Object { return c.scene.Objects() }

// Mode is the current interaction state.
func (c *Controller) Mode() Mode { return c.mode }

// Tool is the armed type, empty unless Mode is ToolArmed.
func (c *Controller) Tool() catalog.Type { return c.tool }

// CanUndo reports whether UndoRequested would change the scene.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// HistoryLen is the number of undo entries held.
func (c *Controller) HistoryLen() int { return c.history.Len() }

// CanvasSize returns the canvas dimensions used for clamping.
func (c *Controller) CanvasSize() (w, h float64) { return c.width, c.height }

// SetCanvasSize updates the clamping bounds. Non-positive sizes are ignored.
func (c *Controller) SetCanvasSize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.width, c.height = w, h
}

// HitTest resolves a canvas point to the topmost visible object.
func (c *Controller) HitTest(x, y float64) (scene.Object, bool) {
	return c.scene.HitTest(x, y)
}

// modal reports whether a confirmation is open; canvas input is ignored
// until it is resolved.
func (c *Controller) modal() bool { return c.deletePending || c.clearPending }

func (c *Controller) notify(msg string) {
	c.notice = msg
	c.noticeSeq++
}

// Notify shows a host message, such as an export result, through the same
// transient notice as editor events.
func (c *Controller) Notify(msg string) { c.notify(msg) }

// DismissNotice clears the notice if seq still identifies it. A newer notice
// is left alone.
func (c *Controller) DismissNotice(seq int) {
	if seq == c.noticeSeq {
		c.notice = ""
	}
}

func (c *Controller) snapshot() {
	c.history.Snapshot(c.scene.Objects())
}

func (c *Controller) observe() {
	c.metrics.Observe(c.scene.Len(), c.history.Len())
}

func (c *Controller) endDrag() {
	c.scene.EndDrag()
	c.dragBase = nil
	c.dragMoved = false
	if c.mode == Dragging {
		c.mode = Idle
	}
}

func (c *Controller) disarm() {
	c.tool = ""
	if c.mode == ToolArmed {
		c.mode = Idle
	}
}

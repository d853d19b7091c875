// Package tui is the terminal host for the city map editor. It translates
// bubbletea key and mouse messages into controller inputs and draws the
// controller's frame.
package tui

import (
	"context"
	"log/slog"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"citymap/internal/controller"
	"citymap/internal/logging"
)

const (
	noticeTTL        = 2000 * time.Millisecond
	doubleClickDelay = 400 * time.Millisecond
)

// Options configures the host.
type Options struct {
	// Dir is browsed by the import explorer and receives exports;
	// empty means the working directory.
	Dir    string
	Logger *slog.Logger
}

type press struct {
	id int64
	at time.Time
}

type Model struct {
	ctrl   *controller.Controller
	ctx    context.Context
	logger *slog.Logger
	keys   keyMap
	now    func() time.Time

	width  int
	height int

	helpVisible bool

	// import explorer, shown in place of the palette
	explorer bool
	cwd      string
	l        list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// object table
	showTable bool
	tbl       table.Model

	inCanvas  bool
	lastPress press
	noticeSeq int
}

// New wires a host around ctrl. ctx bounds store calls made on save.
func New(ctx context.Context, ctrl *controller.Controller, opts Options) Model {
	m := Model{
		ctrl:        ctrl,
		ctx:         ctx,
		logger:      logging.OrNop(opts.Logger),
		keys:        defaultKeys(),
		now:         time.Now,
		helpVisible: true,
		cwd:         opts.Dir,
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Import"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a saved plan (JSON array). Enter imports; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// object table setup
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(objectColumns()))
	m.tbl.SetHeight(12)
	return m
}

// Controller exposes the driven controller, mainly for the final state
// after the program exits.
func (m Model) Controller() *controller.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd { return nil }

type noticeExpiredMsg struct{ seq int }

// scheduleNotice arms the dismissal timer when the controller posted a new
// notice since the last check.
func (m *Model) scheduleNotice() tea.Cmd {
	f := m.ctrl.Frame()
	if f.NoticeSeq == m.noticeSeq || f.Notice == "" {
		m.noticeSeq = f.NoticeSeq
		return nil
	}
	m.noticeSeq = f.NoticeSeq
	seq := f.NoticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"citymap/internal/catalog"
	"citymap/internal/controller"
	"citymap/internal/geom"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctrl := controller.New(nil, controller.Options{Width: 800, Height: 600})
	m := New(context.Background(), ctrl, Options{Dir: t.TempDir()})
	return send(t, m, tea.WindowSizeMsg{Width: 126, Height: 43})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	out, _ := m.Update(msg)
	return out.(Model)
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func mousePress(x, y int, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: b}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func TestLayoutMapping(t *testing.T) {
	lay := computeLayout(126, 43)
	if lay.mapX != 27 || lay.mapW != 99 || lay.mapH != 40 || lay.bodyY != 1 {
		t.Fatalf("layout = %+v", lay)
	}
	if !lay.inMap(27, 1) || lay.inMap(26, 1) || lay.inMap(27, 41) {
		t.Fatalf("inMap bounds wrong")
	}
	x, y := lay.cellToCanvas(27, 1, 800, 600)
	if x <= 0 || x >= 800/99.0 || y <= 0 || y >= 600/40.0 {
		t.Fatalf("first cell maps to %v,%v", x, y)
	}
	if row, ok := lay.inSidebar(3, 4); !ok || row != 3 {
		t.Fatalf("sidebar row = %d %v", row, ok)
	}
}

func TestBraillePixelsAndIcons(t *testing.T) {
	b := newBrailleBuf(4, 1)
	b.setPixel(0, 0, "")
	b.setPixel(3, 3, "")
	b.setPixel(-1, 0, "")
	b.setPixel(100, 0, "")
	lines := b.toLines()
	if lines[0] != "⠁⢀  " {
		t.Fatalf("line = %q", lines[0])
	}
	b.setIcon(2, 0, "🏠")
	if got := b.toColoredLines()[0]; !strings.HasSuffix(got, "🏠") {
		t.Fatalf("icon not rendered: %q", got)
	}
}

func TestFillEllipseCoversCenter(t *testing.T) {
	b := newBrailleBuf(10, 5)
	b.fillEllipseMicro(10, 10, 4, 4, "#FF6B6B")
	if b.m[10/4][10/2] == 0 {
		t.Fatalf("center cell empty")
	}
	if b.col[2][5] != "#FF6B6B" {
		t.Fatalf("color not recorded")
	}
	if b.m[0][0] != 0 {
		t.Fatalf("corner should be empty")
	}
}

func TestKeyToolAndClickPlaces(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyRune('1'))
	if m.ctrl.Mode() != controller.ToolArmed || m.ctrl.Tool() != catalog.House {
		t.Fatalf("key 1 should arm house")
	}
	m = send(t, m, mousePress(76, 21, tea.MouseButtonLeft))
	m = send(t, m, release(76, 21))
	objs := m.ctrl.Objects()
	if len(objs) != 1 || objs[0].Type != catalog.House {
		t.Fatalf("objects = %+v", objs)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if len(m.ctrl.Objects()) != 0 {
		t.Fatalf("ctrl+z should undo")
	}
}

func TestSidebarClickArmsTool(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, mousePress(3, 1+2, tea.MouseButtonLeft)) // row 2 is the road tool
	if m.ctrl.Tool() != catalog.Road {
		t.Fatalf("tool = %q", m.ctrl.Tool())
	}
}

func TestDragAndDoubleClickDelete(t *testing.T) {
	m := newTestModel(t)
	clock := time.Unix(1000, 0)
	m.now = func() time.Time { return clock }
	m = send(t, m, keyRune('5'))
	m = send(t, m, mousePress(76, 21, tea.MouseButtonLeft))
	m = send(t, m, release(76, 21))

	// drag right by ten cells
	m = send(t, m, mousePress(76, 21, tea.MouseButtonLeft))
	m = send(t, m, tea.MouseMsg{X: 86, Y: 21, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = send(t, m, release(86, 21))
	if o := m.ctrl.Objects()[0]; o.X <= 400 {
		t.Fatalf("drag did not move the park: %+v", o)
	}

	clock = clock.Add(2 * time.Second)
	m = send(t, m, mousePress(86, 21, tea.MouseButtonLeft))
	m = send(t, m, release(86, 21))
	clock = clock.Add(200 * time.Millisecond)
	m = send(t, m, mousePress(86, 21, tea.MouseButtonLeft))
	if !m.ctrl.Frame().DeletePending {
		t.Fatalf("double click should ask to delete")
	}
	m = send(t, m, keyRune('y'))
	if len(m.ctrl.Objects()) != 0 {
		t.Fatalf("confirmed delete did not remove the object")
	}
}

func TestRightClickAndCancel(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyRune('2'))
	m = send(t, m, mousePress(76, 21, tea.MouseButtonLeft))
	m = send(t, m, mousePress(76, 21, tea.MouseButtonRight))
	if !m.ctrl.Frame().DeletePending {
		t.Fatalf("right click should ask to delete")
	}
	if !strings.Contains(m.View(), "Delete this object?") {
		t.Fatalf("dialog not shown")
	}
	m = send(t, m, keyRune('n'))
	if m.ctrl.Frame().DeletePending || len(m.ctrl.Objects()) != 1 {
		t.Fatalf("cancel should keep the object")
	}
}

func TestNoticeExpires(t *testing.T) {
	m := newTestModel(t)
	out, cmd := m.Update(keyRune('c'))
	m = out.(Model)
	if cmd == nil {
		t.Fatalf("expected a dismissal timer")
	}
	f := m.ctrl.Frame()
	if f.Notice != controller.NoticeAlreadyEmpty {
		t.Fatalf("notice = %q", f.Notice)
	}
	m = send(t, m, noticeExpiredMsg{seq: f.NoticeSeq})
	if m.ctrl.Frame().Notice != "" {
		t.Fatalf("notice should be dismissed")
	}
}

func TestFilterKeyHidesType(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyRune('1'))
	m = send(t, m, mousePress(76, 21, tea.MouseButtonLeft))
	m = send(t, m, keyRune('!'))
	if m.ctrl.Frame().Filters[catalog.House] {
		t.Fatalf("shift+1 should hide houses")
	}
	if len(m.ctrl.Frame().Render.Items) != 0 {
		t.Fatalf("hidden house rendered")
	}
}

func TestExplorerImportAndExports(t *testing.T) {
	m := newTestModel(t)
	src := []byte("type,x,y\nschool,100,100\npark,300,200\n")
	if err := os.WriteFile(filepath.Join(m.cwd, "plan.csv"), src, 0o644); err != nil {
		t.Fatal(err)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.explorer || len(m.l.Items()) != 1 {
		t.Fatalf("explorer should list plan.csv, got %d items", len(m.l.Items()))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if n := len(m.ctrl.Objects()); n != 2 {
		t.Fatalf("imported %d objects", n)
	}
	m = send(t, m, keyRune('x'))
	m = send(t, m, keyRune('g'))
	for _, name := range []string{"citymap.png", "citymap.geojson"} {
		if _, err := os.Stat(filepath.Join(m.cwd, name)); err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
	objs, err := geom.Load(filepath.Join(m.cwd, "citymap.geojson"))
	if err != nil || len(objs) != 2 {
		t.Fatalf("exported geojson: %v %d", err, len(objs))
	}
}

func TestPasteImport(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyRune('p'))
	if !m.pasteMode {
		t.Fatalf("p should open paste mode")
	}
	m.ta.SetValue(`[{"id":4,"type":"hospital","x":200,"y":200,"size":45,"label":"Hospital","color":"#D84449"}]`)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.pasteMode || len(m.ctrl.Objects()) != 1 || m.ctrl.Objects()[0].ID != 4 {
		t.Fatalf("paste import failed: %+v", m.ctrl.Objects())
	}
}

func TestTableView(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyRune('3'))
	m = send(t, m, mousePress(76, 21, tea.MouseButtonLeft))
	m = send(t, m, keyRune('t'))
	if !m.showTable || len(m.tbl.Rows()) != 1 {
		t.Fatalf("table should list one object")
	}
	if id, ok := m.selectedRowID(); !ok || id != 1 {
		t.Fatalf("selected row id = %d %v", id, ok)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDelete})
	if !m.ctrl.Frame().DeletePending {
		t.Fatalf("delete in table should ask to delete")
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyRune('1'))
	v := m.View()
	for _, want := range []string{"citymap", "Placing: House", "Tools", "Filters"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

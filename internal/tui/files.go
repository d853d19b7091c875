package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"citymap/internal/geom"
	"citymap/internal/persist"
	"citymap/internal/render"
	"citymap/internal/scene"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.ctrl.Notify("read dir error: " + err.Error())
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.ctrl.Notify("no .geojson or .csv files in " + m.cwd)
	}
}

// loadPath imports a GeoJSON or CSV file as one undoable step.
func (m *Model) loadPath(p string) {
	objs, err := geom.Load(p)
	if err != nil {
		m.logger.Warn("import failed", "path", p, "err", err)
		m.ctrl.Notify("import error: " + err.Error())
		return
	}
	m.importObjects(objs)
}

// importPasted decodes a pasted plan in the persisted JSON format.
func (m *Model) importPasted(text string) {
	objs, err := persist.Decode([]byte(text))
	if err != nil {
		m.ctrl.Notify("paste error: " + err.Error())
		return
	}
	m.importObjects(objs)
}

func (m *Model) importObjects(objs []scene.Object) {
	w, h := m.ctrl.CanvasSize()
	m.ctrl.Import(geom.Fit(objs, w, h))
	if m.showTable {
		m.refreshTable()
	}
}

// exportPNG rasterizes the visible plan.
func (m *Model) exportPNG() {
	p := filepath.Join(m.cwd, "citymap.png")
	f := m.ctrl.Frame()
	out, err := os.Create(p)
	if err == nil {
		err = render.WritePNG(out, f.Render, int(f.Width), int(f.Height))
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}
	m.exported(p, err)
}

// exportPoints writes the full plan, filters ignored, as GeoJSON or CSV.
func (m *Model) exportPoints(name string) {
	p := filepath.Join(m.cwd, name)
	m.exported(p, geom.Save(p, m.ctrl.Objects()))
}

func (m *Model) exported(p string, err error) {
	if err != nil {
		m.logger.Error("export failed", "path", p, "err", err)
		m.ctrl.Notify("export error: " + err.Error())
		return
	}
	m.logger.Info("exported", "path", p)
	m.ctrl.Notify(fmt.Sprintf("exported %s", filepath.Base(p)))
}

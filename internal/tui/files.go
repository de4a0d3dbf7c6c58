package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"

	"trackgen/internal/geom"
	"trackgen/internal/track"
	"trackgen/internal/trackxml"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func supported(ext string) bool {
	switch ext {
	case ".xml", ".geojson", ".json", ".wkt":
		return true
	}
	return false
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if supported(ext) {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no track files in current directory"
	}
}

// source is one loaded file. layout is nil unless the file is a track.
type source struct {
	data    geom.Data
	layout  *track.Layout
	modTime time.Time
	broken  []int
}

func load(p string) (source, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return source{}, err
	}
	s := source{modTime: fi.ModTime()}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".xml":
		t, err := trackxml.ReadFile(p)
		if err != nil {
			return source{}, err
		}
		l, err := t.Calc()
		if err != nil {
			return source{}, err
		}
		s.layout = l
		s.data = geom.FromLayout(l)
		s.broken = l.NonFinite()
	case ".geojson", ".json":
		s.data, err = geom.LoadGeo(p)
		if err != nil {
			return source{}, err
		}
	case ".wkt":
		raw, err := os.ReadFile(p)
		if err != nil {
			return source{}, err
		}
		s.data, err = geom.ParseWKT(string(raw))
		if err != nil {
			return source{}, fmt.Errorf("%s: %w", p, err)
		}
	default:
		return source{}, fmt.Errorf("unsupported file: %s", ext)
	}
	return s, nil
}

// loadPath opens p and resets the viewport.
func (m *Model) loadPath(p string) {
	m.selPath = p
	if !m.apply(p) {
		return
	}
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.overlay = geom.Data{}
	m.inspectPopup = ""
	m.status = "loaded: " + filepath.Base(p) + "  " + m.counts()
	m.afterLoad()
}

// reload re-reads the open file if it changed on disk, keeping the
// viewport and any pasted overlay.
func (m *Model) reload() {
	if m.selPath == "" {
		return
	}
	fi, err := os.Stat(m.selPath)
	if err != nil || fi.ModTime().Equal(m.modTime) {
		return
	}
	m.modTime = fi.ModTime()
	if !m.apply(m.selPath) {
		return
	}
	if len(m.overlay.Lines) > 0 || len(m.overlay.Points) > 0 {
		m.data.Merge(m.overlay)
	}
	m.status = "reloaded: " + filepath.Base(m.selPath) + "  " + m.counts()
	m.afterLoad()
}

// apply loads p into the model. On failure the previous geometry stays on
// screen and the error goes to the status line.
func (m *Model) apply(p string) bool {
	s, err := load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return false
	}
	m.data, m.layout, m.modTime, m.broken = s.data, s.layout, s.modTime, s.broken
	return true
}

func (m *Model) afterLoad() {
	if m.showAttrs {
		m.refreshAttrs()
	}
}

func (m Model) counts() string {
	c := fmt.Sprintf("segments=%d lines=%d points=%d", m.segmentCount(), len(m.data.Lines), len(m.data.Points))
	if len(m.broken) > 0 {
		c += fmt.Sprintf("  non-finite: %v", m.broken)
	}
	return c
}

func (m Model) segmentCount() int {
	if m.layout == nil {
		return 0
	}
	return len(m.layout.Segments)
}

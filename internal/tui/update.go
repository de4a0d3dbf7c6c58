package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"trackgen/internal/geom"
)

// mapRect is the map area in terminal cells. It must match View.
func (m Model) mapRect() (x, y, w, h int) {
	const headerHeight, footerHeight = 1, 2
	h = max(4, m.height-headerHeight-footerHeight)
	w = max(10, m.width)
	if m.showSidebar {
		x = sidebarWidth + 1
		w -= sidebarWidth + 1
	}
	return x, headerHeight, max(10, w), h
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tickMsg:
		m.reload()
		cmds = append(cmds, tick())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			_, _, _, h := m.mapRect()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case tea.KeyMsg:
		// While the list is filtering it owns the keyboard.
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m, m.updatePaste(msg)
		}
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updatePaste(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return nil
		}
		m.overlay.Merge(d)
		m.data.Merge(d)
		m.layers[geom.LayerMarkings] = true
		m.status = fmt.Sprintf("overlaid WKT  lines=%d points=%d", len(d.Lines), len(d.Points))
		m.pasteMode = false
		m.ta.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return cmd
}

func (m *Model) toggle(l geom.Layer) {
	m.layers[l] = !m.layers[l]
	m.status = fmt.Sprintf("%s: %v", l, m.layers[l])
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "1":
		m.toggle(geom.LayerLanes)
	case "2":
		m.toggle(geom.LayerMarkings)
	case "3":
		m.toggle(geom.LayerAreas)
	case "l":
		all := m.layers[geom.LayerLanes] && m.layers[geom.LayerMarkings] && m.layers[geom.LayerAreas]
		for _, l := range layerOrder {
			m.layers[l] = !all
		}
		m.status = fmt.Sprintf("layers: lanes=%v markings=%v areas=%v",
			m.layers[geom.LayerLanes], m.layers[geom.LayerMarkings], m.layers[geom.LayerAreas])
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "0":
		m.zoom = 1.0
		m.offsetX, m.offsetY = 0, 0
		m.status = "view reset"
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			_, _, _, h := m.mapRect()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
	case "c":
		if len(m.overlay.Lines) > 0 || len(m.overlay.Points) > 0 {
			m.overlay = geom.Data{}
			m.data = geom.Data{}
			if m.selPath != "" {
				m.apply(m.selPath)
			}
			m.status = "overlay cleared"
		}
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "i":
		if m.inspectPopup != "" {
			m.inspectPopup = ""
			break
		}
		m.inspect()
	case "esc":
		m.inspectPopup = ""
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up":
		m.offsetY -= 1
	case "down":
		m.offsetY += 1
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	return nil
}

// inspect describes the segment nearest to the hovered cell, or to the
// center of the map when the mouse is elsewhere.
func (m *Model) inspect() {
	_, _, w, h := m.mapRect()
	p, ok := m.projection(w, h)
	if !ok {
		m.status = "nothing loaded"
		return
	}
	mx, my := w, h*2
	if m.hovering {
		mx, my = m.hoverMicX, m.hoverMicY
	}
	line, _, ok := m.nearest(p, mx, my)
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	meta := []string{fmt.Sprintf("file: %s", name)}
	if line.Segment >= 0 && m.layout != nil && line.Segment < len(m.layout.Segments) {
		s := m.layout.Segments[line.Segment]
		meta = append(meta,
			fmt.Sprintf("segment: %d (%s)", line.Segment, s.Spec.Kind()),
			fmt.Sprintf("start: x=%.3f y=%.3f dir=%.1f°", s.Start.X, s.Start.Y, s.StartDirection()),
			fmt.Sprintf("end:   x=%.3f y=%.3f dir=%.1f°", s.End.X, s.End.Y, s.Direction()),
			fmt.Sprintf("lines: %d", len(m.data.Segment(line.Segment))),
		)
		if !s.Finite() {
			meta = append(meta, "geometry: non-finite")
		}
	} else {
		meta = append(meta,
			fmt.Sprintf("kind: %s", line.Kind),
			fmt.Sprintf("layer: %s", line.Layer),
			fmt.Sprintf("points: %d", len(line.Points)),
		)
	}
	meta = append(meta, "wkt: "+truncate(line.WKT(), 40))
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// hover tracks the mouse over the map and snaps to the nearest vertex.
func (m *Model) hover(x, y int) {
	ox, oy, w, h := m.mapRect()
	cx, cy := x-ox, y-oy
	if cx < 0 || cx >= w || cy < 0 || cy >= h {
		m.hovering = false
		return
	}
	p, ok := m.projection(w, h)
	if !ok {
		m.hovering = false
		return
	}
	m.hovering = true
	wx, wy := p.cellToWorld(cx, cy)
	m.hoverPos, m.hoverOK = [2]float64{wx, wy}, true
	m.hoverMicX, m.hoverMicY = cx*2, cy*4
	if _, at, ok := m.nearest(p, cx*2, cy*4); ok {
		m.hoverMicX, m.hoverMicY = at[0], at[1]
	}
}

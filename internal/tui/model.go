// Package tui is a terminal preview of track files. It draws the calculated
// track with braille characters and reloads it whenever the file changes.
package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"trackgen/internal/geom"
	"trackgen/internal/track"
)

// ReloadInterval is how often the open file is checked for changes.
// Non-positive values fall back to defaultReload.
var ReloadInterval = defaultReload

const (
	defaultReload = time.Second
	sidebarWidth  = 28
)

type tickMsg time.Time

func reloadEvery() time.Duration {
	if ReloadInterval <= 0 {
		return defaultReload
	}
	return ReloadInterval
}

func tick() tea.Cmd {
	return tea.Tick(reloadEvery(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string
	modTime time.Time

	// Data is the loaded file plus any pasted overlay.
	data    geom.Data
	layout  *track.Layout
	broken  []int
	overlay geom.Data

	// paste mode
	pasteMode bool
	ta        textarea.Model

	layers map[geom.Layer]bool

	inspectPopup string

	// hover state
	hovering  bool
	hoverMicX int
	hoverMicY int
	hoverPos  [2]float64
	hoverOK   bool

	// segment table
	showAttrs bool
	tbl       table.Model
}

// New returns a preview browsing dir.
func New(dir string) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "trackgen preview ready",
		cwd:         dir,
		layers: map[geom.Layer]bool{
			geom.LayerLanes:    true,
			geom.LayerMarkings: true,
			geom.LayerAreas:    true,
		},
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Tracks"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, ...). Enter overlays it on the track; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath opens path at launch and browses its directory.
func NewWithPath(dir, path string) Model {
	m := New(dir)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

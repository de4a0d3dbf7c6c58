package tui

import (
	"github.com/charmbracelet/lipgloss"

	"trackgen/internal/geom"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	hoverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))

	layerStyles = map[geom.Layer]lipgloss.Style{
		geom.LayerLanes:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F5F5")),
		geom.LayerMarkings: lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")),
		geom.LayerAreas:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563")),
	}
)

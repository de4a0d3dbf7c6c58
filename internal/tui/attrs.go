package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

// refreshAttrs fills the table with one row per segment of a track, or one
// row per line for plain geometry.
func (m *Model) refreshAttrs() {
	cols, rows := m.buildAttributes()
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "nothing to tabulate"
		return
	}
	// clear rows first so the table never sees rows wider than its columns
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

func (m *Model) buildAttributes() ([]table.Column, []table.Row) {
	if m.layout != nil {
		cols := []table.Column{
			{Title: "#", Width: 4},
			{Title: "kind", Width: 14},
			{Title: "start x", Width: 8},
			{Title: "start y", Width: 8},
			{Title: "start°", Width: 8},
			{Title: "end x", Width: 8},
			{Title: "end y", Width: 8},
			{Title: "end°", Width: 8},
		}
		rows := make([]table.Row, 0, len(m.layout.Segments))
		for i, s := range m.layout.Segments {
			rows = append(rows, table.Row{
				strconv.Itoa(i),
				string(s.Spec.Kind()),
				ff(s.Start.X), ff(s.Start.Y), ff(s.StartDirection()),
				ff(s.End.X), ff(s.End.Y), ff(s.Direction()),
			})
		}
		return cols, rows
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "layer", Width: 10},
		{Title: "kind", Width: 14},
		{Title: "points", Width: 8},
		{Title: "closed", Width: 8},
	}
	rows := make([]table.Row, 0, len(m.data.Lines))
	for i, l := range m.data.Lines {
		rows = append(rows, table.Row{
			strconv.Itoa(i),
			l.Layer.String(),
			l.Kind,
			strconv.Itoa(len(l.Points)),
			fmt.Sprint(l.Closed),
		})
	}
	return cols, rows
}

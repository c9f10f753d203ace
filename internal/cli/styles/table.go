package styles

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	// nothing is selectable in printed output
	s.Selected = s.Cell.Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// WindowStateColumns returns columns for the saved geometry table.
func WindowStateColumns() []table.Column {
	return []table.Column{
		{Title: "Key", Width: 24},
		{Title: "Size", Width: 12},
		{Title: "Position", Width: 14},
		{Title: "Updated", Width: 12},
	}
}

// WindowStateRow is one saved window geometry.
type WindowStateRow struct {
	Key       string
	Width     float64
	Height    float64
	X, Y      *float64
	UpdatedAt time.Time
}

// ToRow converts to table.Row.
func (w WindowStateRow) ToRow() table.Row {
	position := "-"
	if w.X != nil && w.Y != nil {
		position = formatCoord(*w.X) + "," + formatCoord(*w.Y)
	}
	updated := "-"
	if !w.UpdatedAt.IsZero() {
		updated = RelativeTime(w.UpdatedAt)
	}
	return table.Row{w.Key, formatCoord(w.Width) + "x" + formatCoord(w.Height), position, updated}
}

// RenderWindowStates renders rows as a static table sized to its content.
func RenderWindowStates(theme *Theme, rows []WindowStateRow) string {
	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, r.ToRow())
	}

	columns := WindowStateColumns()
	width := 0
	for _, c := range columns {
		width += c.Width + 2
	}
	// header takes two lines with its bottom border
	t := NewStyledTable(theme, columns, tableRows, width, len(tableRows)+2)
	return t.View()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

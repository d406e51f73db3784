package ui

import (
	"fmt"
	"strings"

	"github.com/nconklindev/tidy/internal/types"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxPreviewColWidth = 24
	missingMarker      = "NaN"
)

// RenderPreview shows the head of a table as a grid, with each column's
// inferred type listed underneath.
func RenderPreview(t *types.Table) string {
	if len(t.Columns) == 0 {
		return MutedStyle.Render("(no columns)")
	}

	cols := make([]table.Column, len(t.Columns))
	for i, name := range t.Columns {
		w := len(name)
		for _, row := range t.Rows {
			w = max(w, len(displayCell(row[i])))
		}
		cols[i] = table.Column{Title: name, Width: min(max(w, len(missingMarker)), maxPreviewColWidth)}
	}

	rows := make([]table.Row, len(t.Rows))
	for r, row := range t.Rows {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = displayCell(c)
		}
		rows[r] = cells
	}

	tbl := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)

	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle.Padding(0, 1)
	styles.Selected = lipgloss.NewStyle()
	tbl.SetStyles(styles)

	typeNames := make([]string, len(t.Columns))
	for i, name := range t.Columns {
		typeNames[i] = fmt.Sprintf("%s: %s", name, t.Types[i])
	}

	var s strings.Builder
	s.WriteString(tbl.View())
	s.WriteString("\n")
	s.WriteString(MutedStyle.Render(strings.Join(typeNames, " • ")))
	return s.String()
}

func displayCell(c types.Cell) string {
	if c.Missing {
		return missingMarker
	}
	return c.Value
}

package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/nconklindev/tidy/internal/converter"
	"github.com/nconklindev/tidy/internal/types"

	"github.com/charmbracelet/lipgloss"
)

const (
	barRune     = "█"
	minBarWidth = 10
)

// RenderChart draws a numeric projection as horizontal bars, one group per
// row and one bar per column, scaled to the largest absolute value shown.
func RenderChart(chart *types.Table, maxRows, width int) string {
	if chart == nil || len(chart.Columns) == 0 {
		return MutedStyle.Render("No numeric columns to chart")
	}

	rows := chart.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	values := make([][]float64, len(rows))
	present := make([][]bool, len(rows))
	maxAbs := 0.0
	valueWidth := 0

	for r, row := range rows {
		values[r] = make([]float64, len(row))
		present[r] = make([]bool, len(row))
		for c, cell := range row {
			if cell.Missing {
				continue
			}
			v, ok := converter.ParseNumber(cell.Value)
			if !ok {
				continue
			}
			values[r][c] = v
			present[r][c] = true
			if math.IsInf(v, 0) {
				continue
			}
			maxAbs = math.Max(maxAbs, math.Abs(v))
			valueWidth = max(valueWidth, len(converter.FormatNumber(v)))
		}
	}

	labelWidth := len(fmt.Sprintf("%d", len(rows)))
	barWidth := width - labelWidth - valueWidth - 4
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	var s strings.Builder

	legend := make([]string, len(chart.Columns))
	for i, name := range chart.Columns {
		legend[i] = seriesStyle(i).Render(barRune+" ") + name
	}
	s.WriteString(strings.Join(legend, "   "))
	s.WriteString("\n\n")

	for r := range rows {
		for c := range chart.Columns {
			label := strings.Repeat(" ", labelWidth)
			if c == 0 {
				label = fmt.Sprintf("%*d", labelWidth, r)
			}

			if !present[r][c] {
				s.WriteString(fmt.Sprintf("%s │ %s\n", label, MutedStyle.Render("missing")))
				continue
			}

			v := values[r][c]
			// Infinite values have no bar length on a finite scale.
			if math.IsInf(v, 0) {
				s.WriteString(fmt.Sprintf("%s │ %s\n", label, MutedStyle.Render(converter.FormatNumber(v))))
				continue
			}

			n := 0
			if maxAbs > 0 {
				n = int(math.Round(math.Abs(v) / maxAbs * float64(barWidth)))
			}

			style := seriesStyle(c)
			if v < 0 {
				style = NegativeStyle
			}

			s.WriteString(fmt.Sprintf("%s │%s %s\n", label, style.Render(strings.Repeat(barRune, n)), converter.FormatNumber(v)))
		}
	}

	if hidden := len(chart.Rows) - len(rows); hidden > 0 {
		s.WriteString(MutedStyle.Render(fmt.Sprintf("… %d more rows", hidden)))
		s.WriteString("\n")
	}

	return s.String()
}

func seriesStyle(i int) lipgloss.Style {
	return SeriesStyles[i%len(SeriesStyles)]
}

package converter

import "github.com/nconklindev/tidy/internal/types"

// ChartColumnLimit caps how many numeric columns go into a chart projection.
const ChartColumnLimit = 2

// NumericPreview projects t onto its first two numeric columns, keeping row
// order. It returns false when t has no numeric column.
func NumericPreview(t *types.Table) (*types.Table, bool) {
	cols := t.NumericColumns()
	if len(cols) == 0 {
		return nil, false
	}
	if len(cols) > ChartColumnLimit {
		cols = cols[:ChartColumnLimit]
	}

	out := &types.Table{
		Columns: make([]string, len(cols)),
		Types:   make([]types.ColumnType, len(cols)),
		Rows:    make([][]types.Cell, len(t.Rows)),
	}
	for i, col := range cols {
		out.Columns[i] = t.Columns[col]
		out.Types[i] = t.Types[col]
	}
	for r, row := range t.Rows {
		projected := make([]types.Cell, len(cols))
		for i, col := range cols {
			projected[i] = row[col]
		}
		out.Rows[r] = projected
	}

	return out, true
}

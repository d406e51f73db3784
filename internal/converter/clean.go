package converter

import (
	"math"
	"strconv"
	"strings"

	"github.com/nconklindev/tidy/internal/types"
)

// RemoveDuplicates keeps the first occurrence of every distinct row, in the
// original order. Numeric cells compare by value, so "30" and "30.0" match.
func RemoveDuplicates(t *types.Table) *types.Table {
	out := &types.Table{
		Columns: append([]string(nil), t.Columns...),
		Types:   append([]types.ColumnType(nil), t.Types...),
		Rows:    make([][]types.Cell, 0, len(t.Rows)),
	}

	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		key := rowKey(t.Types, row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Rows = append(out.Rows, append([]types.Cell(nil), row...))
	}

	return out
}

// rowKey encodes a row so that equal rows, and only equal rows, share a key.
// Each cell is length-prefixed so separators inside values cannot collide.
func rowKey(colTypes []types.ColumnType, row []types.Cell) string {
	var b strings.Builder
	for i, c := range row {
		if c.Missing {
			b.WriteString("-|")
			continue
		}

		val := c.Value
		if i < len(colTypes) && colTypes[i] == types.Numeric {
			if f, ok := ParseNumber(val); ok {
				val = strconv.FormatFloat(f, 'g', -1, 64)
			}
		}

		b.WriteString(strconv.Itoa(len(val)))
		b.WriteByte(':')
		b.WriteString(val)
		b.WriteByte('|')
	}
	return b.String()
}

// FillMissingNumeric replaces missing cells of every numeric column with the
// mean of that column's values. Columns without any value, or whose mean is
// undefined, keep their gaps.
// Other columns are left alone.
func FillMissingNumeric(t *types.Table) *types.Table {
	out := t.Clone()

	for _, col := range out.NumericColumns() {
		mean, ok := columnMean(out.Rows, col)
		if !ok {
			continue
		}

		fill := types.Cell{Value: FormatNumber(mean)}
		for _, row := range out.Rows {
			if row[col].Missing {
				row[col] = fill
			}
		}
	}

	return out
}

func columnMean(rows [][]types.Cell, col int) (float64, bool) {
	var sum float64
	n := 0

	for _, row := range rows {
		if row[col].Missing {
			continue
		}
		if val, ok := ParseNumber(row[col].Value); ok {
			sum += val
			n++
		}
	}

	if n == 0 {
		return 0, false
	}
	// inf and -inf together have no mean.
	mean := sum / float64(n)
	if math.IsNaN(mean) {
		return 0, false
	}
	return mean, true
}

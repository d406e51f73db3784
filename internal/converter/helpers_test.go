package converter

import (
	"testing"

	"github.com/nconklindev/tidy/internal/types"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const peopleCSV = "name,age\nAlice,30\nBob,\nAlice,30\n"

func mustLoadCSV(t *testing.T, data string) *types.Table {
	t.Helper()
	table, err := Load([]byte(data), "csv")
	require.NoError(t, err)
	return table
}

// buildXLSX writes rows into the first sheet of a new workbook. nil values
// leave the cell empty.
func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func values(table *types.Table) [][]string {
	out := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		out[i] = types.Strings(row)
	}
	return out
}

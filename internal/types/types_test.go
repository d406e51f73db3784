package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() *Table {
	return &Table{
		Columns: []string{"name", "age"},
		Types:   []ColumnType{Text, Numeric},
		Rows: [][]Cell{
			{{Value: "Alice"}, {Value: "30"}},
			{{Value: "Bob"}, MissingCell()},
			{{Value: "Carol"}, {Value: "41"}},
		},
	}
}

func TestTable_Lookups(t *testing.T) {
	table := sample()

	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, []int{1}, table.NumericColumns())
	assert.Equal(t, 1, table.MissingCount())
}

func TestTable_CloneIsIndependent(t *testing.T) {
	table := sample()
	clone := table.Clone()

	clone.Rows[0][0] = Cell{Value: "changed"}
	clone.Columns[0] = "changed"
	clone.Types[0] = Numeric

	assert.Equal(t, "Alice", table.Rows[0][0].Value)
	assert.Equal(t, "name", table.Columns[0])
	assert.Equal(t, Text, table.Types[0])
}

func TestTable_Head(t *testing.T) {
	table := sample()

	assert.Equal(t, 2, table.Head(2).NumRows())
	assert.Equal(t, 3, table.Head(10).NumRows())
	assert.Equal(t, 0, table.Head(0).NumRows())
	assert.Equal(t, 3, table.NumRows())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input  string
		want   Format
		wantOK bool
	}{
		{"csv", FormatCSV, true},
		{"CSV", FormatCSV, true},
		{"xlsx", FormatXLSX, true},
		{"Excel", FormatXLSX, true},
		{"spreadsheet", FormatXLSX, true},
		{"json", FormatCSV, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFormat(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Metadata(t *testing.T) {
	assert.Equal(t, ".csv", FormatCSV.Extension())
	assert.Equal(t, ".xlsx", FormatXLSX.Extension())
	assert.Equal(t, "text/csv", FormatCSV.MIMEType())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatXLSX.MIMEType())
}

func TestColumnType_String(t *testing.T) {
	assert.Equal(t, "numeric", Numeric.String())
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "datetime", Datetime.String())
	assert.Equal(t, "boolean", Boolean.String())
	assert.Equal(t, "unknown", ColumnType(9).String())
}

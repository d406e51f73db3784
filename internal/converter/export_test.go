package converter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/tidy/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		target   types.Format
		expected string
	}{
		{"CSV to XLSX", "data.csv", types.FormatXLSX, "data.xlsx"},
		{"XLSX to CSV", "data.xlsx", types.FormatCSV, "data.csv"},
		{"Same format", "data.csv", types.FormatCSV, "data.csv"},
		{"Only last extension changes", "report.v2.csv", types.FormatXLSX, "report.v2.xlsx"},
		{"Extension text inside name", "csvfile.csv", types.FormatXLSX, "csvfile.xlsx"},
		{"No extension", "noext", types.FormatCSV, "noext.csv"},
		{"Directory is dropped", filepath.Join("some", "dir", "a.CSV"), types.FormatXLSX, "a.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputName(tt.original, tt.target)
			if got != tt.expected {
				t.Errorf("OutputName(%q, %s) = %s; want %s", tt.original, tt.target, got, tt.expected)
			}
		})
	}
}

func TestExport_CSV(t *testing.T) {
	table := FillMissingNumeric(RemoveDuplicates(mustLoadCSV(t, peopleCSV)))

	res, err := Export(table, types.FormatCSV, "people.csv")
	require.NoError(t, err)

	assert.Equal(t, "people.csv", res.Filename)
	assert.Equal(t, "text/csv", res.MIMEType)
	assert.Equal(t, "name,age\nAlice,30\nBob,30\n", string(res.Data))
}

func TestExport_CSVKeepsMissingEmpty(t *testing.T) {
	res, err := Export(mustLoadCSV(t, peopleCSV), types.FormatCSV, "people.csv")
	require.NoError(t, err)
	assert.Equal(t, "name,age\nAlice,30\nBob,\nAlice,30\n", string(res.Data))
}

func TestExport_XLSXScenario(t *testing.T) {
	table := FillMissingNumeric(RemoveDuplicates(mustLoadCSV(t, peopleCSV)))

	res, err := Export(table, types.FormatXLSX, "people.csv")
	require.NoError(t, err)

	assert.Equal(t, "people.xlsx", res.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", res.MIMEType)

	reloaded, err := Load(res.Data, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, reloaded.Columns)
	assert.Equal(t, [][]string{{"Alice", "30"}, {"Bob", "30"}}, values(reloaded))
}

func TestExport_RoundTrip(t *testing.T) {
	input := "id,name,amount,when,note\n" +
		"1,Alice,2.5,2024-01-02,\"hello, world\"\n" +
		"2,Bob,,2024-02-03,\"say \"\"hi\"\"\"\n" +
		"3,,-4,2024-03-04,\"two\nlines\"\n" +
		"4,Dora,1000000,,plain\n"
	table := mustLoadCSV(t, input)

	for _, format := range []types.Format{types.FormatCSV, types.FormatXLSX} {
		t.Run(format.String(), func(t *testing.T) {
			res, err := Export(table, format, "input.csv")
			require.NoError(t, err)

			reloaded, err := Load(res.Data, format.String())
			require.NoError(t, err)

			assert.Equal(t, table.Columns, reloaded.Columns)
			assert.Equal(t, table.Types, reloaded.Types)
			require.Equal(t, table.NumRows(), reloaded.NumRows())

			for r := range table.Rows {
				for c := range table.Columns {
					want, got := table.Rows[r][c], reloaded.Rows[r][c]
					assert.Equal(t, want.Missing, got.Missing, "row %d col %d", r, c)
					if table.Types[c] == types.Numeric && !want.Missing {
						wv, _ := ParseNumber(want.Value)
						gv, ok := ParseNumber(got.Value)
						require.True(t, ok)
						assert.InDelta(t, wv, gv, 1e-9)
						continue
					}
					assert.Equal(t, want.Value, got.Value, "row %d col %d", r, c)
				}
			}
		})
	}
}

func TestExport_XLSXKeepsNonNumericLiterals(t *testing.T) {
	table := mustLoadCSV(t, "code,x\n1_000,inf\n0x1p4,2\n")
	require.Equal(t, types.Text, table.Types[0])
	require.Equal(t, types.Numeric, table.Types[1])

	res, err := Export(table, types.FormatXLSX, "codes.csv")
	require.NoError(t, err)

	reloaded, err := Load(res.Data, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1_000", "inf"}, {"0x1p4", "2"}}, values(reloaded))
}

func TestExport_XLSXBooleans(t *testing.T) {
	table := mustLoadCSV(t, "flag\ntrue\nfalse\n\n")

	res, err := Export(table, types.FormatXLSX, "flags.csv")
	require.NoError(t, err)

	reloaded, err := Load(res.Data, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, []types.ColumnType{types.Boolean}, reloaded.Types)
	assert.Equal(t, [][]string{{"TRUE"}, {"FALSE"}}, values(reloaded))
}

func TestExport_CSVIsDeterministic(t *testing.T) {
	table := mustLoadCSV(t, peopleCSV)

	first, err := Export(table, types.FormatCSV, "a.csv")
	require.NoError(t, err)
	second, err := Export(table, types.FormatCSV, "a.csv")
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(mustLoadCSV(t, peopleCSV), types.Format(42), "a.csv")

	var serr *SerializationError
	require.True(t, errors.As(err, &serr), "got %v", err)
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()
	res := &types.ExportResult{Data: []byte("a\n1\n"), Filename: "out.csv", MIMEType: types.MIMECSV}
	dest := filepath.Join(dir, "out.csv")

	require.NoError(t, WriteExport(dest, res))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteExport_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	res := &types.ExportResult{Data: []byte("a\n"), Filename: "out.csv", MIMEType: types.MIMECSV}

	err := WriteExport(filepath.Join(dir, "out.csv"), res)

	var serr *SerializationError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.NoFileExists(t, filepath.Join(dir, "out.csv"))
}

func TestExportPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(input, []byte("a\n1\n"), 0o644))
	taken := filepath.Join(dir, "data_cleaned.csv")
	require.NoError(t, os.WriteFile(taken, []byte("a\n1\n"), 0o644))

	tests := []struct {
		name     string
		dir      string
		filename string
		inputs   []string
		expected string
	}{
		{"Different format", dir, "data.xlsx", []string{input}, filepath.Join(dir, "data.xlsx")},
		{"Same file gets a suffix", dir, "data.csv", []string{input}, filepath.Join(dir, "data_cleaned.csv")},
		{"Relative input", dir, "data.csv", []string{relativeTo(t, input)}, filepath.Join(dir, "data_cleaned.csv")},
		{"Other directory", t.TempDir(), "data.csv", []string{input}, ""},
		{"Suffixed name is also an input", dir, "data.csv", []string{input, taken}, filepath.Join(dir, "data_cleaned_cleaned.csv")},
		{"No inputs", dir, "data.csv", nil, input},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.expected
			if want == "" {
				want = filepath.Join(tt.dir, tt.filename)
			}
			assert.Equal(t, want, ExportPath(tt.dir, tt.filename, tt.inputs...))
		})
	}
}

func relativeTo(t *testing.T, path string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, path)
	require.NoError(t, err)
	return rel
}

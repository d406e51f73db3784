package converter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/tidy/internal/types"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the name of the single sheet written to spreadsheet exports.
const DefaultSheet = "Sheet1"

// OutputName swaps the final extension of original for the target's one.
func OutputName(original string, target types.Format) string {
	base := filepath.Base(original)
	if base == "." || base == string(filepath.Separator) {
		base = "export"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + target.Extension()
}

// Export serializes t in the target format. No index column is written.
func Export(t *types.Table, target types.Format, originalFilename string) (*types.ExportResult, error) {
	name := OutputName(originalFilename, target)

	var (
		data []byte
		err  error
	)
	switch target {
	case types.FormatCSV:
		data, err = writeCSV(t)
	case types.FormatXLSX:
		data, err = writeXLSX(t)
	default:
		err = fmt.Errorf("unknown target format %d", target)
	}
	if err != nil {
		return nil, &SerializationError{Filename: name, Format: target.String(), Err: err}
	}

	return &types.ExportResult{
		Data:     data,
		Filename: name,
		MIMEType: target.MIMEType(),
	}, nil
}

func writeCSV(t *types.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(t.Columns); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if err := writer.Write(types.Strings(row)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeXLSX(t *types.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(DefaultSheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, xlsxValues(t.Types, row)); err != nil {
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// xlsxValues maps cells to native spreadsheet values: numbers and booleans
// keep their type, missing cells stay empty, everything else is text.
func xlsxValues(colTypes []types.ColumnType, row []types.Cell) []interface{} {
	values := make([]interface{}, len(row))
	for i, c := range row {
		if c.Missing {
			continue
		}

		switch colTypes[i] {
		case types.Numeric:
			// Spreadsheet cells cannot hold infinities, so those stay text.
			if f, ok := ParseNumber(c.Value); ok && !math.IsInf(f, 0) {
				values[i] = f
				continue
			}
		case types.Boolean:
			if b, ok := ParseBool(c.Value); ok {
				values[i] = b
				continue
			}
		}
		values[i] = c.Value
	}
	return values
}

// ExportPath returns where an export called filename is written in dir.
// A destination that is one of inputs gets "_cleaned" before its extension,
// so an export never replaces the file it was read from.
func ExportPath(dir, filename string, inputs ...string) string {
	dest := filepath.Join(dir, filename)
	for _, in := range inputs {
		if samePath(dest, in) {
			ext := filepath.Ext(filename)
			return ExportPath(dir, strings.TrimSuffix(filename, ext)+"_cleaned"+ext, inputs...)
		}
	}
	return dest
}

func samePath(a, b string) bool {
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// WriteExport stores an export at dest. The file is written under a temporary
// name in the same directory and renamed into place, so a failed write leaves
// nothing behind.
func WriteExport(dest string, res *types.ExportResult) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tidy-*")
	if err != nil {
		return &SerializationError{Filename: res.Filename, Format: Extension(res.Filename), Err: err}
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &SerializationError{Filename: res.Filename, Format: Extension(res.Filename), Err: err}
	}

	if _, err := tmp.Write(res.Data); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fail(err)
	}

	return nil
}

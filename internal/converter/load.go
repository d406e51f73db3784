package converter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nconklindev/tidy/internal/types"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Extension returns the lowercased extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Load parses data as a table of the declared kind ("csv" or "xlsx").
func Load(data []byte, ext string) (*types.Table, error) {
	return load("", data, ext)
}

// LoadUpload parses an upload, taking the kind from its filename.
func LoadUpload(up types.Upload) (*types.Table, error) {
	return load(up.Name, up.Data, Extension(up.Name))
}

func load(name string, data []byte, ext string) (*types.Table, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		header, rows, err = readCSVData(data)
	case "xlsx":
		header, rows, err = readXLSXData(data)
	default:
		return nil, &UnsupportedFormatError{Filename: name, Extension: ext}
	}
	if err != nil {
		return nil, &ParseError{Filename: name, Err: err}
	}

	return buildTable(header, rows), nil
}

func readCSVData(data []byte) ([]string, [][]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, errors.New("empty file")
	}

	// Strips a UTF-8 BOM, decodes UTF-16 when it has one, and replaces invalid UTF-8.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(bytes.NewReader(data), decoder))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("empty file")
	}
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}

func readXLSXData(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}

	if len(all) == 0 {
		return nil, nil, errors.New("empty file")
	}

	header := all[0]
	var rows [][]string
	for _, row := range all[1:] {
		if isBlankRow(row) {
			continue
		}
		// Cells past the header become unnamed columns.
		for len(header) < len(row) {
			header = append(header, "")
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func buildTable(header []string, records [][]string) *types.Table {
	columns := normalizeHeaders(header)

	rows := make([][]types.Cell, len(records))
	for i, record := range records {
		row := make([]types.Cell, len(columns))
		for j := range columns {
			if j < len(record) {
				row[j] = NewCell(record[j])
			} else {
				row[j] = types.MissingCell()
			}
		}
		rows[i] = row
	}

	return &types.Table{
		Columns: columns,
		Types:   InferTypes(columns, rows),
		Rows:    rows,
	}
}

// normalizeHeaders names blank headers "Unnamed: <i>" and makes repeats
// unique as name.1, name.2, ...
func normalizeHeaders(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		base := name
		for used[name] {
			counts[base]++
			name = base + "." + strconv.Itoa(counts[base])
		}

		used[name] = true
		out[i] = name
	}

	return out
}

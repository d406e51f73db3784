package types

import "strings"

type ColumnType int

const (
	Numeric ColumnType = iota
	Text
	Datetime
	Boolean
)

func (c ColumnType) String() string {
	switch c {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	case Datetime:
		return "datetime"
	case Boolean:
		return "boolean"
	}
	return "unknown"
}

// Cell is a single value. A missing cell always has an empty Value.
type Cell struct {
	Value   string
	Missing bool
}

// MissingCell returns the empty marker used for absent values.
func MissingCell() Cell {
	return Cell{Missing: true}
}

// Table is treated as an immutable value: operations that change cells
// return a new Table and leave the receiver untouched.
type Table struct {
	Columns []string
	Types   []ColumnType
	Rows    [][]Cell
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumericColumns returns the indices of all numeric columns in column order.
func (t *Table) NumericColumns() []int {
	var idx []int
	for i, ct := range t.Types {
		if ct == Numeric {
			idx = append(idx, i)
		}
	}
	return idx
}

// MissingCount counts missing cells across the whole table.
func (t *Table) MissingCount() int {
	n := 0
	for _, row := range t.Rows {
		for _, c := range row {
			if c.Missing {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy that shares no slices with t.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Types:   append([]ColumnType(nil), t.Types...),
		Rows:    make([][]Cell, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}

// Head returns a copy holding at most the first n rows.
func (t *Table) Head(n int) *Table {
	out := t.Clone()
	if n >= 0 && n < len(out.Rows) {
		out.Rows = out.Rows[:n]
	}
	return out
}

// Strings renders a row as plain text, missing cells as "".
func Strings(row []Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Value
	}
	return out
}

type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

const (
	MIMECSV  = "text/csv"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (f Format) String() string {
	if f == FormatXLSX {
		return "xlsx"
	}
	return "csv"
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

func (f Format) MIMEType() string {
	if f == FormatXLSX {
		return MIMEXLSX
	}
	return MIMECSV
}

// ParseFormat maps a user supplied format name onto a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, true
	case "xlsx", "excel", "spreadsheet":
		return FormatXLSX, true
	}
	return FormatCSV, false
}

// Upload is one file handed to the pipeline: its name and whole contents.
type Upload struct {
	Name string
	Data []byte
}

// FileOptions holds the per-file choices made by the user.
type FileOptions struct {
	RemoveDuplicates bool
	FillMissing      bool
	ShowChart        bool
	Export           bool
	Target           Format
	PreviewRows      int
}

type ExportResult struct {
	Data     []byte
	Filename string
	MIMEType string
}

type ProcessResult struct {
	InputFile         string
	Loaded            *Table
	Cleaned           *Table
	Preview           *Table
	Chart             *Table
	Export            *ExportResult
	DuplicatesRemoved int
	CellsFilled       int
}

// FileOutcome pairs an upload with whatever its pass produced.
type FileOutcome struct {
	Name   string
	Result *ProcessResult
	Err    error
}

package converter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nconklindev/tidy/internal/types"
)

// missingMarkers are the cell spellings read as "no value".
var missingMarkers = map[string]bool{
	"":         true,
	"NA":       true,
	"N/A":      true,
	"n/a":      true,
	"NaN":      true,
	"nan":      true,
	"-NaN":     true,
	"-nan":     true,
	"NULL":     true,
	"null":     true,
	"None":     true,
	"#N/A":     true,
	"#NA":      true,
	"<NA>":     true,
	"#N/A N/A": true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"01-02-06",
	"1-2-06",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// IsMissing reports whether a raw cell should be read as a missing value.
func IsMissing(s string) bool {
	return missingMarkers[strings.TrimSpace(s)]
}

// NewCell builds a Cell from raw text, normalizing missing markers.
func NewCell(s string) types.Cell {
	if IsMissing(s) {
		return types.MissingCell()
	}
	return types.Cell{Value: s}
}

// ParseNumber parses a cell as a float. NaN is never returned as a number,
// and Go-only literal forms (digit separators, hex) are read as text.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "_") {
		return 0, false
	}

	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) {
		return 0, false
	}

	return val, true
}

// ParseBool accepts true/false in any case.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// IsDatetime checks a cell against the known date and timestamp layouts.
func IsDatetime(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// FormatNumber renders a float with the shortest representation that round-trips.
// Infinities are written as inf and -inf.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// InferTypes looks at every non-missing cell of each column and picks the
// narrowest type that fits all of them. A column with no values is numeric.
func InferTypes(columns []string, rows [][]types.Cell) []types.ColumnType {
	out := make([]types.ColumnType, len(columns))

	for i := range columns {
		numeric, boolean, datetime := true, true, true
		seen := 0

		for _, row := range rows {
			if i >= len(row) || row[i].Missing {
				continue
			}
			seen++
			val := row[i].Value

			if numeric {
				if _, ok := ParseNumber(val); !ok {
					numeric = false
				}
			}
			if boolean {
				if _, ok := ParseBool(val); !ok {
					boolean = false
				}
			}
			if datetime && !IsDatetime(val) {
				datetime = false
			}

			if !numeric && !boolean && !datetime {
				break
			}
		}

		switch {
		case seen == 0 || numeric:
			out[i] = types.Numeric
		case boolean:
			out[i] = types.Boolean
		case datetime:
			out[i] = types.Datetime
		default:
			out[i] = types.Text
		}
	}

	return out
}

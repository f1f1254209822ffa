package schema

import (
	"strings"
	"time"

	api "tapcsv/pkg/api/schema"
	"tapcsv/pkg/numeric"
)

// DefaultSampleSize is the number of data rows inspected when inferring types.
const DefaultSampleSize = 100

// Infer chooses a type for every header column from sample rows. Rows whose
// width differs from the header are ignored. A column without any non-blank
// sample value is a string.
func Infer(header []string, samples [][]string, f numeric.Format) []api.Column {
	types := make([]api.ColumnType, len(header))
	for _, row := range samples {
		if len(row) != len(header) {
			continue
		}
		for i, raw := range row {
			types[i] = widen(types[i], classify(raw, f))
		}
	}

	columns := make([]api.Column, len(header))
	for i, name := range header {
		t := types[i]
		if t == api.ColumnTypeNone {
			t = api.ColumnTypeString
		}
		columns[i] = api.Column{Name: name, Type: t}
	}
	return columns
}

// Strings types every header column as string.
func Strings(header []string) []api.Column {
	columns := make([]api.Column, len(header))
	for i, name := range header {
		columns[i] = api.Column{Name: name, Type: api.ColumnTypeString}
	}
	return columns
}

// classify returns the narrowest type raw can be read as, or ColumnTypeNone
// for a blank field.
func classify(raw string, f numeric.Format) api.ColumnType {
	s := strings.TrimSpace(raw)
	if s == "" {
		return api.ColumnTypeNone
	}
	if strings.EqualFold(s, "true") || strings.EqualFold(s, "false") {
		return api.ColumnTypeBoolean
	}
	if zeroPadded(s) {
		return api.ColumnTypeString
	}
	if d, err := numeric.ParseDecimal(s, f); err == nil {
		if d.IsInteger() {
			return api.ColumnTypeInteger
		}
		return api.ColumnTypeNumber
	}
	if _, err := time.Parse(dateLayout, s); err == nil {
		return api.ColumnTypeDate
	}
	if _, err := parseDateTime(s); err == nil {
		return api.ColumnTypeDateTime
	}
	return api.ColumnTypeString
}

// zeroPadded reports codes such as 00501 or -007 whose leading zeros a
// number would drop.
func zeroPadded(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

// widen returns the narrowest type that holds values of both a and b.
func widen(a, b api.ColumnType) api.ColumnType {
	switch {
	case a == b:
		return a
	case a == api.ColumnTypeNone:
		return b
	case b == api.ColumnTypeNone:
		return a
	case isNumeric(a) && isNumeric(b):
		return api.ColumnTypeNumber
	case isTemporal(a) && isTemporal(b):
		return api.ColumnTypeDateTime
	}
	return api.ColumnTypeString
}

func isNumeric(t api.ColumnType) bool {
	return t == api.ColumnTypeInteger || t == api.ColumnTypeNumber
}

func isTemporal(t api.ColumnType) bool {
	return t == api.ColumnTypeDate || t == api.ColumnTypeDateTime
}

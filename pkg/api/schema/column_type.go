package schema

import (
	"fmt"
	"strings"
)

// ColumnType is the JSON type a CSV column is emitted as.
type ColumnType int

const (
	ColumnTypeNone ColumnType = iota
	ColumnTypeString
	ColumnTypeInteger
	ColumnTypeNumber
	ColumnTypeBoolean
	ColumnTypeDate
	ColumnTypeDateTime
)

var _ fmt.Stringer = (*ColumnType)(nil)

// String returns the name used in configuration and catalog documents.
func (t ColumnType) String() string {
	switch t {
	case ColumnTypeString:
		return "string"
	case ColumnTypeInteger:
		return "integer"
	case ColumnTypeNumber:
		return "number"
	case ColumnTypeBoolean:
		return "boolean"
	case ColumnTypeDate:
		return "date"
	case ColumnTypeDateTime:
		return "date-time"
	default:
		return ""
	}
}

// ParseColumnType parses a configured type name. Unknown names yield ColumnTypeNone.
func ParseColumnType(s string) ColumnType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str", "text":
		return ColumnTypeString
	case "integer", "int":
		return ColumnTypeInteger
	case "number", "float", "decimal":
		return ColumnTypeNumber
	case "boolean", "bool":
		return ColumnTypeBoolean
	case "date":
		return ColumnTypeDate
	case "date-time", "datetime", "timestamp":
		return ColumnTypeDateTime
	}
	return ColumnTypeNone
}

// Column is one header entry of a stream together with its type.
type Column struct {
	Name string
	Type ColumnType
}

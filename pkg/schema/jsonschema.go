package schema

import (
	api "tapcsv/pkg/api/schema"
	"tapcsv/pkg/singer"
)

// Property returns the nullable JSON schema of a column type.
func Property(t api.ColumnType) singer.Property {
	switch t {
	case api.ColumnTypeInteger:
		return singer.Property{Type: singer.TypeList{"integer", "null"}}
	case api.ColumnTypeNumber:
		return singer.Property{Type: singer.TypeList{"number", "null"}}
	case api.ColumnTypeBoolean:
		return singer.Property{Type: singer.TypeList{"boolean", "null"}}
	case api.ColumnTypeDate:
		return singer.Property{Type: singer.TypeList{"string", "null"}, Format: "date"}
	case api.ColumnTypeDateTime:
		return singer.Property{Type: singer.TypeList{"string", "null"}, Format: "date-time"}
	default:
		return singer.Property{Type: singer.TypeList{"string", "null"}}
	}
}

// Build returns the record schema of columns.
func Build(columns []api.Column) *singer.Schema {
	props := make(map[string]singer.Property, len(columns))
	for _, c := range columns {
		props[c.Name] = Property(c.Type)
	}
	return singer.NewObjectSchema(props)
}

package singer

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Schema is the JSON schema of a stream's records.
type Schema struct {
	Type       TypeList            `json:"type"`
	Properties map[string]Property `json:"properties"`
}

// Property is the JSON schema of a single record field.
type Property struct {
	Type   TypeList `json:"type"`
	Format string   `json:"format,omitempty"`
}

// TypeList is a JSON schema "type" keyword. It decodes from a single name or
// a list of names.
type TypeList []string

// MarshalJSON writes a single type as a plain string.
func (t TypeList) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TypeList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = TypeList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

// NewObjectSchema returns an object schema over props.
func NewObjectSchema(props map[string]Property) *Schema {
	return &Schema{Type: TypeList{"object"}, Properties: props}
}

// Project returns a copy of s restricted to the properties for which keep
// returns true.
func (s *Schema) Project(keep func(name string) bool) *Schema {
	out := &Schema{Type: s.Type, Properties: make(map[string]Property, len(s.Properties))}
	for name, p := range s.Properties {
		if keep(name) {
			out.Properties[name] = p
		}
	}
	return out
}

package singer

import "github.com/goccy/go-json"

// MessageType discriminates Singer messages.
type MessageType string

const (
	TypeSchema MessageType = "SCHEMA"
	TypeRecord MessageType = "RECORD"
	TypeState  MessageType = "STATE"
)

// SchemaMessage announces the schema of the records that follow.
type SchemaMessage struct {
	Type          MessageType `json:"type"`
	Stream        string      `json:"stream"`
	Schema        *Schema     `json:"schema"`
	KeyProperties []string    `json:"key_properties"`
}

// RecordMessage carries one record.
type RecordMessage struct {
	Type          MessageType `json:"type"`
	Stream        string      `json:"stream"`
	Record        any         `json:"record"`
	TimeExtracted string      `json:"time_extracted,omitempty"`
}

// StateMessage carries the state document to persist.
type StateMessage struct {
	Type  MessageType     `json:"type"`
	Value json.RawMessage `json:"value"`
}

package parsers

import (
	"bytes"
	"context"

	"github.com/goccy/go-json"
)

// RecordParser turns rows of a CSV stream into typed records.
type RecordParser interface {
	// ReadRecord returns the next record, io.EOF when the stream is exhausted,
	// or a row-level error after which reading may continue.
	ReadRecord(ctx context.Context) (Record, error)

	// Columns returns the emitted column names in record order.
	Columns() []string
}

// Record is one typed CSV row. Keys keep header order.
type Record struct {
	keys   []string
	values []any
}

// NewRecord builds a record from parallel key and value slices.
func NewRecord(keys []string, values []any) Record {
	return Record{keys: keys, values: values}
}

// Keys returns the field names in order.
func (r Record) Keys() []string { return r.keys }

// Project returns a record restricted to the keys for which keep returns true.
func (r Record) Project(keep func(key string) bool) Record {
	out := Record{}
	for i, k := range r.keys {
		if keep(k) {
			out.keys = append(out.keys, k)
			out.values = append(out.values, r.values[i])
		}
	}
	return out
}

// MarshalJSON encodes the record as an object with keys in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

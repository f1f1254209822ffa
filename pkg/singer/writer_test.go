package singer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestWriterMessages(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, WithClock(fixedClock))

	schema := NewObjectSchema(map[string]Property{
		"id": {Type: TypeList{"string", "null"}},
	})
	require.NoError(t, w.WriteSchema("users", schema, nil))
	require.NoError(t, w.WriteRecord("users", map[string]any{"id": "1"}))
	state := NewState()
	require.NoError(t, state.SetBookmark("users", map[string]any{}))
	require.NoError(t, w.WriteState(state))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"type":"SCHEMA","stream":"users","key_properties":[],
		"schema":{"type":"object","properties":{"id":{"type":["string","null"]}}}}`, lines[0])
	assert.JSONEq(t, `{"type":"RECORD","stream":"users","record":{"id":"1"},
		"time_extracted":"2024-03-01T12:30:00Z"}`, lines[1])
	assert.JSONEq(t, `{"type":"STATE","value":{"bookmarks":{"users":{}}}}`, lines[2])
}

func TestWriterBuffersUntilFlush(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	require.NoError(t, w.WriteRecord("s", map[string]any{"a": 1}))
	assert.Zero(t, out.Len())
	require.NoError(t, w.Flush())
	assert.NotZero(t, out.Len())
}

func TestTypeListJSON(t *testing.T) {
	b, err := TypeList{"object"}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"object"`, string(b))

	var single, many TypeList
	require.NoError(t, single.UnmarshalJSON([]byte(`"string"`)))
	require.NoError(t, many.UnmarshalJSON([]byte(`["integer","null"]`)))
	assert.Equal(t, TypeList{"string"}, single)
	assert.Equal(t, TypeList{"integer", "null"}, many)
}

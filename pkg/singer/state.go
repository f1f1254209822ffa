package singer

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const bookmarksKey = "bookmarks"

// State is the opaque state document handed between runs. Keys this tap does
// not understand are preserved.
type State struct {
	raw []byte
}

// NewState returns an empty state document.
func NewState() *State {
	return &State{raw: []byte(`{}`)}
}

// ParseState wraps a state document. Empty input yields an empty state.
func ParseState(b []byte) (*State, error) {
	if len(strings.TrimSpace(string(b))) == 0 {
		return NewState(), nil
	}
	if !gjson.ValidBytes(b) || !gjson.ParseBytes(b).IsObject() {
		return nil, ErrInvalidState
	}
	// messages are line delimited, so the document must not span lines
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return &State{raw: buf.Bytes()}, nil
}

// LoadState reads a state file.
func LoadState(path string) (*State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state %q: %w", path, err)
	}
	return ParseState(b)
}

// Bookmark returns the bookmark stored for stream.
func (s *State) Bookmark(stream string) gjson.Result {
	var out gjson.Result
	bookmarks := gjson.GetBytes(s.Bytes(), bookmarksKey)
	if !bookmarks.IsObject() {
		return out
	}
	bookmarks.ForEach(func(key, value gjson.Result) bool {
		if key.String() == stream {
			out = value
			return false
		}
		return true
	})
	return out
}

// SetBookmark replaces the bookmark of stream with value. The stream name is
// always an object key, whatever characters it holds.
func (s *State) SetBookmark(stream string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	bookmarks := make(map[string]json.RawMessage)
	if cur := gjson.GetBytes(s.Bytes(), bookmarksKey); cur.IsObject() {
		if err := json.Unmarshal([]byte(cur.Raw), &bookmarks); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
	}
	bookmarks[stream] = b

	all, err := json.Marshal(bookmarks)
	if err != nil {
		return err
	}
	raw, err := sjson.SetRawBytes(s.Bytes(), bookmarksKey, all)
	if err != nil {
		return fmt.Errorf("failed to set bookmark for %q: %w", stream, err)
	}
	s.raw = raw
	return nil
}

// Bytes returns the state document.
func (s *State) Bytes() []byte {
	if s == nil || len(s.raw) == 0 {
		return []byte(`{}`)
	}
	return s.raw
}

// MarshalJSON implements json.Marshaler.
func (s *State) MarshalJSON() ([]byte, error) {
	return s.Bytes(), nil
}

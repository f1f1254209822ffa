package singer

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

const (
	InclusionAvailable   = "available"
	InclusionAutomatic   = "automatic"
	InclusionUnsupported = "unsupported"

	ReplicationFullTable = "FULL_TABLE"
)

// Catalog lists the streams a tap can produce.
type Catalog struct {
	Streams []*CatalogEntry `json:"streams"`
}

// CatalogEntry describes one stream.
type CatalogEntry struct {
	TapStreamID   string          `json:"tap_stream_id"`
	Stream        string          `json:"stream"`
	Schema        *Schema         `json:"schema"`
	KeyProperties []string        `json:"key_properties"`
	Metadata      []MetadataEntry `json:"metadata"`
	// Selected is the legacy stream level selection flag.
	Selected *bool `json:"selected,omitempty"`
}

// MetadataEntry attaches metadata to the node addressed by Breadcrumb.
// An empty breadcrumb addresses the stream itself.
type MetadataEntry struct {
	Breadcrumb []string `json:"breadcrumb"`
	Metadata   Metadata `json:"metadata"`
}

// Metadata holds the standard Singer metadata keys.
type Metadata struct {
	Inclusion               string   `json:"inclusion,omitempty"`
	Selected                *bool    `json:"selected,omitempty"`
	SelectedByDefault       *bool    `json:"selected-by-default,omitempty"`
	TableKeyProperties      []string `json:"table-key-properties,omitempty"`
	ForcedReplicationMethod string   `json:"forced-replication-method,omitempty"`
}

// NewCatalogEntry builds a selected entry with standard metadata for every property.
func NewCatalogEntry(stream string, schema *Schema, keyProperties []string, properties []string) *CatalogEntry {
	if keyProperties == nil {
		keyProperties = []string{}
	}
	selected := true
	entry := &CatalogEntry{
		TapStreamID:   stream,
		Stream:        stream,
		Schema:        schema,
		KeyProperties: keyProperties,
		Metadata: []MetadataEntry{{
			Breadcrumb: []string{},
			Metadata: Metadata{
				Inclusion:               InclusionAvailable,
				Selected:                &selected,
				SelectedByDefault:       &selected,
				TableKeyProperties:      keyProperties,
				ForcedReplicationMethod: ReplicationFullTable,
			},
		}},
	}

	keys := make(map[string]bool, len(keyProperties))
	for _, k := range keyProperties {
		keys[k] = true
	}
	for _, p := range properties {
		inclusion := InclusionAvailable
		if keys[p] {
			inclusion = InclusionAutomatic
		}
		entry.Metadata = append(entry.Metadata, MetadataEntry{
			Breadcrumb: []string{"properties", p},
			Metadata:   Metadata{Inclusion: inclusion, SelectedByDefault: &selected},
		})
	}
	return entry
}

// ReadCatalog decodes a catalog document.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &c, nil
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %q: %w", path, err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// Entry returns the entry with the given tap_stream_id, or nil.
func (c *Catalog) Entry(tapStreamID string) *CatalogEntry {
	if c == nil {
		return nil
	}
	for _, e := range c.Streams {
		if e.TapStreamID == tapStreamID {
			return e
		}
	}
	return nil
}

func (e *CatalogEntry) metadata(breadcrumb ...string) *Metadata {
	for i := range e.Metadata {
		m := &e.Metadata[i]
		if equalBreadcrumb(m.Breadcrumb, breadcrumb) {
			return &m.Metadata
		}
	}
	return nil
}

// IsSelected reports whether the stream was selected for sync.
func (e *CatalogEntry) IsSelected() bool {
	if e == nil {
		return false
	}
	if m := e.metadata(); m != nil {
		if m.Selected != nil {
			return *m.Selected
		}
		if e.Selected != nil {
			return *e.Selected
		}
		return m.SelectedByDefault != nil && *m.SelectedByDefault
	}
	return e.Selected != nil && *e.Selected
}

// PropertySelected reports whether a property stays in the synced records.
// Automatic properties are always kept; unmentioned properties default to kept.
func (e *CatalogEntry) PropertySelected(name string) bool {
	if e == nil {
		return true
	}
	m := e.metadata("properties", name)
	if m == nil {
		return true
	}
	switch m.Inclusion {
	case InclusionAutomatic:
		return true
	case InclusionUnsupported:
		return false
	}
	if m.Selected != nil {
		return *m.Selected
	}
	if m.SelectedByDefault != nil {
		return *m.SelectedByDefault
	}
	return true
}

func equalBreadcrumb(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

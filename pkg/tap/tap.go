// Package tap discovers CSV streams and reads them as Singer records.
package tap

import (
	"log/slog"
	"runtime"

	api "tapcsv/pkg/api/schema"
	"tapcsv/pkg/config"
	"tapcsv/pkg/csvparser"
	"tapcsv/pkg/singer"
)

// Tap reads the streams described by a Config.
type Tap struct {
	cfg         *config.Config
	log         *slog.Logger
	concurrency int
}

// Option configures a Tap
type Option func(*Tap)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(t *Tap) {
		if log != nil {
			t.log = log
		}
	}
}

// WithConcurrency bounds the number of streams discovered at once
func WithConcurrency(n int) Option {
	return func(t *Tap) {
		if n > 0 {
			t.concurrency = n
		}
	}
}

// New returns a Tap over cfg, which must come from config.Load or config.FromMap.
func New(cfg *config.Config, opts ...Option) *Tap {
	t := &Tap{
		cfg:         cfg,
		log:         slog.Default(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Stream is a discovered stream. Its columns and their order are fixed.
type Stream struct {
	Name          string
	Files         []string
	Header        []string
	Columns       []api.Column
	KeyProperties []string
	Schema        *singer.Schema

	file     *config.FileConfig
	metadata bool
}

// Properties returns the emitted property names in record order.
func (s *Stream) Properties() []string {
	props := make([]string, 0, len(s.Columns)+len(csvparser.MetadataColumns))
	for _, col := range s.Columns {
		props = append(props, col.Name)
	}
	if s.metadata {
		for _, col := range csvparser.MetadataColumns {
			props = append(props, col.Name)
		}
	}
	return props
}

// CatalogEntry describes s for discovery output.
func (s *Stream) CatalogEntry() *singer.CatalogEntry {
	return singer.NewCatalogEntry(s.Name, s.Schema, s.KeyProperties, s.Properties())
}

package tap

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"tapcsv/pkg/singer"
)

// Bookmark is stored under bookmarks.<stream> once a stream is complete.
type Bookmark struct {
	Files       []string `json:"files"`
	RecordCount int64    `json:"record_count"`
}

// SyncStats summarises one stream of a sync run.
type SyncStats struct {
	Stream   string
	Records  int64
	Duration time.Duration
}

// Sync discovers the streams and writes a SCHEMA message, the RECORD
// messages and a STATE message for each one. With a catalog only selected
// streams and properties are synced; a nil catalog syncs everything. state
// may be nil. Messages written before a failure are flushed.
func (t *Tap) Sync(ctx context.Context, w *singer.Writer, catalog *singer.Catalog, state *singer.State) (stats []SyncStats, err error) {
	defer func() {
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
	}()

	discovered, err := t.Discover(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = singer.NewState()
	}

	log := t.log.With("sync_id", uuid.NewString())
	for _, s := range discovered {
		var entry *singer.CatalogEntry
		if catalog != nil {
			entry = catalog.Entry(s.Name)
			if !entry.IsSelected() {
				log.InfoContext(ctx, "Skipping stream, not selected", "stream", s.Name)
				continue
			}
		}

		if prev := state.Bookmark(s.Name); prev.Exists() {
			log.DebugContext(ctx, "Previous sync bookmark found",
				"stream", s.Name,
				"record_count", prev.Get("record_count").Int(),
			)
		}

		st, err := t.syncStream(ctx, w, s, entry)
		if err != nil {
			return stats, fmt.Errorf("stream %s: %w", s.Name, err)
		}
		stats = append(stats, st)

		if err := state.SetBookmark(s.Name, Bookmark{Files: s.Files, RecordCount: st.Records}); err != nil {
			return stats, err
		}
		if err := w.WriteState(state); err != nil {
			return stats, err
		}
		log.InfoContext(ctx, "METRIC",
			"type", "counter",
			"metric", "record_count",
			"value", st.Records,
			"tags", map[string]string{"stream": s.Name},
		)
		log.InfoContext(ctx, "METRIC",
			"type", "timer",
			"metric", "sync_duration",
			"value", st.Duration.Seconds(),
			"tags", map[string]string{"stream": s.Name, "status": "succeeded"},
		)
	}
	return stats, nil
}

func (t *Tap) syncStream(ctx context.Context, w *singer.Writer, s *Stream, entry *singer.CatalogEntry) (SyncStats, error) {
	start := time.Now()
	keep := func(name string) bool {
		return slices.Contains(s.KeyProperties, name) || entry.PropertySelected(name)
	}

	if err := w.WriteSchema(s.Name, s.Schema.Project(keep), s.KeyProperties); err != nil {
		return SyncStats{}, err
	}

	var count int64
	for rec, err := range t.Read(ctx, s) {
		if err != nil {
			return SyncStats{}, err
		}
		if err := w.WriteRecord(s.Name, rec.Project(keep)); err != nil {
			return SyncStats{}, err
		}
		count++
	}
	return SyncStats{Stream: s.Name, Records: count, Duration: time.Since(start)}, nil
}

package tap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	apiStreams "tapcsv/pkg/api/streams"
	"tapcsv/pkg/config"
	"tapcsv/pkg/csvparser"
	"tapcsv/pkg/schema"
	"tapcsv/pkg/singer"
	"tapcsv/pkg/streams"
)

// Discover builds one Stream per configured file entry, in configuration
// order. Entries are inspected concurrently.
func (t *Tap) Discover(ctx context.Context) ([]*Stream, error) {
	out := make([]*Stream, len(t.cfg.Files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)

	for i := range t.cfg.Files {
		g.Go(func() error {
			s, err := t.discoverStream(ctx, &t.cfg.Files[i])
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Catalog runs discovery and returns the catalog document.
func (t *Tap) Catalog(ctx context.Context) (*singer.Catalog, error) {
	discovered, err := t.Discover(ctx)
	if err != nil {
		return nil, err
	}
	catalog := &singer.Catalog{Streams: make([]*singer.CatalogEntry, 0, len(discovered))}
	for _, s := range discovered {
		catalog.Streams = append(catalog.Streams, s.CatalogEntry())
	}
	return catalog, nil
}

func (t *Tap) discoverStream(ctx context.Context, fc *config.FileConfig) (*Stream, error) {
	name := fc.StreamName()
	files, err := resolveFiles(t.log, fc.Path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(files[0])
	if err != nil {
		return nil, &config.ConfigurationError{Source: files[0], Err: err}
	}
	defer f.Close()

	stream, err := streams.NewCsvStream(f, fc.StreamOptions()...)
	if err != nil {
		return nil, &config.ConfigurationError{Source: files[0], Err: err}
	}
	header := stream.GetHeader()
	if err := checkHeader(header); err != nil {
		return nil, &config.ConfigurationError{Source: files[0], Err: err}
	}
	for _, path := range files[1:] {
		if err := sameHeader(path, header, fc); err != nil {
			return nil, err
		}
	}

	columns := schema.Strings(header)
	if fc.InferTypes {
		samples, err := sample(ctx, stream, fc.SampleSize)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", files[0], err)
		}
		columns = schema.Infer(header, samples, fc.NumberFormat())
	}
	for col, typ := range fc.ColumnTypes() {
		i := slices.Index(header, col)
		if i < 0 {
			return nil, config.Errorf(fc.Path, "%w %q in types", ErrUnknownColumn, col)
		}
		columns[i].Type = typ
	}
	for _, key := range fc.Keys {
		if !slices.Contains(header, key) {
			return nil, config.Errorf(fc.Path, "%w %q in keys", ErrUnknownColumn, key)
		}
	}

	all := columns
	if t.cfg.AddMetadataColumns {
		for _, col := range csvparser.MetadataColumns {
			if slices.Contains(header, col.Name) {
				return nil, config.Errorf(files[0], "%w: column %q is reserved for metadata", ErrInvalidHeader, col.Name)
			}
		}
		all = append(slices.Clip(columns), csvparser.MetadataColumns...)
	}
	keys := fc.Keys
	if keys == nil {
		keys = []string{}
	}

	t.log.Debug("Discovered stream",
		"stream", name,
		"files", len(files),
		"columns", len(columns),
		"infer_types", fc.InferTypes,
	)
	return &Stream{
		Name:          name,
		Files:         files,
		Header:        header,
		Columns:       columns,
		KeyProperties: keys,
		Schema:        schema.Build(all),
		file:          fc,
		metadata:      t.cfg.AddMetadataColumns,
	}, nil
}

func checkHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: column %d has no name", ErrInvalidHeader, i+1)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidHeader, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// sameHeader checks that the file at path starts with header.
func sameHeader(path string, header []string, fc *config.FileConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return &config.ConfigurationError{Source: path, Err: err}
	}
	defer f.Close()

	stream, err := streams.NewCsvStream(f, fc.StreamOptions()...)
	if errors.Is(err, streams.ErrNoHeader) {
		return &config.ConfigurationError{Source: path, Err: ErrHeaderMismatch}
	}
	if err != nil {
		return &config.ConfigurationError{Source: path, Err: err}
	}
	if !slices.Equal(stream.GetHeader(), header) {
		return &config.ConfigurationError{Source: path, Err: ErrHeaderMismatch}
	}
	return nil
}

// sample reads up to n rows for inference. Unreadable rows are left out.
func sample(ctx context.Context, stream apiStreams.CsvStream, n int) ([][]string, error) {
	rows := make([][]string, 0, n)
	for len(rows) < n {
		row, err := stream.ReadCsvRecord(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		var rowErr *streams.RowError
		if errors.As(err, &rowErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

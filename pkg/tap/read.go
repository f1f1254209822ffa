package tap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"

	api "tapcsv/pkg/api/parsers"
	"tapcsv/pkg/config"
	"tapcsv/pkg/csvparser"
	"tapcsv/pkg/streams"
)

// Read returns the records of s in file order. The sequence is lazy and can
// be ranged over once; call Read again for a fresh pass. Under the skip
// policy a RecordError is logged and the row dropped. Under abort, and for
// any other failure, the error is yielded and the sequence ends.
func (t *Tap) Read(ctx context.Context, s *Stream) iter.Seq2[api.Record, error] {
	consumed := false
	return func(yield func(api.Record, error) bool) {
		if consumed {
			yield(api.Record{}, ErrAlreadyRead)
			return
		}
		consumed = true

		for _, path := range s.Files {
			more, err := t.readFile(ctx, s, path, yield)
			if err != nil {
				yield(api.Record{}, err)
				return
			}
			if !more {
				return
			}
		}
	}
}

// readFile yields the records of one file. It reports false when the
// consumer stopped early.
func (t *Tap) readFile(ctx context.Context, s *Stream, path string, yield func(api.Record, error) bool) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	stream, err := streams.NewCsvStream(f, s.file.StreamOptions()...)
	if err != nil {
		if errors.Is(err, streams.ErrNoHeader) {
			return false, &config.ConfigurationError{Source: path, Err: ErrHeaderMismatch}
		}
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if !slices.Equal(stream.GetHeader(), s.Header) {
		return false, &config.ConfigurationError{Source: path, Err: ErrHeaderMismatch}
	}

	opts := []csvparser.RecordParserOption{
		csvparser.WithColumns(s.Columns),
		csvparser.WithNumberFormat(s.file.NumberFormat()),
		csvparser.WithStreamName(s.Name),
		csvparser.WithSourceFile(path),
	}
	if s.metadata {
		opts = append(opts, csvparser.WithMetadataColumns(info.ModTime()))
	}
	parser, err := csvparser.NewRecordParser(stream, opts...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	for {
		rec, err := parser.ReadRecord(ctx)
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		var recErr *csvparser.RecordError
		if errors.As(err, &recErr) {
			if s.file.OnRecordError == config.OnRecordErrorAbort {
				return false, err
			}
			t.log.WarnContext(ctx, "Skipping record", "stream", s.Name, "file", path, "line", recErr.Line, "error", recErr.Err)
			continue
		}
		if err != nil {
			return false, err
		}
		if !yield(rec, nil) {
			return false, nil
		}
	}
}

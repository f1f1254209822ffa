package csvparser

import (
	"strings"
	"time"

	api "tapcsv/pkg/api/schema"
	"tapcsv/pkg/numeric"
)

// RecordParserOption configures a record parser
type RecordParserOption func(*recordParser) error

// WithColumns types the header columns. The names must equal the header,
// in order.
func WithColumns(columns []api.Column) RecordParserOption {
	return func(p *recordParser) error {
		header := p.stream.GetHeader()
		if len(header) == 0 {
			return errNoHeader
		}
		if len(columns) != len(header) {
			return errColumnsMismatch
		}
		for i, col := range columns {
			if col.Name != header[i] {
				return errColumnsMismatch
			}
		}
		p.columns = columns
		return nil
	}
}

// WithNumberFormat sets the separators used by integer and number columns
func WithNumberFormat(f numeric.Format) RecordParserOption {
	return func(p *recordParser) error {
		p.format = f
		return nil
	}
}

// WithStreamName names the stream in reported errors
func WithStreamName(name string) RecordParserOption {
	return func(p *recordParser) error {
		p.streamName = strings.TrimSpace(name)
		return nil
	}
}

// WithSourceFile names the file in reported errors
func WithSourceFile(path string) RecordParserOption {
	return func(p *recordParser) error {
		p.file = path
		return nil
	}
}

// WithMetadataColumns appends the _sdc_source_* columns to every record
func WithMetadataColumns(mtime time.Time) RecordParserOption {
	return func(p *recordParser) error {
		p.metadata = true
		p.mtime = mtime.UTC().Format(time.RFC3339Nano)
		return nil
	}
}

package csvparser

import (
	"context"
	"errors"
	"fmt"
	"io"

	api "tapcsv/pkg/api/parsers"
	apiSchema "tapcsv/pkg/api/schema"
	apiStreams "tapcsv/pkg/api/streams"
	"tapcsv/pkg/numeric"
	"tapcsv/pkg/schema"
	"tapcsv/pkg/streams"
)

// Names of the optional columns describing where a record came from.
const (
	MetadataSourceFile      = "_sdc_source_file"
	MetadataSourceFileMtime = "_sdc_source_file_mtime"
	MetadataSourceLineno    = "_sdc_source_lineno"
)

// MetadataColumns are the types of the optional source columns.
var MetadataColumns = []apiSchema.Column{
	{Name: MetadataSourceFile, Type: apiSchema.ColumnTypeString},
	{Name: MetadataSourceFileMtime, Type: apiSchema.ColumnTypeDateTime},
	{Name: MetadataSourceLineno, Type: apiSchema.ColumnTypeInteger},
}

var _ api.RecordParser = (*recordParser)(nil)

// recordParser converts CSV rows into typed records.
// It implements the RecordParser interface
type recordParser struct {
	stream     apiStreams.CsvStream
	columns    []apiSchema.Column
	format     numeric.Format
	streamName string
	file       string
	metadata   bool
	mtime      string
	keys       []string
}

// NewRecordParser creates a record parser over stream. Without WithColumns
// every column is a string.
func NewRecordParser(stream apiStreams.CsvStream, opts ...RecordParserOption) (api.RecordParser, error) {
	if stream == nil {
		return nil, errNilCsvStream
	}
	header := stream.GetHeader()
	if len(header) == 0 {
		return nil, errNoHeader
	}
	p := &recordParser{
		stream:  stream,
		columns: schema.Strings(header),
		format:  numeric.DefaultFormat,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.keys = make([]string, 0, len(p.columns)+len(MetadataColumns))
	for _, col := range p.columns {
		p.keys = append(p.keys, col.Name)
	}
	if p.metadata {
		for _, col := range MetadataColumns {
			p.keys = append(p.keys, col.Name)
		}
	}
	return p, nil
}

// Columns implements RecordParser.
func (p *recordParser) Columns() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

// ReadRecord implements RecordParser. A *RecordError leaves the parser
// positioned on the next row.
func (p *recordParser) ReadRecord(ctx context.Context) (api.Record, error) {
	if p == nil || p.stream == nil {
		return api.Record{}, errNilParserOrStream
	}

	raw, err := p.stream.ReadCsvRecord(ctx)
	if errors.Is(err, io.EOF) {
		return api.Record{}, io.EOF
	}
	if err != nil {
		var rowErr *streams.RowError
		if errors.As(err, &rowErr) {
			return api.Record{}, p.recordError(rowErr.Line, "", "", rowErr.Err)
		}
		return api.Record{}, err
	}
	line := p.stream.Line()
	if len(raw) != len(p.columns) {
		return api.Record{}, p.recordError(line, "", "", streams.ErrFieldCount)
	}

	values := make([]any, 0, len(p.keys))
	for i, col := range p.columns {
		v, err := schema.Convert(raw[i], col.Type, p.format)
		if err != nil {
			return api.Record{}, p.recordError(line, col.Name, raw[i], fmt.Errorf("%w: %w", ErrTypeConversion, err))
		}
		values = append(values, v)
	}
	if p.metadata {
		values = append(values, p.file, p.mtime, int64(line))
	}
	return api.NewRecord(p.keys, values), nil
}

func (p *recordParser) recordError(line int, column, value string, err error) *RecordError {
	return &RecordError{
		Stream: p.streamName,
		File:   p.file,
		Line:   line,
		Column: column,
		Value:  value,
		Err:    err,
	}
}

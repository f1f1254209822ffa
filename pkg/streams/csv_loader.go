package streams

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	iface "tapcsv/pkg/api/streams"
)

type csvReader struct {
	reader *csv.Reader
	header []string
	line   int
	opts   options
}

var _ iface.CsvStream = (*csvReader)(nil)

// NewCsvStream creates a new CSV stream from an io.Reader.
// It decodes the input, then reads the header row immediately.
func NewCsvStream(reader io.Reader, opts ...CsvStreamOption) (iface.CsvStream, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	decoded, err := decode(reader, o.encoding)
	if err != nil {
		return nil, err
	}

	csvR := csv.NewReader(decoded)
	csvR.Comma = o.comma
	csvR.TrimLeadingSpace = o.skipInitialSpace
	// zero: the header fixes the expected width of every following row
	csvR.FieldsPerRecord = 0

	header, err := csvR.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return nil, &RowError{Line: pe.StartLine, Err: classify(err)}
	}
	if err != nil {
		return nil, err
	}

	c := &csvReader{
		reader: csvR,
		opts:   o,
	}
	c.line, _ = csvR.FieldPos(0)
	header, err = c.clean(header)
	if err != nil {
		return nil, &RowError{Line: c.line, Err: err}
	}
	c.header = header
	return c, nil
}

// ReadCsvRecord implements CsvStream.
func (c *csvReader) ReadCsvRecord(ctx context.Context) ([]string, error) {
	if c == nil || c.reader == nil {
		return nil, io.EOF
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	record, err := c.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			c.line = pe.StartLine
			return record, &RowError{Line: pe.StartLine, Err: classify(err)}
		}
		return nil, err
	}
	c.line, _ = c.reader.FieldPos(0)

	record, err = c.clean(record)
	if err != nil {
		return record, &RowError{Line: c.line, Err: err}
	}
	return record, nil
}

// GetHeader implements CsvStream.
func (c *csvReader) GetHeader() []string {
	if c == nil {
		return nil
	}
	return c.header
}

// Line implements CsvStream.
func (c *csvReader) Line() int {
	if c == nil {
		return 0
	}
	return c.line
}

// clean applies the encoding error policy to every field.
func (c *csvReader) clean(record []string) ([]string, error) {
	for i, field := range record {
		if utf8.ValidString(field) {
			continue
		}
		switch c.opts.encodingErrors {
		case EncodingErrorsReplace:
			record[i] = strings.ToValidUTF8(field, string(utf8.RuneError))
		case EncodingErrorsIgnore:
			record[i] = strings.ToValidUTF8(field, "")
		default:
			return record, ErrInvalidEncoding
		}
	}
	return record, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, csv.ErrFieldCount):
		return ErrFieldCount
	case errors.Is(err, csv.ErrQuote), errors.Is(err, csv.ErrBareQuote):
		return ErrMalformedRow
	default:
		return err
	}
}

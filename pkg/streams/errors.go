package streams

import (
	"errors"
	"fmt"
)

var (
	// Error definitions
	ErrNoHeader              = errors.New("csv stream has no header")
	ErrInvalidDelimiter      = errors.New("delimiter must be a single character other than quote or line break")
	ErrUnknownEncoding       = errors.New("unknown encoding")
	ErrInvalidEncodingErrors = errors.New("encoding_errors must be one of strict, replace, ignore")

	// Row level errors; the stream stays readable after these
	ErrFieldCount      = errors.New("wrong number of fields")
	ErrMalformedRow    = errors.New("malformed quoting")
	ErrInvalidEncoding = errors.New("invalid text for encoding")
)

// RowError reports a problem with a single CSV row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

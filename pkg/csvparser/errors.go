package csvparser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Error definitions
	errNilCsvStream      = errors.New("csv stream cannot be nil")
	errNoHeader          = errors.New("csv stream has no header")
	errColumnsMismatch   = errors.New("columns do not match CSV header")
	errNilParserOrStream = errors.New("parser or stream is nil")

	// ErrTypeConversion is the cause of a RecordError for a field that does
	// not parse as its column type.
	ErrTypeConversion = errors.New("type conversion failed")
)

// RecordError reports a CSV row that could not be turned into a record.
// Reading may continue after it.
type RecordError struct {
	Stream string
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RecordError) Error() string {
	var b strings.Builder
	if e.Stream != "" {
		fmt.Fprintf(&b, "stream %s: ", e.Stream)
	}
	if e.File != "" {
		fmt.Fprintf(&b, "%s:", e.File)
	}
	fmt.Fprintf(&b, "line %d: ", e.Line)
	if e.Column != "" {
		fmt.Fprintf(&b, "column %q value %q: ", e.Column, e.Value)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

package streams

import (
	"strings"
	"unicode/utf8"
)

// EncodingErrors is the policy for bytes that are not valid in the input encoding.
type EncodingErrors string

const (
	EncodingErrorsStrict  EncodingErrors = "strict"
	EncodingErrorsReplace EncodingErrors = "replace"
	EncodingErrorsIgnore  EncodingErrors = "ignore"
)

type options struct {
	comma            rune
	skipInitialSpace bool
	encoding         string
	encodingErrors   EncodingErrors
}

func defaultOptions() options {
	return options{
		comma:          ',',
		encodingErrors: EncodingErrorsStrict,
	}
}

// CsvStreamOption configures a CSV stream
type CsvStreamOption func(*options) error

// WithDelimiter sets the field delimiter. It must be a single character
// other than a quote, carriage return or newline.
func WithDelimiter(delimiter string) CsvStreamOption {
	return func(o *options) error {
		r, size := utf8.DecodeRuneInString(delimiter)
		if size == 0 || size != len(delimiter) || !validDelim(r) {
			return ErrInvalidDelimiter
		}
		o.comma = r
		return nil
	}
}

// WithSkipInitialSpace ignores whitespace following a delimiter
func WithSkipInitialSpace(skip bool) CsvStreamOption {
	return func(o *options) error {
		o.skipInitialSpace = skip
		return nil
	}
}

// WithEncoding decodes the input from the named character set
func WithEncoding(name string) CsvStreamOption {
	return func(o *options) error {
		if _, err := lookupEncoding(name); err != nil {
			return err
		}
		o.encoding = name
		return nil
	}
}

// WithEncodingErrors sets the policy for undecodable bytes
func WithEncodingErrors(policy string) CsvStreamOption {
	return func(o *options) error {
		switch p := EncodingErrors(strings.ToLower(strings.TrimSpace(policy))); p {
		case "":
			o.encodingErrors = EncodingErrorsStrict
		case EncodingErrorsStrict, EncodingErrorsReplace, EncodingErrorsIgnore:
			o.encodingErrors = p
		default:
			return ErrInvalidEncodingErrors
		}
		return nil
	}
}

func validDelim(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// ValidateOptions applies opts to a throwaway configuration and returns the
// first error.
func ValidateOptions(opts ...CsvStreamOption) error {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return err
		}
	}
	return nil
}

// Package config loads and validates tap settings.
package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	api "tapcsv/pkg/api/schema"
	"tapcsv/pkg/numeric"
	"tapcsv/pkg/schema"
	"tapcsv/pkg/streams"
)

// OnRecordError is the policy for rows that cannot be read.
type OnRecordError string

const (
	OnRecordErrorSkip  OnRecordError = "skip"
	OnRecordErrorAbort OnRecordError = "abort"
)

// DefaultSampleSize is the number of rows sampled for type inference.
const DefaultSampleSize = schema.DefaultSampleSize

// Config holds the merged settings.
type Config struct {
	Files              []FileConfig `json:"files"`
	CsvFilesDefinition string       `json:"csv_files_definition,omitempty"`
	AddMetadataColumns bool         `json:"add_metadata_columns"`
}

// FileConfig describes one stream: a CSV file or a directory of them.
type FileConfig struct {
	Entity           string            `json:"entity,omitempty"`
	Path             string            `json:"path"`
	Keys             []string          `json:"keys,omitempty"`
	Delimiter        string            `json:"delimiter,omitempty"`
	QuoteChar        string            `json:"quotechar,omitempty"`
	DoubleQuote      *bool             `json:"doublequote,omitempty"`
	EscapeChar       *string           `json:"escapechar,omitempty"`
	SkipInitialSpace bool              `json:"skipinitialspace,omitempty"`
	Encoding         string            `json:"encoding,omitempty"`
	EncodingErrors   string            `json:"encoding_errors,omitempty"`
	Thousands        string            `json:"thousands,omitempty"`
	Decimal          string            `json:"decimal,omitempty"`
	Types            map[string]string `json:"types,omitempty"`
	InferTypes       bool              `json:"infer_types,omitempty"`
	SampleSize       int               `json:"sample_size,omitempty"`
	OnRecordError    OnRecordError     `json:"on_record_error,omitempty"`

	columnTypes map[string]api.ColumnType
}

// StreamOptions returns the CSV reader options for the entry.
func (f *FileConfig) StreamOptions() []streams.CsvStreamOption {
	return []streams.CsvStreamOption{
		streams.WithDelimiter(f.Delimiter),
		streams.WithSkipInitialSpace(f.SkipInitialSpace),
		streams.WithEncoding(f.Encoding),
		streams.WithEncodingErrors(f.EncodingErrors),
	}
}

// NumberFormat returns the separators used for numeric columns.
func (f *FileConfig) NumberFormat() numeric.Format {
	return numeric.Format{Thousands: f.Thousands, Decimal: f.Decimal}
}

// ColumnTypes returns the declared column types, keyed by column name.
func (f *FileConfig) ColumnTypes() map[string]api.ColumnType {
	return f.columnTypes
}

// Env is the logging setup read from TAP_CSV_* variables.
type Env struct {
	LogFormat    string     `default:"text" split_words:"true"`
	LogLevel     slog.Level `default:"info" split_words:"true"`
	LogAddSource bool       `default:"false" split_words:"true"`
}

// LoadEnv reads Env from the environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("tap_csv", &env); err != nil {
		return env, fmt.Errorf("unable to parse environment: %w", err)
	}
	return env, nil
}

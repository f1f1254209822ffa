package streams

import "context"

// CsvStream represents a stream of CSV records.
type CsvStream interface {
	// ReadCsvRecord reads the next CSV record from the stream.
	// Returns io.EOF once the stream is exhausted. A row-level problem is
	// reported together with the raw fields; the stream stays readable.
	ReadCsvRecord(ctx context.Context) ([]string, error)

	// GetHeader returns the header row of the CSV file.
	// This is typically the first row with column names.
	GetHeader() []string

	// Line returns the 1-based line on which the last returned record started.
	Line() int
}

package singer

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Writer serialises Singer messages, one JSON object per line.
type Writer struct {
	mu  sync.Mutex
	out *bufio.Writer
	now func() time.Time
}

// WriterOption configures a Writer
type WriterOption func(*Writer)

// WithClock overrides the time source used for time_extracted
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter returns a Writer over w. Call Flush when done.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	wr := &Writer{
		out: bufio.NewWriter(w),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(wr)
	}
	return wr
}

// WriteSchema writes a SCHEMA message.
func (w *Writer) WriteSchema(stream string, schema *Schema, keyProperties []string) error {
	if keyProperties == nil {
		keyProperties = []string{}
	}
	return w.write(SchemaMessage{
		Type:          TypeSchema,
		Stream:        stream,
		Schema:        schema,
		KeyProperties: keyProperties,
	})
}

// WriteRecord writes a RECORD message stamped with the extraction time.
func (w *Writer) WriteRecord(stream string, record any) error {
	return w.write(RecordMessage{
		Type:          TypeRecord,
		Stream:        stream,
		Record:        record,
		TimeExtracted: w.now().UTC().Format(time.RFC3339Nano),
	})
}

// WriteState writes a STATE message and flushes, so that everything before
// it is durable once the target sees the state.
func (w *Writer) WriteState(state *State) error {
	if err := w.write(StateMessage{Type: TypeState, Value: state.Bytes()}); err != nil {
		return err
	}
	return w.Flush()
}

// Flush writes buffered messages to the underlying writer.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Flush()
}

func (w *Writer) write(msg any) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(b); err != nil {
		return err
	}
	return w.out.WriteByte('\n')
}

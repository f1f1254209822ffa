package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	api "tapcsv/pkg/api/schema"
	"tapcsv/pkg/numeric"
)

const dateLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Convert parses the raw text of a field as type t. Blank fields of
// non-string columns become nil.
func Convert(raw string, t api.ColumnType, f numeric.Format) (any, error) {
	if t == api.ColumnTypeString {
		return raw, nil
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	switch t {
	case api.ColumnTypeInteger:
		d, err := numeric.ParseDecimal(s, f)
		if err != nil {
			return nil, err
		}
		if !d.IsInteger() {
			return nil, ErrNotInteger
		}
		return d, nil
	case api.ColumnTypeNumber:
		return numeric.ParseDecimal(s, f)
	case api.ColumnTypeBoolean:
		b, err := cast.ToBoolE(s)
		if err != nil {
			return nil, ErrNotBoolean
		}
		return b, nil
	case api.ColumnTypeDate:
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, ErrNotDate
		}
		return d.Format(dateLayout), nil
	case api.ColumnTypeDateTime:
		ts, err := parseDateTime(s)
		if err != nil {
			return nil, err
		}
		return ts.UTC().Format(time.RFC3339Nano), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
}

// parseDateTime accepts RFC 3339 timestamps with either "T" or a space
// separator. Timestamps without an offset are taken as UTC.
func parseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, ErrNotDateTime
}

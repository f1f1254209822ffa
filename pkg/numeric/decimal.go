package numeric

import (
	"strings"

	apd "github.com/cockroachdb/apd/v3"
)

// Format describes how numbers are written in a CSV file.
type Format struct {
	// Thousands is the grouping separator stripped before parsing. Empty disables it.
	Thousands string
	// Decimal is the decimal mark. Empty means ".".
	Decimal string
}

// DefaultFormat parses plain numbers such as 1234.5.
var DefaultFormat = Format{Decimal: "."}

// Decimal is an exact decimal value decoded from CSV text.
type Decimal struct {
	value *apd.Decimal
}

// IsInteger reports whether the value was written without a fractional part.
func (d Decimal) IsInteger() bool {
	return d.value != nil && d.value.Exponent >= 0
}

// String renders the value in plain (non-exponent) notation.
func (d Decimal) String() string {
	if d.value == nil {
		return "0"
	}
	return d.value.Text('f')
}

// MarshalJSON encodes the value as a JSON number without losing precision.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDecimal parses a number written in format f.
func ParseDecimal(value string, f Format) (Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Decimal{}, ErrEmpty
	}
	if f.Thousands != "" {
		value = strings.ReplaceAll(value, f.Thousands, "")
	}
	if f.Decimal != "" && f.Decimal != "." {
		if strings.Contains(value, ".") {
			return Decimal{}, ErrNotANumber
		}
		value = strings.ReplaceAll(value, f.Decimal, ".")
	}

	d, _, err := apd.NewFromString(value)
	if err != nil {
		return Decimal{}, ErrNotANumber
	}
	if d.Form != apd.Finite {
		return Decimal{}, ErrNotFinite
	}
	return Decimal{value: d}, nil
}

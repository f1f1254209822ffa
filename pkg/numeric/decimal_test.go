package numeric

import (
	"errors"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		format  Format
		want    string
		integer bool
		wantErr error
	}{
		{"Integer", "42", DefaultFormat, "42", true, nil},
		{"Negative fraction", "-3.50", DefaultFormat, "-3.50", false, nil},
		{"Whitespace", " 7 ", DefaultFormat, "7", true, nil},
		{"Exponent", "1e3", DefaultFormat, "1000", true, nil},
		{"Thousands separator", "1,000,000.25", Format{Thousands: ",", Decimal: "."}, "1000000.25", false, nil},
		{"European format", "1.234,5", Format{Thousands: ".", Decimal: ","}, "1234.5", false, nil},
		{"Comma decimal rejects dot", "1.5", Format{Decimal: ","}, "", false, ErrNotANumber},
		{"Grouping without thousands", "1,000", DefaultFormat, "", false, ErrNotANumber},
		{"Text", "abc", DefaultFormat, "", false, ErrNotANumber},
		{"Empty", "  ", DefaultFormat, "", false, ErrEmpty},
		{"NaN", "NaN", DefaultFormat, "", false, ErrNotFinite},
		{"Infinity", "-Infinity", DefaultFormat, "", false, ErrNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.in, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseDecimal(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.String() != tt.want {
				t.Errorf("ParseDecimal(%q) = %s, want %s", tt.in, got, tt.want)
			}
			if got.IsInteger() != tt.integer {
				t.Errorf("ParseDecimal(%q).IsInteger() = %v, want %v", tt.in, got.IsInteger(), tt.integer)
			}
		})
	}
}

func TestDecimalMarshalJSON(t *testing.T) {
	d, err := ParseDecimal("123456789012345678901234567890.000001", DefaultFormat)
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "123456789012345678901234567890.000001" {
		t.Errorf("MarshalJSON() = %s", b)
	}
}

func TestDecimalKeepsTrailingZeros(t *testing.T) {
	a, _ := ParseDecimal("1.50", DefaultFormat)
	b, _ := ParseDecimal("1.5", DefaultFormat)
	if a.String() != "1.50" || b.String() != "1.5" {
		t.Errorf("String() = %s, %s", a, b)
	}
	if a.IsInteger() {
		t.Errorf("%s should not be an integer", a)
	}
}

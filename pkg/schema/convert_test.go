package schema

import (
	"errors"
	"fmt"
	"testing"

	api "tapcsv/pkg/api/schema"
	"tapcsv/pkg/numeric"
)

func TestConvert(t *testing.T) {
	euro := numeric.Format{Thousands: ".", Decimal: ","}
	tests := []struct {
		name    string
		raw     string
		typ     api.ColumnType
		format  numeric.Format
		want    string
		wantNil bool
		wantErr error
	}{
		{"String keeps raw text", "  Alice ", api.ColumnTypeString, numeric.DefaultFormat, "  Alice ", false, nil},
		{"Blank string stays empty", "", api.ColumnTypeString, numeric.DefaultFormat, "", false, nil},
		{"Integer", "42", api.ColumnTypeInteger, numeric.DefaultFormat, "42", false, nil},
		{"Integer rejects fraction", "4.2", api.ColumnTypeInteger, numeric.DefaultFormat, "", false, ErrNotInteger},
		{"Integer rejects text", "x", api.ColumnTypeInteger, numeric.DefaultFormat, "", false, numeric.ErrNotANumber},
		{"Blank integer is null", "  ", api.ColumnTypeInteger, numeric.DefaultFormat, "", true, nil},
		{"Number", "3.14", api.ColumnTypeNumber, numeric.DefaultFormat, "3.14", false, nil},
		{"Number european", "1.234,50", api.ColumnTypeNumber, euro, "1234.50", false, nil},
		{"Boolean true", "true", api.ColumnTypeBoolean, numeric.DefaultFormat, "true", false, nil},
		{"Boolean one", "1", api.ColumnTypeBoolean, numeric.DefaultFormat, "true", false, nil},
		{"Boolean F", "F", api.ColumnTypeBoolean, numeric.DefaultFormat, "false", false, nil},
		{"Boolean rejects text", "maybe", api.ColumnTypeBoolean, numeric.DefaultFormat, "", false, ErrNotBoolean},
		{"Date", "2023-07-04", api.ColumnTypeDate, numeric.DefaultFormat, "2023-07-04", false, nil},
		{"Date rejects other layout", "07/04/2023", api.ColumnTypeDate, numeric.DefaultFormat, "", false, ErrNotDate},
		{"Date-time with offset", "2023-07-04T10:00:00+02:00", api.ColumnTypeDateTime, numeric.DefaultFormat, "2023-07-04T08:00:00Z", false, nil},
		{"Date-time naive with space", "2023-07-04 10:00:00.5", api.ColumnTypeDateTime, numeric.DefaultFormat, "2023-07-04T10:00:00.5Z", false, nil},
		{"Date-time rejects date", "2023-07-04", api.ColumnTypeDateTime, numeric.DefaultFormat, "", false, ErrNotDateTime},
		{"Unknown type", "x", api.ColumnTypeNone, numeric.DefaultFormat, "", false, ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.raw, tt.typ, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Convert(%q, %v) error = %v, want %v", tt.raw, tt.typ, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("Convert(%q, %v) = %v, want nil", tt.raw, tt.typ, got)
				}
				return
			}
			if s := fmt.Sprint(got); s != tt.want {
				t.Errorf("Convert(%q, %v) = %s, want %s", tt.raw, tt.typ, s, tt.want)
			}
		})
	}
}

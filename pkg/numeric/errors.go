package numeric

import "errors"

var (
	// ErrEmpty is returned for blank input
	ErrEmpty = errors.New("empty number")
	// ErrNotANumber is returned when the text is not a decimal number
	ErrNotANumber = errors.New("not a number")
	// ErrNotFinite is returned for NaN and infinities, which JSON cannot carry
	ErrNotFinite = errors.New("number is not finite")
)

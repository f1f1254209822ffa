package schema

import "errors"

var (
	ErrNotInteger  = errors.New("not an integer")
	ErrNotBoolean  = errors.New("not a boolean")
	ErrNotDate     = errors.New("not a date (want YYYY-MM-DD)")
	ErrNotDateTime = errors.New("not a date-time")
	ErrUnknownType = errors.New("unknown column type")
)

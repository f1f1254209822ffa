package tap

import "errors"

var (
	ErrNoCsvFiles     = errors.New("no .csv files found")
	ErrInvalidHeader  = errors.New("invalid header")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrHeaderMismatch = errors.New("header differs from the first file of the stream")
	ErrAlreadyRead    = errors.New("stream sequence already consumed")
)

package singer

import "errors"

var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrInvalidState   = errors.New("state must be a JSON object")
)

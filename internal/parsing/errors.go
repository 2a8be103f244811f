package parsing

import "errors"

// ErrInvalidQuery is returned when a query is empty after normalization.
var ErrInvalidQuery = errors.New("empty query")

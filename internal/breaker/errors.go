package breaker

import "errors"

// ErrOpen is passed to a fallback when the breaker denies a call
// because it is currently OPEN.
var ErrOpen = errors.New("circuit breaker open")

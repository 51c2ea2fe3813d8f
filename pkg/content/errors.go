package content

import "errors"

// ErrInvalidInput is returned when a payload is missing required fields or carries invalid values.
var ErrInvalidInput = errors.New("invalid input")

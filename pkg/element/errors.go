package element

import "errors"

// ErrInvalidType is returned by CreateElement for values that cannot be an element type.
var ErrInvalidType = errors.New("element type is invalid")

package rope

import "errors"

// ErrOutOfBounds is returned by position-conversion operations when the
// requested byte, char, or line offset is outside the rope's valid range.
var ErrOutOfBounds = errors.New("rope: position out of bounds")

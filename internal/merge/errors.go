package merge

import "errors"

// Merger errors.
var (
	ErrInvalidConfiguration   = errors.New("invalid merge configuration")
	ErrShapeMismatch          = errors.New("shape mismatch")
	ErrTooManyAppends         = errors.New("too many appends")
	ErrIncompleteAccumulation = errors.New("incomplete accumulation")
)

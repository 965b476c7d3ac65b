package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("index out of range")
	ErrNoOperator     = errors.New("missing operator name")
	ErrUnclosedSelect = errors.New("unclosed selection")
	ErrNothingToUndo  = errors.New("nothing to undo")
)

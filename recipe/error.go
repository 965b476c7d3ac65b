package recipe

import "github.com/ardnew/ctext/engine"

var (
	ErrOpen            = engine.NewError("open recipe")
	ErrDecode          = engine.NewError("decode recipe")
	ErrMissingOperator = engine.NewError("recipe step has no operator")
	ErrInvalidArgument = engine.NewError("recipe argument must be a scalar or a sequence")
)

package builtin

import (
	"log/slog"

	"github.com/ardnew/ctext/engine"
)

var (
	ErrUnknownMode       = engine.NewError("unknown mode")
	ErrInvalidPattern    = engine.NewError("invalid pattern")
	ErrInvalidExpression = engine.NewError("invalid expression")
	ErrInvalidMarkup     = engine.NewError("invalid markup")
	ErrTooLarge          = engine.NewError("result too large")
)

// maxGrowth bounds the bytes an operator may generate from a count argument.
const maxGrowth = 1 << 26

// checkGrowth fails when count repetitions of unit bytes exceed maxGrowth.
func checkGrowth(count, unit int) error {
	if count <= 0 || count <= maxGrowth/max(unit, 1) {
		return nil
	}

	return ErrTooLarge.With(
		slog.Int("count", count),
		slog.Int("limit", maxGrowth),
	)
}

func unknownMode(mode string, known ...string) error {
	return ErrUnknownMode.With(
		slog.String("mode", mode),
		slog.Any("known", known),
	)
}

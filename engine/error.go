package engine

import (
	"log/slog"
	"slices"
)

// Error is an error carrying structured attributes for logging. Package-level
// sentinels created with [NewError] are refined with [Error.Wrap] and
// [Error.With], and the results still match their sentinel with [errors.Is].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a sentinel [Error] with the given message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	}

	return e.msg + ": " + e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && len(t.attrs) == 0 && t.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{msg: e.msg, err: e.err, attrs: slices.Concat(e.attrs, attrs)}
}

// Attrs returns the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

var (
	ErrUnknownOperator   = NewError("unknown operator")
	ErrOperatorFailed    = NewError("operator failed")
	ErrMalformedArgument = NewError("malformed argument")
	ErrDuplicateOperator = NewError("duplicate operator")
	ErrReadInput         = NewError("read input")
	ErrWriteOutput       = NewError("write output")
)

package engine

//go:generate go tool stringer --linecomment --type Arity --output arity_string.go

import (
	"context"
	"strings"
)

// Arity classifies how an operator consumes the value list.
type Arity int

const (
	Single Arity = iota // single
	Multi               // multi
)

// Result is the outcome of applying a single-arity operator to one value.
//
// A Result holds either replacement values or the removal signal. The first
// replacement value takes the place of the input; any others are appended to
// the end of the value list once the step completes.
type Result struct {
	values []string
	remove bool
}

// Value returns a Result replacing the input with v.
func Value(v string) Result { return Result{values: []string{v}} }

// Values returns a Result replacing the input with vs[0] and appending the
// remaining elements. An empty vs is equivalent to [Remove].
func Values(vs ...string) Result {
	if len(vs) == 0 {
		return Remove()
	}

	return Result{values: vs}
}

// Remove returns a Result that drops the input from the value list.
func Remove() Result { return Result{remove: true} }

// IsRemove reports whether r drops its input.
func (r Result) IsRemove() bool { return r.remove || len(r.values) == 0 }

// Head returns the value that replaces the input.
func (r Result) Head() string {
	if r.IsRemove() {
		return ""
	}

	return r.values[0]
}

// Tail returns the values appended after the step completes.
func (r Result) Tail() []string {
	if r.IsRemove() {
		return nil
	}

	return r.values[1:]
}

// Impl is the implementation of an operator. It is satisfied only by
// [SingleFunc] and [MultiFunc].
type Impl interface {
	Arity() Arity
	impl()
}

// SingleFunc transforms one value at a time.
//
// index is the pre-image position of in within the value list.
type SingleFunc func(
	ctx context.Context,
	s *Session,
	in string,
	arg Arg,
	index int,
) (Result, error)

// MultiFunc transforms the selected values as a whole, returning their
// replacement list.
type MultiFunc func(
	ctx context.Context,
	s *Session,
	in []string,
	arg Arg,
) ([]string, error)

// Arity implements [Impl].
func (SingleFunc) Arity() Arity { return Single }

// Arity implements [Impl].
func (MultiFunc) Arity() Arity { return Multi }

func (SingleFunc) impl() {}
func (MultiFunc) impl()  {}

// Param documents one operator parameter.
type Param struct {
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Optional reports whether the parameter is written as optional in usage
// text, e.g. "[delimiter]".
func (p Param) Optional() bool {
	return strings.HasPrefix(p.Name, "[") && strings.HasSuffix(p.Name, "]")
}

// Variadic reports whether the parameter accepts repeated values, e.g.
// "item...".
func (p Param) Variadic() bool {
	return strings.HasSuffix(strings.Trim(p.Name, "[]"), "...")
}

// Operator describes a named text transform.
type Operator struct {
	Impl        Impl     `json:"-"       yaml:"-"`
	Name        string   `json:"name"    yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Usage       string   `json:"usage,omitempty"   yaml:"usage,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Params      []Param  `json:"params,omitempty"  yaml:"params,omitempty"`
}

// Arity returns the arity class of o.
func (o *Operator) Arity() Arity {
	if o.Impl == nil {
		return Single
	}

	return o.Impl.Arity()
}

// Signature returns the usage line of o, e.g. "repeat times,[delimiter]".
func (o *Operator) Signature() string {
	if o.Usage != "" {
		return o.Usage
	}

	names := make([]string, len(o.Params))
	for i, p := range o.Params {
		names[i] = p.Name
	}

	if len(names) == 0 {
		return o.Name
	}

	return o.Name + " " + strings.Join(names, ",")
}

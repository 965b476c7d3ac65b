package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ardnew/ctext/engine"
)

// DefaultVar is the variable written by set when no name is given.
const DefaultVar = "temp"

func ioOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "view",
			Description: "Prints the value mid-pipeline.",
			Impl: engine.SingleFunc(func(
				_ context.Context,
				s *engine.Session,
				in string,
				_ engine.Arg,
				_ int,
			) (engine.Result, error) {
				fmt.Fprintln(s.Out(), in)

				return engine.Value(in), nil
			}),
		},
		{
			Name:        "out",
			Description: "Writes the value to existing files mid-pipeline.",
			Params: []engine.Param{
				{Name: "path...", Description: "The files to write; missing files are skipped"},
			},
			Impl: engine.SingleFunc(out),
		},
		{
			Name:        "set",
			Description: "Stores the value in a variable, read back with ?name.",
			Params: []engine.Param{
				{Name: "[name]", Description: "The variable name (default " + DefaultVar + ")"},
			},
			Impl: engine.SingleFunc(set),
		},
		{
			Name:        "help",
			Description: "Prints the operator list, or the documentation of one operator.",
			Params: []engine.Param{
				{Name: "[operator]", Description: "The operator to describe"},
			},
			Impl: engine.SingleFunc(help),
		},
	}
}

func out(
	ctx context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	// Paths are taken literally so existing files are not dereferenced.
	for _, a := range arg.Split() {
		if path := a.Text(); path != "" {
			s.Write(ctx, path, in)
		}
	}

	return engine.Value(in), nil
}

func set(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	s.Vars().Set(s.ValueOr(arg, DefaultVar), in)

	return engine.Value(in), nil
}

func help(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	name := s.Value(arg)
	if name == "" {
		WriteIndex(s.Out(), s.Registry())

		return engine.Value(in), nil
	}

	op, err := s.Registry().Lookup(name)
	if err != nil {
		fmt.Fprintf(s.Out(), "operator %q does not exist", name)

		if hint := s.Registry().Suggest(name); hint != "" {
			fmt.Fprintf(s.Out(), " (did you mean %q?)", hint)
		}

		fmt.Fprintln(s.Out())

		return engine.Value(in), nil
	}

	WriteUsage(s.Out(), op)

	return engine.Value(in), nil
}

// WriteIndex writes one "name - description" line per registered operator.
func WriteIndex(w io.Writer, reg *engine.Registry) {
	for _, op := range reg.All() {
		fmt.Fprintf(w, "%s - %s\n", op.Name, op.Description)
	}
}

// WriteUsage writes the full documentation of op.
func WriteUsage(w io.Writer, op *engine.Operator) {
	fmt.Fprintf(w, "%s: %s\n", op.Name, op.Description)
	fmt.Fprintf(w, "Usage: %s\n", op.Signature())

	if len(op.Aliases) > 0 {
		fmt.Fprintf(w, "Aliases: %s\n", strings.Join(op.Aliases, ", "))
	}

	for _, p := range op.Params {
		fmt.Fprintf(w, "  %s: %s\n", p.Name, p.Description)
	}
}

package builtin

import (
	"context"
	"os"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/ctext/engine"
)

func listOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "duplicate",
			Aliases:     []string{"dup"},
			Description: "Adds copies of the value to the value list.",
			Params: []engine.Param{
				{Name: "times", Description: "How many copies to add (default 1)"},
			},
			Impl: engine.SingleFunc(duplicate),
		},
		{
			Name:        "split",
			Description: "Splits the value into several values.",
			Params: []engine.Param{
				{Name: "[delimiter]", Description: "The text to split on (default space)"},
			},
			Impl: engine.SingleFunc(split),
		},
		{
			Name:        "divide",
			Description: "Splits the value into chunks of equal length.",
			Params: []engine.Param{
				{Name: "interval", Description: "The length of each chunk (default 1)"},
			},
			Impl: engine.SingleFunc(divide),
		},
		{
			Name:        "in",
			Description: "Adds inputs to the value list mid-pipeline.",
			Params: []engine.Param{
				{Name: "input...", Description: "The values to add"},
			},
			Impl: engine.SingleFunc(input),
		},
		{
			Name:        "cull",
			Description: "Removes empty values.",
			Impl: engine.SingleFunc(func(
				_ context.Context,
				_ *engine.Session,
				in string,
				_ engine.Arg,
				_ int,
			) (engine.Result, error) {
				if in == "" {
					return engine.Remove(), nil
				}

				return engine.Value(in), nil
			}),
		},
		{
			Name:        "listadd",
			Description: "Prepends items to a delimited list, removing duplicates.",
			Params: []engine.Param{
				{Name: "delimiter", Description: "The list separator; empty means the path list separator"},
				{Name: "item...", Description: "The items to prepend"},
			},
			Impl: engine.SingleFunc(listAdd),
		},
		{
			Name:        "join",
			Description: "Joins values into one.",
			Params: []engine.Param{
				{Name: "[delimiter]", Description: "Text placed between values"},
			},
			Impl: engine.MultiFunc(join),
		},
		{
			Name:        "weave",
			Description: "Interlaces chunks of each value into one.",
			Params: []engine.Param{
				{Name: "size...", Description: "The chunk length of the value at the same index; missing sizes repeat the previous one"},
			},
			Impl: engine.MultiFunc(weave),
		},
	}
}

func duplicate(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	times := s.IntOr(arg, 1, in) + 1
	if err := checkGrowth(times, len(in)); err != nil {
		return engine.Result{}, err
	}

	copies := make([]string, max(times, 0))
	for i := range copies {
		copies[i] = in
	}

	return engine.Values(copies...), nil
}

func split(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	return engine.Values(strings.Split(in, s.ValueOr(arg, " "))...), nil
}

func divide(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	interval := max(s.IntOr(arg, 1, in), 1)

	rs := []rune(in)
	if len(rs) == 0 {
		return engine.Value(in), nil
	}

	chunks := make([]string, 0, (len(rs)+interval-1)/interval)
	for i := 0; i < len(rs); i += interval {
		chunks = append(chunks, string(rs[i:min(i+interval, len(rs))]))
	}

	return engine.Values(chunks...), nil
}

// input adds its arguments once per step, when applied to the first value.
func input(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	index int,
) (engine.Result, error) {
	if index != 0 {
		return engine.Value(in), nil
	}

	return engine.Values(append([]string{in}, s.Values(arg.Split())...)...), nil
}

func listAdd(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()

	delim := s.Value(args.At(0))
	if delim == "" {
		delim = string(os.PathListSeparator)
	}

	out := mung.Make(
		mung.WithSubjectItems(in),
		mung.WithDelim(delim),
		mung.WithPrefixItems(s.Values(args.From(1))...),
	).String()

	return engine.Value(out), nil
}

func join(
	_ context.Context,
	s *engine.Session,
	in []string,
	arg engine.Arg,
) ([]string, error) {
	return []string{strings.Join(in, s.Value(arg))}, nil
}

func weave(
	_ context.Context,
	s *engine.Session,
	in []string,
	arg engine.Arg,
) ([]string, error) {
	args := arg.Split()
	chunks := make([][]rune, len(in))
	sizes := make([]int, len(in))

	for i, v := range in {
		chunks[i] = []rune(v)

		switch {
		case i < len(args):
			sizes[i] = s.Int(args[i], v)
		case i > 0:
			sizes[i] = sizes[i-1]
		}

		// A non-positive size takes the whole value in its first turn.
		if sizes[i] <= 0 {
			sizes[i] = max(len(chunks[i]), 1)
		}
	}

	var b strings.Builder

	for done := false; !done; {
		done = true

		for i, rs := range chunks {
			n := min(sizes[i], len(rs))
			b.WriteString(string(rs[:n]))
			chunks[i] = rs[n:]

			if len(chunks[i]) > 0 {
				done = false
			}
		}
	}

	return []string{b.String()}, nil
}

package builtin

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/ctext/engine"
)

func lineOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "filter",
			Description: "Keeps the lines that meet a criteria.",
			Params: []engine.Param{
				{Name: "mode", Description: "has keeps lines containing the criteria, not drops them, match keeps lines matching it as a regular expression"},
				{Name: "criteria", Description: "The text or pattern to test"},
			},
			Impl: engine.SingleFunc(filter),
		},
		{
			Name:        "sort",
			Description: "Sorts lines.",
			Params: []engine.Param{
				{Name: "[mode]", Description: "az (default), za, len by length, or num by leading number"},
			},
			Impl: engine.SingleFunc(sortLines),
		},
		{
			Name:        "linenumbers",
			Description: "Prefixes every line with its number.",
			Params: []engine.Param{
				{Name: "[start]", Description: "The number of the first line (default 1)"},
			},
			Impl: engine.SingleFunc(lineNumbers),
		},
		{
			Name:        "wrap",
			Description: "Wraps lines that exceed a length.",
			Params: []engine.Param{
				{Name: "mode", Description: "block joins all lines into a solid block, cut truncates long lines"},
				{Name: "length", Description: "The line length to wrap at"},
			},
			Impl: engine.SingleFunc(wrap),
		},
	}
}

func filter(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()

	mode := s.Value(args.At(0))
	if mode == "" {
		return engine.Value(in), nil
	}

	criteria := s.Value(args.At(1))

	var keep func(string) bool

	switch mode {
	case "has":
		keep = func(line string) bool { return strings.Contains(line, criteria) }

	case "not":
		keep = func(line string) bool { return !strings.Contains(line, criteria) }

	case "match":
		re, err := regexp.Compile(criteria)
		if err != nil {
			return engine.Result{}, ErrInvalidPattern.Wrap(err)
		}

		keep = re.MatchString

	default:
		return engine.Result{}, unknownMode(mode, "has", "not", "match")
	}

	lines := strings.Split(in, "\n")
	lines = slices.DeleteFunc(lines, func(line string) bool { return !keep(line) })

	return engine.Value(strings.Join(lines, "\n")), nil
}

func sortLines(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	lines := strings.Split(in, "\n")

	switch mode := s.ValueOr(arg, "az"); mode {
	case "az":
		slices.Sort(lines)

	case "za":
		slices.SortFunc(lines, func(a, b string) int { return cmp.Compare(b, a) })

	case "len":
		slices.SortStableFunc(lines, func(a, b string) int {
			return cmp.Compare(runeLen(a), runeLen(b))
		})

	case "num":
		// Lines without a leading number sort after those with one.
		slices.SortStableFunc(lines, func(a, b string) int {
			na, oka := engine.ParseInt(a)
			nb, okb := engine.ParseInt(b)

			switch {
			case oka && okb:
				return cmp.Compare(na, nb)
			case oka:
				return -1
			case okb:
				return 1
			}

			return 0
		})

	default:
		return engine.Result{}, unknownMode(mode, "az", "za", "len", "num")
	}

	return engine.Value(strings.Join(lines, "\n")), nil
}

func lineNumbers(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	lines := strings.Split(in, "\n")
	start := s.IntOr(arg, 1, in)
	width := len(strconv.Itoa(len(lines) + start))

	for i, line := range lines {
		lines[i] = fmt.Sprintf("%-*d %s", width, start+i, line)
	}

	return engine.Value(strings.Join(lines, "\n")), nil
}

func wrap(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()
	mode := s.Value(args.At(0))
	if mode == "" {
		return engine.Value(in), nil
	}

	limit := s.Int(args.At(1), in)

	switch mode {
	case "block":
		if limit <= 0 {
			return engine.Value(in), nil
		}

		rs := []rune(strings.ReplaceAll(in, "\n", ""))

		var rows []string
		for len(rs) > limit {
			rows = append(rows, string(rs[:limit]))
			rs = rs[limit:]
		}

		rows = append(rows, string(rs))

		return engine.Value(strings.Join(rows, "\n")), nil

	case "cut":
		if limit < 0 {
			return engine.Value(in), nil
		}

		lines := strings.Split(in, "\n")
		for i, line := range lines {
			lines[i] = substring(line, 0, limit)
		}

		return engine.Value(strings.Join(lines, "\n")), nil
	}

	return engine.Result{}, unknownMode(mode, "block", "cut")
}

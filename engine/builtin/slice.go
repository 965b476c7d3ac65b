package builtin

import (
	"context"
	"strings"

	"github.com/ardnew/ctext/engine"
)

// span classifies how a positional argument was written.
type span int

const (
	spanNone     span = iota // no argument
	spanPoint                // pos
	spanAbsolute             // start,end
	spanRelative             // start-length
)

// parseSpan splits a positional argument into its parts. A comma selects
// absolute bounds; otherwise a hyphen after the first character selects a
// start and a relative length, so a lone negative number stays a point.
func parseSpan(arg engine.Arg) (engine.Args, span) {
	text := arg.Text()

	switch {
	case arg.Blank():
		return nil, spanNone

	case strings.ContainsRune(text, engine.DefaultDelim):
		return arg.Split(), spanAbsolute

	case strings.ContainsRune(text[1:], '-'):
		return arg.SplitOn('-'), spanRelative

	default:
		return engine.Args{arg}, spanPoint
	}
}

// positions resolves args as integers, padded with zeros to at least n.
func positions(s *engine.Session, args engine.Args, ref string, n int) []int {
	p := s.Ints(args, ref)

	return append(p, make([]int, max(n-len(p), 0))...)
}

func sliceOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "substring",
			Aliases:     []string{"sub"},
			Description: "Extracts a substring.",
			Usage:       "substring start,end | start-length | start",
			Params: []engine.Param{
				{Name: "start", Description: "Where the substring begins"},
				{Name: "end", Description: "Where the substring ends; after a hyphen, its length"},
			},
			Impl: engine.SingleFunc(substr),
		},
		{
			Name:        "boxsub",
			Description: "Extracts a rectangular region of lines and columns, counted from 1.",
			Usage:       "boxsub startrow,startcol,endrow,endcol | startrow-startcol-rows-cols",
			Params: []engine.Param{
				{Name: "startrow", Description: "The first row of the region"},
				{Name: "startcol", Description: "The first column of the region"},
				{Name: "endrow", Description: "The last row; after hyphens, the number of rows"},
				{Name: "endcol", Description: "The last column; after hyphens, the number of columns"},
			},
			Impl: engine.SingleFunc(boxsub),
		},
		{
			Name:        "at",
			Description: "Extracts the character at a position.",
			Usage:       "at position | row,col",
			Params: []engine.Param{
				{Name: "position", Description: "The 0-based position of the character"},
				{Name: "row", Description: "The 1-based line of the character"},
				{Name: "col", Description: "The 1-based column of the character"},
			},
			Impl: engine.SingleFunc(at),
		},
		{
			Name:        "shrink",
			Description: "Removes characters from the start, or from the end when negative.",
			Params: []engine.Param{
				{Name: "amount", Description: "How many characters to remove (default -1)"},
			},
			Impl: engine.SingleFunc(shrink),
		},
		{
			Name:        "place",
			Aliases:     []string{"put"},
			Description: "Overwrites text at a position.",
			Params: []engine.Param{
				{Name: "position", Description: "Where to put the text"},
				{Name: "text", Description: "The text to place over the value"},
				{Name: "[length]", Description: "How many characters to overwrite (default the text length)"},
			},
			Impl: engine.SingleFunc(place),
		},
		{
			Name:        "insert",
			Aliases:     []string{"ins"},
			Description: "Inserts text at a position.",
			Params: []engine.Param{
				{Name: "text", Description: "The text to insert"},
				{Name: "position", Description: "Where to insert the text"},
			},
			Impl: engine.SingleFunc(insert),
		},
		{
			Name:        "erase",
			Aliases:     []string{"del", "ers"},
			Description: "Removes part of the value.",
			Usage:       "erase start,end | start-length | pos",
			Params: []engine.Param{
				{Name: "start", Description: "Where erasing begins"},
				{Name: "end", Description: "Where erasing ends; after a hyphen, its length"},
				{Name: "pos", Description: "A word position such as w2; erases the whole word"},
			},
			Impl: engine.SingleFunc(erase),
		},
	}
}

func substr(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args, kind := parseSpan(arg)
	pos := positions(s, args, in, 2)

	switch kind {
	case spanAbsolute:
		return engine.Value(substring(in, pos[0], pos[1])), nil

	case spanRelative:
		return engine.Value(substring(in, pos[0], pos[0]+pos[1])), nil

	case spanPoint:
		return engine.Value(from(in, pos[0])), nil
	}

	return engine.Value(in), nil
}

// box returns the lines [r1, r2) of text cut to the columns [c1, c2), all
// counted from 1.
func box(text string, r1, c1, r2, c2 int) string {
	lines := strings.Split(text, "\n")
	r1 = clamp(r1-1, 0, len(lines))
	r2 = clamp(r2-1, 0, len(lines))

	out := make([]string, 0, max(r2-r1, 0))
	for _, line := range lines[r1:max(r1, r2)] {
		out = append(out, substring(line, c1-1, c2-1))
	}

	return strings.Join(out, "\n")
}

func boxsub(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args, kind := parseSpan(arg)

	switch kind {
	case spanAbsolute:
		p := positions(s, args, in, 4)

		return engine.Value(box(in, p[0], p[1], p[2]+1, p[3]+1)), nil

	case spanRelative:
		p := positions(s, args, in, 4)

		return engine.Value(box(in, p[0], p[1], p[0]+p[2], p[1]+p[3])), nil
	}

	return engine.Value(in), nil
}

func at(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	if arg.Contains(",") {
		args := arg.Split()
		row := s.Int(args.At(0), in) - 1
		col := s.Int(args.At(1), in) - 1

		lines := strings.Split(in, "\n")
		if row < 0 || row >= len(lines) || col < 0 {
			return engine.Value(""), nil
		}

		return engine.Value(substring(lines[row], col, col+1)), nil
	}

	pos := s.Int(arg, in)
	if pos < 0 {
		return engine.Value(""), nil
	}

	return engine.Value(substring(in, pos, pos+1)), nil
}

func shrink(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	n := s.IntOr(arg, -1, in)
	if n < 0 {
		return engine.Value(substring(in, 0, runeLen(in)+n)), nil
	}

	return engine.Value(from(in, n)), nil
}

func place(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()
	pos := s.Int(args.At(0), in)
	text := s.Value(args.At(1))
	size := s.IntOr(args.At(2), runeLen(text), in)

	return engine.Value(replaceAt(in, pos, size, text)), nil
}

func insert(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()
	text := s.Value(args.At(0))
	pos := s.Int(args.At(1), in)

	return engine.Value(replaceAt(in, pos, 0, text)), nil
}

func erase(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args, kind := parseSpan(arg)
	pos := positions(s, args, in, 2)

	switch kind {
	case spanAbsolute:
		return engine.Value(replaceAt(in, pos[0], pos[1]-pos[0], "")), nil

	case spanRelative:
		return engine.Value(replaceAt(in, pos[0], pos[1], "")), nil

	case spanPoint:
		// The word runs from pos through the next space after it.
		end := strings.IndexRune(from(in, pos[0]+1), ' ')
		if end < 0 {
			end = runeLen(in)
		} else {
			end = runeLen(from(in, pos[0]+1)[:end])
		}

		return engine.Value(replaceAt(in, pos[0], end+1, "")), nil
	}

	return engine.Value(in), nil
}

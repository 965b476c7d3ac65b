package builtin

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/ctext/engine"
)

var (
	whitespace = regexp.MustCompile(`\s`)
	nonWord    = regexp.MustCompile(`\W`)
)

// runeLen returns the length of s in code points.
func runeLen(s string) int { return utf8.RuneCountInString(s) }

// substring returns the code points of s in [start, end). Both bounds are
// clamped to the length of s and swapped when start > end.
func substring(s string, start, end int) string {
	rs := []rune(s)
	start = clamp(start, 0, len(rs))
	end = clamp(end, 0, len(rs))

	if start > end {
		start, end = end, start
	}

	return string(rs[start:end])
}

// from returns the code points of s starting at start.
func from(s string, start int) string {
	return substring(s, start, runeLen(s))
}

// replaceAt replaces size code points of s at pos with text.
func replaceAt(s string, pos, size int, text string) string {
	return substring(s, 0, pos) + text + from(s, pos+size)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// transform adapts a pure text function into a single-arity operator.
func transform(fn func(in string) string) engine.SingleFunc {
	return func(
		_ context.Context,
		_ *engine.Session,
		in string,
		_ engine.Arg,
		_ int,
	) (engine.Result, error) {
		return engine.Value(fn(in)), nil
	}
}

func textOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "reverse",
			Aliases:     []string{"rev"},
			Description: "Reverses text direction.",
			Impl:        transform(reverse),
		},
		{
			Name:        "append",
			Aliases:     []string{"cat", "concatenate"},
			Description: "Appends text to the end of the value.",
			Params: []engine.Param{
				{Name: "text", Description: "The text to append"},
			},
			Impl: engine.SingleFunc(appendText),
		},
		{
			Name:        "repeat",
			Aliases:     []string{"rep"},
			Description: "Repeats the value a number of times.",
			Params: []engine.Param{
				{Name: "times", Description: "How many copies to produce (default 2)"},
				{Name: "[delimiter]", Description: "Text placed between copies"},
			},
			Impl: engine.SingleFunc(repeat),
		},
		{
			Name:        "oneliner",
			Description: "Removes all newlines.",
			Params: []engine.Param{
				{Name: "[delimiter]", Description: "Text placed between lines"},
			},
			Impl: engine.SingleFunc(oneliner),
		},
		{
			Name:        "stretch",
			Aliases:     []string{"yell"},
			Description: "Repeats every character except spaces.",
			Params: []engine.Param{
				{Name: "amount", Description: "How many times to repeat each character (default 1)"},
			},
			Impl: engine.SingleFunc(stretch),
		},
		{
			Name:        "squash",
			Description: "Collapses runs of the same character.",
			Impl:        transform(squash),
		},
		{
			Name:        "abbreviate",
			Aliases:     []string{"abr", "abbr"},
			Description: "Abbreviates words to their upper-cased first letters.",
			Impl:        transform(abbreviate),
		},
		{
			Name:        "crush",
			Description: "Removes all whitespace characters.",
			Impl:        transform(func(in string) string { return whitespace.ReplaceAllString(in, "") }),
		},
		{
			Name:        "content",
			Description: "Removes all non-word characters.",
			Impl:        transform(func(in string) string { return nonWord.ReplaceAllString(in, "") }),
		},
		{
			Name:        "clear",
			Description: "Replaces the value with empty text.",
			Impl:        transform(func(string) string { return "" }),
		},
		{
			Name:        "trim",
			Description: "Removes leading and trailing characters.",
			Params: []engine.Param{
				{Name: "[cutset]", Description: "Characters to remove (default whitespace)"},
			},
			Impl: engine.SingleFunc(trim),
		},
		{
			Name:        "pad",
			Description: "Right-pads the value to a length.",
			Params: []engine.Param{
				{Name: "length", Description: "The length to pad to"},
				{Name: "[character]", Description: "A single padding character (default space)"},
			},
			Impl: engine.SingleFunc(pad),
		},
		{
			Name:        "replace",
			Aliases:     []string{"rpl"},
			Description: "Replaces every match of a multiline regular expression.",
			Params: []engine.Param{
				{Name: "search", Description: "The regular expression to search for"},
				{Name: "new", Description: "The replacement text; $1 refers to a capture group"},
			},
			Impl: engine.SingleFunc(replace),
		},
	}
}

func reverse(in string) string {
	rs := []rune(in)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}

	return string(rs)
}

func appendText(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	return engine.Value(in + s.Value(arg)), nil
}

func repeat(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()
	times := s.IntOr(args.At(0), 2, in)
	delim := s.Value(args.At(1))

	if times <= 0 {
		return engine.Value(""), nil
	}

	if err := checkGrowth(times, len(in)+len(delim)); err != nil {
		return engine.Result{}, err
	}

	copies := make([]string, times)
	for i := range copies {
		copies[i] = in
	}

	return engine.Value(strings.Join(copies, delim)), nil
}

func oneliner(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	return engine.Value(strings.ReplaceAll(in, "\n", s.Value(arg))), nil
}

func stretch(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	size := s.IntOr(arg, 1, in)
	if err := checkGrowth(size, len(in)); err != nil {
		return engine.Result{}, err
	}

	var b strings.Builder

	for _, r := range in {
		if r == ' ' {
			b.WriteRune(r)

			continue
		}

		for range size {
			b.WriteRune(r)
		}
	}

	return engine.Value(b.String()), nil
}

func squash(in string) string {
	var (
		b    strings.Builder
		prev rune = -1
	)

	for _, r := range in {
		if r != prev {
			b.WriteRune(r)
		}

		prev = r
	}

	return b.String()
}

func abbreviate(in string) string {
	var b strings.Builder

	for word := range strings.SplitSeq(strings.ToUpper(in), " ") {
		if r, size := utf8.DecodeRuneInString(word); size > 0 {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func trim(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	cutset := s.Value(arg)
	if cutset == "" {
		return engine.Value(strings.TrimFunc(in, unicode.IsSpace)), nil
	}

	return engine.Value(strings.Trim(in, cutset)), nil
}

func pad(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()
	length := s.Int(args.At(0), in)
	char := s.ValueOr(args.At(1), " ")

	if runeLen(char) != 1 || runeLen(in) >= length {
		return engine.Value(in), nil
	}

	if err := checkGrowth(length, len(char)); err != nil {
		return engine.Result{}, err
	}

	return engine.Value(in + strings.Repeat(char, length-runeLen(in))), nil
}

func replace(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()
	pattern := s.Value(args.At(0))

	re, err := regexp.Compile("(?m)" + pattern)
	if err != nil {
		return engine.Result{}, ErrInvalidPattern.Wrap(err)
	}

	return engine.Value(re.ReplaceAllString(in, s.Value(args.At(1)))), nil
}

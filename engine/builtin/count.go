package builtin

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/ctext/engine"
)

var wordSeparator = regexp.MustCompile(`(?i)[^a-z0-9']`)

func countOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "length",
			Aliases:     []string{"len"},
			Description: "Counts characters, including whitespace.",
			Impl:        transform(func(in string) string { return strconv.Itoa(runeLen(in)) }),
		},
		{
			Name:        "characters",
			Description: "Counts non-whitespace characters.",
			Impl: transform(func(in string) string {
				n := 0
				for _, r := range in {
					if !unicode.IsSpace(r) {
						n++
					}
				}

				return strconv.Itoa(n)
			}),
		},
		{
			Name:        "lines",
			Description: "Counts lines.",
			Impl: transform(func(in string) string {
				return strconv.Itoa(strings.Count(in, "\n") + 1)
			}),
		},
		{
			Name:        "words",
			Description: "Counts words.",
			Impl:        transform(func(in string) string { return strconv.Itoa(countWords(in)) }),
		},
		{
			Name:        "find",
			Description: "Lists the positions of every occurrence of text, separated by commas.",
			Params: []engine.Param{
				{Name: "text", Description: "The text to search for"},
			},
			Impl: engine.SingleFunc(find),
		},
	}
}

func countWords(in string) int {
	n := 0

	for _, w := range wordSeparator.Split(in, -1) {
		if w != "" {
			n++
		}
	}

	return n
}

func find(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	needle := s.Value(arg)
	if needle == "" {
		return engine.Value(""), nil
	}

	var (
		found []string
		pos   int
		rest  = in
	)

	for {
		i := strings.Index(rest, needle)
		if i < 0 {
			break
		}

		pos += runeLen(rest[:i])
		found = append(found, strconv.Itoa(pos))

		pos += runeLen(needle)
		rest = rest[i+len(needle):]
	}

	return engine.Value(strings.Join(found, ",")), nil
}

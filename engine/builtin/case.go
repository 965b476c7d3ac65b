package builtin

import (
	"context"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"

	"github.com/ardnew/ctext/engine"
)

// caseModes maps each case name to its conversion, in documentation order.
var caseModes = []struct {
	name string
	conv func(string) string
}{
	{"upper", strings.ToUpper},
	{"lower", strings.ToLower},
	{"title", title},
	{"snake", strcase.ToSnake},
	{"dot", func(s string) string { return strcase.ToDelimited(s, '.') }},
	{"dash", strcase.ToKebab},
	{"constant", strcase.ToScreamingSnake},
	{"camel", strcase.ToLowerCamel},
	{"pascal", strcase.ToCamel},
}

func caseOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "case",
			Description: "Changes the capitalization of text.",
			Params: []engine.Param{
				{
					Name: "type",
					Description: "One of upper, lower, title, snake, dot, dash, " +
						"constant, camel, or pascal",
				},
			},
			Impl: engine.SingleFunc(changeCase),
		},
	}
}

func changeCase(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	mode := s.Value(arg)
	if mode == "" {
		return engine.Value(in), nil
	}

	names := make([]string, len(caseModes))
	for i, m := range caseModes {
		if m.name == mode {
			return engine.Value(m.conv(in)), nil
		}

		names[i] = m.name
	}

	return engine.Result{}, unknownMode(mode, names...)
}

// title lower-cases s, then upper-cases its first character and every
// character that follows a non-word character.
func title(s string) string {
	rs := []rune(strings.ToLower(s))

	for i, r := range rs {
		if i == 0 || !isWord(rs[i-1]) {
			rs[i] = unicode.ToUpper(r)
		}
	}

	return string(rs)
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

package builtin

import (
	"context"
	"strings"

	"github.com/ardnew/ctext/engine"
)

var (
	ones = []string{
		"zero", "one", "two", "three", "four",
		"five", "six", "seven", "eight", "nine",
	}
	teens = []string{
		"ten", "eleven", "twelve", "thirteen", "fourteen",
		"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	tens = []string{
		"", "", "twenty", "thirty", "forty",
		"fifty", "sixty", "seventy", "eighty", "ninety",
	}
	scales = []string{
		"", "thousand", "million", "billion", "trillion", "quadrillion",
		"quintillion", "sextillion", "septillion", "octillion", "nonillion",
		"decillion", "undecillion",
	}
)

func numberOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "numwords",
			Description: "Spells a whole number in English words.",
			Params: []engine.Param{
				{Name: "[individual]", Description: "true spells each digit separately"},
			},
			Impl: engine.SingleFunc(numwords),
		},
	}
}

func numwords(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	digits := strings.TrimSpace(strings.ReplaceAll(in, ",", ""))

	if s.Value(arg) == "true" {
		var words []string

		for _, r := range digits {
			if r >= '0' && r <= '9' {
				words = append(words, ones[r-'0'])
			}
		}

		return engine.Value(strings.Join(words, " ")), nil
	}

	spelled, ok := spell(digits)
	if !ok {
		return engine.Value(in), nil
	}

	return engine.Value(spelled), nil
}

// spell returns the English words for a string of decimal digits with an
// optional leading minus sign. It reports false when digits is not such a
// string or exceeds the largest named scale.
func spell(digits string) (string, bool) {
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimLeft(strings.TrimPrefix(digits, "-"), "0")

	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}

	if len(digits) > 3*len(scales) {
		return "", false
	}

	if digits == "" {
		return ones[0], true
	}

	// Split into groups of three digits, most significant first.
	var groups []int
	for end := len(digits); end > 0; end -= 3 {
		n := 0
		for _, r := range digits[max(end-3, 0):end] {
			n = n*10 + int(r-'0')
		}

		groups = append([]int{n}, groups...)
	}

	var parts []string

	for i, n := range groups {
		if n == 0 {
			continue
		}

		part := spellGroup(n)
		if scale := scales[len(groups)-i-1]; scale != "" {
			part += " " + scale
		}

		parts = append(parts, part)
	}

	out := strings.Join(parts, ", ")
	if neg {
		out = "minus " + out
	}

	return out, true
}

// spellGroup spells 1 <= n <= 999.
func spellGroup(n int) string {
	var words []string

	if h := n / 100; h > 0 {
		words = append(words, ones[h], "hundred")
	}

	switch r := n % 100; {
	case r == 0:
	case r < 10:
		words = append(words, ones[r])
	case r < 20:
		words = append(words, teens[r-10])
	default:
		words = append(words, tens[r/10])
		if r%10 > 0 {
			words = append(words, ones[r%10])
		}
	}

	return strings.Join(words, " ")
}

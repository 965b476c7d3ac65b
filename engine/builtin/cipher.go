package builtin

import (
	"context"
	"strings"

	"github.com/ardnew/ctext/engine"
)

const alphabetSize = 26

// letterIndex returns the 0-based alphabet position of an ASCII letter and
// whether r is one.
func letterIndex(r rune) (int, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	}

	return 0, false
}

// shiftLetter rotates an ASCII letter by n positions, preserving its case.
// Other runes are returned unchanged.
func shiftLetter(r rune, n int) rune {
	idx, ok := letterIndex(r)
	if !ok {
		return r
	}

	base := 'a'
	if r <= 'Z' {
		base = 'A'
	}

	idx = ((idx+n)%alphabetSize + alphabetSize) % alphabetSize

	return base + rune(idx)
}

// caesar rotates every ASCII letter of s by n positions.
func caesar(s string, n int) string {
	return strings.Map(func(r rune) rune { return shiftLetter(r, n) }, s)
}

func cipherOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "otp",
			Description: "One-time pad letter cipher. Not secure.",
			Params: []engine.Param{
				{Name: "key", Description: "The pad; each letter shifts one letter of the value, with a as no shift"},
				{Name: "[mode]", Description: "encode (default) or decode"},
			},
			Impl: engine.SingleFunc(otp),
		},
		{
			Name:        "cshift",
			Description: "Caesar shift cipher.",
			Params: []engine.Param{
				{Name: "offset", Description: "How many letters to shift by; negative shifts back"},
			},
			Impl: engine.SingleFunc(cshift),
		},
		{
			Name:        "unshift",
			Description: "Lists all 26 Caesar shifts of the value, one per line.",
			Impl: transform(func(in string) string {
				var b strings.Builder
				for n := range alphabetSize {
					b.WriteString(caesar(in, n))
					b.WriteByte('\n')
				}

				return b.String()
			}),
		},
	}
}

func otp(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()

	var pad []int

	for _, r := range s.Value(args.At(0)) {
		if idx, ok := letterIndex(r); ok {
			pad = append(pad, idx)
		}
	}

	sign := 1

	switch mode := s.ValueOr(args.At(1), "encode"); mode {
	case "encode":
	case "decode":
		sign = -1
	default:
		return engine.Result{}, unknownMode(mode, "encode", "decode")
	}

	next := 0
	out := strings.Map(func(r rune) rune {
		if _, ok := letterIndex(r); !ok || next >= len(pad) {
			return r
		}

		n := pad[next]
		next++

		return shiftLetter(r, sign*n)
	}, in)

	return engine.Value(out), nil
}

func cshift(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	return engine.Value(caesar(in, s.Int(arg, in))), nil
}

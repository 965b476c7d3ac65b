package builtin

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/ctext/engine"
)

// arithmetic matches numbers joined by the four basic operators.
var arithmetic = regexp.MustCompile(
	`(-?\d+(?:\.\d+)?(?:\s*[+\-*/]\s*-?\d+(?:\.\d+)?)*)`,
)

// programs caches compiled expressions keyed by the xxh3 hash of their
// kind and source.
var programs sync.Map

// compile returns the cached program for source, compiling it on first use.
func compile(kind, source string, opts ...expr.Option) (*vm.Program, error) {
	key := xxh3.HashString(kind + "\x00" + source)

	if p, ok := programs.Load(key); ok {
		if program, ok := p.(*vm.Program); ok {
			return program, nil
		}
	}

	program, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, ErrInvalidExpression.Wrap(err).
			With(slog.String("source", source))
	}

	programs.Store(key, program)

	return program, nil
}

// predicateEnv is the environment visible to keep expressions.
func predicateEnv(value string, index int) map[string]any {
	return map[string]any{
		"value":  value,
		"index":  index,
		"length": runeLen(value),
		"words":  countWords(value),
	}
}

func calcOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "calc",
			Description: "Evaluates the arithmetic written in the value.",
			Impl:        engine.SingleFunc(calc),
		},
		{
			Name:        "keep",
			Description: "Removes values for which an expression is false.",
			Params: []engine.Param{
				{Name: "expression", Description: "A boolean expression over value, index, length, and words"},
			},
			Impl: engine.SingleFunc(keep),
		},
	}
}

func calc(
	ctx context.Context,
	s *engine.Session,
	in string,
	_ engine.Arg,
	_ int,
) (engine.Result, error) {
	out := arithmetic.ReplaceAllStringFunc(in, func(match string) string {
		program, err := compile("calc", match)
		if err != nil {
			s.Logger().DebugContext(ctx, "arithmetic skipped", slog.Any("error", err))

			return match
		}

		result, err := vm.Run(program, nil)
		if err != nil {
			return match
		}

		return formatNumber(result, match)
	})

	return engine.Value(out), nil
}

// formatNumber renders an arithmetic result without trailing zeros. Results
// that are not finite numbers fall back to the original text.
func formatNumber(result any, fallback string) string {
	switch n := result.(type) {
	case int:
		return strconv.Itoa(n)

	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fallback
		}

		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return strconv.FormatInt(int64(n), 10)
		}

		text := strconv.FormatFloat(n, 'f', 10, 64)
		text = strings.TrimRight(text, "0")

		return strings.TrimSuffix(text, ".")
	}

	return fmt.Sprint(result)
}

func keep(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	index int,
) (engine.Result, error) {
	source := s.Value(arg)
	if source == "" {
		return engine.Value(in), nil
	}

	program, err := compile("keep", source,
		expr.Env(predicateEnv("", 0)),
		expr.AsBool(),
	)
	if err != nil {
		return engine.Result{}, err
	}

	result, err := vm.Run(program, predicateEnv(in, index))
	if err != nil {
		return engine.Result{}, ErrInvalidExpression.Wrap(err).
			With(slog.String("source", source))
	}

	if ok, _ := result.(bool); !ok {
		return engine.Remove(), nil
	}

	return engine.Value(in), nil
}

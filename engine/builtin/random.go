package builtin

import (
	"context"
	"math"
	"strings"

	"github.com/ardnew/ctext/engine"
)

const lorem = `Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nulla semper ` +
	`odio nunc, in gravida mauris efficitur at. Pellentesque faucibus ligula et ` +
	`lacinia accumsan. Vestibulum ante ipsum primis in faucibus orci luctus et ` +
	`ultrices posuere cubilia curae; Ut accumsan nisi ut felis volutpat lacinia. ` +
	`Integer tristique nibh nulla, a congue nulla pellentesque in. Vestibulum ` +
	`mattis vulputate velit, ac hendrerit tellus malesuada in. Maecenas id eros ` +
	`sollicitudin nisi ultrices luctus id eu nibh. Curabitur hendrerit ultricies ` +
	`libero, dictum imperdiet eros sodales id. Suspendisse id consectetur metus. ` +
	`Nulla facilisi. Aliquam erat volutpat. Quisque viverra leo eget risus ` +
	`vehicula, id pharetra dolor fringilla. Phasellus tempus lorem vel ornare ` +
	`vestibulum. Proin non metus odio. Aliquam pellentesque convallis varius. ` +
	`Cras cursus diam id orci euismod lobortis.`

// placeholders maps each dummy text mode to its source text.
var placeholders = map[string]string{
	"lorem": lorem,
}

func randomOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "toss",
			Description: "Inserts items at random positions.",
			Params: []engine.Param{
				{Name: "amount", Description: "How many items to insert"},
				{Name: "item...", Description: "The candidates; one is chosen at random for each insertion"},
			},
			Impl: engine.SingleFunc(toss),
		},
		{
			Name:        "scramble",
			Description: "Rearranges characters at random.",
			Params: []engine.Param{
				{Name: "[mode]", Description: "The scramble method; only shuffle is supported"},
				{Name: "[factor]", Description: "The farthest a character may move (default 2)"},
				{Name: "[words]", Description: "true (default) moves only word characters"},
			},
			Impl: engine.SingleFunc(scramble),
		},
		{
			Name:        "dummy",
			Description: "Replaces the value with placeholder text.",
			Params: []engine.Param{
				{Name: "[mode]", Description: "The placeholder text; only lorem is supported"},
				{Name: "[words]", Description: "How many words to produce (default 15)"},
			},
			Impl: engine.SingleFunc(dummy),
		},
	}
}

func toss(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()
	times := s.Int(args.At(0), in)
	items := s.Values(args.From(1))

	if len(items) == 0 {
		return engine.Value(in), nil
	}

	rnd := s.Rand()
	out := in

	for range times {
		item := items[rnd.IntN(len(items))]

		pos := 0
		if n := runeLen(out); n > 0 {
			pos = rnd.IntN(n)
		}

		out = replaceAt(out, pos, 0, item)
	}

	return engine.Value(out), nil
}

func scramble(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()

	if mode := s.ValueOr(args.At(0), "shuffle"); mode != "shuffle" {
		return engine.Result{}, unknownMode(mode, "shuffle")
	}

	factor := s.IntOr(args.At(1), 2, in)
	words := s.ValueOr(args.At(2), "true") == "true"

	rnd := s.Rand()
	rs := []rune(in)

	for i := range rs {
		dir := float64(rnd.IntN(2)*2 - 1)
		j := clamp(int(math.Floor(rnd.Float64()*float64(factor)*dir))+i, 0, len(rs)-1)

		if !words || (isWord(rs[i]) && isWord(rs[j])) {
			rs[i], rs[j] = rs[j], rs[i]
		}
	}

	return engine.Value(string(rs)), nil
}

func dummy(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()
	mode := s.ValueOr(args.At(0), "lorem")

	text, ok := placeholders[mode]
	if !ok {
		return engine.Result{}, unknownMode(mode, "lorem")
	}

	count := s.IntOr(args.At(1), 15, in)
	if err := checkGrowth(count, 1); err != nil {
		return engine.Result{}, err
	}

	source := strings.Fields(text)

	// Longer requests cycle through the source text.
	words := make([]string, max(count, 0))
	for i := range words {
		words[i] = source[i%len(source)]
	}

	return engine.Value(strings.Join(words, " ")), nil
}

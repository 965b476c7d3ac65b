package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/ardnew/ctext/engine"
	"github.com/ardnew/ctext/log"
	"github.com/ardnew/ctext/output"
	"github.com/ardnew/ctext/recipe"
)

// Run applies the operator invocations to the inputs.
type Run struct {
	Inputs []string `arg:"" help:"Input text, a ./relative or /absolute file to read, or '-' for stdin" name:"input" optional:""`

	Output []string `help:"Existing file to overwrite with a result (repeatable)" placeholder:"PATH" short:"o"`
	Recipe string   `help:"YAML recipe of inputs, outputs, and steps to run first" placeholder:"FILE" short:"r" type:"existingfile"`

	Format string `default:"text"            enum:"${outputFormatEnum}" help:"Value output format (${enum})"`
	MaxLen int    `default:"${outputMaxLen}"                           help:"Longest value printed without --full"`
	Seed   uint64 `default:"0"                                         help:"Seed for random operators (0 picks one)"`

	Strict bool `help:"Abort when a numeric argument is malformed"`
	Quiet  bool `help:"Do not print values"                         short:"q"`
	Full   bool `help:"Print values of any length"                  short:"f"`
	Timing bool `help:"Print how long each operator took"           short:"t"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context, reg *engine.Registry) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	start := time.Now()

	inputs, outputs, invs := r.Inputs, r.Output, invocationsFrom(ctx)

	if r.Recipe != "" {
		rec, err := recipe.LoadFile(r.Recipe)
		if err != nil {
			return err
		}

		inputs = append(slices.Clone(rec.Inputs), inputs...)
		outputs = append(slices.Clone(rec.Outputs), outputs...)
		invs = append(rec.Invocations(), invs...)
	}

	format, err := output.ParseFormat(r.Format)
	if err != nil {
		return err
	}

	stdout := stdoutFrom(ctx)
	sink := output.New(stdout,
		output.WithFormat(format),
		output.WithMaxLen(r.MaxLen),
		output.WithFull(r.Full),
		output.WithQuiet(r.Quiet),
		output.WithLogger(log.Default()),
	)

	var reports []engine.StepReport

	exec := engine.NewExecutor(reg, r.options(stdout, func(rep engine.StepReport) {
		reports = append(reports, rep)
	})...)

	plan, err := exec.Plan(invs)
	if err != nil {
		return err
	}

	s := exec.NewSession()

	values, err := resolveInputs(ctx, s, inputs)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "run start",
		slog.Int("inputs", len(values)),
		slog.Int("steps", len(plan)),
		slog.Int("outputs", len(outputs)),
	)

	values, err = s.Exec(ctx, values, plan)
	if err != nil {
		return err
	}

	if err := sink.Print(ctx, values); err != nil {
		return err
	}

	if _, err := sink.Write(ctx, s, outputs, values); err != nil {
		if !errors.Is(err, output.ErrTooFewValues) {
			return err
		}

		sink.Failure(err)
	}

	if r.Timing {
		for _, rep := range reports {
			sink.Timing("operator "+rep.Name, rep.Elapsed)
		}

		sink.Timing("processing operations", time.Since(start))
	}

	return nil
}

// options returns the executor options selected by the run flags.
func (r *Run) options(out io.Writer, observe func(engine.StepReport)) []engine.Option {
	opts := []engine.Option{
		engine.WithLogger(log.Default()),
		engine.WithOutput(out),
		engine.WithStrict(r.Strict),
		engine.WithObserver(observe),
	}

	if r.Seed != 0 {
		opts = append(opts, engine.WithRand(rand.New(rand.NewPCG(r.Seed, r.Seed))))
	}

	return opts
}

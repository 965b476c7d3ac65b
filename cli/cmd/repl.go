package cmd

import (
	"context"
	"log/slog"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ctext/cli/cmd/repl"
	"github.com/ardnew/ctext/engine"
	"github.com/ardnew/ctext/log"
)

// Repl starts an interactive session over the inputs.
type Repl struct {
	Inputs []string `arg:"" help:"Initial input text, a ./relative or /absolute file to read, or '-' for stdin" name:"input" optional:""`

	Seed   uint64 `default:"0" help:"Seed for random operators (0 picks one)"`
	Strict bool   `help:"Reject malformed numeric arguments"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, reg *engine.Registry) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts := (&Run{Strict: r.Strict, Seed: r.Seed}).options(stdoutFrom(ctx), nil)

	values, err := resolveInputs(ctx, engine.NewExecutor(reg, opts...).NewSession(), r.Inputs)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	cfg := repl.Config{
		Values:   values,
		CacheDir: cacheDir,
		Logger:   log.Default(),
		Engine:   opts,
	}

	// Keystrokes come from the terminal once stdin has been read as input.
	if slices.Contains(r.Inputs, stdinToken) {
		cfg.Program = append(cfg.Program, tea.WithInputTTY())
	}

	log.DebugContext(ctx, "repl start",
		slog.Int("values", len(values)),
		slog.String("cache_dir", cacheDir),
	)

	return repl.Run(ctx, reg, cfg)
}

package repl

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/ardnew/ctext/engine"
	"github.com/ardnew/ctext/log"
)

// maxUndo bounds the number of value lists kept for undo.
const maxUndo = 64

// state is the pipeline state shared by every line of a REPL session.
//
// Values and variables persist from one line to the next. Each evaluated
// line pushes the previous values onto the undo stack.
type state struct {
	exec    *engine.Executor
	session *engine.Session
	vars    *engine.Vars
	out     *bytes.Buffer
	logger  log.Logger
	initial []string
	values  []string
	undo    [][]string
}

func newState(
	reg *engine.Registry,
	values []string,
	logger log.Logger,
	opts ...engine.Option,
) *state {
	st := &state{
		vars:   engine.NewVars(),
		out:    &bytes.Buffer{},
		logger: logger,
	}

	opts = append(opts,
		engine.WithLogger(logger),
		engine.WithOutput(st.out),
		engine.WithVars(st.vars),
	)

	st.exec = engine.NewExecutor(reg, opts...)
	st.session = st.exec.NewSession()
	st.initial = slices.Clone(values)
	if len(st.initial) == 0 {
		st.initial = []string{""}
	}

	st.values = slices.Clone(st.initial)

	return st
}

// registry returns the operators available to the session.
func (st *state) registry() *engine.Registry { return st.exec.Registry() }

// eval parses line as one invocation and applies it to the current values.
// It returns whatever the operator printed while it ran. The values are left
// unchanged when the invocation fails.
func (st *state) eval(ctx context.Context, line string) (string, error) {
	inv, err := parseLine(line)
	if err != nil {
		return "", err
	}

	plan, err := st.exec.Plan([]engine.Invocation{inv})
	if err != nil {
		return "", err
	}

	st.out.Reset()

	next, err := st.session.Exec(ctx, slices.Clone(st.values), plan)
	if err != nil {
		return st.out.String(), err
	}

	st.undo = append(st.undo, st.values)
	if len(st.undo) > maxUndo {
		st.undo = st.undo[1:]
	}

	st.values = next

	st.logger.TraceContext(ctx, "repl step",
		slog.String("invocation", inv.String()),
		slog.Int("values", len(next)),
	)

	return st.out.String(), nil
}

// revert restores the values in effect before the last evaluated line.
func (st *state) revert() error {
	if len(st.undo) == 0 {
		return ErrNothingToUndo
	}

	last := len(st.undo) - 1
	st.values, st.undo = st.undo[last], st.undo[:last]

	return nil
}

// reset restores the initial inputs and clears every variable.
func (st *state) reset() {
	st.values = slices.Clone(st.initial)
	st.undo = nil
	st.vars.Clear()
}

// parseLine parses a line of the form "name[sel] argument".
//
// A leading "-" on the name is accepted so lines can be pasted from a
// command line. The selection may contain blanks. The argument is everything
// after the first run of blanks following the selection or name; a line with
// no argument yields [engine.None].
func parseLine(line string) (engine.Invocation, error) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	line = strings.TrimLeft(line, "-")

	from := 0
	if open := strings.IndexByte(line, '['); open >= 0 && open < firstSpace(line) {
		end := strings.IndexByte(line[open:], ']')
		if end < 0 {
			return engine.Invocation{}, ErrUnclosedSelect
		}

		from = open + end
	}

	head, arg := line, ""
	if i := firstSpace(line[from:]); i < len(line[from:]) {
		head, arg = line[:from+i], line[from+i+1:]
	}

	inv := engine.Invocation{Select: engine.None(), Arg: engine.None()}

	name, sel, hasSel := strings.Cut(head, "[")
	if hasSel {
		inner, ok := strings.CutSuffix(sel, "]")
		if !ok {
			return engine.Invocation{}, ErrUnclosedSelect
		}

		inv.Select = engine.Some(inner)
	}

	if name == "" {
		return engine.Invocation{}, ErrNoOperator
	}

	inv.Name = name

	if arg = strings.TrimLeftFunc(arg, unicode.IsSpace); arg != "" {
		inv.Arg = engine.Some(arg)
	}

	return inv, nil
}

// firstSpace returns the index of the first blank in s, or len(s).
func firstSpace(s string) int {
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return i
	}

	return len(s)
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/ardnew/ctext/log"
)

// Invocation is one requested application of an operator.
//
// Name is the operator name as written, which may be an alias. Select holds
// the raw text between the brackets of a selection suffix, or [None] when the
// invocation applies to every value. Arg holds the raw argument, or [None]
// when no argument was given.
type Invocation struct {
	Name   string
	Select Arg
	Arg    Arg
}

// Call returns an invocation of name with the given argument and no
// selection.
func Call(name string, arg Arg) Invocation {
	return Invocation{Name: name, Arg: arg}
}

// String formats inv the way it is written on the command line.
func (inv Invocation) String() string {
	var b strings.Builder

	b.WriteString("-" + inv.Name)

	if !inv.Select.IsNone() {
		b.WriteString("[" + inv.Select.Text() + "]")
	}

	if !inv.Arg.IsNone() {
		b.WriteString(" " + inv.Arg.Text())
	}

	return b.String()
}

// Step is a planned invocation bound to its operator.
type Step struct {
	Op *Operator
	Invocation
	Position int
}

func (st Step) attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("operator", st.Op.Name),
		slog.Int("position", st.Position),
	}
}

// Plan is an ordered list of steps whose operators are all known.
type Plan []Step

// StepReport describes one completed step.
type StepReport struct {
	Name     string
	Position int
	In       int
	Out      int
	Elapsed  time.Duration
}

// Option configures an [Executor].
type Option func(config) config

type config struct {
	logger  log.Logger
	out     io.Writer
	vars    *Vars
	rand    *rand.Rand
	observe func(StepReport)
	strict  bool
}

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithLogger sets the logger used by sessions and operators.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithOutput sets the writer that operators print to (e.g. view and help).
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.out = w

		return c
	}
}

// WithVars sets the variable store shared by sessions.
func WithVars(vars *Vars) Option {
	return func(c config) config {
		c.vars = vars

		return c
	}
}

// WithRand sets the random source used by randomized operators.
func WithRand(rnd *rand.Rand) Option {
	return func(c config) config {
		c.rand = rnd

		return c
	}
}

// WithObserver sets a function called after every completed step.
func WithObserver(fn func(StepReport)) Option {
	return func(c config) config {
		c.observe = fn

		return c
	}
}

// WithStrict makes malformed numeric arguments abort the pipeline.
func WithStrict(strict bool) Option {
	return func(c config) config {
		c.strict = strict

		return c
	}
}

// Executor runs operator pipelines against a registry.
type Executor struct {
	registry *Registry
	config
}

// NewExecutor returns an executor resolving operators from reg.
func NewExecutor(reg *Registry, opts ...Option) *Executor {
	c := apply(config{out: io.Discard}, opts...)

	return &Executor{registry: reg, config: c}
}

// Registry returns the registry used by e.
func (e *Executor) Registry() *Registry { return e.registry }

// Plan resolves every invocation to its operator. It fails with
// [ErrUnknownOperator] on the first name that is not registered, before
// anything is executed.
func (e *Executor) Plan(invs []Invocation) (Plan, error) {
	plan := make(Plan, 0, len(invs))

	for pos, inv := range invs {
		op, err := e.registry.Lookup(inv.Name)
		if err != nil {
			var ee *Error
			if errors.As(err, &ee) {
				return nil, ee.With(slog.Int("position", pos))
			}

			return nil, err
		}

		plan = append(plan, Step{Op: op, Invocation: inv, Position: pos})
	}

	return plan, nil
}

// NewSession returns a session with its own variable store, unless one was
// provided with [WithVars].
func (e *Executor) NewSession() *Session {
	vars := e.vars
	if vars == nil {
		vars = NewVars()
	}

	rnd := e.rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Session{
		Resolver: NewResolver(vars, e.logger, e.strict),
		registry: e.registry,
		out:      e.out,
		rand:     rnd,
		logger:   e.logger,
		observe:  e.observe,
	}
}

// Run plans invs, resolves inputs and executes the plan in a new session.
func (e *Executor) Run(
	ctx context.Context,
	inputs []string,
	invs []Invocation,
) ([]string, error) {
	plan, err := e.Plan(invs)
	if err != nil {
		return nil, err
	}

	s := e.NewSession()

	return s.Exec(ctx, s.Inputs(inputs), plan)
}

// Session is the execution context of one pipeline run. It owns the variable
// store and is handed to every operator.
type Session struct {
	*Resolver

	registry *Registry
	out      io.Writer
	rand     *rand.Rand
	logger   log.Logger
	observe  func(StepReport)
}

// Registry returns the operator registry of s.
func (s *Session) Registry() *Registry { return s.registry }

// Out returns the writer operators print to.
func (s *Session) Out() io.Writer { return s.out }

// Rand returns the random source of s.
func (s *Session) Rand() *rand.Rand { return s.rand }

// Logger returns the logger of s.
func (s *Session) Logger() log.Logger { return s.logger }

// Inputs resolves input tokens to the initial value list. Each token is
// resolved like an argument, so file paths are dereferenced. No tokens yields
// a single empty value.
func (s *Session) Inputs(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{""}
	}

	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = s.Value(Some(tok))
	}

	return values
}

// Write writes text to the existing file at path. Failures and missing files
// are logged as warnings and reported as false.
func (s *Session) Write(ctx context.Context, path, text string) bool {
	ok, err := WriteExisting(path, text)
	if err != nil {
		s.logger.WarnContext(ctx, "output not written", slog.Any("error", err))

		return false
	}

	if !ok {
		s.logger.WarnContext(ctx, "output file does not exist, skipped",
			slog.String("path", path),
		)
	}

	return ok
}

// Exec folds plan over values.
//
// On failure Exec returns the values produced by the last completed step
// together with the error.
func (s *Session) Exec(
	ctx context.Context,
	values []string,
	plan Plan,
) ([]string, error) {
	for _, st := range plan {
		if err := ctx.Err(); err != nil {
			return values, err
		}

		next, err := s.Apply(ctx, values, st)
		if err != nil {
			return values, err
		}

		values = next
	}

	return values, nil
}

// Apply executes a single step against values and returns the next value
// list.
func (s *Session) Apply(
	ctx context.Context,
	values []string,
	st Step,
) ([]string, error) {
	start := time.Now()
	sel := ParseSelection(s.Resolver, st.Select, "")

	var (
		next []string
		err  error
	)

	switch fn := st.Op.Impl.(type) {
	case SingleFunc:
		next, err = s.single(ctx, fn, values, sel, st)

	case MultiFunc:
		next, err = s.multi(ctx, fn, values, sel, st)

	default:
		err = ErrOperatorFailed.
			Wrap(fmt.Errorf("no implementation")).
			With(st.attrs()...)
	}

	if err != nil {
		// The step's own failure supersedes any argument error it recorded.
		_ = s.resetErr()

		return nil, err
	}

	if err := s.resetErr(); err != nil {
		var ee *Error
		if errors.As(err, &ee) {
			return nil, ee.With(st.attrs()...)
		}

		return nil, err
	}

	report := StepReport{
		Name:     st.Op.Name,
		Position: st.Position,
		In:       len(values),
		Out:      len(next),
		Elapsed:  time.Since(start),
	}

	s.logger.TraceContext(ctx, "step",
		slog.String("operator", report.Name),
		slog.Int("position", report.Position),
		slog.String("arity", st.Op.Arity().String()),
		slog.Int("in", report.In),
		slog.Int("out", report.Out),
		slog.Duration("elapsed", report.Elapsed),
	)

	if s.observe != nil {
		s.observe(report)
	}

	return next, nil
}

func (s *Session) single(
	ctx context.Context,
	fn SingleFunc,
	values []string,
	sel Selection,
	st Step,
) ([]string, error) {
	var (
		next = make([]string, 0, len(values))
		tail []string
	)

	for i, v := range values {
		if !sel.Has(i) {
			next = append(next, v)

			continue
		}

		res, err := fn(ctx, s, v, st.Arg, i)
		if err != nil {
			return nil, ErrOperatorFailed.Wrap(err).
				With(st.attrs()...).
				With(slog.Int("index", i))
		}

		if res.IsRemove() {
			continue
		}

		next = append(next, res.Head())
		tail = append(tail, res.Tail()...)
	}

	return append(next, tail...), nil
}

func (s *Session) multi(
	ctx context.Context,
	fn MultiFunc,
	values []string,
	sel Selection,
	st Step,
) ([]string, error) {
	if sel.All() {
		out, err := fn(ctx, s, slices.Clone(values), st.Arg)
		if err != nil {
			return nil, ErrOperatorFailed.Wrap(err).With(st.attrs()...)
		}

		return out, nil
	}

	var next, picked []string

	for i, v := range values {
		if sel.Has(i) {
			picked = append(picked, v)
		} else {
			next = append(next, v)
		}
	}

	out, err := fn(ctx, s, picked, st.Arg)
	if err != nil {
		return nil, ErrOperatorFailed.Wrap(err).With(st.attrs()...)
	}

	return append(next, out...), nil
}

package cmd

import (
	"context"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ctext/engine"
	"github.com/ardnew/ctext/output"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	invocationsKey struct{}
	stdinKey       struct{}
	stdoutKey      struct{}
)

// WithInvocations returns a new context.Context containing the operator
// invocations scanned from the command line.
func WithInvocations(ctx context.Context, invs []engine.Invocation) context.Context {
	return context.WithValue(ctx, invocationsKey{}, slices.Clip(invs))
}

func invocationsFrom(ctx context.Context) []engine.Invocation {
	invs, _ := ctx.Value(invocationsKey{}).([]engine.Invocation)

	return invs
}

// WithStdin returns a new context.Context whose commands read the "-" input
// from r instead of [os.Stdin].
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithStdout returns a new context.Context whose commands print to w instead
// of [os.Stdout].
func WithStdout(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

func stdoutFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinToken is the input token read from stdin.
const stdinToken = "-"

// Vars returns the kong variables referenced by command flags.
func Vars() kong.Vars {
	return kong.Vars{
		"outputFormatEnum": strings.Join(slices.Collect(output.Formats()), ","),
		"outputMaxLen":     strconv.Itoa(output.DefaultMaxLen),
	}
}

// resolveInputs returns the initial value list for tokens. Every "-" token
// reads the same text from stdin, which is consumed at most once with a single
// trailing newline removed. Other tokens are resolved like arguments.
func resolveInputs(
	ctx context.Context,
	s *engine.Session,
	tokens []string,
) ([]string, error) {
	if len(tokens) == 0 {
		return s.Inputs(nil), nil
	}

	values := make([]string, len(tokens))

	var stdin *string

	for i, tok := range tokens {
		if tok != stdinToken {
			values[i] = s.Value(engine.Some(tok))

			continue
		}

		if stdin == nil {
			text, err := engine.ReadAll(stdinFrom(ctx))
			if err != nil {
				return nil, ErrReadStdin.Wrap(err)
			}

			text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
			stdin = &text
		}

		values[i] = *stdin
	}

	return values, nil
}

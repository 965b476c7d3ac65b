package repl

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/ardnew/ctext/engine"
	"github.com/ardnew/ctext/engine/builtin"
	"github.com/ardnew/ctext/log"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		want    string
		wantErr error
	}{
		{line: "reverse", want: "-reverse"},
		{line: "-reverse", want: "-reverse"},
		{line: "  case upper", want: "-case upper"},
		{line: "case[0,2] upper", want: "-case[0,2] upper"},
		{line: "join  a b", want: "-join a b"},
		{line: "pad 5, ", want: "-pad 5, "},
		{line: "join[0, 2] -", want: "-join[0, 2] -"},
		{line: "case[ 1 ]", want: "-case[ 1 ]"},
		{line: "case[0 upper", wantErr: ErrUnclosedSelect},
		{line: "[0] upper", wantErr: ErrNoOperator},
		{line: "", wantErr: ErrNoOperator},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			inv, err := parseLine(tt.line)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseLine(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}

			if err == nil && inv.String() != tt.want {
				t.Errorf("parseLine(%q) = %q, want %q", tt.line, inv.String(), tt.want)
			}
		})
	}
}

func TestState(t *testing.T) {
	ctx := context.Background()
	st := newState(builtin.NewRegistry(), []string{"hello", "world"}, log.Logger{})

	steps := []struct {
		line    string
		want    []string
		wantErr error
	}{
		{line: "case upper", want: []string{"HELLO", "WORLD"}},
		{line: "rev[1]", want: []string{"HELLO", "DLROW"}},
		{line: "set[0] greeting", want: []string{"HELLO", "DLROW"}},
		{line: "join ?greeting", want: []string{"HELLOHELLODLROW"}},
		{line: "nope", want: []string{"HELLOHELLODLROW"}, wantErr: engine.ErrUnknownOperator},
	}

	for _, step := range steps {
		if _, err := st.eval(ctx, step.line); !errors.Is(err, step.wantErr) {
			t.Fatalf("eval(%q) error = %v, want %v", step.line, err, step.wantErr)
		}

		if !slices.Equal(st.values, step.want) {
			t.Fatalf("after %q values = %q, want %q", step.line, st.values, step.want)
		}
	}

	if err := st.revert(); err != nil {
		t.Fatalf("revert() error = %v", err)
	}

	if want := []string{"HELLO", "DLROW"}; !slices.Equal(st.values, want) {
		t.Errorf("after undo values = %q, want %q", st.values, want)
	}

	if got, ok := st.vars.Get("greeting"); !ok || got != "HELLO" {
		t.Errorf("greeting = %q, %v; want HELLO", got, ok)
	}

	st.reset()

	if want := []string{"hello", "world"}; !slices.Equal(st.values, want) {
		t.Errorf("after reset values = %q, want %q", st.values, want)
	}

	if st.vars.Len() != 0 {
		t.Errorf("after reset %d variables remain", st.vars.Len())
	}

	if err := st.revert(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("revert() after reset error = %v, want %v", err, ErrNothingToUndo)
	}
}

func TestState_StrictErrorDoesNotCarryOver(t *testing.T) {
	ctx := context.Background()
	st := newState(builtin.NewRegistry(), []string{"abc"}, log.Logger{}, engine.WithStrict(true))

	if _, err := st.eval(ctx, "wrap foo,abc"); !errors.Is(err, engine.ErrOperatorFailed) {
		t.Fatalf("eval(wrap) error = %v, want %v", err, engine.ErrOperatorFailed)
	}

	if _, err := st.eval(ctx, "reverse"); err != nil {
		t.Fatalf("eval(reverse) after failed step error = %v", err)
	}

	if want := []string{"cba"}; !slices.Equal(st.values, want) {
		t.Errorf("values = %q, want %q", st.values, want)
	}
}

func TestState_PrintedOutput(t *testing.T) {
	st := newState(builtin.NewRegistry(), nil, log.Logger{})

	printed, err := st.eval(context.Background(), "help reverse")
	if err != nil {
		t.Fatalf("eval() error = %v", err)
	}

	if printed == "" {
		t.Error("help printed nothing")
	}

	if !slices.Equal(st.values, []string{""}) {
		t.Errorf("values = %q, want one empty value", st.values)
	}
}

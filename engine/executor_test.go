package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/ctext/log"
)

var zeroLogger log.Logger

func upperOp(
	_ context.Context,
	_ *Session,
	in string,
	_ Arg,
	_ int,
) (Result, error) {
	return Value(strings.ToUpper(in)), nil
}

// testRegistry returns a registry of small operators covering each result
// kind.
func testRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(
		Operator{Name: "upper", Aliases: []string{"up"}, Impl: SingleFunc(upperOp)},
		Operator{
			Name: "fan",
			Impl: SingleFunc(func(_ context.Context, _ *Session, in string, _ Arg, _ int) (Result, error) {
				if in == "x" {
					return Values("X", "Z"), nil
				}

				return Value(in), nil
			}),
		},
		Operator{
			Name: "drop",
			Impl: SingleFunc(func(_ context.Context, _ *Session, in string, _ Arg, _ int) (Result, error) {
				if in == "" {
					return Remove(), nil
				}

				return Value(in), nil
			}),
		},
		Operator{
			Name: "index",
			Impl: SingleFunc(func(_ context.Context, _ *Session, in string, _ Arg, i int) (Result, error) {
				return Value(fmt.Sprintf("%s%d", in, i)), nil
			}),
		},
		Operator{
			Name: "store",
			Impl: SingleFunc(func(_ context.Context, s *Session, in string, arg Arg, _ int) (Result, error) {
				s.Vars().Set(s.Value(arg), in)

				return Value(in), nil
			}),
		},
		Operator{
			Name: "count",
			Impl: SingleFunc(func(_ context.Context, s *Session, in string, arg Arg, _ int) (Result, error) {
				return Value(fmt.Sprint(s.Int(arg, in))), nil
			}),
		},
		Operator{
			Name: "fail",
			Impl: SingleFunc(func(context.Context, *Session, string, Arg, int) (Result, error) {
				return Result{}, errors.New("boom")
			}),
		},
		Operator{
			Name: "miscount",
			Impl: SingleFunc(func(_ context.Context, s *Session, in string, arg Arg, _ int) (Result, error) {
				s.Int(arg, in)

				return Result{}, errors.New("gave up")
			}),
		},
		Operator{
			Name: "join",
			Impl: MultiFunc(func(_ context.Context, s *Session, in []string, arg Arg) ([]string, error) {
				return []string{strings.Join(in, s.Value(arg))}, nil
			}),
		},
	)

	return r
}

func TestExecutor_Run(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		invs   []Invocation
		want   []string
	}{
		{
			name:   "no_inputs",
			inputs: nil,
			invs:   nil,
			want:   []string{""},
		},
		{
			name:   "order_preserved",
			inputs: []string{"a", "b", "c"},
			invs:   []Invocation{Call("upper", None())},
			want:   []string{"A", "B", "C"},
		},
		{
			name:   "alias",
			inputs: []string{"a"},
			invs:   []Invocation{Call("up", None())},
			want:   []string{"A"},
		},
		{
			name:   "fan_out_then_upper",
			inputs: []string{"x", "y"},
			invs: []Invocation{
				Call("fan", None()),
				{Name: "upper", Select: Some("0,2")},
			},
			want: []string{"X", "y", "Z"},
		},
		{
			name:   "removal",
			inputs: []string{"a", "", "b"},
			invs:   []Invocation{Call("drop", None())},
			want:   []string{"a", "b"},
		},
		{
			name:   "multi_selection_appends",
			inputs: []string{"a", "b", "c"},
			invs:   []Invocation{{Name: "join", Select: Some("0,2"), Arg: Some("-")}},
			want:   []string{"b", "a-c"},
		},
		{
			name:   "multi_all",
			inputs: []string{"a", "b", "c"},
			invs:   []Invocation{Call("join", Some("+"))},
			want:   []string{"a+b+c"},
		},
		{
			name:   "pre_image_index",
			inputs: []string{"", "b", "c"},
			invs:   []Invocation{Call("drop", None()), {Name: "index", Select: Some("1")}},
			want:   []string{"b", "c1"},
		},
		{
			name:   "tails_appended_after_step",
			inputs: []string{"x", "x"},
			invs:   []Invocation{Call("fan", None()), Call("index", None())},
			want:   []string{"X0", "X1", "Z2", "Z3"},
		},
		{
			name:   "selection_out_of_range",
			inputs: []string{"a"},
			invs:   []Invocation{{Name: "upper", Select: Some("5")}},
			want:   []string{"a"},
		},
		{
			name:   "variable_round_trip",
			inputs: []string{"3", "abcdef"},
			invs: []Invocation{
				{Name: "store", Select: Some("0"), Arg: Some("n")},
				{Name: "count", Select: Some("1"), Arg: Some("?n")},
			},
			want: []string{"3", "3"},
		},
		{
			name:   "selection_reads_variable",
			inputs: []string{"1", "a", "b"},
			invs: []Invocation{
				{Name: "store", Select: Some("0"), Arg: Some("i")},
				{Name: "upper", Select: Some("?i")},
			},
			want: []string{"1", "A", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExecutor(testRegistry())

			got, err := e.Run(context.Background(), tt.inputs, tt.invs)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecutor_Run_UnknownOperator(t *testing.T) {
	var calls int

	e := NewExecutor(testRegistry(), WithObserver(func(StepReport) { calls++ }))

	_, err := e.Run(context.Background(), []string{"a"}, []Invocation{
		Call("upper", None()),
		Call("nosuch", None()),
	})
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("Run() error = %v, want ErrUnknownOperator", err)
	}

	if calls != 0 {
		t.Errorf("%d steps ran before the unknown operator was reported", calls)
	}
}

func TestExecutor_Run_OperatorFailure(t *testing.T) {
	e := NewExecutor(testRegistry())
	s := e.NewSession()

	plan, err := e.Plan([]Invocation{Call("upper", None()), Call("fail", None())})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Exec(context.Background(), []string{"a"}, plan)
	if !errors.Is(err, ErrOperatorFailed) {
		t.Fatalf("Exec() error = %v, want ErrOperatorFailed", err)
	}

	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q does not carry its cause", err)
	}

	if !slices.Equal(got, []string{"A"}) {
		t.Errorf("Exec() = %q, want values of the last completed step", got)
	}
}

func TestExecutor_Run_Strict(t *testing.T) {
	invs := []Invocation{Call("count", Some("many"))}

	got, err := NewExecutor(testRegistry()).Run(context.Background(), []string{"a"}, invs)
	if err != nil || !slices.Equal(got, []string{"0"}) {
		t.Errorf("permissive Run() = (%q, %v), want ([0], nil)", got, err)
	}

	_, err = NewExecutor(testRegistry(), WithStrict(true)).
		Run(context.Background(), []string{"a"}, invs)
	if !errors.Is(err, ErrMalformedArgument) {
		t.Errorf("strict Run() error = %v, want ErrMalformedArgument", err)
	}
}

func TestSession_Apply_StrictErrorCleared(t *testing.T) {
	ctx := context.Background()
	e := NewExecutor(testRegistry(), WithStrict(true))
	s := e.NewSession()

	plan, err := e.Plan([]Invocation{Call("miscount", Some("many")), Call("upper", None())})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Apply(ctx, []string{"a"}, plan[0]); !errors.Is(err, ErrOperatorFailed) {
		t.Fatalf("Apply(miscount) error = %v, want ErrOperatorFailed", err)
	}

	got, err := s.Apply(ctx, []string{"a"}, plan[1])
	if err != nil {
		t.Fatalf("Apply(upper) after failed step error = %v", err)
	}

	if !slices.Equal(got, []string{"A"}) {
		t.Errorf("Apply(upper) = %q, want [A]", got)
	}
}

func TestExecutor_Run_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecutor(testRegistry()).
		Run(ctx, []string{"a"}, []Invocation{Call("upper", None())})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestExecutor_Observer(t *testing.T) {
	var reports []StepReport

	e := NewExecutor(testRegistry(),
		WithObserver(func(r StepReport) { reports = append(reports, r) }),
	)

	_, err := e.Run(context.Background(), []string{"x", "y"}, []Invocation{
		Call("fan", None()),
		Call("join", None()),
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	if r := reports[0]; r.Name != "fan" || r.In != 2 || r.Out != 3 {
		t.Errorf("first report = %+v", r)
	}

	if r := reports[1]; r.Position != 1 || r.Out != 1 {
		t.Errorf("second report = %+v", r)
	}
}

func TestSession_SharedVars(t *testing.T) {
	vars := NewVars()
	e := NewExecutor(testRegistry(), WithVars(vars), WithOutput(&bytes.Buffer{}))

	_, err := e.Run(context.Background(), []string{"kept"}, []Invocation{
		Call("store", Some("v")),
	})
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := e.NewSession().Vars().Get("v"); got != "kept" {
		t.Errorf("shared variable = %q, want kept", got)
	}
}

func TestInvocation_String(t *testing.T) {
	tests := []struct {
		inv  Invocation
		want string
	}{
		{Call("reverse", None()), "-reverse"},
		{Call("case", Some("upper")), "-case upper"},
		{Invocation{Name: "join", Select: Some("0,2"), Arg: Some("-")}, "-join[0,2] -"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.inv.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

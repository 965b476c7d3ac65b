package recipe

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/ctext/engine"
	"github.com/ardnew/ctext/engine/builtin"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		inputs  []string
		outputs []string
		want    []string
		wantErr error
	}{
		{
			name: "full",
			src: `
inputs: [hello, ./in.txt]
outputs: [./out.txt]
steps:
  - op: case
    arg: upper
  - op: reverse
  - op: sub
    select: "0,1"
    arg: 0,3
`,
			inputs:  []string{"hello", "./in.txt"},
			outputs: []string{"./out.txt"},
			want:    []string{"-case upper", "-reverse", "-sub[0,1] 0,3"},
		},
		{
			name: "numeric_argument",
			src: `
steps:
  - op: repeat
    arg: 3
  - op: pad
    arg: 1.5
`,
			want: []string{"-repeat 3", "-pad 1.5"},
		},
		{
			name: "sequence_argument",
			src: `
steps:
  - op: toss
    arg: [2, "a,b", c]
`,
			want: []string{`-toss 2,a\,b,c`},
		},
		{
			name: "dashed_name",
			src: `
steps:
  - op: --rev
`,
			want: []string{"-rev"},
		},
		{
			name: "empty_argument",
			src: `
steps:
  - op: join
    arg: ""
`,
			want: []string{"-join "},
		},
		{
			name: "empty",
			src:  "",
			want: []string{},
		},
		{
			name:    "missing_operator",
			src:     "steps:\n  - arg: x\n",
			wantErr: ErrMissingOperator,
		},
		{
			name:    "unknown_key",
			src:     "steps: []\nfoo: bar\n",
			wantErr: ErrDecode,
		},
		{
			name:    "mapping_argument",
			src:     "steps:\n  - op: set\n    arg: {a: b}\n",
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := Load(strings.NewReader(tt.src))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if strings.Join(r.Inputs, "|") != strings.Join(tt.inputs, "|") {
				t.Errorf("Inputs = %q, want %q", r.Inputs, tt.inputs)
			}

			if strings.Join(r.Outputs, "|") != strings.Join(tt.outputs, "|") {
				t.Errorf("Outputs = %q, want %q", r.Outputs, tt.outputs)
			}

			invs := r.Invocations()
			if len(invs) != len(tt.want) {
				t.Fatalf("got %d invocations, want %d", len(invs), len(tt.want))
			}

			for i, inv := range invs {
				if got := inv.String(); got != tt.want[i] {
					t.Errorf("invocation %d = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestStep_InvocationSentinels(t *testing.T) {
	t.Parallel()

	inv := Step{Op: "reverse"}.Invocation()
	if !inv.Select.IsNone() || !inv.Arg.IsNone() {
		t.Errorf("absent select and arg should be None, got %v", inv)
	}

	empty := Text("")

	inv = Step{Op: "join", Arg: &empty}.Invocation()
	if inv.Arg.IsNone() || inv.Arg.Text() != "" {
		t.Errorf("empty arg should be Some(\"\"), got %v", inv.Arg)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.yaml")

	if err := os.WriteFile(path, []byte("steps:\n  - op: reverse\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	got, err := engine.NewExecutor(builtin.NewRegistry()).Run(t.Context(), []string{"abc"}, r.Invocations())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(got) != 1 || got[0] != "cba" {
		t.Errorf("Run() = %q, want [cba]", got)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrOpen) {
		t.Errorf("LoadFile(missing) error = %v, want ErrOpen", err)
	}
}

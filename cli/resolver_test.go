package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want map[string]any
	}{
		{
			name: "scalars",
			src:  "config:\n  log-level: debug\n  max_len: 80\n  strict: true\n  ratio: 1.5\n",
			want: map[string]any{
				"log-level": "debug",
				"max-len":   "80",
				"strict":    "true",
				"ratio":     "1.5",
			},
		},
		{
			name: "sequence",
			src:  "config:\n  output: [a.txt, b.txt]\n",
			want: map[string]any{"output": "a.txt,b.txt"},
		},
		{
			name: "ignored_values",
			src:  "config:\n  empty:\n  nested: {a: 1}\n  quiet: false\n",
			want: map[string]any{"empty": nil, "nested": nil, "quiet": "false"},
		},
		{
			name: "other_section",
			src:  "settings:\n  strict: true\n",
			want: map[string]any{"strict": nil},
		},
		{
			name: "empty_file",
			src:  "",
			want: map[string]any{"strict": nil},
		},
		{
			name: "malformed",
			src:  "config: [unclosed\n",
			want: map[string]any{"strict": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolve(context.Background(), "config")(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}

			if err := res.Validate(nil); err != nil {
				t.Errorf("Validate() error = %v", err)
			}

			for name, want := range tt.want {
				got, err := res.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
				if err != nil {
					t.Fatalf("Resolve(%q) error = %v", name, err)
				}

				if got != want {
					t.Errorf("Resolve(%q) = %#v, want %#v", name, got, want)
				}
			}
		})
	}
}

func TestFlagText(t *testing.T) {
	tests := []struct {
		value  any
		want   string
		wantOK bool
	}{
		{"text", "text", true},
		{true, "true", true},
		{uint64(12), "12", true},
		{int64(-3), "-3", true},
		{0.25, "0.25", true},
		{[]any{"a", uint64(2), nil}, "a,2", true},
		{nil, "", false},
		{map[string]any{"a": 1}, "", false},
	}

	for _, tt := range tests {
		got, ok := flagText(tt.value)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("flagText(%#v) = (%q, %v), want (%q, %v)",
				tt.value, got, ok, tt.want, tt.wantOK)
		}
	}
}

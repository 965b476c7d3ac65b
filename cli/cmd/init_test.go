package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// initContext parses args against a small CLI and returns a context holding
// the resulting kong context.
func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli struct {
		Verbose bool   `help:"Enable verbose output"`
		Output  string `help:"Output file"`
		Count   int    `help:"Number of items"`

		Version kong.VersionFlag `help:"Print version"`

		Run struct {
			Strict bool     `help:"Strict mode"`
			Output []string `help:"Outputs"      name:"out"`
		} `cmd:"" default:"1"`
	}

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), kctx)
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr bool
	}{
		{
			name:  "create_new_config",
			force: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			ctx := initContext(t, confPath)

			err := (&Init{Force: tt.force}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var doc map[string]map[string]any
			if err := yaml.Unmarshal(content, &doc); err != nil {
				t.Errorf("generated config is not valid YAML: %v\n%s", err, content)
			}

			section, ok := doc[ConfigSection]
			if !ok {
				t.Fatalf("generated config has no %q section:\n%s", ConfigSection, content)
			}

			if _, ok := section["version"]; ok {
				t.Errorf("generated config includes the version flag:\n%s", content)
			}
		})
	}
}

// TestInitBuildConfig tests that buildConfig collects set flag values,
// including those of the run command.
func TestInitBuildConfig(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "", "--verbose", "--output=test.txt", "--count=5", "run", "--strict", "--out=a", "--out=b")

	got := make(map[string]any)
	for _, item := range (&Init{}).buildConfig(kongContextFrom(ctx)) {
		got[item.Key.(string)] = item.Value
	}

	if got["verbose"] != true {
		t.Errorf("verbose = %v, want true", got["verbose"])
	}

	if got["output"] != "test.txt" {
		t.Errorf("output = %v, want test.txt", got["output"])
	}

	if got["count"] != 5 {
		t.Errorf("count = %v, want 5", got["count"])
	}

	if got["strict"] != true {
		t.Errorf("strict = %v, want true", got["strict"])
	}

	if outs, ok := got["out"].([]string); !ok || len(outs) != 2 {
		t.Errorf("out = %v, want [a b]", got["out"])
	}

	if _, ok := got["help"]; ok {
		t.Error("buildConfig() included the help flag")
	}
}

// TestInitFlagValue tests the conversion of flag values to YAML values.
func TestInitFlagValue(t *testing.T) {
	t.Parallel()

	type level string

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"string", "test", "test"},
		{"empty_string", "", nil},
		{"int", 42, 42},
		{"float", 3.14, 3.14},
		{"string_slice", []string{"a"}, []string{"a"}},
		{"empty_slice", []string{}, nil},
		{"named_string", level("debug"), "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := flagValue(tt.value)

			if s, ok := tt.want.([]string); ok {
				gs, ok := got.([]string)
				if !ok || len(gs) != len(s) || gs[0] != s[0] {
					t.Errorf("flagValue(%v) = %v, want %v", tt.value, got, tt.want)
				}

				return
			}

			if got != tt.want {
				t.Errorf("flagValue(%v) = %#v, want %#v", tt.value, got, tt.want)
			}
		})
	}
}

// TestInitWithInvalidPath tests init with an invalid file path.
func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "/nonexistent/directory/config.yaml")

	if err := (&Init{}).Run(ctx); err == nil {
		t.Error("Init.Run() expected error for invalid path, got nil")
	}
}

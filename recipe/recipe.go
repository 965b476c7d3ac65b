// Package recipe loads operator pipelines from YAML files.
//
// A recipe lists inputs, output files, and steps. Each step names an
// operator with an optional selection and argument, exactly as they would be
// written on the command line:
//
//	inputs: [./notes.txt]
//	outputs: [./notes.txt]
//	steps:
//	  - op: filter
//	    arg: not, TODO
//	  - op: case
//	    select: "0"
//	    arg: upper
//
// Scalar arguments keep their literal text, so `arg: 3` and `arg: "3"` are
// the same. A sequence argument is joined with commas, escaping any comma in
// its items.
package recipe

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/ctext/engine"
)

// Text is a YAML scalar or sequence read as argument text.
type Text string

// UnmarshalYAML implements the goccy/go-yaml InterfaceUnmarshaler.
func (t *Text) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}

	switch v := v.(type) {
	case nil:
		*t = ""

	case string:
		*t = Text(v)

	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = strings.ReplaceAll(fmt.Sprint(item), ",", `\,`)
		}

		*t = Text(strings.Join(parts, ","))

	case map[string]any:
		return ErrInvalidArgument

	default:
		*t = Text(fmt.Sprint(v))
	}

	return nil
}

// Step is one operator invocation.
type Step struct {
	Select *Text  `yaml:"select,omitempty"`
	Arg    *Text  `yaml:"arg,omitempty"`
	Op     string `yaml:"op"`
}

// Invocation returns the engine invocation described by s.
func (s Step) Invocation() engine.Invocation {
	return engine.Invocation{
		Name:   strings.TrimLeft(s.Op, "-"),
		Select: optional(s.Select),
		Arg:    optional(s.Arg),
	}
}

func optional(t *Text) engine.Arg {
	if t == nil {
		return engine.None()
	}

	return engine.Some(string(*t))
}

// Recipe is a stored pipeline.
type Recipe struct {
	Inputs  []string `yaml:"inputs,omitempty"`
	Outputs []string `yaml:"outputs,omitempty"`
	Steps   []Step   `yaml:"steps"`
}

// Invocations returns the steps of r in order.
func (r *Recipe) Invocations() []engine.Invocation {
	invs := make([]engine.Invocation, len(r.Steps))
	for i, st := range r.Steps {
		invs[i] = st.Invocation()
	}

	return invs
}

// Load decodes a recipe from rd. Unknown keys and steps without an operator
// are rejected.
func Load(rd io.Reader) (*Recipe, error) {
	ra := readahead.NewReader(rd)
	defer ra.Close()

	var r Recipe

	dec := yaml.NewDecoder(ra, yaml.DisallowUnknownField())
	if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrDecode.Wrap(err)
	}

	for i, st := range r.Steps {
		if strings.TrimLeft(st.Op, "-") == "" {
			return nil, ErrMissingOperator.With(slog.Int("step", i))
		}
	}

	return &r, nil
}

// LoadFile decodes the recipe stored at path.
func LoadFile(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	r, err := Load(f)
	if err != nil {
		var e *engine.Error
		if errors.As(err, &e) {
			return nil, e.With(slog.String("path", path))
		}

		return nil, err
	}

	return r, nil
}

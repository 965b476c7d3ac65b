package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ctext/engine"
	"github.com/ardnew/ctext/engine/builtin"
)

// Ops lists the registered operators or documents one of them.
type Ops struct {
	Name   string `arg:"" help:"Operator name or alias to describe" name:"operator" optional:""`
	Format string `default:"text" enum:"${outputFormatEnum}" help:"Listing format (${enum})"`
}

// opView is the serialized form of an operator.
type opView struct {
	Name        string         `json:"name"              yaml:"name"`
	Arity       string         `json:"arity"             yaml:"arity"`
	Usage       string         `json:"usage"             yaml:"usage"`
	Description string         `json:"description"       yaml:"description"`
	Aliases     []string       `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Params      []engine.Param `json:"params,omitempty"  yaml:"params,omitempty"`
}

func viewOf(op *engine.Operator) opView {
	return opView{
		Name:        op.Name,
		Arity:       op.Arity().String(),
		Usage:       op.Signature(),
		Description: op.Description,
		Aliases:     op.Aliases,
		Params:      op.Params,
	}
}

// Run executes the ops command.
func (o *Ops) Run(ctx context.Context, reg *engine.Registry) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ops := reg.All()

	if o.Name != "" {
		op, err := reg.Lookup(o.Name)
		if err != nil {
			return ErrNoOperator.Wrap(err).With(slog.String("operator", o.Name))
		}

		ops = []*engine.Operator{op}
	}

	w := stdoutFrom(ctx)

	switch o.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(views(ops)); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		return nil

	case "yaml":
		data, err := yaml.MarshalContext(ctx, views(ops), yaml.Indent(2))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err
	}

	if o.Name != "" {
		builtin.WriteUsage(w, ops[0])

		return nil
	}

	writeIndex(w, ops)

	return nil
}

func views(ops []*engine.Operator) []opView {
	v := make([]opView, len(ops))
	for i, op := range ops {
		v[i] = viewOf(op)
	}

	return v
}

// writeIndex writes one styled line per operator, names padded to a common
// width.
func writeIndex(w io.Writer, ops []*engine.Operator) {
	r := lipgloss.NewRenderer(w)

	width := 0
	for _, op := range ops {
		width = max(width, len(op.Name))
	}

	name := r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Width(width + 2)
	alias := r.NewStyle().Foreground(lipgloss.Color("8"))

	for _, op := range ops {
		line := name.Render(op.Name) + op.Description
		if len(op.Aliases) > 0 {
			line += " " + alias.Render("("+strings.Join(op.Aliases, ", ")+")")
		}

		fmt.Fprintln(w, line)
	}
}

package engine

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Registry maps operator names and aliases to operator descriptors.
type Registry struct {
	ops   map[string]*Operator
	alias map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ops:   make(map[string]*Operator),
		alias: make(map[string]string),
	}
}

// Register adds op to the registry under its name and aliases.
// It fails if any of those names is already taken.
func (r *Registry) Register(op Operator) error {
	names := append([]string{op.Name}, op.Aliases...)
	for _, name := range names {
		if r.taken(name) {
			return ErrDuplicateOperator.With(slog.String("name", name))
		}
	}

	r.ops[op.Name] = &op

	for _, alias := range op.Aliases {
		r.alias[alias] = op.Name
	}

	return nil
}

// MustRegister is like [Registry.Register] but panics on error.
func (r *Registry) MustRegister(ops ...Operator) {
	for _, op := range ops {
		if err := r.Register(op); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) taken(name string) bool {
	_, isOp := r.ops[name]
	_, isAlias := r.alias[name]

	return isOp || isAlias
}

// Canonical returns the canonical operator name for name, which may be an
// alias. Names that are not aliases are returned unchanged.
func (r *Registry) Canonical(name string) string {
	if canon, ok := r.alias[name]; ok {
		return canon
	}

	return name
}

// Has reports whether name or its alias target is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.ops[r.Canonical(name)]

	return ok
}

// Lookup returns the operator registered as name or as an alias of it.
// Unknown names fail with [ErrUnknownOperator], suggesting the closest
// registered name when one exists.
func (r *Registry) Lookup(name string) (*Operator, error) {
	op, ok := r.ops[r.Canonical(name)]
	if ok {
		return op, nil
	}

	err := ErrUnknownOperator.With(slog.String("operator", name))
	if hint := r.Suggest(name); hint != "" {
		err = err.With(slog.String("suggestion", hint))
	}

	return nil, err
}

// Suggest returns the registered name or alias closest to name, or "" if
// nothing resembles it.
func (r *Registry) Suggest(name string) string {
	if name == "" {
		return ""
	}

	matches := fuzzy.Find(strings.ToLower(name), r.Names())
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// All returns every registered operator sorted by name.
func (r *Registry) All() []*Operator {
	names := slices.Sorted(maps.Keys(r.ops))
	ops := make([]*Operator, len(names))

	for i, name := range names {
		ops[i] = r.ops[name]
	}

	return ops
}

// Names returns every registered name and alias in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops)+len(r.alias))
	names = slices.AppendSeq(names, maps.Keys(r.ops))
	names = slices.AppendSeq(names, maps.Keys(r.alias))
	slices.Sort(names)

	return names
}

// Len returns the number of registered operators, excluding aliases.
func (r *Registry) Len() int { return len(r.ops) }

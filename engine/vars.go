package engine

import (
	"maps"
	"slices"
)

// Vars is the variable store of a single session.
//
// Values are written by operators (see the set operator) and read by ?name
// references during argument resolution. Assignment overwrites.
type Vars struct {
	m map[string]string
}

// NewVars returns an empty variable store.
func NewVars() *Vars {
	return &Vars{m: make(map[string]string)}
}

// Set assigns value to name.
func (v *Vars) Set(name, value string) {
	if v.m == nil {
		v.m = make(map[string]string)
	}

	v.m[name] = value
}

// Get returns the value assigned to name.
func (v *Vars) Get(name string) (string, bool) {
	value, ok := v.m[name]

	return value, ok
}

// Len returns the number of assigned variables.
func (v *Vars) Len() int { return len(v.m) }

// Names returns the assigned variable names in sorted order.
func (v *Vars) Names() []string {
	return slices.Sorted(maps.Keys(v.m))
}

// Clear removes every variable.
func (v *Vars) Clear() { clear(v.m) }

package engine

import "slices"

// Selection is the set of pre-image indices an invocation applies to.
// An empty Selection applies to every value.
type Selection []int

// ParseSelection resolves the raw selection sel into indices.
//
// The empty-argument sentinel selects everything. Otherwise sel is split on
// commas and each part is resolved by [Resolver.Int] against ref.
func ParseSelection(r *Resolver, sel Arg, ref string) Selection {
	if sel.IsNone() {
		return nil
	}

	return Selection(r.Ints(sel.Split(), ref))
}

// All reports whether s applies to every value.
func (s Selection) All() bool { return len(s) == 0 }

// Has reports whether s applies to the value at index i.
func (s Selection) Has(i int) bool {
	return len(s) == 0 || slices.Contains(s, i)
}

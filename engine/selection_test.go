package engine

import (
	"slices"
	"testing"
)

func TestParseSelection(t *testing.T) {
	vars := NewVars()
	vars.Set("i", "2")

	r := NewResolver(vars, zeroLogger, false)

	tests := []struct {
		name string
		sel  Arg
		want Selection
	}{
		{"absent", None(), nil},
		{"single", Some("1"), Selection{1}},
		{"list", Some("0,2"), Selection{0, 2}},
		{"duplicates", Some("1,1"), Selection{1, 1}},
		{"variable", Some("?i"), Selection{2}},
		{"word_reference", Some("w3"), Selection{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelection(r, tt.sel, "")
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseSelection(%v) = %v, want %v", tt.sel, got, tt.want)
			}
		})
	}
}

func TestSelection_Has(t *testing.T) {
	var all Selection

	if !all.All() || !all.Has(7) {
		t.Error("empty selection should select everything")
	}

	sel := Selection{0, 2}
	if !sel.Has(2) || sel.Has(1) || sel.All() {
		t.Errorf("Selection{0,2} membership wrong")
	}
}

package builtin

import (
	"slices"
	"strings"
	"testing"
)

func sortedRunes(s string) []rune {
	rs := []rune(s)
	slices.Sort(rs)

	return rs
}

func TestToss(t *testing.T) {
	got, _, err := run(t, []string{"abc"}, call("toss", "2,X"))
	if err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(got[0], "X"); n != 2 {
		t.Errorf("toss inserted %d items into %q, want 2", n, got[0])
	}

	if strings.ReplaceAll(got[0], "X", "") != "abc" {
		t.Errorf("toss disturbed the original text: %q", got[0])
	}
}

func TestToss_NoItems(t *testing.T) {
	got, _, err := run(t, []string{"abc"}, call("toss", "3"))
	if err != nil {
		t.Fatal(err)
	}

	if got[0] != "abc" {
		t.Errorf("toss without items = %q, want abc", got[0])
	}
}

func TestScramble(t *testing.T) {
	tests := []struct {
		name string
		in   string
		arg  string
	}{
		{"default", "abcdef", ""},
		{"factor", "the quick brown fox", "shuffle,4"},
		{"all_characters", "a b c d", "shuffle,3,false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := run(t, []string{tt.in}, call("scramble", tt.arg))
			if err != nil {
				t.Fatal(err)
			}

			if !slices.Equal(sortedRunes(got[0]), sortedRunes(tt.in)) {
				t.Errorf("scramble(%q) = %q, not a permutation", tt.in, got[0])
			}
		})
	}
}

func TestScramble_WordsOnly(t *testing.T) {
	in := "ab cd ef"

	got, _, err := run(t, []string{in}, call("scramble", "shuffle,5"))
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range []rune(in) {
		if r == ' ' && []rune(got[0])[i] != ' ' {
			t.Errorf("scramble moved a space: %q", got[0])
		}
	}
}

func TestDummy(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		wantWords int
		prefix    string
	}{
		{"default", "", 15, "Lorem ipsum dolor"},
		{"count", "lorem,3", 3, "Lorem ipsum dolor"},
		{"cycles", ",500", 500, "Lorem"},
		{"zero", ",0", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := run(t, []string{"ignored"}, call("dummy", tt.arg))
			if err != nil {
				t.Fatal(err)
			}

			if n := len(strings.Fields(got[0])); n != tt.wantWords {
				t.Errorf("dummy produced %d words, want %d", n, tt.wantWords)
			}

			if !strings.HasPrefix(got[0], tt.prefix) {
				t.Errorf("dummy = %q, want prefix %q", got[0], tt.prefix)
			}
		})
	}
}

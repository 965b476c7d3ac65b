package engine

import "strings"

// DefaultDelim separates sub-arguments within an operator argument.
const DefaultDelim = ','

// escape prevents the following delimiter from splitting.
const escape = '\\'

// Arg is an operator argument as typed by the user.
//
// The zero Arg is [None], meaning the operator was invoked without an
// argument. That is distinct from an argument that is present but empty,
// which is Some("").
type Arg struct {
	text string
	ok   bool
}

// None returns the empty-argument sentinel.
func None() Arg { return Arg{} }

// Some returns a present argument with the given raw text.
func Some(text string) Arg { return Arg{text: text, ok: true} }

// IsNone reports whether a is the empty-argument sentinel.
func (a Arg) IsNone() bool { return !a.ok }

// Text returns the raw argument text, or "" for [None].
func (a Arg) Text() string { return a.text }

// Blank reports whether a is [None] or present with empty text. Operators use
// it to decide when a parameter falls back to its default.
func (a Arg) Blank() bool { return !a.ok || a.text == "" }

// Or returns a if it is not [Arg.Blank], otherwise Some(def).
func (a Arg) Or(def string) Arg {
	if a.Blank() {
		return Some(def)
	}

	return a
}

// Contains reports whether the raw text of a present argument contains sub.
func (a Arg) Contains(sub string) bool {
	return a.ok && strings.Contains(a.text, sub)
}

// Split splits a on [DefaultDelim]. See [SplitArguments].
// The empty-argument sentinel splits into a single [None].
func (a Arg) Split() Args { return a.SplitOn(DefaultDelim) }

// SplitOn splits a on delim. See [SplitArguments].
func (a Arg) SplitOn(delim rune) Args {
	if !a.ok {
		return Args{None()}
	}

	seg := SplitArguments(a.text, delim)
	args := make(Args, len(seg))

	for i, s := range seg {
		args[i] = Some(s)
	}

	return args
}

func (a Arg) String() string {
	if !a.ok {
		return "<none>"
	}

	return a.text
}

// Args is an ordered list of sub-arguments.
type Args []Arg

// At returns the i'th sub-argument, or [None] if i is out of range.
func (a Args) At(i int) Arg {
	if i < 0 || i >= len(a) {
		return None()
	}

	return a[i]
}

// From returns the sub-arguments starting at index i.
func (a Args) From(i int) Args {
	if i >= len(a) {
		return nil
	}

	return a[max(i, 0):]
}

// SplitArguments splits raw on delim.
//
// A delimiter preceded by a backslash does not split; the backslash is
// dropped and the delimiter kept. One leading space is trimmed from every
// produced segment. An empty raw yields a single empty segment.
func SplitArguments(raw string, delim rune) []string {
	var (
		seg []string
		cur strings.Builder
	)

	rs := []rune(raw)
	for i := 0; i < len(rs); i++ {
		r := rs[i]

		switch {
		case r == escape && i+1 < len(rs) && rs[i+1] == delim:
			cur.WriteRune(delim)
			i++

		case r == delim:
			seg = append(seg, cur.String())
			cur.Reset()

		default:
			cur.WriteRune(r)
		}
	}

	seg = append(seg, cur.String())

	for i, s := range seg {
		seg[i] = strings.TrimPrefix(s, " ")
	}

	return seg
}

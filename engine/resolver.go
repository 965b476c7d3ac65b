package engine

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/ctext/log"
)

// Markers recognized by the argument mini-language.
const (
	varMarker     = '?'
	wordMarker    = 'w'
	literalMarker = '\\'
	literalEscape = `\e`
	newlineEscape = `\n`
)

// whitespace matches word boundaries for word-position references.
var whitespace = regexp.MustCompile(`\s`)

// Resolver materializes operator arguments into concrete values.
//
// A Resolver reads variables from its session's [Vars] and dereferences
// file paths. Numeric conversions that fail are tolerated (they resolve to
// zero) unless the resolver is strict, in which case the first failure is
// retained and reported by [Resolver.Err].
type Resolver struct {
	vars   *Vars
	logger log.Logger
	err    error
	strict bool
}

// NewResolver returns a resolver reading variables from vars.
func NewResolver(vars *Vars, logger log.Logger, strict bool) *Resolver {
	if vars == nil {
		vars = NewVars()
	}

	return &Resolver{vars: vars, logger: logger, strict: strict}
}

// Vars returns the variable store used by r.
func (r *Resolver) Vars() *Vars { return r.vars }

// Strict reports whether malformed numeric arguments are errors.
func (r *Resolver) Strict() bool { return r.strict }

// Err returns the first malformed-argument error recorded in strict mode.
func (r *Resolver) Err() error { return r.err }

// resetErr clears the recorded error and returns its previous value.
func (r *Resolver) resetErr() error {
	err := r.err
	r.err = nil

	return err
}

// Value resolves a to text.
//
// Resolution order:
//  1. [None] resolves to "".
//  2. Every \e marker is removed.
//  3. A token beginning with "/" or "./" naming an existing file resolves to
//     the file's contents. If the file cannot be read, a warning is logged and
//     the literal text is used.
//  4. Otherwise \n sequences become newlines, a leading ? resolves to the
//     named variable (or "" if unset), and one leading backslash is removed.
func (r *Resolver) Value(a Arg) string {
	if a.IsNone() {
		return ""
	}

	token := a.Text()
	text := strings.ReplaceAll(token, literalEscape, "")

	if isPathToken(token) && isFile(token) {
		contents, err := ReadFile(token)
		if err == nil {
			return contents
		}

		r.logger.Warn("input file unreadable, using literal text",
			slog.Any("error", err),
			slog.String("path", token),
		)

		return text
	}

	text = strings.ReplaceAll(text, newlineEscape, "\n")

	if name, ok := strings.CutPrefix(text, string(varMarker)); ok {
		value, _ := r.vars.Get(name)

		return value
	}

	if rest, ok := strings.CutPrefix(text, string(literalMarker)); ok {
		return rest
	}

	return text
}

// ValueOr resolves a, substituting def when a is [Arg.Blank] or resolves to
// the empty string.
func (r *Resolver) ValueOr(a Arg, def string) string {
	if a.Blank() {
		return def
	}

	if v := r.Value(a); v != "" {
		return v
	}

	return def
}

// Values resolves each argument in args.
func (r *Resolver) Values(args Args) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.Value(a)
	}

	return out
}

// Int resolves a to an integer.
//
// A token of the form w<N> is the position where the N'th word of ref
// begins: w1 is 0, and each following word begins at the whitespace that
// precedes it. A missing word resolves to 0. A token of the form ?name is the
// named variable parsed as an integer. Anything else is parsed by [ParseInt].
//
// Malformed numbers resolve to 0. In strict mode the first one is also
// recorded as an error.
func (r *Resolver) Int(a Arg, ref string) int {
	n, ok := r.LookupInt(a, ref)
	if !ok {
		r.malformed(a)
	}

	return n
}

// IntOr resolves a as [Resolver.Int], substituting def when a is
// [Arg.Blank].
func (r *Resolver) IntOr(a Arg, def int, ref string) int {
	if a.Blank() {
		return def
	}

	return r.Int(a, ref)
}

// Ints resolves each argument in args as an integer.
func (r *Resolver) Ints(args Args, ref string) []int {
	out := make([]int, len(args))
	for i, a := range args {
		out[i] = r.Int(a, ref)
	}

	return out
}

// LookupInt resolves a to an integer and reports whether a was well formed.
// It never records errors.
func (r *Resolver) LookupInt(a Arg, ref string) (int, bool) {
	if a.IsNone() {
		return 0, true
	}

	token := a.Text()

	if rest, ok := strings.CutPrefix(token, string(wordMarker)); ok {
		word, ok := ParseInt(rest)
		if !ok {
			return 0, true
		}

		return WordIndex(ref, word), true
	}

	if name, ok := strings.CutPrefix(token, string(varMarker)); ok {
		value, _ := r.vars.Get(name)

		return ParseInt(value)
	}

	return ParseInt(token)
}

func (r *Resolver) malformed(a Arg) {
	err := ErrMalformedArgument.With(slog.String("argument", a.Text()))

	r.logger.Debug("malformed integer argument",
		slog.String("argument", a.Text()),
		slog.Bool("strict", r.strict),
	)

	if r.strict && r.err == nil {
		r.err = err
	}
}

// ParseInt parses the leading base-10 integer of s.
//
// Leading whitespace and an optional sign are accepted and trailing garbage
// is ignored, so "12px" is 12. It reports false when s holds no leading
// digits, or when the digits overflow an int.
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}

// WordIndex returns the code-point position in text where the 1-based word
// begins. Word 1 begins at 0; word n > 1 begins at the (n-1)'th whitespace
// character. Words that do not exist resolve to 0.
func WordIndex(text string, word int) int {
	if word <= 1 {
		return 0
	}

	pos := NthMatch(text, whitespace, word-2)
	if pos < 0 {
		return 0
	}

	return pos
}

// NthMatch returns the code-point position of the n'th (0-based) match of re
// in text, or -1 if there are not that many matches.
func NthMatch(text string, re *regexp.Regexp, n int) int {
	if n < 0 {
		return -1
	}

	loc := re.FindAllStringIndex(text, n+1)
	if len(loc) <= n {
		return -1
	}

	return len([]rune(text[:loc[n][0]]))
}

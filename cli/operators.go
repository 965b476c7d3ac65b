package cli

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ctext/engine"
)

// endOfFlags stops operator scanning.
const endOfFlags = "--"

// flagSet holds the long and short flag names the command line declares.
type flagSet struct {
	long  map[string]bool
	short map[rune]bool
}

// declaredFlags collects the flags of every command in app. Boolean flags
// are also recorded in their negated form.
func declaredFlags(app *kong.Application) flagSet {
	fs := flagSet{
		long:  map[string]bool{"help": true},
		short: map[rune]bool{'h': true},
	}

	var visit func(n *kong.Node)

	visit = func(n *kong.Node) {
		for _, f := range n.Flags {
			fs.long[f.Name] = true

			if f.IsBool() {
				fs.long["no-"+f.Name] = true
			}

			for _, alias := range f.Aliases {
				fs.long[alias] = true
			}

			if f.Short != 0 {
				fs.short[f.Short] = true
			}
		}

		for _, child := range n.Children {
			visit(child)
		}
	}

	if app != nil {
		visit(app.Node)
	}

	return fs
}

// declares reports whether tok is one of the declared flags. A single-dash
// token of several letters is declared only as a cluster of short flags, so
// an attached short flag value such as -ofile is not recognized.
func (fs flagSet) declares(tok string) bool {
	if long, ok := strings.CutPrefix(tok, "--"); ok {
		name, _, _ := strings.Cut(long, "=")

		return fs.long[name]
	}

	cluster := strings.TrimPrefix(tok, "-")
	if cluster == "" {
		return false
	}

	for _, r := range cluster {
		if !fs.short[r] {
			return false
		}
	}

	return true
}

// scanOperators extracts operator invocations from args in order and returns
// the remaining arguments for flag parsing.
//
// A token is an operator when it is written -name or --name, optionally with a
// selection suffix [sel] and an inline =arg, and name is registered in reg.
// Any other flag-like token that fs does not declare is also taken as an
// operator, so a misspelled name is reported as unknown instead of being read
// as flags. Unless given inline, the operator's argument is the following
// token, except when there is none or it looks like a flag. Negative numbers
// are arguments, not flags. "help" is never an operator here so --help keeps
// working.
func scanOperators(
	reg *engine.Registry,
	fs flagSet,
	args []string,
) (rest []string, invs []engine.Invocation) {
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		tok := args[i]

		if tok == endOfFlags {
			rest = append(rest, args[i:]...)

			break
		}

		inv, inline, ok := parseOperator(tok)
		if !ok || (!reg.Has(inv.Name) && fs.declares(tok)) {
			rest = append(rest, tok)

			continue
		}

		if !inline && i+1 < len(args) && !isFlag(args[i+1]) {
			inv.Arg = engine.Some(args[i+1])
			i++
		}

		invs = append(invs, inv)
	}

	return rest, invs
}

// parseOperator parses tok as an operator token. It reports whether the
// argument was given inline and whether tok has the form of an operator.
// The name is not required to be registered.
func parseOperator(tok string) (inv engine.Invocation, inline, ok bool) {
	if !isFlag(tok) {
		return engine.Invocation{}, false, false
	}

	body := strings.TrimPrefix(strings.TrimPrefix(tok, "-"), "-")

	head, arg, inline := strings.Cut(body, "=")

	name, sel, hasSel := strings.Cut(head, "[")
	if name == "" || name == "help" {
		return engine.Invocation{}, false, false
	}

	inv = engine.Invocation{Name: name, Select: engine.None(), Arg: engine.None()}

	if hasSel {
		inv.Select = engine.Some(strings.TrimSuffix(sel, "]"))
	}

	if inline {
		inv.Arg = engine.Some(arg)
	}

	return inv, inline, true
}

// isFlag reports whether tok would be read as a flag rather than a value.
func isFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}

	return tok[1] < '0' || tok[1] > '9'
}

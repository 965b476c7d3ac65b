package repl

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/ctext/engine"
)

// Styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// invocationCall describes the operator invocation being typed.
type invocationCall struct {
	name     string // operator name as typed, without dashes or selection
	argIndex int    // index of the comma-separated argument under the cursor
	inArg    bool   // true if the cursor is inside the argument
}

// detectInvocation analyzes input to determine whether the cursor is inside
// the argument of an invocation, and if so which comma-separated part of the
// argument it is in. Escaped commas do not separate arguments.
func detectInvocation(input string, cursor int) invocationCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	start := len(input) - len(strings.TrimLeftFunc(input, unicode.IsSpace))
	for start < len(input) && input[start] == '-' {
		start++
	}

	sep := strings.IndexFunc(input[start:], unicode.IsSpace)
	if sep < 0 {
		return invocationCall{inArg: false}
	}

	sep += start

	head := input[start:sep]
	if i := strings.IndexByte(head, '['); i >= 0 {
		head = head[:i]
	}

	if head == "" || cursor <= sep {
		return invocationCall{inArg: false}
	}

	argIndex := 0
	escaped := false

	for _, r := range input[sep+1 : cursor] {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == engine.DefaultDelim:
			argIndex++
		}
	}

	return invocationCall{
		name:     head,
		argIndex: argIndex,
		inArg:    true,
	}
}

// getSignature returns the canonical name and parameters of the operator
// registered under name. It reports false if no such operator exists.
func getSignature(
	reg *engine.Registry,
	name string,
) (canonical string, params []engine.Param, ok bool) {
	op, err := reg.Lookup(name)
	if err != nil {
		return "", nil, false
	}

	return op.Name, op.Params, true
}

// renderSignatureHint renders the operator usage line with the parameter at
// currentArgIdx highlighted. A variadic parameter stays highlighted for every
// index at or beyond its own.
func renderSignatureHint(
	name string,
	params []engine.Param,
	currentArgIdx int,
) string {
	if name == "" {
		return ""
	}

	if len(params) == 0 {
		return signatureNameStyle.Render(name) +
			signatureStyle.Render(" (no argument)")
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render(" "))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(","))
		}

		if (param.Variadic() && currentArgIdx >= i) || currentArgIdx == i {
			b.WriteString(currentParamStyle.Render(param.Name))
		} else {
			b.WriteString(signatureStyle.Render(param.Name))
		}
	}

	return b.String()
}

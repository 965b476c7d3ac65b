package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands completes the first word in command mode.
var ctrlCommands = []string{
	"help", "ops", "values", "vars", "undo", "reset", "clear", "quit",
}

// isWordBoundary reports whether r delimits words for completion purposes.
// Hyphens are not boundaries so a leading "-" stays part of the name.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '[', ']', ',':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its byte bounds in input.
// The word is empty when cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	start = min(max(cursor, 0), len(input))
	end = start

	for r, size := utf8.DecodeLastRuneInString(input[:start]); start > 0 && !isWordBoundary(r); {
		start -= size
		r, size = utf8.DecodeLastRuneInString(input[:start])
	}

	for r, size := utf8.DecodeRuneInString(input[end:]); end < len(input) && !isWordBoundary(r); {
		end += size
		r, size = utf8.DecodeRuneInString(input[end:])
	}

	return input[start:end], start, end
}

// leadingWords counts the whitespace-separated words wholly before offset.
func leadingWords(input string, offset int) int {
	return len(strings.Fields(input[:offset]))
}

// candidatesAt returns the names that may complete the word starting at
// wordStart. In eval mode only the operator name completes. In control mode
// the command name completes, and the argument of "ops" completes to an
// operator name.
func (m model) candidatesAt(input string, wordStart int) []string {
	pos := leadingWords(input, wordStart)

	if m.mode == modeCtrl {
		switch {
		case pos == 0:
			return ctrlCommands

		case pos == 1 && strings.Fields(input)[0] == "ops":
			return m.state.registry().Names()
		}

		return nil
	}

	// A selection suffix ends the name.
	if pos != 0 || strings.Contains(input[:wordStart], "[") {
		return nil
	}

	return m.state.registry().Names()
}

// computeMatches ranks the candidates for the word at the cursor, best first,
// and returns them with the candidate list and the byte bounds of the word.
// An empty word has no matches, which keeps the hint line visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	candidates = m.candidatesAt(input, wordStart)

	// Operators typed with their command-line dash still complete.
	if m.mode == modeEval && strings.HasPrefix(word, "-") {
		trimmed := strings.TrimLeft(word, "-")
		wordStart += len(word) - len(trimmed)
		word = trimmed
	}

	if word == "" || len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

var (
	matchStyle         = suggestionStyle.Bold(true)
	selectedMatchStyle = selectedStyle.Bold(true)
)

// renderCandidateBar lists matches on one line, best first, with an ellipsis
// in place of those that do not fit in width. The selected match is
// highlighted only while cycling.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	cycling bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	more := sep + hintStyle.Render("...")
	room := width - lipgloss.Width(more)

	parts := make([]string, 0, len(matches))
	used := 0

	for i, match := range matches {
		part := renderCandidate(match, cycling && i == selected)
		if i > 0 {
			part = sep + part
		}

		used += lipgloss.Width(part)
		if used > room && i > 0 {
			parts = append(parts, more)

			break
		}

		parts = append(parts, part)
	}

	return strings.Join(parts, "")
}

// renderCandidate renders match with its matched characters emphasized.
func renderCandidate(match fuzzy.Match, selected bool) string {
	plain, strong := suggestionStyle, matchStyle
	if selected {
		plain, strong = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	next := 0 // position in MatchedIndexes, which is ascending

	for i, r := range match.Str {
		style := plain

		if next < len(match.MatchedIndexes) && match.MatchedIndexes[next] == i {
			style = strong
			next++
		}

		b.WriteString(style.Render(string(r)))
	}

	return b.String()
}

package output

//go:generate go tool stringer --linecomment --type Format --output format_string.go

import (
	"iter"
	"log/slog"
	"strings"
)

// Format selects how a [Sink] renders values.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
	FormatYAML               // yaml
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = FormatText

// Formats returns an iterator over the names of all formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatText, FormatJSON, FormatYAML} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}

	return DefaultFormat, ErrUnknownFormat.With(slog.String("format", s))
}

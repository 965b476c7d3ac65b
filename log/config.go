package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4) // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// DefaultLevel is the level used when none is configured or a level name
// cannot be parsed. Warnings are visible by default so that skipped output
// files and truncated values are reported.
const DefaultLevel = LevelWarn

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels returns an iterator over the names of all log levels, most verbose
// first.
func Levels() iter.Seq[string] {
	return names(levels, Level.String)
}

// ParseLevel parses a level name. Names are case-insensitive and, except for
// "trace", may carry a signed offset as accepted by [slog.Level.UnmarshalText].
// Unrecognized names yield [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format selects how log records are encoded.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the format used when none is configured or a format name
// cannot be parsed.
const DefaultFormat = FormatText

var formats = []Format{FormatText, FormatJSON}

// Formats returns an iterator over the names of all log formats.
func Formats() iter.Seq[string] {
	return names(formats, Format.String)
}

// ParseFormat parses a case-insensitive format name. Unrecognized names yield
// [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))

	i := slices.IndexFunc(formats, func(f Format) bool { return f.String() == s })
	if i < 0 {
		return DefaultFormat
	}

	return formats[i]
}

func names[T any](all []T, name func(T) string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range all {
			if !yield(name(v)) {
				return
			}
		}
	}
}

// FormatTime renders a record timestamp. An empty result omits the time.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller reports whether caller information is included by default.
const DefaultCaller = false

// DefaultPretty reports whether colorized output is enabled by default.
const DefaultPretty = true

// config holds the settings a [Logger] was built from. It is copied by value,
// so deriving a logger never mutates the settings of its parent.
type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

func makeConfig(w io.Writer, opts ...Option) config {
	var c config

	WithDefaults(w)(&c)

	return c.with(opts...)
}

// with returns a copy of c with opts applied.
func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

func (c config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}
}

// replaceAttr renders the time with the configured layout and names levels
// in upper case, so trace records read TRACE rather than DEBUG-4.
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		t, ok := a.Value.Any().(time.Time)
		if !ok {
			break
		}

		text := c.formatTime(t)
		if text == "" {
			return slog.Attr{}
		}

		a.Value = slog.StringValue(text)

	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(level).String()))
		}
	}

	return a
}

func (c config) handler() slog.Handler {
	opts := c.handlerOptions()

	switch {
	case c.pretty:
		return newPrettyHandler(c.output, c.format, opts)

	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)

	default:
		return slog.NewTextHandler(c.output, opts)
	}
}

// timeLayouts maps the accepted layout names, lowercased with punctuation
// removed, to [time] layouts.
var timeLayouts = map[string]string{
	"none":        "",
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"datetime":    time.DateTime,
	"timeonly":    time.TimeOnly,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"ms":          time.StampMilli,
	"stampmicro":  time.StampMicro,
	"us":          time.StampMicro,
	"stampnano":   time.StampNano,
	"ns":          time.StampNano,
}

// makeFormatTimeFunc resolves a named layout or uses layout verbatim. A
// layout that is blank or names "none" disables timestamps.
func makeFormatTimeFunc(layout string) FormatTime {
	key := strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			return r
		}

		return -1
	}, strings.ToLower(layout))

	if named, ok := timeLayouts[key]; ok {
		layout = named
	}

	if strings.TrimSpace(layout) == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}

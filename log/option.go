package log

import "io"

// Option modifies the settings of a [Logger] under construction.
type Option func(*config)

// WithDefaults resets every setting to its package default and directs
// output to w, or to [io.Discard] if w is nil.
func WithDefaults(w io.Writer) Option {
	return func(c *config) {
		*c = config{
			formatTime: makeFormatTimeFunc(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}

		WithOutput(w)(c)
	}
}

// WithOutput directs output to w, or to [io.Discard] if w is nil.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel discards messages below level.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat selects the record encoding.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout sets the timestamp layout.
//
// The layout may name a [time] constant, ignoring case and punctuation (for
// example "RFC3339", "rfc3339nano", or "DateTime"), or use one of the short
// names "ms", "us", and "ns" for the Stamp layouts. Any other layout is
// passed verbatim to [time.Time.Format]. A blank layout or "none" omits
// timestamps.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return func(c *config) { c.formatTime = format }
}

// WithCaller includes the source file and line of each call.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty enables colorized output. Text records drop quoting and JSON
// records are indented one field per line. Colors are only emitted when the
// output is a terminal that supports them.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}

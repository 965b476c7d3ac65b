package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ctext/log"
)

// DefaultMaxLen is the longest value, in characters, printed by default.
const DefaultMaxLen = 450

// Item is the structured form of one printed value.
type Item struct {
	Value     string `json:"value"     yaml:"value"`
	Index     int    `json:"index"     yaml:"index"`
	Length    int    `json:"length"    yaml:"length"`
	Truncated bool   `json:"truncated" yaml:"truncated"`
}

// FileWriter writes text to an existing file, reporting whether it did.
type FileWriter interface {
	Write(ctx context.Context, path, text string) bool
}

type config struct {
	logger log.Logger
	format Format
	maxLen int
	full   bool
	quiet  bool
}

// Option configures a [Sink].
type Option func(config) config

// WithFormat sets the rendering format.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithMaxLen sets the longest value printed in full. A non-positive n
// removes the limit.
func WithMaxLen(n int) Option {
	return func(c config) config {
		c.maxLen = n

		return c
	}
}

// WithFull prints every value regardless of its length.
func WithFull(full bool) Option {
	return func(c config) config {
		c.full = full

		return c
	}
}

// WithQuiet suppresses value printing. Files are still written.
func WithQuiet(quiet bool) Option {
	return func(c config) config {
		c.quiet = quiet

		return c
	}
}

// WithLogger sets the logger used for write diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

type styles struct {
	quote   lipgloss.Style
	value   lipgloss.Style
	warn    lipgloss.Style
	timing  lipgloss.Style
	failure lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		quote:   r.NewStyle().Foreground(lipgloss.Color("2")),
		value:   r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		timing:  r.NewStyle().Foreground(lipgloss.Color("12")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Sink renders values to a writer.
type Sink struct {
	w      io.Writer
	styles styles
	config
}

// New returns a sink writing to w. Colors are used only when w is a
// terminal.
func New(w io.Writer, opts ...Option) *Sink {
	c := config{format: DefaultFormat, maxLen: DefaultMaxLen}
	for _, opt := range opts {
		c = opt(c)
	}

	return &Sink{
		w:      w,
		styles: newStyles(lipgloss.NewRenderer(w)),
		config: c,
	}
}

// Items returns the structured form of values. Values over the length limit
// are cut to it and marked truncated unless the sink prints in full.
func (s *Sink) Items(values []string) []Item {
	items := make([]Item, len(values))

	for i, v := range values {
		n := utf8.RuneCountInString(v)
		items[i] = Item{Index: i, Value: v, Length: n}

		if s.full || s.maxLen <= 0 || n <= s.maxLen {
			continue
		}

		items[i].Truncated = true
		items[i].Value = string([]rune(v)[:s.maxLen])
	}

	return items
}

// Print renders values in the configured format.
func (s *Sink) Print(ctx context.Context, values []string) error {
	if s.quiet {
		return nil
	}

	items := s.Items(values)

	switch s.format {
	case FormatJSON:
		enc := json.NewEncoder(s.w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(items); err != nil {
			return ErrEncode.Wrap(err).With(slog.String("format", s.format.String()))
		}

		return nil

	case FormatYAML:
		data, err := yaml.MarshalContext(ctx, items, yaml.Indent(2))
		if err != nil {
			return ErrEncode.Wrap(err).With(slog.String("format", s.format.String()))
		}

		_, err = s.w.Write(data)

		return err
	}

	for _, item := range items {
		var err error

		if item.Truncated {
			_, err = fmt.Fprintln(s.w, s.styles.warn.Render(fmt.Sprintf(
				"value %d is longer than %d characters, will not print",
				item.Index, s.maxLen,
			)))
		} else {
			q := s.styles.quote.Render(`"`)
			_, err = fmt.Fprintln(s.w, q+s.styles.value.Render(item.Value)+q)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Timing prints how long label took.
func (s *Sink) Timing(label string, d time.Duration) {
	fmt.Fprintln(s.w, s.styles.timing.Render(label+" took "+d.String()))
}

// Failure prints err as a user-facing message.
func (s *Sink) Failure(err error) {
	fmt.Fprintln(s.w, s.styles.failure.Render(err.Error()))
}

// Write writes values to paths through fw and returns how many files were
// written.
//
// With as many paths as values, value i goes to path i. With fewer paths
// than values, the first value goes to every path. With more paths than
// values, nothing is written and [ErrTooFewValues] is returned.
func (s *Sink) Write(
	ctx context.Context,
	fw FileWriter,
	paths, values []string,
) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	if len(paths) > len(values) {
		return 0, ErrTooFewValues.With(
			slog.Int("outputs", len(paths)),
			slog.Int("values", len(values)),
		)
	}

	written := 0

	for i, path := range paths {
		text := values[0]
		if len(paths) == len(values) {
			text = values[i]
		}

		if fw.Write(ctx, path, text) {
			written++
		}
	}

	s.logger.DebugContext(ctx, "outputs written",
		slog.Int("written", written),
		slog.Int("outputs", len(paths)),
	)

	return written, nil
}

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette styles each part of a pretty record. Styles render plain text when
// the output does not support color.
type palette struct {
	key, text, number, yes, no, duration, time lipgloss.Style
	levels                                     map[Level]lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) *palette {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:      color("8"),
		text:     color("6"),
		number:   color("3"),
		yes:      color("2"),
		no:       color("1"),
		duration: color("5"),
		time:     color("4"),
		levels: map[Level]lipgloss.Style{
			LevelTrace: color("4"),
			LevelDebug: color("4"),
			LevelInfo:  color("2"),
			LevelWarn:  color("3"),
			LevelError: color("1"),
		},
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.levels[LevelError]
	case l >= slog.LevelWarn:
		return p.levels[LevelWarn]
	case l >= slog.LevelInfo:
		return p.levels[LevelInfo]
	case l >= slog.LevelDebug:
		return p.levels[LevelDebug]
	default:
		return p.levels[LevelTrace]
	}
}

// field is one rendered key and its styled value.
type field struct{ key, value string }

// prettyHandler writes colorized records, either one line of unquoted
// key=value pairs or an indented block with one field per line.
type prettyHandler struct {
	opts    slog.HandlerOptions
	format  Format
	palette *palette
	mu      *sync.Mutex
	w       io.Writer
	attrs   []field
	prefix  string
	groups  []string
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:    *opts,
		format:  format,
		palette: newPalette(lipgloss.NewRenderer(w)),
		mu:      &sync.Mutex{},
		w:       w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = h.appendAttrs(h.attrs[:len(h.attrs):len(h.attrs)], attrs)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	builtin := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		builtin = append(builtin, slog.Time(slog.TimeKey, r.Time))
	}

	builtin = append(builtin, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			builtin = append(builtin,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	builtin = append(builtin, slog.String(slog.MessageKey, r.Message))

	fields := make([]field, 0, len(builtin)+len(h.attrs)+r.NumAttrs())

	for _, a := range builtin {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key == slog.LevelKey {
			// Level text is styled by severity rather than by kind.
			fields = append(fields, field{
				key:   h.palette.key.Render(a.Key),
				value: h.palette.level(r.Level).Render(a.Value.String()),
			})

			continue
		}

		fields = h.appendField(fields, "", a)
	}

	fields = append(fields, h.attrs...)

	var attrs []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)

		return true
	})

	fields = h.appendAttrs(fields, attrs)

	buf := h.encode(fields)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf)

	return err
}

// appendAttrs appends the fields of attrs qualified by the handler's open
// groups.
func (h *prettyHandler) appendAttrs(fields []field, attrs []slog.Attr) []field {
	for _, a := range attrs {
		if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
			a = h.opts.ReplaceAttr(h.groups, a)
		}

		fields = h.appendField(fields, h.prefix, a)
	}

	return fields
}

func (h *prettyHandler) appendField(
	fields []field,
	prefix string,
	a slog.Attr,
) []field {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			fields = h.appendField(fields, prefix, g)
		}

		return fields
	}

	return append(fields, field{
		key:   h.palette.key.Render(prefix + a.Key),
		value: h.renderValue(a.Value),
	})
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	p := h.palette

	switch v.Kind() {
	case slog.KindInt64:
		return p.number.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.number.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.number.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.duration.Render(v.Duration().String())

	case slog.KindTime:
		return p.time.Render(v.Time().String())

	case slog.KindAny:
		if v.Any() == nil {
			return p.key.Render("null")
		}

		if level, ok := v.Any().(slog.Level); ok {
			return p.level(level).Render(strings.ToUpper(Level(level).String()))
		}
	}

	return p.text.Render(v.String())
}

func (h *prettyHandler) encode(fields []field) []byte {
	var buf bytes.Buffer

	if h.format == FormatJSON {
		buf.WriteString("{\n")

		for i, f := range fields {
			if i > 0 {
				buf.WriteString(",\n")
			}

			buf.WriteString("  ")
			buf.WriteString(f.key)
			buf.WriteString(": ")
			buf.WriteString(f.value)
		}

		buf.WriteString("\n}\n")

		return buf.Bytes()
	}

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(f.key)
		buf.WriteByte('=')
		buf.WriteString(f.value)
	}

	buf.WriteByte('\n')

	return buf.Bytes()
}

package log

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"
)

// Buffers are not terminals, so pretty output carries no escape sequences
// and can be compared directly.
func TestPrettyHandler(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		log    func(Logger)
		want   string
	}{
		{
			name:   "text",
			format: FormatText,
			log: func(l Logger) {
				l.Warn("value truncated",
					slog.Int("index", 2),
					slog.Bool("stdout", false),
					slog.Duration("took", 1500*time.Millisecond),
					slog.Any("error", errors.New("too long")),
				)
			},
			want: "level=WARN msg=value truncated index=2 stdout=false took=1.5s error=too long\n",
		},
		{
			name:   "json",
			format: FormatJSON,
			log: func(l Logger) {
				l.Error("failed", slog.Float64("ratio", 0.5))
			},
			want: "{\n  level: ERROR,\n  msg: failed,\n  ratio: 0.5\n}\n",
		},
		{
			name:   "with_attrs_and_group",
			format: FormatText,
			log: func(l Logger) {
				l.With(slog.String("operator", "split")).
					WithGroup("step").
					Warn("skipped", slog.Int("index", 0), slog.Group("arg", slog.String("raw", ",")))
			},
			want: "level=WARN msg=skipped operator=split step.index=0 step.arg.raw=,\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithFormat(tt.format), WithTimeLayout("none")))

			if got := buf.String(); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestPrettyHandler_Time(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("2006")).Warn("stamped")

	want := time.Now().Format("2006")
	if got := buf.String(); got[:len("time="+want)] != "time="+want {
		t.Errorf("got %q, want time=%s prefix", got, want)
	}
}

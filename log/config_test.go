package log

import (
	"log/slog"
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{" TRACE ", LevelTrace},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"info+2", Level(slog.LevelInfo + 2)},
		{"", DefaultLevel},
		{"loud", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"JSON", FormatJSON},
		{" json\n", FormatJSON},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelsAndFormats(t *testing.T) {
	wantLevels := []string{"trace", "debug", "info", "warn", "error"}
	if got := slices.Collect(Levels()); !slices.Equal(got, wantLevels) {
		t.Errorf("Levels() = %v, want %v", got, wantLevels)
	}

	wantFormats := []string{"text", "json"}
	if got := slices.Collect(Formats()); !slices.Equal(got, wantFormats) {
		t.Errorf("Formats() = %v, want %v", got, wantFormats)
	}

	// Every name must parse back to itself.
	for name := range Levels() {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestConfig_With(t *testing.T) {
	base := makeConfig(nil)

	if base.level != DefaultLevel || base.format != DefaultFormat ||
		base.caller != DefaultCaller || base.pretty != DefaultPretty {
		t.Fatalf("unexpected defaults: %+v", base)
	}

	derived := base.with(
		WithLevel(LevelTrace),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
		nil,
	)

	if derived.level != LevelTrace || derived.format != FormatJSON ||
		!derived.caller || derived.pretty {
		t.Errorf("options not applied: %+v", derived)
	}

	if base.level != DefaultLevel || base.caller {
		t.Error("deriving a config modified its parent")
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ts := time.Date(2024, time.March, 9, 14, 5, 7, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T14:05:07Z"},
		{"rfc-3339-nano", "2024-03-09T14:05:07.123456789Z"},
		{"DateTime", "2024-03-09 14:05:07"},
		{"kitchen", "2:05PM"},
		{"ms", "Mar  9 14:05:07.123"},
		{"2006/01/02", "2024/03/09"},
		{"none", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
				t.Errorf("layout %q: got %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestConfig_ReplaceAttr(t *testing.T) {
	cfg := makeConfig(nil, WithTimeLayout("none"))

	if a := cfg.replaceAttr(nil, slog.Time(slog.TimeKey, time.Now())); !a.Equal(slog.Attr{}) {
		t.Errorf("time not removed: %v", a)
	}

	a := cfg.replaceAttr(nil, slog.Any(slog.LevelKey, slog.Level(LevelTrace)))
	if got := a.Value.String(); got != "TRACE" {
		t.Errorf("level = %q, want TRACE", got)
	}

	// Attributes inside groups are left alone.
	inner := slog.Time(slog.TimeKey, time.Now())
	if a := cfg.replaceAttr([]string{"g"}, inner); !a.Equal(inner) {
		t.Errorf("grouped attribute changed: %v", a)
	}
}

func BenchmarkFormatTime(b *testing.B) {
	format := makeFormatTimeFunc("RFC3339Nano")
	ts := time.Now()

	for b.Loop() {
		_ = format(ts)
	}
}

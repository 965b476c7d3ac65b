package cli

import (
	"testing"

	"github.com/ardnew/ctext/log"
)

func TestLogConfig_Scan(t *testing.T) {
	original := log.Default()
	t.Cleanup(func() {
		log.Config(
			log.WithLevel(original.Level()),
			log.WithFormat(original.Format()),
			log.WithPretty(log.DefaultPretty),
			log.WithCaller(log.DefaultCaller),
		)
	})

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate_values",
			args: []string{"-reverse", "--log-level", "debug", "abc", "--log-format", "json"},
			want: logConfig{Level: "debug", Format: "json", Pretty: true},
		},
		{
			name: "assigned_values",
			args: []string{"--log-level=trace", "--log-format=text"},
			want: logConfig{Level: "trace", Format: "text", Pretty: true},
		},
		{
			name: "missing_value",
			args: []string{"--log-level", "-reverse"},
			want: logConfig{Level: "", Pretty: true},
		},
		{
			name: "booleans",
			args: []string{"--no-log-pretty", "--log-caller"},
			want: logConfig{Pretty: false, Caller: true},
		},
		{
			name: "assigned_booleans",
			args: []string{"--log-pretty=false", "--no-log-caller=false", "--log-caller=maybe"},
			want: logConfig{Pretty: false, Caller: true},
		},
		{
			name: "stops_at_separator",
			args: []string{"--log-caller", "--", "--log-level", "error"},
			want: logConfig{Pretty: true, Caller: true},
		},
		{
			name: "ignores_other_flags",
			args: []string{"--no-log-level", "--logger", "--join", ","},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := logConfig{Pretty: true}
			cfg.scan(tt.args)

			if cfg != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, cfg, tt.want)
			}
		})
	}
}

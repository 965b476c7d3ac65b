package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ctext/log"
	"github.com/ardnew/ctext/profile"
)

const (
	// configIndent is the YAML indentation of the written configuration.
	configIndent = 2

	// runCommand names the command whose flags are written along with the
	// application flags.
	runCommand = "run"
)

// Init writes the configuration file, recording the current value of every
// configurable flag.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file" short:"f"`
}

// Run writes the configuration file named by the config variable.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)

	path := ktx.Model.Vars()[ConfigIdentifier]
	fail := ErrWriteConfig.With(slog.String("file", path))

	if _, err := os.Stat(path); err == nil && !i.Force {
		return fail.Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx,
		yaml.MapSlice{{Key: ConfigSection, Value: i.buildConfig(ktx)}},
		yaml.Indent(configIndent),
	)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fail.Wrap(err)
	}

	log.InfoContext(ctx, "configuration written", slog.String("path", path))

	return nil
}

// flags returns the application flags followed by the flags of the run
// command.
func (i *Init) flags(ktx *kong.Context) []*kong.Flag {
	flags := slices.Clone(ktx.Model.Flags)

	for _, child := range ktx.Model.Children {
		if child.Name == runCommand {
			flags = append(flags, child.Flags...)
		}
	}

	return flags
}

// buildConfig returns the configurable flags and their current values in
// flag order.
func (i *Init) buildConfig(ktx *kong.Context) yaml.MapSlice {
	var entries yaml.MapSlice

	skip := func(name string) bool {
		return name == "help" || name == "version" || strings.HasPrefix(name, profile.Tag)
	}

	for _, flag := range i.flags(ktx) {
		if flag.Hidden || skip(flag.Name) {
			continue
		}

		val := flagValue(ktx.FlagValue(flag))
		if val != nil {
			entries = append(entries, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return entries
}

// flagValue returns the YAML value for a flag value, or nil if it is unset
// or empty.
func flagValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case fmt.Stringer:
		return flagValue(v.String())

	default:
		return fmt.Sprint(v)
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ctext/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the named top-level mapping of a YAML config file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config.yaml")
//
// Values are converted as follows:
//   - Scalars become their literal text
//   - Sequences are joined with commas, so list flags may be written either
//     way
//   - Nested mappings and nulls are ignored
//   - Hyphens and underscores in flag names are interchangeable
//
// Example config file:
//
//	config:
//	  log_level: debug
//	  log-format: json
//	  max-len: 80
//	  output: [a.txt, b.txt]
//
// Command-line flags override config file values. A file that cannot be
// parsed is logged and ignored.
func resolve(ctx context.Context, section string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "config file ignored", slog.Any("error", err))

			return config{}, nil
		}

		values, ok := doc[section].(map[string]any)
		if !ok {
			return config{}, nil
		}

		cfg := make(config, len(values))

		for key, value := range values {
			if text, ok := flagText(value); ok {
				cfg[normalizeKey(key)] = text
			}
		}

		log.TraceContext(ctx, "config loaded",
			slog.String("section", section),
			slog.Int("flags", len(cfg)),
		)

		return cfg, nil
	}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// flagText renders a decoded YAML value as flag text. It reports false for
// values no flag can take.
func flagText(value any) (string, bool) {
	switch v := value.(type) {
	case nil, map[string]any:
		return "", false

	case string:
		return v, true

	case bool:
		return strconv.FormatBool(v), true

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true

	case []any:
		parts := make([]string, 0, len(v))

		for _, elem := range v {
			if text, ok := flagText(elem); ok {
				parts = append(parts, text)
			}
		}

		return strings.Join(parts, ","), true
	}

	return fmt.Sprint(value), true
}

// config implements [kong.Resolver] over flag names normalized by
// [normalizeKey].
type config map[string]string

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[normalizeKey(flag.Name)]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

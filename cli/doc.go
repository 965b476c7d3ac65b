// Package cli contains the command line interface for ctext.
//
// # Usage
//
//	ctext [flags] [inputs...] [-op[sel] [arg]]...
//	ctext ops [name] [--format text|json|yaml]
//	ctext repl [inputs...]
//	ctext init [--force]
//
// Operator tokens are removed from the arguments before flag parsing, in
// order, so they may be interleaved with inputs and flags:
//
//	ctext "hello world" -case upper -reverse -q -o out.txt
//
// # Configuration
//
// Flag defaults are read from the "config" mapping of a YAML file in the
// user configuration directory (e.g. ~/.config/ctext/config.yaml):
//
//	config:
//	  log-level: debug
//	  max-len: 120
//
// Command-line flags override configuration values. The file can be written
// from the current flag values with "ctext init".
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ctext .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/ctext/pprof)
package cli

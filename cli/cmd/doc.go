// Package cmd implements the ctext subcommands.
//
// The default command, [Run], applies operator invocations to inputs and
// prints or writes the results. [Ops] documents the operator registry,
// [Repl] starts an interactive session, and [Init] writes a configuration
// file from the current flag values.
//
// Operator invocations are scanned from the command line before flag parsing
// and handed to commands with [WithInvocations].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// ConfigSection is the top-level key of the configuration file holding
	// flag values.
	ConfigSection = "config"
)

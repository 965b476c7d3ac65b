package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ctext/cli/cmd"
	"github.com/ardnew/ctext/engine/builtin"
	"github.com/ardnew/ctext/pkg"
)

// CLI is the top-level command-line interface for ctext.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Init cmd.Init `cmd:"" help:"Initialize configuration file"`
	Ops  cmd.Ops  `cmd:"" help:"List or describe operators"`
	Repl cmd.Repl `cmd:"" help:"Apply operators interactively"`

	Run cmd.Run `cmd:"" default:"withargs" help:"Apply operators to inputs"`
}

// Run parses args and runs the selected command. Kong calls exit after
// printing help or version information.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfigFile)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version(),
	}.
		CloneWith(cmd.Vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	reg := builtin.NewRegistry()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.Bind(reg),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(resolve(ctx, cmd.ConfigSection), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	// Operator tokens look like flags, so they are removed before kong parses
	// the rest.
	args, invs := scanOperators(reg, declaredFlags(parser.Model), args)

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithInvocations(cmd.WithContext(ctx, ktx), invs)

	cli.Log.start(ctx)
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}

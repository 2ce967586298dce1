package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// ErrNoInputs is returned when no input files were given and the working
// directory has no readable package.json to supply an entry point.
var ErrNoInputs = errors.New("documentation was given no files and was not run in a module directory")

// exitError carries a message and a specific process exit status.
type exitError struct {
	Code    int
	Message string
}

func (e *exitError) Error() string {
	return e.Message
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	dir    string
	engine Engine
	argv   []string
	flags  cliFlags
}

func run(argv []string, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	app := &cliApp{
		stdout: stdout,
		stderr: stderr,
		dir:    ".",
		engine: newProcessEngine(os.Getenv(engineEnvVar), stderr),
	}
	return app.execute(ctx, argv)
}

// execute builds a fresh command tree for argv, so no parser state survives
// between calls.
func (app *cliApp) execute(ctx context.Context, argv []string) error {
	if argv == nil {
		// Cobra falls back to os.Args for a nil slice.
		argv = []string{}
	}
	app.argv = argv
	app.flags = cliFlags{}
	cmd := newRootCmd(app)
	cmd.SetArgs(argv)
	return cmd.ExecuteContext(ctx)
}

// resolveOptions loads the config file named by --config, if any, and merges
// the command line over it.
func (app *cliApp) resolveOptions(cmd *cobra.Command) (Options, error) {
	var file fileConfig
	if app.flags.config != "" {
		cfg, err := loadConfigFile(app.flags.config)
		if err != nil {
			return Options{}, err
		}
		file = cfg
	}
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	opts, err := mergeOptions(file, app.flags, changed)
	if err != nil {
		return Options{}, err
	}
	loggerFrom(cmd.Context()).Debug("resolved options", "config", opts.Config, "access", opts.Access, "extension", opts.Extension)
	return opts, nil
}

// resolve produces the invocation for the selected command. Without explicit
// inputs the entry point comes from package.json.
func (app *cliApp) resolve(cmd *cobra.Command, selected command, positionals []string) (Invocation, error) {
	opts, err := app.resolveOptions(cmd)
	if err != nil {
		return Invocation{}, err
	}
	inputs := positionals
	if len(inputs) == 0 {
		manifest, err := loadManifest(app.dir)
		if err != nil {
			loggerFrom(cmd.Context()).Debug("package manifest unavailable", "dir", app.dir, "error", err)
			app.showUsage(cmd)
			return Invocation{}, ErrNoInputs
		}
		opts.Package = manifest
		inputs = []string{manifest.entryPoint()}
	}
	return Invocation{
		Command: selected,
		Dir:     app.dir,
		Inputs:  inputs,
		Options: opts,
	}, nil
}

func (app *cliApp) dispatch(ctx context.Context, inv Invocation) error {
	loggerFrom(ctx).Debug("dispatching command", "command", inv.Command.Name(), "inputs", inv.Inputs)
	if err := inv.Command.run(ctx, app.engine, inv); err != nil {
		return fmt.Errorf("%s: %w", inv.Command.Name(), err)
	}
	return nil
}

func (app *cliApp) showUsage(cmd *cobra.Command) {
	fmt.Fprint(app.stderr, cmd.Root().UsageString())
}

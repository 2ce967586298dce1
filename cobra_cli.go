package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootName = "documentation"

const rootLongDesc = `
documentation resolves a command, its input files and options into a single
configuration and hands it to the documentation engine.

Options come from three places, lowest precedence first:

  • a config file named with --config (YAML, JSON or HCL)
  • flags given on the command line
  • package.json in the working directory, used for the entry file when no
    input files are given

Only files whose extension is accepted (js, plus any --extension) are passed
to the engine.
`

func newRootCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           rootName + " <command> [input files...]",
		Short:         "Generate documentation from JavaScript sources",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	// Unknown tokens reach RunE so they can be reported with a suggestion,
	// and flags of other commands must not abort that report.
	cmd.FParseErrWhitelist.UnknownFlags = true

	flags := cmd.PersistentFlags()
	flags.BoolVar(&app.flags.shallow, "shallow", false, "shallow mode turns off dependency resolution, only processing the specified files (or the main script specified in package.json)")
	flags.StringVarP(&app.flags.config, "config", "c", "", "configuration file (YAML, JSON or HCL)")
	flags.StringVar(&app.flags.external, "external", "", "a glob pattern that defines which external modules will be whitelisted and included in the generated documentation")
	flags.StringArrayVarP(&app.flags.extension, "extension", "e", nil, "only input source files matching this extension will be parsed; may be repeated")
	flags.BoolVar(&app.flags.polyglot, "polyglot", false, "polyglot mode turns off dependency resolution and enables multi-language support")
	flags.BoolVarP(&app.flags.private, "private", "p", false, "generate documentation tagged as private")
	flags.StringSliceVarP(&app.flags.access, "access", "a", nil, "include only comments with a given access level, out of private, protected, public, undefined (default public, protected, undefined)")
	flags.BoolVarP(&app.flags.github, "github", "g", false, "infer links to github in documentation")
	flags.StringVarP(&app.flags.url, "url", "u", "", "github url if different from gist.github.com and github.com")
	flags.BoolVar(&app.flags.debug, "debug", false, "log option resolution and engine calls")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(withLogger(ctx, newLogger(app.stderr, app.flags.debug)))
		return nil
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		// Config problems are reported before command selection.
		if _, err := app.resolveOptions(cmd); err != nil {
			return err
		}
		app.showUsage(cmd)
		if len(args) == 0 {
			return errors.New("a command is required")
		}
		return &exitError{
			Code:    1,
			Message: fmt.Sprintf("Unknown command: %s.  Did you mean \"%s\"?", args[0], suggestBuild(app.argv, args[0])),
		}
	}

	for _, variant := range newCommandSet(app.stdout) {
		cmd.AddCommand(newDocCommand(app, variant))
	}
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newDocCommand(app *cliApp, variant command) *cobra.Command {
	cmd := &cobra.Command{
		Use:           variant.Name() + " [input files...]",
		Short:         variant.Description(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	variant.bindFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		inv, err := app.resolve(cmd, variant, args)
		if err != nil {
			return err
		}
		return app.dispatch(cmd.Context(), inv)
	}
	return cmd
}

// suggestBuild rewrites the given arguments with build in place of the
// unknown command.
func suggestBuild(argv []string, unknown string) string {
	parts := []string{rootName, "build"}
	replaced := false
	for _, arg := range argv {
		if !replaced && arg == unknown {
			replaced = true
			continue
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for documentation.

The output should be evaluated by your shell. For example:

  # bash
  documentation completion bash > /usr/local/etc/bash_completion.d/documentation

  # zsh
  documentation completion zsh > "${fpath[1]}/_documentation"

  # fish
  documentation completion fish | source

  # PowerShell
  documentation completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  documentation gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}

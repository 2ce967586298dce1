package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

// Invocation is the fully resolved request produced from the command line:
// the selected command, the input paths (relative to Dir) and the options.
type Invocation struct {
	Command command
	Dir     string
	Inputs  []string
	Options Options
}

// command is a documentation subcommand. The set of implementations is closed:
// each variant declares its own flags and handles its own dispatch.
type command interface {
	Name() string
	Description() string
	bindFlags(flags *pflag.FlagSet)
	run(ctx context.Context, engine Engine, inv Invocation) error
}

// newCommandSet returns fresh instances of every subcommand, in help order.
func newCommandSet(out io.Writer) []command {
	return []command{
		&buildCommand{out: out},
		&lintCommand{out: out},
		&serveCommand{out: out},
		&readmeCommand{out: out},
	}
}

var errLintProblems = errors.New("lint found problems")

type buildCommand struct {
	out    io.Writer
	format string
	output string
}

func (c *buildCommand) Name() string        { return "build" }
func (c *buildCommand) Description() string { return "build documentation" }

func (c *buildCommand) bindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.format, "format", "f", "json", "output format, out of json, md, html")
	flags.StringVarP(&c.output, "output", "o", "-", "output location; - writes to stdout")
}

func (c *buildCommand) run(ctx context.Context, engine Engine, inv Invocation) error {
	if err := checkFormat(c.format); err != nil {
		return err
	}
	files, err := discoverFiles(ctx, inv.Dir, inv.Inputs, inv.Options)
	if err != nil {
		return err
	}
	out, err := engine.Build(ctx, Request{Files: files, Format: c.format, Options: inv.Options})
	if err != nil {
		return err
	}
	return writeOutput(c.output, c.out, out)
}

type lintCommand struct {
	out io.Writer
}

func (c *lintCommand) Name() string                { return "lint" }
func (c *lintCommand) Description() string         { return "check for common style and uniformity mistakes" }
func (c *lintCommand) bindFlags(flags *pflag.FlagSet) {}

func (c *lintCommand) run(ctx context.Context, engine Engine, inv Invocation) error {
	files, err := discoverFiles(ctx, inv.Dir, inv.Inputs, inv.Options)
	if err != nil {
		return err
	}
	report, err := engine.Lint(ctx, Request{Files: files, Options: inv.Options})
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(report)) == 0 {
		return nil
	}
	if _, err := c.out.Write(report); err != nil {
		return err
	}
	return errLintProblems
}

type serveCommand struct {
	out  io.Writer
	port int
}

func (c *serveCommand) Name() string        { return "serve" }
func (c *serveCommand) Description() string { return "generate, update, and display HTML documentation" }

func (c *serveCommand) bindFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.port, "port", 4001, "port for the local server")
}

func (c *serveCommand) run(ctx context.Context, engine Engine, inv Invocation) error {
	files, err := discoverFiles(ctx, inv.Dir, inv.Inputs, inv.Options)
	if err != nil {
		return err
	}
	page, err := engine.Build(ctx, Request{Files: files, Format: "html", Options: inv.Options})
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           newDocsHandler(page),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	fmt.Fprintf(c.out, "documentation served at http://localhost:%d\n", c.port)
	loggerFrom(ctx).Debug("serving documentation", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newDocsHandler(page []byte) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
	return mux
}

type readmeCommand struct {
	out        io.Writer
	readmeFile string
	section    string
	diffOnly   bool
	quiet      bool
}

func (c *readmeCommand) Name() string        { return "readme" }
func (c *readmeCommand) Description() string { return "inject documentation into your README.md" }

func (c *readmeCommand) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.readmeFile, "readme-file", "README.md", "the markdown file into which to inject documentation")
	flags.StringVarP(&c.section, "section", "s", "API", "the section heading after which to inject generated documentation")
	flags.BoolVarP(&c.diffOnly, "diff-only", "d", false, "instead of updating the file, only check whether it is up to date")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "quiet mode: do not print messages")
}

func (c *readmeCommand) run(ctx context.Context, engine Engine, inv Invocation) error {
	files, err := discoverFiles(ctx, inv.Dir, inv.Inputs, inv.Options)
	if err != nil {
		return err
	}
	markdown, err := engine.Build(ctx, Request{Files: files, Format: "md", Options: inv.Options})
	if err != nil {
		return err
	}
	path := c.readmeFile
	if inv.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(inv.Dir, path)
	}
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	updated := injectSection(existing, c.section, markdown)
	if bytes.Equal(existing, updated) {
		c.say("%s is up to date\n", c.readmeFile)
		return nil
	}
	if c.diffOnly {
		return fmt.Errorf("%s is out of date; run readme without --diff-only to update it", c.readmeFile)
	}
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return err
	}
	c.say("updated %s\n", c.readmeFile)
	return nil
}

func (c *readmeCommand) say(format string, args ...any) {
	if !c.quiet {
		fmt.Fprintf(c.out, format, args...)
	}
}

func checkFormat(format string) error {
	switch format {
	case "json", "md", "html":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (choose from json, md, html)", format)
	}
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

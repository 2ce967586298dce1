// # documentation
//
// `documentation` is the command-line front end of a JavaScript
// documentation generator. It turns a command line into one resolved
// configuration, selects the eligible source files and hands both to a
// documentation engine that does the parsing and rendering.
//
// ## Usage
//
//	documentation <command> [input files...] [flags]
//
// Commands:
//
//   - `build`: render documentation as JSON, Markdown or HTML (`-f`, `-o`).
//   - `lint`: report documentation style problems; exits non-zero when the
//     engine reports any.
//   - `serve`: render HTML once and serve it on `--port` (default 4001).
//   - `readme`: replace a section of README.md (`--section`, default `API`)
//     with generated Markdown; `--diff-only` only checks freshness.
//
// When no input files are given, the `main` entry of `package.json` in the
// working directory is used (`index.js` if `main` is empty). Without a
// package.json the command fails.
//
// An unknown command prints the usage text together with the same command
// line rewritten to use `build`, and exits with status 1.
//
// ## Options
//
// Options are merged field by field. A value from `--config` is used unless
// the same flag was given on the command line.
//
//   - `--shallow`, `--polyglot`, `--external`, `-g/--github`, `-u/--url`:
//     forwarded to the engine.
//   - `-e/--extension`: additional accepted file extensions. `js` is always
//     accepted.
//   - `-a/--access`: access levels to include (public, private, protected,
//     undefined).
//   - `-p/--private`: add `private` to the access levels, starting from
//     public, undefined and protected when none were given.
//   - `-c/--config`: YAML, JSON or HCL config file using the flag names as
//     keys. Keys the front end does not know are forwarded untouched.
//
// ## Engine
//
// The engine binary is taken from `DOCUMENTATION_ENGINE` (also read from a
// `.env` file) and defaults to `documentation-engine`. It is started as
// `<engine> build|lint`, receives the request as JSON on stdin and writes the
// result to stdout.
package main

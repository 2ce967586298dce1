package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
)

const (
	engineEnvVar        = "DOCUMENTATION_ENGINE"
	defaultEngineBinary = "documentation-engine"
)

// Request is what a command sends to the engine: the filtered file set, the
// desired output format and the resolved options.
type Request struct {
	Files   []SourceFile `json:"files"`
	Format  string       `json:"format,omitempty"`
	Options Options      `json:"options"`
}

// Engine extracts and renders documentation. Parsing and rendering live
// behind this interface.
type Engine interface {
	// Build renders documentation for req.Files in req.Format.
	Build(ctx context.Context, req Request) ([]byte, error)
	// Lint returns a human-readable report; an empty report means no
	// problems were found.
	Lint(ctx context.Context, req Request) ([]byte, error)
}

// processEngine runs an external engine binary once per call. The action is
// passed as the only argument, the request as JSON on stdin, and stdout is
// the result.
type processEngine struct {
	binary string
	stderr io.Writer
}

func newProcessEngine(binary string, stderr io.Writer) *processEngine {
	if binary == "" {
		binary = defaultEngineBinary
	}
	return &processEngine{binary: binary, stderr: stderr}
}

func (e *processEngine) Build(ctx context.Context, req Request) ([]byte, error) {
	return e.invoke(ctx, "build", req)
}

func (e *processEngine) Lint(ctx context.Context, req Request) ([]byte, error) {
	return e.invoke(ctx, "lint", req)
}

func (e *processEngine) invoke(ctx context.Context, action string, req Request) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode engine request: %w", err)
	}
	loggerFrom(ctx).Debug("invoking documentation engine", "binary", e.binary, "action", action, "files", len(req.Files))

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, action)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = e.stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("documentation engine %s %s: %w", e.binary, action, err)
	}
	return stdout.Bytes(), nil
}

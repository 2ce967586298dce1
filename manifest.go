package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const manifestFile = "package.json"

// Manifest is the subset of package.json the front end reads. Raw keeps the
// whole document so the engine sees every field.
type Manifest struct {
	Name        string          `json:"name,omitempty"`
	Version     string          `json:"version,omitempty"`
	Description string          `json:"description,omitempty"`
	Main        string          `json:"main,omitempty"`
	Homepage    string          `json:"homepage,omitempty"`
	Repository  json.RawMessage `json:"repository,omitempty"`
	Raw         map[string]any  `json:"-"`
}

func loadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &m.Raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// entryPoint is the file documented when no inputs were given.
func (m *Manifest) entryPoint() string {
	if m.Main != "" {
		return m.Main
	}
	return "index.js"
}

// MarshalJSON forwards the full manifest rather than the parsed subset.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	if m.Raw != nil {
		return json.Marshal(m.Raw)
	}
	type plain Manifest
	return json.Marshal((*plain)(m))
}

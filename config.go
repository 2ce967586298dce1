package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the CLI options as they appear in a config file. Pointer
// fields distinguish "absent" from a zero value so the merge can tell which
// side supplied a setting.
type fileConfig struct {
	Shallow   *bool          `yaml:"shallow"`
	External  *string        `yaml:"external"`
	Extension stringList     `yaml:"extension"`
	Polyglot  *bool          `yaml:"polyglot"`
	Private   *bool          `yaml:"private"`
	Access    stringList     `yaml:"access"`
	GitHub    *bool          `yaml:"github"`
	URL       *string        `yaml:"url"`
	U         *string        `yaml:"u"`
	TOC       []any          `yaml:"toc"`
	Extra     map[string]any `yaml:",inline"`
}

// stringList accepts either a single scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = stringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

// loadConfigFile reads a YAML, JSON or HCL config file. Errors are returned to
// the caller unchanged apart from naming the file.
func loadConfigFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		data, err = hclToJSON(path, data)
		if err != nil {
			return fileConfig{}, err
		}
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// hclToJSON evaluates the top-level attributes of an HCL file and re-encodes
// them as a JSON object, which the YAML decoder reads like any other config.
func hclToJSON(path string, src []byte) ([]byte, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %q in %s: %w", name, path, diags)
		}
		if v.IsNull() {
			continue
		}
		values[name] = v
	}
	return ctyjson.SimpleJSONValue{Value: cty.ObjectVal(values)}.MarshalJSON()
}

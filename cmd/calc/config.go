package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// config is the shell configuration file. For example:
//
//	prompt: "calc> "
//	history: ~/.calc_history
//	locale: de-DE
//	vars:
//	  rate: 0.07
//	  total: rate * 100
//	macros:
//	  double: x * 2
//
// Variables are expressions evaluated in order, so later ones may use
// earlier ones.
type config struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
	Locale  string `yaml:"locale"`
	// Vars and Macros are mappings kept as nodes to preserve their order.
	Vars   yaml.Node `yaml:"vars"`
	Macros yaml.Node `yaml:"macros"`
}

func defaultConfig() config {
	return config{Prompt: "> ", History: "~/.calc_history"}
}

func loadConfig(name string) (config, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return config{}, err
	}
	cfg, err := parseConfig(b)
	if err != nil {
		return config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// parseConfig decodes a configuration. Fields absent from the document keep
// their defaults.
func parseConfig(b []byte) (config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// pairs lists the entries of a YAML mapping of scalars in document order. A
// zero node is an empty mapping.
func pairs(n *yaml.Node) ([][2]string, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: want a mapping", n.Line)
	}
	r := make([][2]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: want name: expression", k.Line)
		}
		r = append(r, [2]string{k.Value, v.Value})
	}
	return r, nil
}

// historyPath expands a leading ~ in the history file name. An empty name
// disables history.
func (cfg config) historyPath() string {
	p := cfg.History
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		p = filepath.Join(home, p[1:])
	}
	return p
}

// Package config loads the optional settings shared by pyjs's
// collaborator surfaces (HTTP, MCP, REPL) from a YAML document.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the collaborator settings. pyjs-server reads HTTP and
// pyjs-mcp reads MCP; the REPL section is parsed but no binary uses it
// (the pyjs repl subcommand has fixed prompts). Fields a file leaves out
// keep their Default values, so an absent or partial file is fine.
type Config struct {
	HTTP struct {
		Address string `yaml:"address,omitempty"`
	} `yaml:"http,omitempty"`

	MCP struct {
		ServerName string `yaml:"server_name,omitempty"`
	} `yaml:"mcp,omitempty"`

	REPL struct {
		Prompt           string `yaml:"prompt,omitempty"`
		ContinuationPrompt string `yaml:"continuation_prompt,omitempty"`
	} `yaml:"repl,omitempty"`
}

// Default returns the baked-in settings used when no config file is
// supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.Address = ":8080"
	cfg.MCP.ServerName = "pyjs"
	cfg.REPL.Prompt = ">>> "
	cfg.REPL.ContinuationPrompt = "... "
	return cfg
}

// Load reads and merges a YAML config file over the defaults. A missing
// path is not an error: Load returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of a .sfvtool.yaml config file.
type fileConfig struct {
	// Fields maps a header name to the top-level mode ("item", "list", or
	// "dict") it should be parsed as. Headers absent from this map default
	// to "item".
	Fields map[string]string `yaml:"fields"`
}

func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{Fields: map[string]string{}}

	if path == "" {
		path = ".sfvtool.yaml"
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Fields == nil {
		cfg.Fields = map[string]string{}
	}
	return cfg, nil
}

func (c *fileConfig) modeFor(header string) string {
	if mode, ok := c.Fields[header]; ok {
		return mode
	}
	return "item"
}

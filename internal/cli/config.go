package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the generator configuration loaded from a YAML file.
//
//	type_mappings:
//	  reasonml:
//	    Uuid: string
//	  typescript:
//	    Uuid: string
//	no_version_header: true
type Config struct {
	// TypeMappings maps a backend name to its explicit type rename
	// table (IR type name or special-kind name to target token).
	TypeMappings map[string]map[string]string `yaml:"type_mappings"`

	// NoVersionHeader suppresses the version banner in generated files.
	NoVersionHeader bool `yaml:"no_version_header"`
}

// MappingsFor returns the rename table for the named backend,
// never nil.
func (c *Config) MappingsFor(backend string) map[string]string {
	if m, ok := c.TypeMappings[backend]; ok {
		return m
	}
	return map[string]string{}
}

// LoadConfig reads and parses a YAML config file. An empty path yields
// the zero config. The config is built once per run and treated as
// read-only during emission.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

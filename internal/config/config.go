// Package config loads the optional .ebnfc.yaml project file that
// supplies default flag values the command line can still override.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working
// directory when the CLI is not given an explicit --config path.
const DefaultFile = ".ebnfc.yaml"

// Config holds the subset of ebnfc flags that a project can pin as
// defaults. Zero values mean "unset"; the CLI only applies a value
// here when the corresponding flag was not passed explicitly.
type Config struct {
	Asm     *bool `yaml:"asm"`
	Verbose *bool `yaml:"verbose"`
}

// Load reads path (or DefaultFile if path is empty) and parses it as
// YAML. A missing file is not an error: Load returns a zero Config so
// callers can proceed with built-in defaults. An explicit --config
// path that doesn't exist, or a file that fails to parse, is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyBool returns override if it was explicitly set on the command
// line (flagSet), otherwise falls back to cfgVal if the config file
// set one, otherwise fallback.
func ApplyBool(flagSet bool, override bool, cfgVal *bool, fallback bool) bool {
	if flagSet {
		return override
	}
	if cfgVal != nil {
		return *cfgVal
	}
	return fallback
}

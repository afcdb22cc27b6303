package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config filename looked up in the working directory.
const DefaultFile = "rabo2ofx.yaml"

// KeyForceDatePosted makes the transaction date win over the interest
// date whenever the two differ.
const KeyForceDatePosted = "force_date_posted"

// Config represents the top-level rabo2ofx.yaml configuration.
type Config struct {
	// Accounts lists your own IBANs in processing order. Transfers
	// between two listed accounts are written once, on the account
	// listed first.
	Accounts  []string  `yaml:"accounts,omitempty"`
	Overrides Overrides `yaml:"overrides,omitempty"`
}

// Overrides holds per-run behavior switches keyed by name.
type Overrides map[string]string

// Bool reports whether the named override is set to a true value.
// Absent or unparsable values count as false.
func (o Overrides) Bool(key string) bool {
	v, ok := o[key]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

// Load reads a rabo2ofx.yaml file from disk. A missing file is not an
// error: the converter runs fine without one, it just cannot dedupe
// transfers between your own accounts.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Example returns a starter configuration for config init.
func Example() *Config {
	return &Config{
		Accounts: []string{
			"NL01RABO0123456789",
			"NL02RABO0987654321",
		},
		Overrides: Overrides{
			KeyForceDatePosted: "false",
		},
	}
}

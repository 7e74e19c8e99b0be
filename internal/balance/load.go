package balance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadBytes parses a balance configuration from raw JSON and validates it.
// Unknown fields are rejected so that typos in balance files fail loudly.
//
// Postcondition: Returns a config for which Validate().Valid() is true, or a
// non-nil error naming every violation.
func LoadBytes(data []byte) (*Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing balance JSON: %w", err)
	}

	if vs := cfg.Validate(); !vs.Valid() {
		return nil, fmt.Errorf("balance configuration invalid: %s", vs.Errors())
	}
	return &cfg, nil
}

// Load reads a balance configuration file from path.
//
// Precondition: path must be a readable JSON file.
// Postcondition: Returns a validated config or a non-nil error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading balance file %q: %w", path, err)
	}
	cfg, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading balance file %q: %w", path, err)
	}
	return cfg, nil
}

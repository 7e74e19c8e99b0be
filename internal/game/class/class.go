// Package class defines playable character classes and their definition loader.
package class

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
)

// ID identifies a character class.
type ID string

const (
	Warrior ID = "warrior"
	Mage    ID = "mage"
	Rogue   ID = "rogue"
	Cleric  ID = "cleric"
)

// validIDs is the set of all legal class IDs.
var validIDs = map[ID]struct{}{
	Warrior: {},
	Mage:    {},
	Rogue:   {},
	Cleric:  {},
}

// validKeyAttributes is the set of legal key_attribute values.
var validKeyAttributes = map[string]struct{}{
	"strength": {}, "dexterity": {}, "constitution": {},
	"intelligence": {}, "wisdom": {}, "charisma": {},
}

// Class defines a playable character class loaded from YAML.
type Class struct {
	ID          ID     `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// KeyAttribute names the attribute grown on level-up: "strength",
	// "dexterity", "constitution", "intelligence", "wisdom", or "charisma".
	KeyAttribute string `yaml:"key_attribute"`
	// HitPointsPerLevel is the base HP gained per level before multipliers.
	HitPointsPerLevel int `yaml:"hit_points_per_level"`
	// ManaPointsPerLevel is the base MP gained per level before multipliers.
	ManaPointsPerLevel int `yaml:"mana_points_per_level"`
	// AttributeBase is the level-1 attribute set for a fresh character.
	AttributeBase attribute.Set `yaml:"attribute_base"`
	// AttributeGrowth is the per-level attribute delta; level-N attributes
	// are recomputed as base + growth×(N-1), never mutated in place.
	AttributeGrowth attribute.Set `yaml:"attribute_growth"`
	// StartingCopper is the starting purse in base-unit copper.
	StartingCopper int `yaml:"starting_copper"`
}

// Validate checks that the class definition satisfies its invariants.
//
// Precondition: c must not be nil.
// Postcondition: Returns nil iff all fields are well-formed.
func (c *Class) Validate() error {
	var errs []string
	if _, ok := validIDs[c.ID]; !ok {
		errs = append(errs, fmt.Sprintf("id %q is not a valid class", c.ID))
	}
	if c.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if _, ok := validKeyAttributes[c.KeyAttribute]; !ok {
		errs = append(errs, fmt.Sprintf("key_attribute %q is not a valid attribute", c.KeyAttribute))
	}
	if c.HitPointsPerLevel < 1 {
		errs = append(errs, fmt.Sprintf("hit_points_per_level must be >= 1, got %d", c.HitPointsPerLevel))
	}
	if c.ManaPointsPerLevel < 0 {
		errs = append(errs, fmt.Sprintf("mana_points_per_level must be >= 0, got %d", c.ManaPointsPerLevel))
	}
	if c.StartingCopper < 0 {
		errs = append(errs, fmt.Sprintf("starting_copper must be >= 0, got %d", c.StartingCopper))
	}
	if len(errs) > 0 {
		return fmt.Errorf("class validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// AttributesAtLevel returns the class attribute set recomputed for level.
func (c *Class) AttributesAtLevel(level int) attribute.Set {
	return attribute.AtLevel(c.AttributeBase, c.AttributeGrowth, level)
}

// LoadFromBytes parses a single class definition from raw YAML.
// Unknown fields are rejected.
func LoadFromBytes(data []byte) (*Class, error) {
	var c Class
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing class YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadDir reads all *.yaml files in dir and returns the parsed classes
// keyed by ID.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all classes or an error on the first parse or
// validation failure.
func LoadDir(dir string) (map[ID]*Class, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading class dir %q: %w", dir, err)
	}

	classes := make(map[ID]*Class)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		c, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, dup := classes[c.ID]; dup {
			return nil, fmt.Errorf("loading %q: duplicate class id %q", path, c.ID)
		}
		classes[c.ID] = c
	}
	return classes, nil
}

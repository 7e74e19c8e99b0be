// Package enemy provides enemy definitions, party-level scaling, boss
// phase selection, and loot generation.
package enemy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/item"
	"github.com/norvaldb/land-of-mist/internal/game/status"
)

// Definition defines a reusable enemy archetype loaded from YAML.
type Definition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Level is the authored level; party-level scaling starts from here.
	Level           int           `yaml:"level"`
	AttributeBase   attribute.Set `yaml:"attribute_base"`
	AttributeGrowth attribute.Set `yaml:"attribute_growth"`
	MaxHP           int           `yaml:"max_hp"`
	MaxMana         int           `yaml:"max_mana"`
	ArmorClass      int           `yaml:"armor_class"`
	Initiative      int           `yaml:"initiative"`
	// Experience is the base XP award for defeating this enemy.
	Experience int `yaml:"experience"`
	// DifficultyMultiplier is this enemy's innate toughness factor;
	// 1.0 for a standard enemy, above 1 for elites and bosses.
	DifficultyMultiplier float64 `yaml:"difficulty_multiplier"`
	// ScalesWithPartyLevel enables the 15%-per-level stat ramp.
	ScalesWithPartyLevel bool `yaml:"scales_with_party_level"`
	// WeaponID names the natural weapon definition this enemy attacks
	// with; empty for enemies that only cast.
	WeaponID string `yaml:"weapon"`
	// Abilities lists spell IDs this enemy may cast.
	Abilities   []string          `yaml:"abilities"`
	Resistances []item.Resistance `yaml:"resistances"`
	Loot        *LootTable        `yaml:"loot"`
	// Phases, if present, make this enemy a boss. Ordered descending by
	// HP threshold.
	Phases []Phase `yaml:"phases"`
}

// Validate checks that the definition satisfies basic invariants.
//
// Precondition: d must not be nil.
// Postcondition: Returns nil iff all fields are well-formed; returns an
// error on the first violation otherwise.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("enemy definition: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("enemy definition %q: name must not be empty", d.ID)
	}
	if d.Level < 1 {
		return fmt.Errorf("enemy definition %q: level must be >= 1", d.ID)
	}
	if d.MaxHP < 1 {
		return fmt.Errorf("enemy definition %q: max_hp must be >= 1", d.ID)
	}
	if d.MaxMana < 0 {
		return fmt.Errorf("enemy definition %q: max_mana must be >= 0", d.ID)
	}
	if d.ArmorClass < 0 {
		return fmt.Errorf("enemy definition %q: armor_class must be >= 0", d.ID)
	}
	if d.Initiative < 0 {
		return fmt.Errorf("enemy definition %q: initiative must be >= 0", d.ID)
	}
	if d.Experience < 0 {
		return fmt.Errorf("enemy definition %q: experience must be >= 0", d.ID)
	}
	if d.DifficultyMultiplier <= 0 {
		return fmt.Errorf("enemy definition %q: difficulty_multiplier must be > 0", d.ID)
	}
	for i, id := range d.Abilities {
		if id == "" {
			return fmt.Errorf("enemy definition %q: ability[%d] must not be empty", d.ID, i)
		}
	}
	if errs := item.ValidateResistances(d.Resistances); len(errs) > 0 {
		return fmt.Errorf("enemy definition %q: %v", d.ID, errs)
	}
	if d.Loot != nil {
		if err := d.Loot.Validate(); err != nil {
			return fmt.Errorf("enemy definition %q: %w", d.ID, err)
		}
	}
	if err := validatePhases(d.Phases); err != nil {
		return fmt.Errorf("enemy definition %q: %w", d.ID, err)
	}
	return nil
}

// IsBoss reports whether the enemy has boss phases.
func (d *Definition) IsBoss() bool {
	return len(d.Phases) > 0
}

// ResistanceTo returns the fraction of incoming damage of element e this
// enemy absorbs, or 0 if none.
func (d *Definition) ResistanceTo(e status.Element) float64 {
	return item.ResistanceFor(d.Resistances, e)
}

// LoadDefinitionFromBytes parses a single enemy definition from raw YAML.
//
// Precondition: data must be valid YAML for a single Definition.
// Postcondition: Returns a validated *Definition, or an error.
func LoadDefinitionFromBytes(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing enemy YAML: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinitions reads all *.yaml files in dir and returns the parsed
// definitions.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all definitions or an error on the first parse
// or validate failure; on error, the partial result is discarded.
func LoadDefinitions(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy dir %q: %w", dir, err)
	}

	var defs []*Definition
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		def, err := LoadDefinitionFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

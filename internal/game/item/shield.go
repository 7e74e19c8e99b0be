package item

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/currency"
	"github.com/norvaldb/land-of-mist/internal/game/status"
)

// ShieldType represents the category of a shield.
type ShieldType string

const (
	ShieldBuckler ShieldType = "buckler"
	ShieldRound   ShieldType = "round"
	ShieldTower   ShieldType = "tower"
	ShieldMagic   ShieldType = "magic"
)

// shieldBlockMultiplier weights block chance by shield type. Bucklers are
// nimble, tower shields unwieldy.
var shieldBlockMultiplier = map[ShieldType]float64{
	ShieldBuckler: 1.2,
	ShieldRound:   1.0,
	ShieldTower:   0.8,
	ShieldMagic:   1.1,
}

// ShieldDef defines the immutable properties of a shield loaded from YAML.
type ShieldDef struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Type        ShieldType `yaml:"type"`
	BaseDefense int        `yaml:"base_defense"`
	// BaseBlockChance is the innate block probability, in [0, 1].
	BaseBlockChance float64      `yaml:"base_block_chance"`
	Requirements    Requirement  `yaml:"requirements"`
	Resistances     []Resistance `yaml:"resistances"`
	ValueCopper     int          `yaml:"value_copper"`
}

// EffectiveDefense computes the defense granted to a bearer with the
// given attributes. The attribute bonus is type-conditional, not general:
// tower shields add the Strength modifier, bucklers add the Dexterity
// modifier, round and magic shields grant base defense only.
//
// Postcondition: Returns >= 0.
func (s *ShieldDef) EffectiveDefense(attrs attribute.Set) int {
	def := s.BaseDefense
	switch s.Type {
	case ShieldTower:
		def += attrs.StrengthModifier()
	case ShieldBuckler:
		def += attrs.DexterityModifier()
	}
	if def < 0 {
		def = 0
	}
	return def
}

// BlockChance computes the probability this shield blocks an incoming
// attack for a bearer with the given attributes:
// (base + dexterityModifier×0.02) weighted by shield type (buckler 1.2,
// round 1.0, tower 0.8, magic 1.1), clamped to [0, 1].
func (s *ShieldDef) BlockChance(attrs attribute.Set) float64 {
	raw := (s.BaseBlockChance + float64(attrs.DexterityModifier())*0.02) * shieldBlockMultiplier[s.Type]
	return clamp01(raw)
}

// ResistanceTo returns the fraction of incoming damage of element e this
// shield absorbs, or 0 if none.
func (s *ShieldDef) ResistanceTo(e status.Element) float64 {
	return ResistanceFor(s.Resistances, e)
}

// Value returns the shield's worth as a Currency purse.
func (s *ShieldDef) Value() currency.Currency {
	return currency.FromCopper(s.ValueCopper)
}

// Validate reports an error if the ShieldDef is missing required fields
// or contains illegal values.
// Precondition: s is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (s *ShieldDef) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := shieldBlockMultiplier[s.Type]; !ok {
		errs = append(errs, fmt.Errorf("type %q is not a valid shield type", s.Type))
	}
	if s.BaseDefense < 0 {
		errs = append(errs, errors.New("base_defense must be >= 0"))
	}
	if s.BaseBlockChance < 0 || s.BaseBlockChance > 1 {
		errs = append(errs, errors.New("base_block_chance must be in [0, 1]"))
	}
	if s.ValueCopper < 0 {
		errs = append(errs, errValueNegative)
	}
	if err := s.Requirements.Validate(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, ValidateResistances(s.Resistances)...)
	if len(errs) > 0 {
		return fmt.Errorf("shield validation failed: %v", errs)
	}
	return nil
}

// LoadShields reads all .yaml files in dir and returns the parsed
// ShieldDef slice.
// Precondition: dir must be a readable directory.
// Postcondition: Returns non-nil slice and nil error on success; all
// returned defs pass Validate.
func LoadShields(dir string) ([]*ShieldDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadShields: cannot read directory %q: %w", dir, err)
	}

	var shields []*ShieldDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadShields: cannot read file %q: %w", path, err)
		}
		var s ShieldDef
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("LoadShields: cannot parse file %q: %w", path, err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("LoadShields: invalid shield in %q: %w", path, err)
		}
		shields = append(shields, &s)
	}
	if shields == nil {
		shields = []*ShieldDef{}
	}
	return shields, nil
}

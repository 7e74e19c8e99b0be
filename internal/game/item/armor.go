package item

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/currency"
	"github.com/norvaldb/land-of-mist/internal/game/status"
)

// ArmorType represents the weight class of an armor piece.
type ArmorType string

const (
	ArmorLight  ArmorType = "light"
	ArmorMedium ArmorType = "medium"
	ArmorHeavy  ArmorType = "heavy"
)

// armorConMultiplier is the Constitution-modifier weighting per armor
// type. Heavier armor rewards Constitution more.
var armorConMultiplier = map[ArmorType]float64{
	ArmorLight:  0.5,
	ArmorMedium: 0.75,
	ArmorHeavy:  1.0,
}

// ArmorDef defines the immutable properties of an armor piece loaded
// from YAML.
type ArmorDef struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Type        ArmorType `yaml:"type"`
	BaseDefense int       `yaml:"base_defense"`
	// MovementPenalty is the fraction of movement lost while worn, in
	// [0, 1]; offset by the wearer's Strength modifier.
	MovementPenalty float64 `yaml:"movement_penalty"`
	// StealthPenalty is the fraction of stealth lost while worn, in
	// [0, 1]; offset by the wearer's Dexterity modifier.
	StealthPenalty float64      `yaml:"stealth_penalty"`
	Requirements   Requirement  `yaml:"requirements"`
	Resistances    []Resistance `yaml:"resistances"`
	ValueCopper    int          `yaml:"value_copper"`
}

// EffectiveDefense computes the defense granted to a wearer with the
// given attributes: base defense plus the Constitution modifier weighted
// by armor type (light 0.5, medium 0.75, heavy 1.0), rounded to nearest.
//
// Postcondition: Returns >= 0.
func (a *ArmorDef) EffectiveDefense(attrs attribute.Set) int {
	bonus := math.Round(float64(attrs.ConstitutionModifier()) * armorConMultiplier[a.Type])
	def := a.BaseDefense + int(bonus)
	if def < 0 {
		def = 0
	}
	return def
}

// EffectiveMovementPenalty returns the movement penalty after the
// wearer's Strength offset of 0.02 per modifier point, clamped to [0, 1].
// A strong wearer shrugs off heavy plate; a weak one is slowed further.
func (a *ArmorDef) EffectiveMovementPenalty(attrs attribute.Set) float64 {
	return clamp01(a.MovementPenalty - float64(attrs.StrengthModifier())*0.02)
}

// EffectiveStealthPenalty returns the stealth penalty after the wearer's
// Dexterity offset of 0.02 per modifier point, clamped to [0, 1].
func (a *ArmorDef) EffectiveStealthPenalty(attrs attribute.Set) float64 {
	return clamp01(a.StealthPenalty - float64(attrs.DexterityModifier())*0.02)
}

// ResistanceTo returns the fraction of incoming damage of element e this
// armor absorbs, or 0 if none.
func (a *ArmorDef) ResistanceTo(e status.Element) float64 {
	return ResistanceFor(a.Resistances, e)
}

// Value returns the armor's worth as a Currency purse.
func (a *ArmorDef) Value() currency.Currency {
	return currency.FromCopper(a.ValueCopper)
}

// Validate reports an error if the ArmorDef is missing required fields or
// contains illegal values.
// Precondition: a is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (a *ArmorDef) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := armorConMultiplier[a.Type]; !ok {
		errs = append(errs, fmt.Errorf("type %q is not a valid armor type", a.Type))
	}
	if a.BaseDefense < 0 {
		errs = append(errs, errors.New("base_defense must be >= 0"))
	}
	if a.MovementPenalty < 0 || a.MovementPenalty > 1 {
		errs = append(errs, errors.New("movement_penalty must be in [0, 1]"))
	}
	if a.StealthPenalty < 0 || a.StealthPenalty > 1 {
		errs = append(errs, errors.New("stealth_penalty must be in [0, 1]"))
	}
	if a.ValueCopper < 0 {
		errs = append(errs, errValueNegative)
	}
	if err := a.Requirements.Validate(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, ValidateResistances(a.Resistances)...)
	if len(errs) > 0 {
		return fmt.Errorf("armor validation failed: %v", errs)
	}
	return nil
}

// LoadArmors reads all .yaml files in dir and returns the parsed ArmorDef
// slice.
// Precondition: dir must be a readable directory.
// Postcondition: Returns non-nil slice and nil error on success; all
// returned defs pass Validate.
func LoadArmors(dir string) ([]*ArmorDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadArmors: cannot read directory %q: %w", dir, err)
	}

	var armors []*ArmorDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadArmors: cannot read file %q: %w", path, err)
		}
		var a ArmorDef
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("LoadArmors: cannot parse file %q: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("LoadArmors: invalid armor in %q: %w", path, err)
		}
		armors = append(armors, &a)
	}
	if armors == nil {
		armors = []*ArmorDef{}
	}
	return armors, nil
}

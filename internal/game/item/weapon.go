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

// WeaponType represents the category of a weapon.
type WeaponType string

const (
	WeaponSword    WeaponType = "sword"
	WeaponAxe      WeaponType = "axe"
	WeaponMace     WeaponType = "mace"
	WeaponDagger   WeaponType = "dagger"
	WeaponBow      WeaponType = "bow"
	WeaponCrossbow WeaponType = "crossbow"
	WeaponStaff    WeaponType = "staff"
)

// validWeaponTypes is the set of all legal WeaponType values.
var validWeaponTypes = map[WeaponType]struct{}{
	WeaponSword: {}, WeaponAxe: {}, WeaponMace: {}, WeaponDagger: {},
	WeaponBow: {}, WeaponCrossbow: {}, WeaponStaff: {},
}

// Handedness records how many hands a weapon occupies.
type Handedness string

const (
	OneHanded Handedness = "one_handed"
	TwoHanded Handedness = "two_handed"
)

// WeaponDef defines the immutable properties of a weapon loaded from YAML.
// Per-instance poison state lives on Weapon, never on the definition.
type WeaponDef struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Type        WeaponType `yaml:"type"`
	Handedness  Handedness `yaml:"handedness"`
	BaseDamage  int        `yaml:"base_damage"`
	// CriticalChance is the weapon's innate crit probability, in [0, 1].
	CriticalChance float64 `yaml:"critical_chance"`
	// CanBeEnhanced gates the poison lifecycle; ApplyPoison refuses
	// weapons where this is false.
	CanBeEnhanced bool         `yaml:"can_be_enhanced"`
	Requirements  Requirement  `yaml:"requirements"`
	Resistances   []Resistance `yaml:"resistances"`
	ValueCopper   int          `yaml:"value_copper"`
}

// IsRanged reports whether the weapon attacks at range (bow or crossbow).
func (w *WeaponDef) IsRanged() bool {
	return w.Type == WeaponBow || w.Type == WeaponCrossbow
}

// GoverningModifier returns the attribute modifier the weapon's damage
// scales with: Dexterity for ranged weapons, Intelligence for staves,
// Strength for everything else.
func (w *WeaponDef) GoverningModifier(attrs attribute.Set) int {
	switch {
	case w.IsRanged():
		return attrs.DexterityModifier()
	case w.Type == WeaponStaff:
		return attrs.IntelligenceModifier()
	default:
		return attrs.StrengthModifier()
	}
}

// Damage computes the weapon's deterministic hit damage for an attacker
// with the given attributes: base damage plus the governing attribute
// modifier, never below 1. Crits, handedness multipliers, and difficulty
// multipliers are applied by the combat resolver, not here.
//
// Postcondition: Returns >= 1.
func (w *WeaponDef) Damage(attrs attribute.Set) int {
	dmg := w.BaseDamage + w.GoverningModifier(attrs)
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// EffectiveCriticalChance returns the attacker-adjusted crit probability:
// the weapon's innate chance plus 0.01 per point of Dexterity modifier,
// clamped to [0, 1].
func (w *WeaponDef) EffectiveCriticalChance(attrs attribute.Set) float64 {
	return clamp01(w.CriticalChance + float64(attrs.DexterityModifier())*0.01)
}

// ResistanceTo returns the fraction of incoming damage of element e this
// weapon absorbs when wielded, or 0 if none.
func (w *WeaponDef) ResistanceTo(e status.Element) float64 {
	return ResistanceFor(w.Resistances, e)
}

// Value returns the weapon's worth as a Currency purse.
func (w *WeaponDef) Value() currency.Currency {
	return currency.FromCopper(w.ValueCopper)
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := validWeaponTypes[w.Type]; !ok {
		errs = append(errs, fmt.Errorf("type %q is not a valid weapon type", w.Type))
	}
	if w.Handedness != OneHanded && w.Handedness != TwoHanded {
		errs = append(errs, fmt.Errorf("handedness %q must be %q or %q", w.Handedness, OneHanded, TwoHanded))
	}
	if w.BaseDamage < 1 {
		errs = append(errs, errors.New("base_damage must be >= 1"))
	}
	if w.CriticalChance < 0 || w.CriticalChance > 1 {
		errs = append(errs, errors.New("critical_chance must be in [0, 1]"))
	}
	if w.ValueCopper < 0 {
		errs = append(errs, errValueNegative)
	}
	if err := w.Requirements.Validate(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, ValidateResistances(w.Resistances)...)
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}

	var weapons []*WeaponDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var w WeaponDef
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		weapons = append(weapons, &w)
	}
	return weapons, nil
}

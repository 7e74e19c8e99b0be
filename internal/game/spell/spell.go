// Package spell provides spell definitions, loaders, the pure formulas
// for mana cost, spell power, and critical chance, and the cast resolver
// that applies spell effects through the combatant seam.
package spell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/item"
	"github.com/norvaldb/land-of-mist/internal/game/status"
)

// School identifies the school a spell belongs to.
type School string

const (
	SchoolFire  School = "fire"
	SchoolWater School = "water"
	SchoolEarth School = "earth"
)

// validSchools is the set of all legal School values.
var validSchools = map[School]struct{}{
	SchoolFire: {}, SchoolWater: {}, SchoolEarth: {},
}

// TargetKind describes who a spell may be aimed at.
type TargetKind string

const (
	TargetSelf        TargetKind = "self"
	TargetSingleAlly  TargetKind = "single_ally"
	TargetAllAllies   TargetKind = "all_allies"
	TargetSingleEnemy TargetKind = "single_enemy"
	TargetAllEnemies  TargetKind = "all_enemies"
	TargetArea        TargetKind = "area"
)

// validTargets is the set of all legal TargetKind values.
var validTargets = map[TargetKind]struct{}{
	TargetSelf: {}, TargetSingleAlly: {}, TargetAllAllies: {},
	TargetSingleEnemy: {}, TargetAllEnemies: {}, TargetArea: {},
}

// EffectDef is one effect in a spell's ordered effect list.
type EffectDef struct {
	Kind    status.Kind    `yaml:"kind"`
	Element status.Element `yaml:"element"`
	// Name labels the ledger entry a duration effect creates; re-casting
	// refreshes or stacks the entry with the same name. Instant kinds
	// leave it empty.
	Name string `yaml:"name"`
	// Attribute names the score a buff or debuff adjusts (strength,
	// dexterity, constitution, intelligence, wisdom, charisma). Empty for
	// every other kind.
	Attribute string `yaml:"attribute"`
	// BaseValue is the unscaled magnitude: HP for damage and healing,
	// per-tick HP for over-time kinds, modifier points for buffs and
	// debuffs.
	BaseValue float64 `yaml:"base_value"`
	// Scaling adds Scaling × the school's governing attribute modifier
	// to BaseValue before spell power multiplies the total.
	Scaling float64 `yaml:"scaling"`
	// Duration is turns the effect persists; 0 for instant kinds.
	Duration int `yaml:"duration"`
	// Stackable effects accumulate stacks up to MaxStacks on re-apply.
	Stackable bool `yaml:"stackable"`
	MaxStacks int  `yaml:"max_stacks"`
}

// instantKinds apply once at cast time and carry no duration.
var instantKinds = map[status.Kind]struct{}{
	status.KindDamage: {}, status.KindHealing: {},
}

// validate collects effect field errors.
func (e *EffectDef) validate(i int) []error {
	var errs []error
	if !status.ValidKind(e.Kind) {
		errs = append(errs, fmt.Errorf("effect %d: kind %q is not a valid effect kind", i, e.Kind))
	}
	if !status.ValidElement(e.Element) {
		errs = append(errs, fmt.Errorf("effect %d: element %q is not a valid element", i, e.Element))
	}
	if e.BaseValue < 0 {
		errs = append(errs, fmt.Errorf("effect %d: base_value must be >= 0", i))
	}
	if e.Scaling < 0 {
		errs = append(errs, fmt.Errorf("effect %d: scaling must be >= 0", i))
	}
	if _, instant := instantKinds[e.Kind]; instant {
		if e.Duration != 0 {
			errs = append(errs, fmt.Errorf("effect %d: %s effects must have duration 0", i, e.Kind))
		}
	} else {
		if e.Duration < 1 {
			errs = append(errs, fmt.Errorf("effect %d: %s effects must have duration >= 1", i, e.Kind))
		}
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("effect %d: %s effects must be named", i, e.Kind))
		}
	}
	if e.Kind == status.KindBuff || e.Kind == status.KindDebuff {
		if !attribute.ValidName(e.Attribute) {
			errs = append(errs, fmt.Errorf("effect %d: attribute %q is not a valid attribute", i, e.Attribute))
		}
	} else if e.Attribute != "" {
		errs = append(errs, fmt.Errorf("effect %d: attribute is only meaningful for buffs and debuffs", i))
	}
	if e.Stackable && e.MaxStacks < 1 {
		errs = append(errs, fmt.Errorf("effect %d: stackable effects must set max_stacks >= 1", i))
	}
	if !e.Stackable && e.MaxStacks != 0 {
		errs = append(errs, fmt.Errorf("effect %d: max_stacks requires stackable", i))
	}
	return errs
}

// SpellDef defines an immutable spell loaded from YAML.
type SpellDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	School      School `yaml:"school"`
	// Level ranges 1–5 and raises spell power by 20% per level above 1.
	Level        int              `yaml:"level"`
	BaseManaCost int              `yaml:"base_mana_cost"`
	Target       TargetKind       `yaml:"target"`
	Effects      []EffectDef      `yaml:"effects"`
	Requirements item.Requirement `yaml:"requirements"`
	// CastTime is actions required to release the spell; 1 = instant.
	CastTime int `yaml:"cast_time"`
	// Cooldown is turns before the spell may be cast again.
	Cooldown int `yaml:"cooldown"`
	// Range is the reach in meters; 0 = touch or self.
	Range int `yaml:"range"`
	// LuaOnCast optionally names a script hook invoked after the spell
	// resolves.
	LuaOnCast string `yaml:"lua_on_cast"`
}

// Validate checks that the SpellDef satisfies its invariants.
// Precondition: s is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (s *SpellDef) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := validSchools[s.School]; !ok {
		errs = append(errs, fmt.Errorf("school %q is not a valid school", s.School))
	}
	if s.Level < 1 || s.Level > 5 {
		errs = append(errs, fmt.Errorf("level must be in [1, 5], got %d", s.Level))
	}
	if s.BaseManaCost < 1 {
		errs = append(errs, errors.New("base_mana_cost must be >= 1"))
	}
	if _, ok := validTargets[s.Target]; !ok {
		errs = append(errs, fmt.Errorf("target %q is not a valid target kind", s.Target))
	}
	if len(s.Effects) == 0 {
		errs = append(errs, errors.New("effects must not be empty"))
	}
	for i := range s.Effects {
		errs = append(errs, s.Effects[i].validate(i)...)
	}
	if s.CastTime < 0 {
		errs = append(errs, errors.New("cast_time must be >= 0"))
	}
	if s.Cooldown < 0 {
		errs = append(errs, errors.New("cooldown must be >= 0"))
	}
	if s.Range < 0 {
		errs = append(errs, errors.New("range must be >= 0"))
	}
	if err := s.Requirements.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("spell validation failed: %v", errs)
	}
	return nil
}

// LoadSpells reads all *.yaml files from dir, parses each as a SpellDef,
// validates it, and returns the collected slice.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid SpellDefs or the first encountered error.
func LoadSpells(dir string) ([]*SpellDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadSpells: cannot read directory %q: %w", dir, err)
	}

	var spells []*SpellDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadSpells: cannot read file %q: %w", path, err)
		}
		var s SpellDef
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("LoadSpells: cannot parse file %q: %w", path, err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("LoadSpells: invalid spell in %q: %w", path, err)
		}
		spells = append(spells, &s)
	}
	return spells, nil
}

package spell

import (
	"math"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/game/attribute"
)

// EffectiveManaCost computes the mana the caster actually spends: the base
// cost discounted by 5% per Intelligence modifier point, plus a further 3%
// per Wisdom modifier point for Water and Earth spells, then scaled by the
// configured mana cost multiplier and rounded to nearest. Never below 1 —
// no spell is ever free.
//
// Postcondition: Returns >= 1.
func (s *SpellDef) EffectiveManaCost(attrs attribute.Set, magic balance.MagicConfig) int {
	reduction := float64(attrs.IntelligenceModifier()) * 0.05
	if s.School == SchoolWater || s.School == SchoolEarth {
		reduction += float64(attrs.WisdomModifier()) * 0.03
	}
	cost := int(math.Round(float64(s.BaseManaCost) * magic.ManaCostMultiplier * (1 - reduction)))
	if cost < 1 {
		cost = 1
	}
	return cost
}

// Power computes the caster's power multiplier for this spell. Each school
// scales off its own attributes:
//
//	Fire:  1 + intelligence×0.1
//	Water: 1 + (intelligence+wisdom)×0.05
//	Earth: 1 + wisdom×0.1 + constitution×0.05
//
// (modifiers, not raw scores), then the spell's level raises the result by
// 20% per level above 1, and the configured spell power multiplier scales
// the total. Never below 0.1: even a feeble caster produces some effect.
//
// Postcondition: Returns >= 0.1.
func (s *SpellDef) Power(attrs attribute.Set, magic balance.MagicConfig) float64 {
	var base float64
	switch s.School {
	case SchoolFire:
		base = 1 + float64(attrs.IntelligenceModifier())*0.1
	case SchoolWater:
		base = 1 + float64(attrs.IntelligenceModifier()+attrs.WisdomModifier())*0.05
	case SchoolEarth:
		base = 1 + float64(attrs.WisdomModifier())*0.1 + float64(attrs.ConstitutionModifier())*0.05
	default:
		base = 1
	}
	levelScale := 1 + float64(s.Level-1)*0.2
	power := base * levelScale * magic.SpellPowerMultiplier
	if power < 0.1 {
		power = 0.1
	}
	return power
}

// CriticalChance computes the probability this cast crits: the configured
// base chance plus 0.01 per Intelligence modifier point, a flat 0.02 for
// Fire spells, and 0.005 per Wisdom modifier point for Earth spells,
// clamped to [0, MaxCriticalChance]. On a crit the resolver multiplies
// effect magnitudes by the configured critical effect multiplier.
func (s *SpellDef) CriticalChance(attrs attribute.Set, magic balance.MagicConfig) float64 {
	chance := magic.BaseCriticalChance + float64(attrs.IntelligenceModifier())*0.01
	switch s.School {
	case SchoolFire:
		chance += 0.02
	case SchoolEarth:
		chance += float64(attrs.WisdomModifier()) * 0.005
	}
	if chance < 0 {
		chance = 0
	}
	ceiling := magic.MaxCriticalChance
	if ceiling > 1 {
		ceiling = 1
	}
	if chance > ceiling {
		chance = ceiling
	}
	return chance
}

// GoverningModifier returns the attribute modifier the school's effects
// scale with: Intelligence for Fire, Wisdom for Water and Earth.
func (s *SpellDef) GoverningModifier(attrs attribute.Set) int {
	if s.School == SchoolFire {
		return attrs.IntelligenceModifier()
	}
	return attrs.WisdomModifier()
}

// Amount computes an effect's applied magnitude for a caster with the
// given power: (base value + scaling × the school's governing modifier)
// multiplied by power, rounded to nearest, never negative.
//
// Postcondition: Returns >= 0.
func (s *SpellDef) Amount(e EffectDef, attrs attribute.Set, power float64) int {
	raw := (e.BaseValue + e.Scaling*float64(s.GoverningModifier(attrs))) * power
	amount := int(math.Round(raw))
	if amount < 0 {
		amount = 0
	}
	return amount
}

// AppliesTo reports whether one concrete target should receive this
// spell's effects. Self-target spells hit only the caster; ally-target
// spells exclude the caster and require a living target; enemy and area
// targets apply to any living target the encounter hands the resolver.
func (s *SpellDef) AppliesTo(isCaster, targetAlive bool) bool {
	if !targetAlive {
		return false
	}
	switch s.Target {
	case TargetSelf:
		return isCaster
	case TargetSingleAlly, TargetAllAllies:
		return !isCaster
	default:
		return true
	}
}

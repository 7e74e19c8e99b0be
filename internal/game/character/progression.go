package character

import (
	"math"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/class"
)

// ExperienceForLevel returns the cumulative experience required to reach
// level. The ladder is triangular: level 2 costs 100 XP, and each step
// costs 100 more than the one before it. Level 1 costs nothing.
func ExperienceForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	n := level - 1
	return 50 * n * (n + 1)
}

// LevelForExperience returns the level a cumulative experience total
// earns, capped at MaxLevel.
func LevelForExperience(xp int) int {
	level := 1
	for level < MaxLevel && xp >= ExperienceForLevel(level+1) {
		level++
	}
	return level
}

// GainExperience returns a copy of c with amount experience added,
// scaled by the progression and difficulty experience multipliers, and
// leveled up as far as the new total allows. Leveling recomputes
// attributes and pools from the class tables and refills HP and mana; a
// gain without a level-up leaves the current pools untouched.
//
// Precondition: cls must be c's class definition.
// Postcondition: c is unchanged; the returned copy's Level matches its
// Experience.
func (c Character) GainExperience(amount int, cls *class.Class, cfg *balance.Config, prof balance.DifficultyProfile) Character {
	if amount <= 0 || cls == nil || cfg == nil {
		return c
	}
	scaled := int(math.Round(float64(amount) * cfg.Progression.ExperienceMultiplier * prof.ExperienceMultiplier))
	c.Experience += scaled

	level := LevelForExperience(c.Experience)
	if level <= c.Level {
		return c
	}
	return c.atLevel(level, cls, cfg)
}

// atLevel recomputes the derived block for level and refills the pools.
func (c Character) atLevel(level int, cls *class.Class, cfg *balance.Config) Character {
	c.Level = level
	c.Attributes = attributesAtLevel(cls, level, cfg.Progression)
	c.MaxHP, c.MaxMana = derivedPools(cls, level, c.Attributes, cfg.Progression)
	c.CurrentHP = c.MaxHP
	c.CurrentMana = c.MaxMana
	return c
}

// attributesAtLevel recomputes the attribute set for a level. Classes
// with an explicit growth set use base + growth×(level−1); classes
// without one raise their key attribute by 1 every
// AttributeGrowthInterval levels instead.
func attributesAtLevel(cls *class.Class, level int, prog balance.ProgressionConfig) attribute.Set {
	attrs := cls.AttributesAtLevel(level)
	if cls.AttributeGrowth == (attribute.Set{}) && prog.AttributeGrowthInterval >= 1 {
		if boosts := (level - 1) / prog.AttributeGrowthInterval; boosts > 0 {
			if delta, ok := attribute.Single(cls.KeyAttribute, boosts); ok {
				attrs = attrs.Add(delta)
			}
		}
	}
	return attrs
}

// derivedPools computes max HP and mana for a class at a level: the
// class per-level values adjusted by the Constitution (health) and
// Intelligence (mana) modifiers, scaled by the progression multipliers,
// accumulated over level levels.
//
// Postcondition: hp >= 1, mana >= 0.
func derivedPools(cls *class.Class, level int, attrs attribute.Set, prog balance.ProgressionConfig) (hp, mana int) {
	hpPer := cls.HitPointsPerLevel + attrs.ConstitutionModifier()
	if hpPer < 1 {
		hpPer = 1
	}
	manaPer := cls.ManaPointsPerLevel + attrs.IntelligenceModifier()
	if manaPer < 0 {
		manaPer = 0
	}

	hp = int(math.Round(float64(hpPer*level) * prog.HealthPerLevelMultiplier))
	if hp < 1 {
		hp = 1
	}
	mana = int(math.Round(float64(manaPer*level) * prog.ManaPerLevelMultiplier))
	return hp, mana
}

package balance

import (
	"fmt"
	"strings"
)

// Severity classifies a validation finding.
type Severity string

const (
	// SeverityError marks a violation that makes the configuration unusable.
	SeverityError Severity = "error"
	// SeverityWarning marks a suspicious but usable value.
	SeverityWarning Severity = "warning"
)

// Violation is one validation finding against a named configuration field.
type Violation struct {
	Field    string
	Message  string
	Severity Severity
}

// String renders the violation as "severity field: message".
func (v Violation) String() string {
	return fmt.Sprintf("%s %s: %s", v.Severity, v.Field, v.Message)
}

// Violations is the ordered list of findings from a validation pass.
type Violations []Violation

// Valid reports whether the list contains no error-severity findings.
// Warnings alone do not invalidate a configuration.
func (vs Violations) Valid() bool {
	for _, v := range vs {
		if v.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the error-severity findings.
func (vs Violations) Errors() Violations {
	var out Violations
	for _, v := range vs {
		if v.Severity == SeverityError {
			out = append(out, v)
		}
	}
	return out
}

// String joins all findings with "; ".
func (vs Violations) String() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

// Validate checks every range and cross-field invariant of the configuration
// and returns the full list of findings. Validation never mutates the
// configuration; a caller must refuse to proceed when Valid() is false
// rather than clamp values.
func (c *Config) Validate() Violations {
	var vs Violations

	report := func(field, msg string, sev Severity) {
		vs = append(vs, Violation{Field: field, Message: msg, Severity: sev})
	}
	requirePositive := func(field string, v float64) {
		if v <= 0 {
			report(field, fmt.Sprintf("multiplier must be > 0, got %g", v), SeverityError)
		} else if v > 10 {
			report(field, fmt.Sprintf("multiplier %g is unusually high", v), SeverityWarning)
		}
	}
	requireChance := func(field string, v float64) {
		if v < 0 || v > 1 {
			report(field, fmt.Sprintf("chance must be in [0, 1], got %g", v), SeverityError)
		}
	}

	// combat
	requirePositive("combat.damage_multiplier", c.Combat.DamageMultiplier)
	requirePositive("combat.defense_multiplier", c.Combat.DefenseMultiplier)
	requirePositive("combat.one_handed_multiplier", c.Combat.OneHandedMultiplier)
	requirePositive("combat.two_handed_multiplier", c.Combat.TwoHandedMultiplier)
	requirePositive("combat.critical_damage_multiplier", c.Combat.CriticalDamageMultiplier)
	if c.Combat.TwoHandedMultiplier <= c.Combat.OneHandedMultiplier {
		report("combat.two_handed_multiplier",
			fmt.Sprintf("two-handed multiplier (%g) must exceed one-handed (%g)",
				c.Combat.TwoHandedMultiplier, c.Combat.OneHandedMultiplier),
			SeverityError)
	}
	if c.Combat.MinimumDamage < 0 {
		report("combat.minimum_damage",
			fmt.Sprintf("must be >= 0, got %d", c.Combat.MinimumDamage), SeverityError)
	}

	// progression
	requirePositive("progression.experience_multiplier", c.Progression.ExperienceMultiplier)
	requirePositive("progression.health_per_level_multiplier", c.Progression.HealthPerLevelMultiplier)
	requirePositive("progression.mana_per_level_multiplier", c.Progression.ManaPerLevelMultiplier)
	if c.Progression.AttributeGrowthInterval < 1 {
		report("progression.attribute_growth_interval",
			fmt.Sprintf("must be >= 1, got %d", c.Progression.AttributeGrowthInterval), SeverityError)
	}

	// economy
	requirePositive("economy.buy_price_multiplier", c.Economy.BuyPriceMultiplier)
	requirePositive("economy.sell_price_multiplier", c.Economy.SellPriceMultiplier)
	requirePositive("economy.loot_drop_multiplier", c.Economy.LootDropMultiplier)
	requirePositive("economy.currency_drop_multiplier", c.Economy.CurrencyDropMultiplier)
	if c.Economy.SellPriceMultiplier > c.Economy.BuyPriceMultiplier {
		report("economy.sell_price_multiplier",
			fmt.Sprintf("sell multiplier (%g) must not exceed buy multiplier (%g)",
				c.Economy.SellPriceMultiplier, c.Economy.BuyPriceMultiplier),
			SeverityError)
	}

	// magic
	requirePositive("magic.mana_cost_multiplier", c.Magic.ManaCostMultiplier)
	requirePositive("magic.spell_power_multiplier", c.Magic.SpellPowerMultiplier)
	requirePositive("magic.critical_effect_multiplier", c.Magic.CriticalEffectMultiplier)
	requireChance("magic.base_critical_chance", c.Magic.BaseCriticalChance)
	requireChance("magic.max_critical_chance", c.Magic.MaxCriticalChance)
	if c.Magic.MaxCriticalChance < c.Magic.BaseCriticalChance {
		report("magic.max_critical_chance",
			fmt.Sprintf("max critical chance (%g) must be >= base (%g)",
				c.Magic.MaxCriticalChance, c.Magic.BaseCriticalChance),
			SeverityError)
	}

	// poison
	requirePositive("poison.effectiveness", c.Poison.Effectiveness)
	requirePositive("poison.tick_damage_multiplier", c.Poison.TickDamageMultiplier)
	if c.Poison.MaxCharges < 1 {
		report("poison.max_charges",
			fmt.Sprintf("must be >= 1, got %d", c.Poison.MaxCharges), SeverityError)
	}

	// difficulty profiles
	profiles := []struct {
		name string
		p    DifficultyProfile
	}{
		{"difficulty.easy", c.Difficulty.Easy},
		{"difficulty.normal", c.Difficulty.Normal},
		{"difficulty.hard", c.Difficulty.Hard},
	}
	for _, entry := range profiles {
		requirePositive(entry.name+".enemy_scale", entry.p.EnemyScale)
		requirePositive(entry.name+".player_damage_multiplier", entry.p.PlayerDamageMultiplier)
		requirePositive(entry.name+".enemy_damage_multiplier", entry.p.EnemyDamageMultiplier)
		requirePositive(entry.name+".experience_multiplier", entry.p.ExperienceMultiplier)
		requirePositive(entry.name+".loot_multiplier", entry.p.LootMultiplier)
	}
	if c.Difficulty.Easy.EnemyScale > c.Difficulty.Hard.EnemyScale {
		report("difficulty.easy.enemy_scale",
			fmt.Sprintf("easy enemy scale (%g) exceeds hard (%g)",
				c.Difficulty.Easy.EnemyScale, c.Difficulty.Hard.EnemyScale),
			SeverityWarning)
	}

	return vs
}

// Package balance defines the game balance configuration: named multiplier
// groups consumed by the combat, progression, economy, magic, and poison
// formulas instead of hardcoded constants, plus the three difficulty profiles.
//
// The configuration is loaded once at process start from JSON and never
// mutated afterward; difficulty selection is a pure lookup.
package balance

import "fmt"

// Difficulty names one of the three difficulty profiles.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty converts a string into a Difficulty.
//
// Postcondition: Returns one of the three constants, or an error for any
// other input.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return Difficulty(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q: must be one of [easy, normal, hard]", s)
	}
}

// CombatConfig holds multipliers applied to physical combat formulas.
type CombatConfig struct {
	// DamageMultiplier scales all weapon damage after attribute modifiers.
	DamageMultiplier float64 `json:"damage_multiplier"`
	// DefenseMultiplier scales effective defense from armor and shields.
	DefenseMultiplier float64 `json:"defense_multiplier"`
	// OneHandedMultiplier scales damage for one-handed weapons.
	OneHandedMultiplier float64 `json:"one_handed_multiplier"`
	// TwoHandedMultiplier scales damage for two-handed weapons.
	// Invariant: must exceed OneHandedMultiplier.
	TwoHandedMultiplier float64 `json:"two_handed_multiplier"`
	// CriticalDamageMultiplier scales damage on a critical hit.
	CriticalDamageMultiplier float64 `json:"critical_damage_multiplier"`
	// MinimumDamage floors the final mitigated damage of a landed hit.
	MinimumDamage int `json:"minimum_damage"`
}

// ProgressionConfig holds multipliers applied to level-up formulas.
type ProgressionConfig struct {
	// ExperienceMultiplier scales all experience awards.
	ExperienceMultiplier float64 `json:"experience_multiplier"`
	// HealthPerLevelMultiplier scales class hit points gained per level.
	HealthPerLevelMultiplier float64 `json:"health_per_level_multiplier"`
	// ManaPerLevelMultiplier scales class mana points gained per level.
	ManaPerLevelMultiplier float64 `json:"mana_per_level_multiplier"`
	// AttributeGrowthInterval is the number of levels between key-attribute
	// increases when a class has no explicit growth set.
	AttributeGrowthInterval int `json:"attribute_growth_interval"`
}

// EconomyConfig holds multipliers applied to trade and loot value formulas.
type EconomyConfig struct {
	// BuyPriceMultiplier scales item value when a player buys.
	BuyPriceMultiplier float64 `json:"buy_price_multiplier"`
	// SellPriceMultiplier scales item value when a player sells.
	// Invariant: must not exceed BuyPriceMultiplier.
	SellPriceMultiplier float64 `json:"sell_price_multiplier"`
	// LootDropMultiplier scales every loot entry's drop chance.
	LootDropMultiplier float64 `json:"loot_drop_multiplier"`
	// CurrencyDropMultiplier scales currency dropped by enemies.
	CurrencyDropMultiplier float64 `json:"currency_drop_multiplier"`
}

// MagicConfig holds multipliers applied to spellcasting formulas.
type MagicConfig struct {
	// ManaCostMultiplier scales effective mana cost after attribute reductions.
	ManaCostMultiplier float64 `json:"mana_cost_multiplier"`
	// SpellPowerMultiplier scales computed spell power.
	SpellPowerMultiplier float64 `json:"spell_power_multiplier"`
	// BaseCriticalChance is the starting spell critical chance before
	// attribute and school adjustments.
	BaseCriticalChance float64 `json:"base_critical_chance"`
	// MaxCriticalChance caps the spell critical chance.
	// Invariant: BaseCriticalChance <= MaxCriticalChance <= 1.
	MaxCriticalChance float64 `json:"max_critical_chance"`
	// CriticalEffectMultiplier scales effect magnitude on a critical cast.
	CriticalEffectMultiplier float64 `json:"critical_effect_multiplier"`
}

// PoisonConfig holds multipliers applied to weapon poison enhancements.
type PoisonConfig struct {
	// Effectiveness scales the per-kind base poison damage.
	Effectiveness float64 `json:"effectiveness"`
	// TickDamageMultiplier scales poison damage applied by status ticks.
	TickDamageMultiplier float64 `json:"tick_damage_multiplier"`
	// MaxCharges caps the number of charges a single application may carry.
	MaxCharges int `json:"max_charges"`
}

// DifficultyProfile is a flat bundle of multipliers applied uniformly on top
// of the section multipliers for one difficulty setting.
type DifficultyProfile struct {
	// EnemyScale feeds the enemy stat scaling formula as difficultyScale.
	EnemyScale float64 `json:"enemy_scale"`
	// PlayerDamageMultiplier scales damage dealt by players.
	PlayerDamageMultiplier float64 `json:"player_damage_multiplier"`
	// EnemyDamageMultiplier scales damage dealt by enemies.
	EnemyDamageMultiplier float64 `json:"enemy_damage_multiplier"`
	// ExperienceMultiplier scales experience awards.
	ExperienceMultiplier float64 `json:"experience_multiplier"`
	// LootMultiplier scales loot drop chances.
	LootMultiplier float64 `json:"loot_multiplier"`
}

// DifficultyTable holds the three named profiles.
type DifficultyTable struct {
	Easy   DifficultyProfile `json:"easy"`
	Normal DifficultyProfile `json:"normal"`
	Hard   DifficultyProfile `json:"hard"`
}

// Config is the top-level balance configuration.
type Config struct {
	Combat      CombatConfig      `json:"combat"`
	Progression ProgressionConfig `json:"progression"`
	Economy     EconomyConfig     `json:"economy"`
	Magic       MagicConfig       `json:"magic"`
	Poison      PoisonConfig      `json:"poison"`
	Difficulty  DifficultyTable   `json:"difficulty"`
}

// Profile returns the profile for the given difficulty. The lookup is pure:
// it never mutates the configuration. Unknown values fall back to Normal.
func (c *Config) Profile(d Difficulty) DifficultyProfile {
	switch d {
	case DifficultyEasy:
		return c.Difficulty.Easy
	case DifficultyHard:
		return c.Difficulty.Hard
	default:
		return c.Difficulty.Normal
	}
}

// Default returns the shipped baseline configuration. It passes Validate and
// is used by tests and as a reference when authoring balance files.
func Default() *Config {
	return &Config{
		Combat: CombatConfig{
			DamageMultiplier:         1.0,
			DefenseMultiplier:        1.0,
			OneHandedMultiplier:      1.0,
			TwoHandedMultiplier:      1.5,
			CriticalDamageMultiplier: 2.0,
			MinimumDamage:            1,
		},
		Progression: ProgressionConfig{
			ExperienceMultiplier:     1.0,
			HealthPerLevelMultiplier: 1.0,
			ManaPerLevelMultiplier:   1.0,
			AttributeGrowthInterval:  4,
		},
		Economy: EconomyConfig{
			BuyPriceMultiplier:     1.0,
			SellPriceMultiplier:    0.5,
			LootDropMultiplier:     1.0,
			CurrencyDropMultiplier: 1.0,
		},
		Magic: MagicConfig{
			ManaCostMultiplier:       1.0,
			SpellPowerMultiplier:     1.0,
			BaseCriticalChance:       0.05,
			MaxCriticalChance:        1.0,
			CriticalEffectMultiplier: 1.5,
		},
		Poison: PoisonConfig{
			Effectiveness:        1.0,
			TickDamageMultiplier: 1.0,
			MaxCharges:           10,
		},
		Difficulty: DifficultyTable{
			Easy: DifficultyProfile{
				EnemyScale:             0.75,
				PlayerDamageMultiplier: 1.25,
				EnemyDamageMultiplier:  0.75,
				ExperienceMultiplier:   1.0,
				LootMultiplier:         1.25,
			},
			Normal: DifficultyProfile{
				EnemyScale:             1.0,
				PlayerDamageMultiplier: 1.0,
				EnemyDamageMultiplier:  1.0,
				ExperienceMultiplier:   1.0,
				LootMultiplier:         1.0,
			},
			Hard: DifficultyProfile{
				EnemyScale:             1.5,
				PlayerDamageMultiplier: 0.9,
				EnemyDamageMultiplier:  1.25,
				ExperienceMultiplier:   1.25,
				LootMultiplier:         0.9,
			},
		},
	}
}

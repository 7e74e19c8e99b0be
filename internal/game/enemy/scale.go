package enemy

import (
	"fmt"
	"math"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
)

// Stats is the party-level- and difficulty-adjusted stat block produced
// by ScaledStats.
type Stats struct {
	MaxHP      int
	MaxMana    int
	ArmorClass int
	Initiative int
	Experience int
	Attributes attribute.Set
	// TotalScale is the combined multiplier applied to the linear stats;
	// loot currency scales by the same factor.
	TotalScale float64
}

// TotalScale returns the combined stat multiplier for this enemy against
// a party of the given level under the given difficulty scale: the
// party-level ramp (15% per level above 1, if the enemy scales), times
// the enemy's innate difficulty multiplier, times the difficulty
// profile's enemy scale.
func (d *Definition) TotalScale(partyLevel int, difficultyScale float64) float64 {
	levelScale := 1.0
	if d.ScalesWithPartyLevel && partyLevel > 1 {
		levelScale = 1 + float64(partyLevel-1)*0.15
	}
	return levelScale * d.DifficultyMultiplier * difficultyScale
}

// ScaledStats computes the stat block this enemy fights with. HP, mana,
// and experience scale linearly with the total multiplier and round to
// nearest. Armor class grows additively, half a point per party level
// above 1, so defense creeps rather than explodes. Initiative scales by
// the square root of the total multiplier, deliberately sub-linear so
// turn order does not swing wildly at high level. Attributes are
// recomputed from base + growth×(partyLevel−1) when the enemy scales.
//
// Precondition: partyLevel must be >= 1; difficultyScale must be > 0.
// Postcondition: MaxHP >= 1.
func (d *Definition) ScaledStats(partyLevel int, difficultyScale float64) Stats {
	if partyLevel < 1 {
		partyLevel = 1
	}
	scale := d.TotalScale(partyLevel, difficultyScale)

	hp := int(math.Round(float64(d.MaxHP) * scale))
	if hp < 1 {
		hp = 1
	}
	mana := int(math.Round(float64(d.MaxMana) * scale))
	xp := int(math.Round(float64(d.Experience) * scale))

	ac := d.ArmorClass
	attrs := d.AttributeBase
	if d.ScalesWithPartyLevel {
		ac += int(math.Round(0.5 * float64(partyLevel-1)))
		attrs = attribute.AtLevel(d.AttributeBase, d.AttributeGrowth, partyLevel)
	}

	init := int(math.Round(float64(d.Initiative) * math.Sqrt(scale)))

	return Stats{
		MaxHP:      hp,
		MaxMana:    mana,
		ArmorClass: ac,
		Initiative: init,
		Experience: xp,
		Attributes: attrs,
		TotalScale: scale,
	}
}

// Phase is one stage of a boss fight, entered by HP fraction.
type Phase struct {
	Name string `yaml:"name"`
	// HPThreshold is the lowest HP fraction at which this phase still
	// holds; phases are ordered descending by threshold.
	HPThreshold float64 `yaml:"hp_threshold"`
	// Abilities lists spell IDs available during this phase.
	Abilities []string `yaml:"abilities"`
	// DamageMultiplier scales the boss's damage while in this phase.
	DamageMultiplier float64 `yaml:"damage_multiplier"`
}

// validatePhases checks the phase list: names non-empty, thresholds in
// (0, 1] and strictly descending, damage multipliers positive.
func validatePhases(phases []Phase) error {
	prev := math.Inf(1)
	for i, p := range phases {
		if p.Name == "" {
			return fmt.Errorf("phase[%d]: name must not be empty", i)
		}
		if p.HPThreshold <= 0 || p.HPThreshold > 1 {
			return fmt.Errorf("phase[%d] %q: hp_threshold must be in (0, 1], got %v", i, p.Name, p.HPThreshold)
		}
		if p.HPThreshold >= prev {
			return fmt.Errorf("phase[%d] %q: hp_threshold %v must be strictly below the previous phase's %v", i, p.Name, p.HPThreshold, prev)
		}
		if p.DamageMultiplier <= 0 {
			return fmt.Errorf("phase[%d] %q: damage_multiplier must be > 0", i, p.Name)
		}
		prev = p.HPThreshold
	}
	return nil
}

// PhaseFor selects the boss phase for the given HP fraction: the first
// phase, in descending-threshold order, whose threshold the fraction
// still meets — the highest qualifying tier, not the nearest match.
// Falls back to the last (lowest) phase when none qualify. Returns false
// only if the enemy has no phases.
func (d *Definition) PhaseFor(hpFraction float64) (Phase, bool) {
	if len(d.Phases) == 0 {
		return Phase{}, false
	}
	for _, p := range d.Phases {
		if p.HPThreshold <= hpFraction {
			return p, true
		}
	}
	return d.Phases[len(d.Phases)-1], true
}

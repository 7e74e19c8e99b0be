package enemy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/norvaldb/land-of-mist/internal/game/enemy"
)

func TestScaledStats_PartyLevelRamp(t *testing.T) {
	d := mistWolf() // 50 HP, scales with party level, difficulty 1.0

	stats := d.ScaledStats(5, 1.0)
	// levelScale = 1 + 4×0.15 = 1.6
	assert.Equal(t, 80, stats.MaxHP)
	assert.Equal(t, 56, stats.Experience, "round(35×1.6)")
	assert.InDelta(t, 1.6, stats.TotalScale, 1e-9)
}

func TestScaledStats_NonScalingEnemyIgnoresPartyLevel(t *testing.T) {
	d := mistWolf()
	d.ScalesWithPartyLevel = false

	stats := d.ScaledStats(10, 1.0)
	assert.Equal(t, 50, stats.MaxHP)
	assert.Equal(t, 12, stats.ArmorClass)
	assert.Equal(t, d.AttributeBase, stats.Attributes)
}

func TestScaledStats_ArmorClassGrowsAdditively(t *testing.T) {
	d := mistWolf()
	stats := d.ScaledStats(5, 1.0)
	// +0.5 per level above 1: 12 + round(2.0)
	assert.Equal(t, 14, stats.ArmorClass)
}

func TestScaledStats_InitiativeSubLinear(t *testing.T) {
	d := mistWolf()
	stats := d.ScaledStats(5, 1.0)
	// 10 × sqrt(1.6) = 12.64... → 13, well below the 16 linear scaling
	// would give.
	assert.Equal(t, 13, stats.Initiative)
}

func TestScaledStats_AttributesRecomputed(t *testing.T) {
	d := mistWolf()
	stats := d.ScaledStats(4, 1.0)
	// base 12 str + growth 1×(4−1)
	assert.Equal(t, 15, stats.Attributes.Strength)
	assert.Equal(t, 17, stats.Attributes.Dexterity)
	assert.Equal(t, 12, stats.Attributes.Constitution, "ungrown attribute stays at base")
}

func TestScaledStats_DifficultyAndInnateMultipliers(t *testing.T) {
	d := mistWolf()
	d.ScalesWithPartyLevel = false
	d.DifficultyMultiplier = 1.5

	stats := d.ScaledStats(1, 0.75) // easy profile
	// 50 × 1.5 × 0.75 = 56.25 → 56
	assert.Equal(t, 56, stats.MaxHP)
}

func TestScaledStats_HPNeverBelowOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := mistWolf()
		d.MaxHP = rapid.IntRange(1, 500).Draw(t, "hp")
		d.DifficultyMultiplier = rapid.Float64Range(0.01, 3).Draw(t, "innate")
		level := rapid.IntRange(1, 20).Draw(t, "level")
		scale := rapid.Float64Range(0.01, 2).Draw(t, "difficulty")
		if got := d.ScaledStats(level, scale).MaxHP; got < 1 {
			t.Fatalf("MaxHP = %d, want >= 1", got)
		}
	})
}

func bossPhases() []enemy.Phase {
	return []enemy.Phase{
		{Name: "sentinel", HPThreshold: 0.7, DamageMultiplier: 1.0},
		{Name: "rampant", HPThreshold: 0.4, DamageMultiplier: 1.3},
		{Name: "desperate", HPThreshold: 0.15, DamageMultiplier: 1.6},
	}
}

func TestPhaseFor_HighestQualifyingTier(t *testing.T) {
	d := mistWolf()
	d.Phases = bossPhases()

	cases := []struct {
		hpFraction float64
		want       string
	}{
		{1.0, "sentinel"},
		{0.7, "sentinel"},
		{0.69, "rampant"},
		{0.4, "rampant"},
		{0.2, "desperate"},
		{0.15, "desperate"},
	}
	for _, tc := range cases {
		p, ok := d.PhaseFor(tc.hpFraction)
		require.True(t, ok)
		assert.Equal(t, tc.want, p.Name, "hp fraction %v", tc.hpFraction)
	}
}

func TestPhaseFor_DefaultsToLastPhase(t *testing.T) {
	d := mistWolf()
	d.Phases = bossPhases()

	p, ok := d.PhaseFor(0.05) // below every threshold
	require.True(t, ok)
	assert.Equal(t, "desperate", p.Name)
}

func TestPhaseFor_NoPhases(t *testing.T) {
	d := mistWolf()
	_, ok := d.PhaseFor(0.5)
	assert.False(t, ok)
}

package item_test

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/item"
)

func roundShield() *item.ShieldDef {
	return &item.ShieldDef{
		ID:              "round_shield",
		Name:            "Round Shield",
		Type:            item.ShieldRound,
		BaseDefense:     3,
		BaseBlockChance: 0.15,
		ValueCopper:     9_000,
	}
}

func TestShieldDef_EffectiveDefense_TypeConditional(t *testing.T) {
	attrs := attribute.Set{Strength: 16, Dexterity: 14} // str +3, dex +2

	cases := []struct {
		shieldType item.ShieldType
		want       int
	}{
		{item.ShieldTower, 6},   // 3 + str mod 3
		{item.ShieldBuckler, 5}, // 3 + dex mod 2
		{item.ShieldRound, 3},   // base only
		{item.ShieldMagic, 3},   // base only
	}
	for _, tc := range cases {
		s := roundShield()
		s.Type = tc.shieldType
		if got := s.EffectiveDefense(attrs); got != tc.want {
			t.Fatalf("EffectiveDefense(%s) = %d, want %d", tc.shieldType, got, tc.want)
		}
	}
}

func TestShieldDef_EffectiveDefense_NeverNegative(t *testing.T) {
	s := roundShield()
	s.Type = item.ShieldTower
	s.BaseDefense = 1
	attrs := attribute.Set{Strength: 1} // modifier -5
	if got := s.EffectiveDefense(attrs); got != 0 {
		t.Fatalf("EffectiveDefense() = %d, want clamp to 0", got)
	}
}

func TestShieldDef_BlockChance(t *testing.T) {
	attrs := attribute.Set{Dexterity: 16} // modifier +3, bonus 0.06

	cases := []struct {
		shieldType item.ShieldType
		want       float64
	}{
		{item.ShieldBuckler, (0.15 + 0.06) * 1.2},
		{item.ShieldRound, (0.15 + 0.06) * 1.0},
		{item.ShieldTower, (0.15 + 0.06) * 0.8},
		{item.ShieldMagic, (0.15 + 0.06) * 1.1},
	}
	for _, tc := range cases {
		s := roundShield()
		s.Type = tc.shieldType
		if got := s.BlockChance(attrs); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("BlockChance(%s) = %v, want %v", tc.shieldType, got, tc.want)
		}
	}
}

func TestShieldDef_BlockChance_Clamped(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := roundShield()
		s.Type = rapid.SampledFrom([]item.ShieldType{
			item.ShieldBuckler, item.ShieldRound, item.ShieldTower, item.ShieldMagic,
		}).Draw(t, "type")
		s.BaseBlockChance = rapid.Float64Range(0, 1).Draw(t, "base")
		attrs := attribute.Set{Dexterity: rapid.IntRange(0, 200).Draw(t, "dex")}
		got := s.BlockChance(attrs)
		if got < 0 || got > 1 {
			t.Fatalf("BlockChance() = %v, want within [0, 1]", got)
		}
	})
}

func TestShieldDef_Validate(t *testing.T) {
	if err := roundShield().Validate(); err != nil {
		t.Fatalf("expected no error for well-formed ShieldDef, got: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*item.ShieldDef)
	}{
		{"empty name", func(s *item.ShieldDef) { s.Name = "" }},
		{"bad type", func(s *item.ShieldDef) { s.Type = "kite" }},
		{"negative defense", func(s *item.ShieldDef) { s.BaseDefense = -2 }},
		{"block chance above one", func(s *item.ShieldDef) { s.BaseBlockChance = 1.01 }},
	}
	for _, tc := range cases {
		s := roundShield()
		tc.mutate(s)
		if err := s.Validate(); err == nil {
			t.Fatalf("%s: expected validation error, got nil", tc.name)
		}
	}
}

package spell

import (
	"errors"
	"math"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/status"
	"github.com/norvaldb/land-of-mist/internal/rng"
)

// ErrCannotCast is returned by Cast when CanCast is false. Nothing is
// mutated in that case; callers must check before assuming mana was spent.
var ErrCannotCast = errors.New("spell: cannot cast")

// Combatant is the subset of the combat seam the cast resolver touches.
// Declaring it locally keeps this package below the combat package.
type Combatant interface {
	ID() string
	Class() class.ID
	Attributes() attribute.Set
	CurrentMana() int
	SpendMana(amount int) bool
	IsAlive() bool
	CanAct() bool
	ApplyDamage(amount int) int
	Heal(amount int) int
	ApplyStatus(effect status.Active) error
	ResistanceTo(e status.Element) float64
}

// CanCast reports whether caster may release this spell right now: alive,
// able to act, attribute and class requirements met, and holding enough
// mana for the effective cost.
func CanCast(def *SpellDef, caster Combatant, magic balance.MagicConfig) bool {
	if !caster.IsAlive() || !caster.CanAct() {
		return false
	}
	attrs := caster.Attributes()
	if !def.Requirements.Meets(attrs, caster.Class()) {
		return false
	}
	return caster.CurrentMana() >= def.EffectiveManaCost(attrs, magic)
}

// CastEvent records one effect landing on one target.
type CastEvent struct {
	TargetID string
	Kind     status.Kind
	Element  status.Element
	// Amount is HP changed for instant kinds, the rounded per-tick
	// magnitude for over-time kinds, and attribute points for buffs and
	// debuffs.
	Amount int
	// Status names the ledger entry applied; empty for instant kinds.
	Status string
}

// CastResult summarises one resolved cast.
type CastResult struct {
	SpellID   string
	CasterID  string
	ManaSpent int
	Power     float64
	Critical  bool
	Events    []CastEvent
}

// Cast resolves one casting of def by caster against targets. It is a
// no-op returning ErrCannotCast unless CanCast holds. Otherwise it deducts
// the effective mana cost, draws the critical roll once for the whole
// cast, and applies every effect in definition order to every target the
// spell's target kind admits. Targets failing the target-kind predicate
// (or already dead) are skipped silently, and effects a target fully
// resists are dropped.
//
// Precondition: def, caster, and src must be non-nil.
// Postcondition: on nil error, exactly ManaSpent mana was deducted.
func Cast(def *SpellDef, caster Combatant, targets []Combatant, magic balance.MagicConfig, src rng.Source) (CastResult, error) {
	if !CanCast(def, caster, magic) {
		return CastResult{}, ErrCannotCast
	}

	attrs := caster.Attributes()
	cost := def.EffectiveManaCost(attrs, magic)
	caster.SpendMana(cost)

	power := def.Power(attrs, magic)
	critical := src.Float64() < def.CriticalChance(attrs, magic)
	critMult := 1.0
	if critical {
		critMult = magic.CriticalEffectMultiplier
	}

	result := CastResult{
		SpellID:   def.ID,
		CasterID:  caster.ID(),
		ManaSpent: cost,
		Power:     power,
		Critical:  critical,
	}
	for _, target := range targets {
		if target == nil {
			continue
		}
		if !def.AppliesTo(target.ID() == caster.ID(), target.IsAlive()) {
			continue
		}
		for i := range def.Effects {
			if ev, ok := applyEffect(def, def.Effects[i], attrs, power, critMult, target); ok {
				result.Events = append(result.Events, ev)
			}
		}
	}
	return result, nil
}

// applyEffect applies one effect to one target through the seam's clamped
// mutators and reports what happened. A critical cast multiplies damage
// and healing magnitudes, over-time ticks included; buff and debuff
// attribute deltas are unaffected. Elemental resistance reduces damage
// kinds only, and a fully resisted effect is dropped (ok false).
func applyEffect(def *SpellDef, e EffectDef, attrs attribute.Set, power, critMult float64, target Combatant) (CastEvent, bool) {
	amount := def.Amount(e, attrs, power)
	ev := CastEvent{TargetID: target.ID(), Kind: e.Kind, Element: e.Element}

	switch e.Kind {
	case status.KindDamage:
		dmg := int(math.Round(float64(amount) * critMult * (1 - target.ResistanceTo(e.Element))))
		ev.Amount = target.ApplyDamage(dmg)
		return ev, true

	case status.KindHealing:
		ev.Amount = target.Heal(int(math.Round(float64(amount) * critMult)))
		return ev, true

	case status.KindDamageOverTime, status.KindHealingOverTime:
		magnitude := float64(amount) * critMult
		if e.Kind == status.KindDamageOverTime {
			resist := target.ResistanceTo(e.Element)
			if resist >= 1 {
				return ev, false
			}
			magnitude *= 1 - resist
		}
		if err := target.ApplyStatus(status.Active{
			Name:      e.Name,
			Kind:      e.Kind,
			Element:   e.Element,
			Magnitude: magnitude,
			Remaining: e.Duration,
			MaxStacks: e.MaxStacks,
		}); err != nil {
			return ev, false
		}
		ev.Amount = int(math.Round(magnitude))
		ev.Status = e.Name
		return ev, true

	case status.KindBuff, status.KindDebuff:
		delta, ok := attribute.Single(e.Attribute, amount)
		if !ok {
			return ev, false
		}
		if e.Kind == status.KindDebuff {
			delta = delta.Scale(-1)
		}
		if err := target.ApplyStatus(status.Active{
			Name:           e.Name,
			Kind:           e.Kind,
			Element:        e.Element,
			AttributeDelta: delta,
			Remaining:      e.Duration,
			MaxStacks:      e.MaxStacks,
		}); err != nil {
			return ev, false
		}
		ev.Amount = amount
		ev.Status = e.Name
		return ev, true

	case status.KindParalysis:
		if err := target.ApplyStatus(status.Active{
			Name:      e.Name,
			Kind:      e.Kind,
			Element:   e.Element,
			Remaining: e.Duration,
			MaxStacks: e.MaxStacks,
		}); err != nil {
			return ev, false
		}
		ev.Status = e.Name
		return ev, true
	}
	return ev, false
}

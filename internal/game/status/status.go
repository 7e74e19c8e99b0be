// Package status tracks timed effects (damage/healing over time, buffs,
// debuffs, paralysis) applied to a combatant, one ledger per combatant.
package status

import (
	"fmt"
	"math"
	"sort"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
)

// Kind classifies what an effect does when applied or ticked.
type Kind string

const (
	// KindDamage reduces target HP once, at application time.
	KindDamage Kind = "damage"
	// KindHealing restores target HP once, at application time.
	KindHealing Kind = "healing"
	// KindDamageOverTime reduces target HP by Magnitude each tick.
	KindDamageOverTime Kind = "damage_over_time"
	// KindHealingOverTime restores target HP by Magnitude each tick.
	KindHealingOverTime Kind = "healing_over_time"
	// KindBuff raises target attributes while active.
	KindBuff Kind = "buff"
	// KindDebuff lowers target attributes while active.
	KindDebuff Kind = "debuff"
	// KindParalysis prevents the target from acting while active.
	KindParalysis Kind = "paralysis"
)

// validKinds is the set of all legal Kind values.
var validKinds = map[Kind]struct{}{
	KindDamage: {}, KindHealing: {},
	KindDamageOverTime: {}, KindHealingOverTime: {},
	KindBuff: {}, KindDebuff: {}, KindParalysis: {},
}

// ValidKind reports whether k is a recognized effect kind.
func ValidKind(k Kind) bool {
	_, ok := validKinds[k]
	return ok
}

// Element classifies the damage or resistance channel of an effect.
type Element string

const (
	ElementPhysical Element = "physical"
	ElementFire     Element = "fire"
	ElementWater    Element = "water"
	ElementEarth    Element = "earth"
	ElementPoison   Element = "poison"
)

// validElements is the set of all legal Element values.
var validElements = map[Element]struct{}{
	ElementPhysical: {}, ElementFire: {}, ElementWater: {},
	ElementEarth: {}, ElementPoison: {},
}

// ValidElement reports whether e is a recognized element.
func ValidElement(e Element) bool {
	_, ok := validElements[e]
	return ok
}

// Active is one timed effect entry on a combatant's ledger.
type Active struct {
	// Name identifies the effect; re-applying the same name stacks or
	// refreshes rather than duplicating the entry.
	Name    string
	Kind    Kind
	Element Element
	// Magnitude is the per-tick amount for over-time kinds. Unused for
	// buffs, debuffs, and paralysis.
	Magnitude float64
	// AttributeDelta is the per-stack attribute adjustment contributed by
	// buff and debuff kinds. Debuffs carry negative deltas.
	AttributeDelta attribute.Set
	// Remaining is turns left; -1 means until removed explicitly.
	Remaining int
	// MaxStacks caps stacking; 0 means unstackable.
	MaxStacks int
	Stacks    int
}

// TickEvent is the HP change produced by one over-time effect on one tick.
type TickEvent struct {
	Name    string
	Kind    Kind
	Element Element
	// Amount is round(Magnitude × Stacks), always >= 0.
	Amount int
}

// Ledger tracks all effects currently active on one combatant.
// It is not safe for concurrent use; the caller must serialise access.
type Ledger struct {
	active map[string]*Active
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{active: make(map[string]*Active)}
}

// Apply adds or refreshes an effect on this ledger.
// If the effect is already present and unstackable (MaxStacks == 0), the
// duration is extended to max(existing, new) and stacks stay at 1. If
// stackable, stacks are incremented and capped at MaxStacks.
//
// Precondition: a.Name must be non-empty and a.Kind valid.
// Postcondition: Has(a.Name) is true.
func (l *Ledger) Apply(a Active) error {
	if a.Name == "" {
		return fmt.Errorf("Apply: effect name must not be empty")
	}
	if !ValidKind(a.Kind) {
		return fmt.Errorf("Apply: %q is not a valid effect kind", a.Kind)
	}

	if existing, ok := l.active[a.Name]; ok {
		if existing.MaxStacks > 0 {
			add := a.Stacks
			if add < 1 {
				add = 1
			}
			newStacks := existing.Stacks + add
			if newStacks > existing.MaxStacks {
				newStacks = existing.MaxStacks
			}
			existing.Stacks = newStacks
		}
		if a.Remaining > existing.Remaining {
			existing.Remaining = a.Remaining
		}
		return nil
	}

	stacks := a.Stacks
	if a.MaxStacks == 0 {
		stacks = 1
	} else {
		if stacks < 1 {
			stacks = 1
		}
		if stacks > a.MaxStacks {
			stacks = a.MaxStacks
		}
	}
	entry := a
	entry.Stacks = stacks
	l.active[a.Name] = &entry
	return nil
}

// Remove deletes the effect with the given name. No-op if absent.
//
// Postcondition: Has(name) is false.
func (l *Ledger) Remove(name string) {
	delete(l.active, name)
}

// Has reports whether the effect with name is currently active.
func (l *Ledger) Has(name string) bool {
	_, ok := l.active[name]
	return ok
}

// HasKind reports whether any active effect has the given kind.
func (l *Ledger) HasKind(k Kind) bool {
	for _, a := range l.active {
		if a.Kind == k {
			return true
		}
	}
	return false
}

// CanAct reports whether the owner may take actions this turn.
func (l *Ledger) CanAct() bool {
	return !l.HasKind(KindParalysis)
}

// Stacks returns the current stack count for the named effect, or 0.
func (l *Ledger) Stacks(name string) int {
	if a, ok := l.active[name]; ok {
		return a.Stacks
	}
	return 0
}

// AttributeDelta sums the attribute adjustments of all active buffs and
// debuffs, each scaled by its stack count.
func (l *Ledger) AttributeDelta() attribute.Set {
	var total attribute.Set
	for _, a := range l.active {
		if a.Kind != KindBuff && a.Kind != KindDebuff {
			continue
		}
		total = total.Add(a.AttributeDelta.Scale(a.Stacks))
	}
	return total
}

// Tick advances all timed effects by one turn. Over-time effects emit a
// TickEvent before their duration is decremented, so an effect applied
// with Remaining == 1 ticks exactly once. Effects reaching 0 remaining
// turns are removed; Remaining == -1 entries persist until removed.
// Events and expirations are returned in name order so combat logs are
// reproducible.
//
// Postcondition: For every name in the returned expired slice, Has(name)
// is false.
func (l *Ledger) Tick() ([]TickEvent, []string) {
	names := make([]string, 0, len(l.active))
	for name := range l.active {
		names = append(names, name)
	}
	sort.Strings(names)

	var events []TickEvent
	var expired []string
	for _, name := range names {
		a := l.active[name]
		if a.Kind == KindDamageOverTime || a.Kind == KindHealingOverTime {
			amount := int(math.Round(a.Magnitude * float64(a.Stacks)))
			if amount < 0 {
				amount = 0
			}
			events = append(events, TickEvent{
				Name: a.Name, Kind: a.Kind, Element: a.Element, Amount: amount,
			})
		}
		if a.Remaining < 0 {
			continue
		}
		a.Remaining--
		if a.Remaining <= 0 {
			expired = append(expired, name)
			delete(l.active, name)
		}
	}
	return events, expired
}

// All returns a snapshot of the active effects in name order. The slice is
// a new allocation, but the pointed-to entries are shared — callers must
// not modify them.
func (l *Ledger) All() []*Active {
	out := make([]*Active, 0, len(l.active))
	for _, a := range l.active {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

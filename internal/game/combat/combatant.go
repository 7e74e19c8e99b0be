// Package combat owns the seam between the formula layer and whatever
// drives an encounter: the Combatant interface, the concrete Actor, and
// the attack and tick entry points that mutate combatant state. Turn
// scheduling and enemy decision-making live outside this package.
package combat

import (
	"github.com/google/uuid"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/character"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/enemy"
	"github.com/norvaldb/land-of-mist/internal/game/item"
	"github.com/norvaldb/land-of-mist/internal/game/status"
)

// Kind separates the two sides of an encounter. Difficulty profiles scale
// player and enemy damage independently, so every combatant declares its
// side.
type Kind string

const (
	KindPlayer Kind = "player"
	KindEnemy  Kind = "enemy"
)

// Combatant is the seam consumed by the attack and cast resolvers: live
// HP and mana state, effective attributes, and clamped mutation entry
// points. Whatever owns the encounter supplies implementations; Actor is
// the one this package ships.
type Combatant interface {
	ID() string
	Name() string
	Kind() Kind
	Class() class.ID

	// Attributes returns the effective attribute set, active buff and
	// debuff deltas included.
	Attributes() attribute.Set

	CurrentHP() int
	MaxHP() int
	CurrentMana() int
	MaxMana() int

	IsAlive() bool
	// CanAct reports whether the combatant may take an action this turn;
	// false while dead or paralyzed.
	CanAct() bool

	// ApplyDamage removes up to amount HP and returns the HP actually
	// removed. HP never drops below zero.
	ApplyDamage(amount int) int
	// Heal restores up to amount HP and returns the HP actually restored.
	// HP never exceeds MaxHP, and the dead stay dead.
	Heal(amount int) int
	// SpendMana deducts amount if the pool covers it and reports success.
	SpendMana(amount int) bool
	// RestoreMana restores up to amount mana and returns the mana actually
	// restored, clamped at MaxMana.
	RestoreMana(amount int) int

	// ApplyStatus adds a timed effect to the combatant's ledger.
	ApplyStatus(effect status.Active) error
	// Statuses exposes the live ledger for ticking and queries.
	Statuses() *status.Ledger

	// ResistanceTo returns the damage fraction absorbed for an element,
	// in [0, 1], innate and equipment sources combined.
	ResistanceTo(e status.Element) float64
}

// Actor is the concrete combatant used by the demo, tests, and storage
// mapping: identity and side, base attributes, HP and mana pools, worn
// equipment, and a status ledger. Enemy actors are built from scaled
// definitions, player actors from characters.
type Actor struct {
	id    string
	name  string
	kind  Kind
	class class.ID

	base attribute.Set

	hp      int
	maxHP   int
	mana    int
	maxMana int

	// Equipment; any field may be nil (unarmed, unarmored).
	Weapon *item.Weapon
	Armor  *item.ArmorDef
	Shield *item.ShieldDef

	// ArmorClass is innate flat defense for combatants, like enemies,
	// whose toughness is not worn.
	ArmorClass int

	// Resistances holds innate resistances independent of equipment.
	Resistances []item.Resistance

	ledger *status.Ledger
}

var _ Combatant = (*Actor)(nil)

// NewActor creates an actor at full HP and mana.
//
// Precondition: id must be unique within an encounter; maxHP >= 1.
func NewActor(id, name string, kind Kind, cls class.ID, attrs attribute.Set, maxHP, maxMana int) *Actor {
	return &Actor{
		id:      id,
		name:    name,
		kind:    kind,
		class:   cls,
		base:    attrs,
		hp:      maxHP,
		maxHP:   maxHP,
		mana:    maxMana,
		maxMana: maxMana,
		ledger:  status.NewLedger(),
	}
}

// FromEnemy builds an enemy-side actor from a definition scaled to the
// encounter: full pools, the scaled attribute set, the scaled armor
// class, and the definition's innate resistances.
func FromEnemy(def *enemy.Definition, stats enemy.Stats) *Actor {
	a := NewActor(uuid.New().String(), def.Name, KindEnemy, "", stats.Attributes, stats.MaxHP, stats.MaxMana)
	a.ArmorClass = stats.ArmorClass
	a.Resistances = def.Resistances
	return a
}

// FromCharacter builds a player-side actor from a character record and
// its resolved equipment. Current HP and mana carry over as they stand
// on the record; the caller writes them back with Character.WithPools
// when the encounter ends.
func FromCharacter(c character.Character, weapon *item.Weapon, armor *item.ArmorDef, shield *item.ShieldDef) *Actor {
	a := NewActor(c.ID, c.Name, KindPlayer, c.Class, c.Attributes, c.MaxHP, c.MaxMana)
	a.hp = clamp(c.CurrentHP, c.MaxHP)
	a.mana = clamp(c.CurrentMana, c.MaxMana)
	a.Weapon = weapon
	a.Armor = armor
	a.Shield = shield
	return a
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func (a *Actor) ID() string      { return a.id }
func (a *Actor) Name() string    { return a.name }
func (a *Actor) Kind() Kind      { return a.kind }
func (a *Actor) Class() class.ID { return a.class }

// Attributes returns the base attribute set adjusted by active buffs and
// debuffs.
func (a *Actor) Attributes() attribute.Set {
	return a.base.Add(a.ledger.AttributeDelta())
}

func (a *Actor) CurrentHP() int   { return a.hp }
func (a *Actor) MaxHP() int       { return a.maxHP }
func (a *Actor) CurrentMana() int { return a.mana }
func (a *Actor) MaxMana() int     { return a.maxMana }

func (a *Actor) IsAlive() bool { return a.hp > 0 }

func (a *Actor) CanAct() bool { return a.IsAlive() && a.ledger.CanAct() }

// ApplyDamage removes up to amount HP, clamped at zero.
//
// Postcondition: Returns the HP actually removed, in [0, amount].
func (a *Actor) ApplyDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > a.hp {
		amount = a.hp
	}
	a.hp -= amount
	return amount
}

// Heal restores up to amount HP, clamped at MaxHP. Healing a dead actor
// is a no-op: death is final as far as this package is concerned.
//
// Postcondition: Returns the HP actually restored, in [0, amount].
func (a *Actor) Heal(amount int) int {
	if a.hp <= 0 || amount < 0 {
		return 0
	}
	if a.hp+amount > a.maxHP {
		amount = a.maxHP - a.hp
	}
	a.hp += amount
	return amount
}

// SpendMana deducts amount from the mana pool if it covers the cost.
//
// Postcondition: Returns true iff exactly amount mana was deducted.
func (a *Actor) SpendMana(amount int) bool {
	if amount < 0 || amount > a.mana {
		return false
	}
	a.mana -= amount
	return true
}

// RestoreMana restores up to amount mana, clamped at MaxMana. No-op on a
// dead actor.
//
// Postcondition: Returns the mana actually restored, in [0, amount].
func (a *Actor) RestoreMana(amount int) int {
	if a.hp <= 0 || amount < 0 {
		return 0
	}
	if a.mana+amount > a.maxMana {
		amount = a.maxMana - a.mana
	}
	a.mana += amount
	return amount
}

// ApplyStatus adds a timed effect to this actor's ledger.
func (a *Actor) ApplyStatus(effect status.Active) error {
	return a.ledger.Apply(effect)
}

// Statuses exposes the actor's live status ledger.
func (a *Actor) Statuses() *status.Ledger { return a.ledger }

// ResistanceTo returns the strongest resistance to element e across the
// actor's innate resistances and equipped weapon, armor, and shield.
// Resistances are taken from the single best source, never summed.
func (a *Actor) ResistanceTo(e status.Element) float64 {
	r := item.ResistanceFor(a.Resistances, e)
	if a.Weapon != nil {
		if wr := a.Weapon.Def.ResistanceTo(e); wr > r {
			r = wr
		}
	}
	if a.Armor != nil {
		if ar := a.Armor.ResistanceTo(e); ar > r {
			r = ar
		}
	}
	if a.Shield != nil {
		if sr := a.Shield.ResistanceTo(e); sr > r {
			r = sr
		}
	}
	return r
}

// Defense bundles the mitigation consulted on the defending side of an
// attack: worn armor and shield (either may be nil) plus the flat armor
// class.
type Defense struct {
	Armor      *item.ArmorDef
	Shield     *item.ShieldDef
	ArmorClass int
}

// Defense returns this actor's current defensive loadout.
func (a *Actor) Defense() Defense {
	return Defense{Armor: a.Armor, Shield: a.Shield, ArmorClass: a.ArmorClass}
}

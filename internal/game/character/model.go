// Package character defines the player character record and its pure
// creation and progression logic. All operations are functional: they
// return an updated copy and never mutate the receiver, so callers can
// discard a failed step without repair work.
package character

import (
	"time"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/currency"
	"github.com/norvaldb/land-of-mist/internal/game/item"
)

// MaxLevel caps character progression.
const MaxLevel = 20

// Character represents a player character's persistent state.
//
// ID is assigned at creation. CreatedAt and UpdatedAt are maintained by
// the persistence layer; zero values mark an unsaved character.
type Character struct {
	ID   string
	Name string

	Class      class.ID
	Level      int
	Experience int

	// Attributes is the base set at the current level, recomputed from
	// the class tables on level-up. Combat-time buffs and debuffs live on
	// the actor's status ledger and never touch the record.
	Attributes attribute.Set

	MaxHP       int
	CurrentHP   int
	MaxMana     int
	CurrentMana int

	Purse currency.Currency

	// Equipped item IDs; empty means the slot is free. Definitions are
	// resolved against loaded content, not stored here.
	WeaponID string
	ArmorID  string
	ShieldID string

	// WeaponPoison and PoisonCharges persist the equipped weapon's
	// enhancement state between encounters.
	WeaponPoison  item.PoisonKind
	PoisonCharges int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pay deducts cost from the purse. The payment is refused outright when
// the purse cannot cover it; a partial spend never happens.
func (c Character) Pay(cost currency.Currency) (Character, bool) {
	if !c.Purse.CanAfford(cost) {
		return c, false
	}
	c.Purse = c.Purse.Sub(cost)
	return c, true
}

// Earn adds amount to the purse.
func (c Character) Earn(amount currency.Currency) Character {
	c.Purse = c.Purse.Add(amount)
	return c
}

// WithPools returns a copy of c with current HP and mana set, clamped
// into [0, max]. Callers use it to write encounter outcomes back onto
// the record.
func (c Character) WithPools(hp, mana int) Character {
	c.CurrentHP = clampPool(hp, c.MaxHP)
	c.CurrentMana = clampPool(mana, c.MaxMana)
	return c
}

func clampPool(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// PoisonWeapon records a poison application on the equipped weapon,
// clamping charges at the configured maximum per application. Refused
// when the definition is not the equipped weapon, cannot be enhanced,
// or the kind is not an applicable poison.
func (c Character) PoisonWeapon(def *item.WeaponDef, kind item.PoisonKind, charges int, cfg *balance.Config) (Character, bool) {
	if def == nil || def.ID != c.WeaponID || !def.CanBeEnhanced || !item.ValidPoison(kind) || charges <= 0 {
		return c, false
	}
	if charges > cfg.Poison.MaxCharges {
		charges = cfg.Poison.MaxCharges
	}
	c.WeaponPoison = kind
	c.PoisonCharges = charges
	return c, true
}

// WieldedWeapon builds the live weapon instance for an encounter from
// the equipped definition, restoring persisted poison state. Returns nil
// when def is nil or is not the equipped weapon.
func (c Character) WieldedWeapon(def *item.WeaponDef) *item.Weapon {
	if def == nil || def.ID != c.WeaponID {
		return nil
	}
	w := item.NewWeapon(def)
	if c.WeaponPoison != item.PoisonNone && c.PoisonCharges > 0 {
		w.ApplyPoison(c.WeaponPoison, c.PoisonCharges)
	}
	return w
}

// StowWeapon writes the live weapon's enhancement state back onto the
// record after an encounter, spent charges included. No-op when w does
// not match the equipped weapon.
func (c Character) StowWeapon(w *item.Weapon) Character {
	if w == nil || w.Def.ID != c.WeaponID {
		return c
	}
	enh := w.Enhancement()
	c.WeaponPoison = enh.Poison
	c.PoisonCharges = enh.Charges
	return c
}

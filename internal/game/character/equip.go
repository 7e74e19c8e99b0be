package character

import (
	"errors"
	"fmt"

	"github.com/norvaldb/land-of-mist/internal/game/item"
)

// ErrCannotEquip marks an equip attempt the class tables or attribute
// requirements refuse.
var ErrCannotEquip = errors.New("character: cannot equip item")

// EquipWeapon records def as the equipped weapon. Any poison state from
// a previously equipped weapon is discarded with it.
//
// Postcondition: on success the returned copy wields def unenhanced.
func (c Character) EquipWeapon(def *item.WeaponDef) (Character, error) {
	if def == nil {
		return c, errors.New("character: weapon definition must not be nil")
	}
	if !item.CanEquipWeapon(def, c.Class, c.Attributes) {
		return c, fmt.Errorf("%s as %s: %q: %w", c.Name, c.Class, def.Name, ErrCannotEquip)
	}
	c.WeaponID = def.ID
	c.WeaponPoison = item.PoisonNone
	c.PoisonCharges = 0
	return c, nil
}

// EquipArmor records def as the worn armor.
func (c Character) EquipArmor(def *item.ArmorDef) (Character, error) {
	if def == nil {
		return c, errors.New("character: armor definition must not be nil")
	}
	if !item.CanEquipArmor(def, c.Class, c.Attributes) {
		return c, fmt.Errorf("%s as %s: %q: %w", c.Name, c.Class, def.Name, ErrCannotEquip)
	}
	c.ArmorID = def.ID
	return c, nil
}

// EquipShield records def as the borne shield.
func (c Character) EquipShield(def *item.ShieldDef) (Character, error) {
	if def == nil {
		return c, errors.New("character: shield definition must not be nil")
	}
	if !item.CanEquipShield(def, c.Class, c.Attributes) {
		return c, fmt.Errorf("%s as %s: %q: %w", c.Name, c.Class, def.Name, ErrCannotEquip)
	}
	c.ShieldID = def.ID
	return c, nil
}

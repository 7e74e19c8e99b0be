package item

import (
	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/class"
)

// Static class/equipment compatibility tables. These are pure lookups
// with no side effects; Requirement minima are checked separately.

// classArmor maps each class to the armor types it may wear. Heavy armor
// is Warrior-only.
var classArmor = map[class.ID]map[ArmorType]struct{}{
	class.Warrior: {ArmorLight: {}, ArmorMedium: {}, ArmorHeavy: {}},
	class.Mage:    {ArmorLight: {}},
	class.Rogue:   {ArmorLight: {}, ArmorMedium: {}},
	class.Cleric:  {ArmorLight: {}, ArmorMedium: {}},
}

// classWeapons maps each class to the weapon types it may wield.
var classWeapons = map[class.ID]map[WeaponType]struct{}{
	class.Warrior: {
		WeaponSword: {}, WeaponAxe: {}, WeaponMace: {}, WeaponDagger: {},
		WeaponBow: {}, WeaponCrossbow: {},
	},
	class.Mage: {WeaponStaff: {}, WeaponDagger: {}},
	class.Rogue: {
		WeaponSword: {}, WeaponDagger: {}, WeaponBow: {}, WeaponCrossbow: {},
	},
	class.Cleric: {WeaponMace: {}, WeaponStaff: {}},
}

// classShields maps each class to the shield types it may bear.
var classShields = map[class.ID]map[ShieldType]struct{}{
	class.Warrior: {ShieldBuckler: {}, ShieldRound: {}, ShieldTower: {}},
	class.Mage:    {ShieldMagic: {}},
	class.Rogue:   {ShieldBuckler: {}},
	class.Cleric:  {ShieldRound: {}, ShieldMagic: {}},
}

// ClassCanWearArmor reports whether the class may wear armor of type t.
// Unknown classes may wear nothing.
func ClassCanWearArmor(id class.ID, t ArmorType) bool {
	_, ok := classArmor[id][t]
	return ok
}

// ClassCanWieldWeapon reports whether the class may wield weapons of
// type t. Unknown classes may wield nothing.
func ClassCanWieldWeapon(id class.ID, t WeaponType) bool {
	_, ok := classWeapons[id][t]
	return ok
}

// ClassCanUseShield reports whether the class may bear shields of type t.
// Unknown classes may bear nothing.
func ClassCanUseShield(id class.ID, t ShieldType) bool {
	_, ok := classShields[id][t]
	return ok
}

// CanEquipWeapon reports whether a character of the given class and
// attributes may equip the weapon: the type table, the allowed-class
// list, and the attribute minima must all pass.
func CanEquipWeapon(w *WeaponDef, id class.ID, attrs attribute.Set) bool {
	return ClassCanWieldWeapon(id, w.Type) && w.Requirements.Meets(attrs, id)
}

// CanEquipArmor reports whether a character of the given class and
// attributes may wear the armor.
func CanEquipArmor(a *ArmorDef, id class.ID, attrs attribute.Set) bool {
	return ClassCanWearArmor(id, a.Type) && a.Requirements.Meets(attrs, id)
}

// CanEquipShield reports whether a character of the given class and
// attributes may bear the shield.
func CanEquipShield(s *ShieldDef, id class.ID, attrs attribute.Set) bool {
	return ClassCanUseShield(id, s.Type) && s.Requirements.Meets(attrs, id)
}

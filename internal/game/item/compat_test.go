package item_test

import (
	"testing"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/item"
)

func TestClassCanWearArmor_HeavyIsWarriorOnly(t *testing.T) {
	if !item.ClassCanWearArmor(class.Warrior, item.ArmorHeavy) {
		t.Fatal("warrior must be able to wear heavy armor")
	}
	for _, id := range []class.ID{class.Mage, class.Rogue, class.Cleric} {
		if item.ClassCanWearArmor(id, item.ArmorHeavy) {
			t.Fatalf("%s must not wear heavy armor", id)
		}
	}
}

func TestClassCanWearArmor_LightIsUniversal(t *testing.T) {
	for _, id := range []class.ID{class.Warrior, class.Mage, class.Rogue, class.Cleric} {
		if !item.ClassCanWearArmor(id, item.ArmorLight) {
			t.Fatalf("%s must be able to wear light armor", id)
		}
	}
}

func TestClassCanWieldWeapon(t *testing.T) {
	cases := []struct {
		id     class.ID
		weapon item.WeaponType
		want   bool
	}{
		{class.Warrior, item.WeaponSword, true},
		{class.Warrior, item.WeaponStaff, false},
		{class.Mage, item.WeaponStaff, true},
		{class.Mage, item.WeaponDagger, true},
		{class.Mage, item.WeaponSword, false},
		{class.Rogue, item.WeaponBow, true},
		{class.Rogue, item.WeaponMace, false},
		{class.Cleric, item.WeaponMace, true},
		{class.Cleric, item.WeaponAxe, false},
	}
	for _, tc := range cases {
		if got := item.ClassCanWieldWeapon(tc.id, tc.weapon); got != tc.want {
			t.Fatalf("ClassCanWieldWeapon(%s, %s) = %v, want %v", tc.id, tc.weapon, got, tc.want)
		}
	}
}

func TestClassCanUseShield(t *testing.T) {
	cases := []struct {
		id     class.ID
		shield item.ShieldType
		want   bool
	}{
		{class.Warrior, item.ShieldTower, true},
		{class.Warrior, item.ShieldMagic, false},
		{class.Mage, item.ShieldMagic, true},
		{class.Mage, item.ShieldBuckler, false},
		{class.Rogue, item.ShieldBuckler, true},
		{class.Cleric, item.ShieldRound, true},
	}
	for _, tc := range cases {
		if got := item.ClassCanUseShield(tc.id, tc.shield); got != tc.want {
			t.Fatalf("ClassCanUseShield(%s, %s) = %v, want %v", tc.id, tc.shield, got, tc.want)
		}
	}
}

func TestUnknownClassCanEquipNothing(t *testing.T) {
	if item.ClassCanWearArmor("bard", item.ArmorLight) {
		t.Fatal("unknown class must not wear armor")
	}
	if item.ClassCanWieldWeapon("bard", item.WeaponDagger) {
		t.Fatal("unknown class must not wield weapons")
	}
	if item.ClassCanUseShield("bard", item.ShieldRound) {
		t.Fatal("unknown class must not bear shields")
	}
}

func TestCanEquipWeapon_CombinesChecks(t *testing.T) {
	w := ironSword()
	w.Requirements = item.Requirement{
		Attributes: attribute.Set{Strength: 14},
		Classes:    []class.ID{class.Warrior},
	}
	strong := attribute.Set{Strength: 16}
	weak := attribute.Set{Strength: 10}

	if !item.CanEquipWeapon(w, class.Warrior, strong) {
		t.Fatal("strong warrior must be able to equip the sword")
	}
	if item.CanEquipWeapon(w, class.Warrior, weak) {
		t.Fatal("attribute minima must gate equipping")
	}
	if item.CanEquipWeapon(w, class.Rogue, strong) {
		t.Fatal("allowed-class list must gate equipping")
	}
}

func TestCanEquipArmorAndShield(t *testing.T) {
	a := chainmail() // medium
	attrs := attribute.Set{Strength: 12, Dexterity: 12, Constitution: 12}

	if !item.CanEquipArmor(a, class.Rogue, attrs) {
		t.Fatal("rogue must be able to wear medium armor")
	}
	if item.CanEquipArmor(a, class.Mage, attrs) {
		t.Fatal("mage must not wear medium armor")
	}

	s := roundShield()
	if !item.CanEquipShield(s, class.Cleric, attrs) {
		t.Fatal("cleric must be able to bear a round shield")
	}
	if item.CanEquipShield(s, class.Mage, attrs) {
		t.Fatal("mage must not bear a round shield")
	}
}

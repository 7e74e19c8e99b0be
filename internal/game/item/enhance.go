package item

import "math"

// PoisonKind identifies the poison applied to a weapon.
type PoisonKind string

const (
	// PoisonNone marks an unenhanced weapon.
	PoisonNone PoisonKind = ""
	// PoisonWeak deals light bonus damage per hit.
	PoisonWeak PoisonKind = "weak"
	// PoisonStrong deals heavy bonus damage per hit.
	PoisonStrong PoisonKind = "strong"
	// PoisonParalysis deals minor damage and can paralyze the target.
	PoisonParalysis PoisonKind = "paralysis"
	// PoisonWeakness deals minor damage and can sap the target's strength.
	PoisonWeakness PoisonKind = "weakness"
)

// poisonBaseDamage is the unscaled per-hit damage of each poison kind.
var poisonBaseDamage = map[PoisonKind]int{
	PoisonWeak:      2,
	PoisonStrong:    5,
	PoisonParalysis: 1,
	PoisonWeakness:  1,
}

// ValidPoison reports whether k names an applicable poison kind.
// PoisonNone is not applicable: RemovePoison clears state instead.
func ValidPoison(k PoisonKind) bool {
	_, ok := poisonBaseDamage[k]
	return ok
}

// Enhancement is the mutable poison state of one weapon instance.
// The zero value means unenhanced.
type Enhancement struct {
	Poison  PoisonKind
	Charges int
}

// Weapon is a live weapon instance: an immutable definition plus this
// instance's enhancement state. All poison mutation goes through
// ApplyPoison, ConsumePoisonCharge, and RemovePoison; the definition is
// shared between instances and never written.
type Weapon struct {
	Def         *WeaponDef
	enhancement Enhancement
}

// NewWeapon creates an unenhanced instance of def.
//
// Precondition: def must be non-nil.
func NewWeapon(def *WeaponDef) *Weapon {
	return &Weapon{Def: def}
}

// Enhancement returns a copy of the current poison state.
func (w *Weapon) Enhancement() Enhancement {
	return w.enhancement
}

// IsPoisoned reports whether a poison with remaining charges is applied.
func (w *Weapon) IsPoisoned() bool {
	return w.enhancement.Poison != PoisonNone && w.enhancement.Charges > 0
}

// ApplyPoison coats the weapon with the given poison and charge count,
// replacing any existing poison. It returns false without changing state
// if the weapon cannot be enhanced, the kind is not a real poison, or
// charges is not positive.
//
// Postcondition: on true, IsPoisoned() is true with exactly charges left.
func (w *Weapon) ApplyPoison(kind PoisonKind, charges int) bool {
	if !w.Def.CanBeEnhanced || !ValidPoison(kind) || charges <= 0 {
		return false
	}
	w.enhancement = Enhancement{Poison: kind, Charges: charges}
	return true
}

// ConsumePoisonCharge spends one poison charge, called once per landed
// attack. Consuming the last charge clears the enhancement back to
// unenhanced. Returns false if no poison is applied.
//
// Postcondition: on true, Charges has decreased by exactly 1; at zero the
// poison kind is reset to PoisonNone.
func (w *Weapon) ConsumePoisonCharge() bool {
	if !w.IsPoisoned() {
		return false
	}
	w.enhancement.Charges--
	if w.enhancement.Charges <= 0 {
		w.enhancement = Enhancement{}
	}
	return true
}

// RemovePoison clears any applied poison early, discarding remaining
// charges. No-op on an unenhanced weapon.
//
// Postcondition: IsPoisoned() is false.
func (w *Weapon) RemovePoison() {
	w.enhancement = Enhancement{}
}

// PoisonDamage returns the bonus damage the applied poison adds to a hit:
// the poison kind's base damage scaled by effectiveness and rounded to the
// nearest integer, or 0 if no poison is applied. Poison damage bypasses
// armor entirely; the combat resolver adds it after mitigation.
//
// Postcondition: Returns >= 0.
func (w *Weapon) PoisonDamage(effectiveness float64) int {
	if !w.IsPoisoned() {
		return 0
	}
	base := poisonBaseDamage[w.enhancement.Poison]
	dmg := int(math.Round(float64(base) * effectiveness))
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

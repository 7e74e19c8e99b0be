package combat

import (
	"math"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/item"
	"github.com/norvaldb/land-of-mist/internal/game/status"
	"github.com/norvaldb/land-of-mist/internal/rng"
)

// Poison riders applied by landed attacks. Weak and strong poisons linger
// as damage over time, paralysis stops the target for one turn, weakness
// saps Strength.
const (
	poisonLingerTurns       = 3
	paralysisTurns          = 1
	weaknessTurns           = 3
	weaknessStrengthPenalty = 2
)

// AttackResult records everything one weapon attack did.
type AttackResult struct {
	AttackerID string
	TargetID   string
	// Blocked is true when the defender's shield stopped the attack
	// outright; nothing else in the result applies then.
	Blocked bool
	// Critical is true when the attack rolled under the weapon's
	// effective critical chance.
	Critical bool
	// BaseDamage is the deterministic weapon damage before multipliers.
	BaseDamage int
	// Mitigated is the defense subtracted from the hit.
	Mitigated int
	// Damage is the HP the weapon hit actually removed.
	Damage int
	// PoisonDamage is the HP the poison rider removed, armor bypassed.
	PoisonDamage int
	// StatusesApplied names the ledger effects the attack inflicted.
	StatusesApplied []string
}

// Total returns the full HP cost of the attack.
func (r AttackResult) Total() int { return r.Damage + r.PoisonDamage }

// ResolveWeaponAttack resolves one weapon swing from attacker against
// defender and applies its consequences through the seam.
//
// The pipeline: the defender's shield may block the attack outright
// (block roll first, poison included — a blocked blade never touches).
// Otherwise weapon damage is scaled by the handedness multiplier, the
// global damage multiplier, and the attacker side's difficulty damage
// multiplier; the critical roll (drawn second) multiplies it further.
// Armor class plus armor and shield defense mitigate the total, floored
// at the configured minimum damage, and physical resistance reduces what
// remains. A poison rider then bypasses mitigation — only poison
// resistance applies — consumes one charge, and leaves its status:
// lingering damage for weak and strong poison, paralysis or a Strength
// debuff for the utility kinds.
//
// Precondition: all arguments non-nil, attacker and defender alive.
// Postcondition: damage and statuses are applied to defender in place;
// the returned result reflects actual HP removed.
func ResolveWeaponAttack(attacker Combatant, weapon *item.Weapon, defender Combatant, guard Defense, cfg *balance.Config, prof balance.DifficultyProfile, src rng.Source) AttackResult {
	result := AttackResult{AttackerID: attacker.ID(), TargetID: defender.ID()}

	attrs := attacker.Attributes()
	defAttrs := defender.Attributes()

	if guard.Shield != nil && src.Float64() < guard.Shield.BlockChance(defAttrs) {
		result.Blocked = true
		return result
	}

	result.BaseDamage = weapon.Def.Damage(attrs)

	handed := cfg.Combat.OneHandedMultiplier
	if weapon.Def.Handedness == item.TwoHanded {
		handed = cfg.Combat.TwoHandedMultiplier
	}
	side := prof.PlayerDamageMultiplier
	if attacker.Kind() == KindEnemy {
		side = prof.EnemyDamageMultiplier
	}
	raw := float64(result.BaseDamage) * handed * cfg.Combat.DamageMultiplier * side

	if src.Float64() < weapon.Def.EffectiveCriticalChance(attrs) {
		result.Critical = true
		raw *= cfg.Combat.CriticalDamageMultiplier
	}

	mitigation := guard.ArmorClass
	if guard.Armor != nil {
		mitigation += guard.Armor.EffectiveDefense(defAttrs)
	}
	if guard.Shield != nil {
		mitigation += guard.Shield.EffectiveDefense(defAttrs)
	}
	mitigation = int(math.Round(float64(mitigation) * cfg.Combat.DefenseMultiplier))
	result.Mitigated = mitigation

	damage := int(math.Round(raw)) - mitigation
	if damage < cfg.Combat.MinimumDamage {
		damage = cfg.Combat.MinimumDamage
	}
	damage = int(math.Round(float64(damage) * (1 - defender.ResistanceTo(status.ElementPhysical))))
	result.Damage = defender.ApplyDamage(damage)

	if weapon.IsPoisoned() {
		kind := weapon.Enhancement().Poison
		resist := defender.ResistanceTo(status.ElementPoison)
		poison := int(math.Round(float64(weapon.PoisonDamage(cfg.Poison.Effectiveness)) * (1 - resist)))
		if poison > 0 {
			result.PoisonDamage = defender.ApplyDamage(poison)
		}
		if resist < 1 {
			for _, eff := range poisonStatuses(kind, poison, cfg.Poison) {
				if err := defender.ApplyStatus(eff); err == nil {
					result.StatusesApplied = append(result.StatusesApplied, eff.Name)
				}
			}
		}
		weapon.ConsumePoisonCharge()
	}

	return result
}

// poisonStatuses maps a landed poison hit to the ledger entries it leaves
// behind. hitDamage is the resisted per-hit poison damage; it seeds the
// lingering tick magnitude for weak and strong poison.
func poisonStatuses(kind item.PoisonKind, hitDamage int, cfg balance.PoisonConfig) []status.Active {
	switch kind {
	case item.PoisonWeak, item.PoisonStrong:
		magnitude := float64(hitDamage) * cfg.TickDamageMultiplier
		if magnitude <= 0 {
			return nil
		}
		return []status.Active{{
			Name:      string(kind) + "_poison",
			Kind:      status.KindDamageOverTime,
			Element:   status.ElementPoison,
			Magnitude: magnitude,
			Remaining: poisonLingerTurns,
		}}
	case item.PoisonParalysis:
		return []status.Active{{
			Name:      "paralyzed",
			Kind:      status.KindParalysis,
			Element:   status.ElementPoison,
			Remaining: paralysisTurns,
		}}
	case item.PoisonWeakness:
		return []status.Active{{
			Name:           "weakened",
			Kind:           status.KindDebuff,
			Element:        status.ElementPoison,
			AttributeDelta: attribute.Set{Strength: -weaknessStrengthPenalty},
			Remaining:      weaknessTurns,
		}}
	}
	return nil
}

// TickStatuses advances the combatant's timed effects by one turn,
// applying damage-over-time and healing-over-time amounts through the
// seam's clamped mutators. The owner of the turn loop calls this once per
// combatant per turn.
//
// Postcondition: the returned events are in effect-name order; expired
// names are no longer on the ledger.
func TickStatuses(c Combatant) ([]status.TickEvent, []string) {
	events, expired := c.Statuses().Tick()
	for _, ev := range events {
		switch ev.Kind {
		case status.KindDamageOverTime:
			c.ApplyDamage(ev.Amount)
		case status.KindHealingOverTime:
			c.Heal(ev.Amount)
		}
	}
	return events, expired
}

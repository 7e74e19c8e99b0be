package main

import (
	"fmt"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/game/character"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/combat"
	"github.com/norvaldb/land-of-mist/internal/game/enemy"
	"github.com/norvaldb/land-of-mist/internal/game/item"
	"github.com/norvaldb/land-of-mist/internal/game/spell"
	"github.com/norvaldb/land-of-mist/internal/game/status"
	"github.com/norvaldb/land-of-mist/internal/rng"
	"github.com/norvaldb/land-of-mist/internal/scripting"
)

// encounter drives one hero-versus-enemy fight to its end. Turn order is
// fixed: the hero acts, the enemy answers, then status effects tick.
type encounter struct {
	hero       *combat.Actor
	foe        *combat.Actor
	heroWeapon *item.Weapon
	foeWeapon  *item.Weapon
	foeDef     *enemy.Definition
	stats      enemy.Stats

	cs      *contentSet
	bal     *balance.Config
	prof    balance.DifficultyProfile
	src     rng.Source
	scripts *scripting.Manager

	actors map[string]*combat.Actor
	phase  string
}

func newEncounter(
	pc character.Character,
	weaponDef *item.WeaponDef,
	foeDef *enemy.Definition,
	stats enemy.Stats,
	cs *contentSet,
	bal *balance.Config,
	prof balance.DifficultyProfile,
	src rng.Source,
	scripts *scripting.Manager,
) *encounter {
	heroWeapon := pc.WieldedWeapon(weaponDef)
	hero := combat.FromCharacter(pc, heroWeapon, findArmor(cs, pc.ArmorID), findShield(cs, pc.ShieldID))
	foe := combat.FromEnemy(foeDef, stats)

	var foeWeapon *item.Weapon
	if def, ok := cs.weaponByID[foeDef.WeaponID]; ok {
		foeWeapon = item.NewWeapon(def)
	}

	e := &encounter{
		hero:       hero,
		foe:        foe,
		heroWeapon: heroWeapon,
		foeWeapon:  foeWeapon,
		foeDef:     foeDef,
		stats:      stats,
		cs:         cs,
		bal:        bal,
		prof:       prof,
		src:        src,
		scripts:    scripts,
		actors: map[string]*combat.Actor{
			hero.ID(): hero,
			foe.ID():  foe,
		},
	}
	e.wireScripts()
	return e
}

// wireScripts points the engine.* Lua callbacks at this encounter's actors.
func (e *encounter) wireScripts() {
	e.scripts.GetCombatant = func(id string) *scripting.CombatantInfo {
		a, ok := e.actors[id]
		if !ok {
			return nil
		}
		info := snapshot(a)
		return &info
	}
	e.scripts.Damage = func(id string, hp int) error {
		a, ok := e.actors[id]
		if !ok {
			return fmt.Errorf("no combatant %q", id)
		}
		a.ApplyDamage(hp)
		return nil
	}
	e.scripts.Heal = func(id string, hp int) error {
		a, ok := e.actors[id]
		if !ok {
			return fmt.Errorf("no combatant %q", id)
		}
		a.Heal(hp)
		return nil
	}
	e.scripts.ApplyStatus = func(id, name string, turns int) error {
		a, ok := e.actors[id]
		if !ok {
			return fmt.Errorf("no combatant %q", id)
		}
		return a.ApplyStatus(status.Active{
			Name:      name,
			Kind:      status.KindDebuff,
			Element:   status.ElementPhysical,
			Remaining: turns,
		})
	}
}

func snapshot(a *combat.Actor) scripting.CombatantInfo {
	return scripting.CombatantInfo{
		ID:      a.ID(),
		Name:    a.Name(),
		HP:      a.CurrentHP(),
		MaxHP:   a.MaxHP(),
		Mana:    a.CurrentMana(),
		MaxMana: a.MaxMana(),
		Alive:   a.IsAlive(),
	}
}

// run fights until one side falls or maxRounds elapse. Returns whether the
// hero won and the number of rounds fought.
func (e *encounter) run(maxRounds int) (bool, int) {
	fmt.Printf("\n%s (%d HP) faces %s (%d HP, AC %d).\n",
		e.hero.Name(), e.hero.CurrentHP(),
		e.foe.Name(), e.foe.CurrentHP(), e.stats.ArmorClass)

	for round := 1; round <= maxRounds; round++ {
		fmt.Printf("\n-- round %d --\n", round)
		e.announcePhase()

		if e.hero.CanAct() {
			e.heroTurn(round)
		} else {
			fmt.Printf("%s cannot act!\n", e.hero.Name())
		}
		if !e.foe.IsAlive() {
			return true, round
		}

		if e.foe.CanAct() {
			e.foeTurn()
		} else {
			fmt.Printf("%s cannot act!\n", e.foe.Name())
		}
		if !e.hero.IsAlive() {
			return false, round
		}

		e.tick(e.hero)
		e.tick(e.foe)
		if !e.foe.IsAlive() {
			return true, round
		}
		if !e.hero.IsAlive() {
			return false, round
		}
	}

	fmt.Printf("\nThe combatants separate, spent.\n")
	return false, maxRounds
}

// announcePhase prints boss phase transitions.
func (e *encounter) announcePhase() {
	if !e.foeDef.IsBoss() {
		return
	}
	frac := float64(e.foe.CurrentHP()) / float64(e.foe.MaxHP())
	if ph, ok := e.foeDef.PhaseFor(frac); ok && ph.Name != e.phase {
		e.phase = ph.Name
		fmt.Printf("%s enters the %s phase!\n", e.foe.Name(), ph.Name)
	}
}

// heroTurn casts on even rounds when a spell is ready, otherwise swings.
func (e *encounter) heroTurn(round int) {
	if round%2 == 0 {
		if def := e.pickSpell(e.hero, nil); def != nil {
			e.cast(def, e.hero, e.foe)
			return
		}
	}
	e.attack(e.hero, e.heroWeapon, e.foe, e.prof)
}

// foeTurn prefers abilities, falling back to the natural weapon. Boss
// phases can swap the ability list and scale outgoing damage.
func (e *encounter) foeTurn() {
	prof := e.prof
	allowed := e.foeDef.Abilities
	if e.foeDef.IsBoss() {
		frac := float64(e.foe.CurrentHP()) / float64(e.foe.MaxHP())
		if ph, ok := e.foeDef.PhaseFor(frac); ok {
			if len(ph.Abilities) > 0 {
				allowed = ph.Abilities
			}
			if ph.DamageMultiplier > 0 {
				prof.EnemyDamageMultiplier *= ph.DamageMultiplier
			}
		}
	}

	if def := e.pickSpell(e.foe, allowed); def != nil {
		e.cast(def, e.foe, e.hero)
		return
	}
	if e.foeWeapon != nil {
		e.attack(e.foe, e.foeWeapon, e.hero, prof)
		return
	}
	fmt.Printf("%s circles warily.\n", e.foe.Name())
}

// pickSpell returns the first castable enemy-targeting spell, restricted
// to the allowed id list when non-nil.
func (e *encounter) pickSpell(caster *combat.Actor, allowed []string) *spell.SpellDef {
	candidates := e.cs.spells
	if allowed != nil {
		candidates = candidates[:0:0]
		for _, id := range allowed {
			if def, ok := e.cs.spellByID[id]; ok {
				candidates = append(candidates, def)
			}
		}
	}
	for _, def := range candidates {
		switch def.Target {
		case spell.TargetSingleEnemy, spell.TargetAllEnemies, spell.TargetArea:
		default:
			continue
		}
		if spell.CanCast(def, caster, e.bal.Magic) {
			return def
		}
	}
	return nil
}

func (e *encounter) attack(att *combat.Actor, w *item.Weapon, def *combat.Actor, prof balance.DifficultyProfile) {
	res := combat.ResolveWeaponAttack(att, w, def, def.Defense(), e.bal, prof, e.src)
	if res.Blocked {
		fmt.Printf("%s swings at %s, but the blow is blocked!\n", att.Name(), def.Name())
		return
	}
	crit := ""
	if res.Critical {
		crit = " A critical hit!"
	}
	fmt.Printf("%s hits %s for %d damage.%s\n", att.Name(), def.Name(), res.Damage, crit)
	if res.PoisonDamage > 0 {
		fmt.Printf("Poison sears %s for %d.\n", def.Name(), res.PoisonDamage)
	}
	for _, name := range res.StatusesApplied {
		fmt.Printf("%s is afflicted by %s.\n", def.Name(), name)
	}
	if !def.IsAlive() {
		fmt.Printf("%s falls!\n", def.Name())
	}
}

func (e *encounter) cast(def *spell.SpellDef, caster, target *combat.Actor) {
	res, err := spell.Cast(def, caster, []spell.Combatant{target}, e.bal.Magic, e.src)
	if err != nil {
		fmt.Printf("%s fumbles the casting of %s.\n", caster.Name(), def.Name)
		return
	}

	crit := ""
	if res.Critical {
		crit = " The casting surges!"
	}
	fmt.Printf("%s casts %s (%d mana).%s\n", caster.Name(), def.Name, res.ManaSpent, crit)

	for _, ev := range res.Events {
		who := e.name(ev.TargetID)
		switch ev.Kind {
		case status.KindDamage:
			fmt.Printf("The %s magic strikes %s for %d.\n", ev.Element, who, ev.Amount)
		case status.KindHealing:
			fmt.Printf("%s recovers %d HP.\n", who, ev.Amount)
		default:
			fmt.Printf("%s is affected by %s.\n", who, ev.Status)
		}
	}

	if def.LuaOnCast != "" {
		if text, ran := e.scripts.OnCast(def.LuaOnCast, snapshot(caster), res.Power, res.Critical); ran && text != "" {
			fmt.Printf("  %s\n", text)
		}
	}

	if !target.IsAlive() {
		fmt.Printf("%s falls!\n", target.Name())
	}
}

// tick advances end-of-round status effects for one actor.
func (e *encounter) tick(a *combat.Actor) {
	if !a.IsAlive() {
		return
	}
	events, expired := combat.TickStatuses(a)
	for _, ev := range events {
		switch ev.Kind {
		case status.KindDamageOverTime:
			fmt.Printf("%s suffers %d from %s.\n", a.Name(), ev.Amount, ev.Name)
		case status.KindHealingOverTime:
			fmt.Printf("%s recovers %d from %s.\n", a.Name(), ev.Amount, ev.Name)
		}
	}
	for _, name := range expired {
		fmt.Printf("%s is no longer affected by %s.\n", a.Name(), name)
	}
	if !a.IsAlive() {
		fmt.Printf("%s succumbs!\n", a.Name())
	}
}

// settle writes the encounter outcome back onto the character: battle-worn
// pools, remaining poison charges, and on victory the experience award and
// loot.
func (e *encounter) settle(pc character.Character, heroWon bool, cls *class.Class) character.Character {
	pc = pc.WithPools(e.hero.CurrentHP(), e.hero.CurrentMana())
	pc = pc.StowWeapon(e.heroWeapon)

	if !heroWon {
		if !e.hero.IsAlive() {
			fmt.Printf("\n%s has been slain by %s.\n", pc.Name, e.foe.Name())
		}
		return pc
	}

	fmt.Printf("\n%s is victorious!\n", pc.Name)

	before := pc.Level
	pc = pc.GainExperience(e.stats.Experience, cls, e.bal, e.prof)
	fmt.Printf("%s gains experience (%d total).\n", pc.Name, pc.Experience)
	if pc.Level > before {
		fmt.Printf("%s reaches level %d!\n", pc.Name, pc.Level)
	}

	if e.foeDef.Loot != nil {
		loot := enemy.GenerateLoot(*e.foeDef.Loot, e.src, e.prof.LootMultiplier, e.stats.TotalScale, e.bal.Economy)
		if loot.Currency.TotalCopper() > 0 {
			pc = pc.Earn(loot.Currency)
			fmt.Printf("%s loots %s.\n", pc.Name, loot.Currency)
		}
		for _, it := range loot.Items {
			fmt.Printf("%s finds %dx %s.\n", pc.Name, it.Quantity, it.ItemDefID)
		}
	}
	return pc
}

// name resolves an actor id for transcript lines.
func (e *encounter) name(id string) string {
	if a, ok := e.actors[id]; ok {
		return a.Name()
	}
	return id
}

func findArmor(cs *contentSet, id string) *item.ArmorDef {
	for _, a := range cs.armors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func findShield(cs *contentSet, id string) *item.ShieldDef {
	for _, s := range cs.shields {
		if s.ID == id {
			return s
		}
	}
	return nil
}

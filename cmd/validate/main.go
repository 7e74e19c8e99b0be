// Package main provides the balance and content validator. It loads the
// balance document and every content directory, checks all invariants and
// cross-references, prints the findings, and exits non-zero when any
// error-severity finding exists.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/config"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/enemy"
	"github.com/norvaldb/land-of-mist/internal/game/item"
	"github.com/norvaldb/land-of-mist/internal/game/spell"
	"github.com/norvaldb/land-of-mist/internal/observability"
	"github.com/norvaldb/land-of-mist/internal/rng"
	"github.com/norvaldb/land-of-mist/internal/scripting"
)

type report struct {
	errors   int
	warnings int
}

func (r *report) errorf(format string, args ...any) {
	r.errors++
	fmt.Printf("error   %s\n", fmt.Sprintf(format, args...))
}

func (r *report) warnf(format string, args ...any) {
	r.warnings++
	fmt.Printf("warning %s\n", fmt.Sprintf(format, args...))
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var r report

	checkBalance(&r, cfg)
	checkContent(&r, cfg, logger)

	fmt.Printf("validated in %s: %d error(s), %d warning(s)\n",
		time.Since(start).Round(time.Millisecond), r.errors, r.warnings)
	if r.errors > 0 {
		os.Exit(1)
	}
}

// checkBalance validates the balance document and the configured default
// difficulty.
func checkBalance(r *report, cfg config.Config) {
	if _, err := balance.ParseDifficulty(cfg.Balance.Difficulty); err != nil {
		r.errorf("balance.difficulty: %v", err)
	}

	bal, err := balance.Load(cfg.Balance.File)
	if err != nil {
		r.errorf("balance %s: %v", cfg.Balance.File, err)
		return
	}
	for _, v := range bal.Validate() {
		if v.Severity == balance.SeverityError {
			r.errorf("balance %s: %s", v.Field, v.Message)
		} else {
			r.warnf("balance %s: %s", v.Field, v.Message)
		}
	}
}

// checkContent loads every content directory and verifies that all
// cross-references between documents resolve: enemy weapons and loot to
// item definitions, enemy abilities to spells, and spell cast hooks to
// shipped scripts.
func checkContent(r *report, cfg config.Config, logger *zap.Logger) {
	classes, err := class.LoadDir(cfg.Content.ClassesDir())
	if err != nil {
		r.errorf("classes: %v", err)
	}

	weapons, err := item.LoadWeapons(cfg.Content.WeaponsDir())
	if err != nil {
		r.errorf("weapons: %v", err)
	}
	armors, err := item.LoadArmors(cfg.Content.ArmorDir())
	if err != nil {
		r.errorf("armor: %v", err)
	}
	shields, err := item.LoadShields(cfg.Content.ShieldsDir())
	if err != nil {
		r.errorf("shields: %v", err)
	}

	spells, err := spell.LoadSpells(cfg.Content.SpellsDir())
	if err != nil {
		r.errorf("spells: %v", err)
	}
	enemies, err := enemy.LoadDefinitions(cfg.Content.EnemiesDir())
	if err != nil {
		r.errorf("enemies: %v", err)
	}

	if len(classes) == 0 {
		r.warnf("classes: no class definitions found")
	}

	itemIDs := make(map[string]bool)
	weaponIDs := make(map[string]bool)
	for _, w := range weapons {
		if weaponIDs[w.ID] {
			r.errorf("weapons: duplicate id %q", w.ID)
		}
		weaponIDs[w.ID] = true
		itemIDs[w.ID] = true
	}
	for _, a := range armors {
		if itemIDs[a.ID] {
			r.errorf("armor: duplicate id %q", a.ID)
		}
		itemIDs[a.ID] = true
	}
	for _, s := range shields {
		if itemIDs[s.ID] {
			r.errorf("shields: duplicate id %q", s.ID)
		}
		itemIDs[s.ID] = true
	}

	spellIDs := make(map[string]bool)
	for _, s := range spells {
		if spellIDs[s.ID] {
			r.errorf("spells: duplicate id %q", s.ID)
		}
		spellIDs[s.ID] = true
	}

	knownClass := func(kind, id string, req item.Requirement) {
		if len(classes) == 0 {
			return
		}
		for _, cid := range req.Classes {
			if _, ok := classes[cid]; !ok {
				r.errorf("%s %s: requirement class %q is not a known class", kind, id, cid)
			}
		}
	}
	for _, w := range weapons {
		knownClass("weapon", w.ID, w.Requirements)
	}
	for _, a := range armors {
		knownClass("armor", a.ID, a.Requirements)
	}
	for _, s := range shields {
		knownClass("shield", s.ID, s.Requirements)
	}
	for _, s := range spells {
		knownClass("spell", s.ID, s.Requirements)
	}

	for _, e := range enemies {
		if e.WeaponID != "" && !weaponIDs[e.WeaponID] {
			r.errorf("enemy %s: weapon %q is not a known weapon", e.ID, e.WeaponID)
		}
		if e.WeaponID == "" && len(e.Abilities) == 0 {
			r.warnf("enemy %s: has neither a weapon nor abilities", e.ID)
		}
		for _, id := range e.Abilities {
			if !spellIDs[id] {
				r.errorf("enemy %s: ability %q is not a known spell", e.ID, id)
			}
		}
		for _, p := range e.Phases {
			for _, id := range p.Abilities {
				if !spellIDs[id] {
					r.errorf("enemy %s: phase %q ability %q is not a known spell", e.ID, p.Name, id)
				}
			}
		}
		if e.Loot != nil {
			for _, drop := range e.Loot.Items {
				if !itemIDs[drop.ItemID] {
					r.errorf("enemy %s: loot item %q is not a known item", e.ID, drop.ItemID)
				}
			}
		}
	}

	checkScripts(r, cfg, logger, spells)
}

// checkScripts loads the Lua scripts and verifies every spell hook resolves.
func checkScripts(r *report, cfg config.Config, logger *zap.Logger, spells []*spell.SpellDef) {
	scriptDir := cfg.Content.ScriptsDir()
	if _, err := os.Stat(scriptDir); os.IsNotExist(err) {
		for _, s := range spells {
			if s.LuaOnCast != "" {
				r.errorf("spell %s: names cast hook %q but script directory %s does not exist",
					s.ID, s.LuaOnCast, scriptDir)
			}
		}
		return
	}

	mgr := scripting.NewManager(rng.NewCryptoSource(), logger)
	defer mgr.Close()
	if err := mgr.Load(scriptDir, 0); err != nil {
		r.errorf("scripts: %v", err)
		return
	}

	for _, s := range spells {
		if s.LuaOnCast != "" && !mgr.HasHook(s.LuaOnCast) {
			r.errorf("spell %s: no script defines %s", s.ID, scripting.HookName(s.LuaOnCast))
		}
	}
}

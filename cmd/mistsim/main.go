// Package main provides the combat simulator binary. It loads the balance
// document and content directories, builds a character, arms it, scales an
// enemy to the party level and difficulty profile, and resolves a full
// encounter round by round, printing the transcript.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/config"
	"github.com/norvaldb/land-of-mist/internal/game/character"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/currency"
	"github.com/norvaldb/land-of-mist/internal/game/enemy"
	"github.com/norvaldb/land-of-mist/internal/game/item"
	"github.com/norvaldb/land-of-mist/internal/game/spell"
	"github.com/norvaldb/land-of-mist/internal/observability"
	"github.com/norvaldb/land-of-mist/internal/rng"
	"github.com/norvaldb/land-of-mist/internal/scripting"
	"github.com/norvaldb/land-of-mist/internal/storage/postgres"
)

// poisonVialCost is what the simulator's hero pays to coat a blade.
var poisonVialCost = currency.FromCoins(0, 3, 0)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	name := flag.String("name", "Aldric", "character name")
	className := flag.String("class", "warrior", "character class id")
	enemyID := flag.String("enemy", "", "enemy definition id (default: first loaded)")
	difficulty := flag.String("difficulty", "", "difficulty override: easy, normal, hard")
	seed := flag.Int64("seed", 0, "rng seed for reproducible runs (0 = crypto)")
	maxRounds := flag.Int("rounds", 50, "maximum rounds before the encounter is called off")
	persist := flag.Bool("persist", false, "save the character to PostgreSQL afterwards")
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

	bal, err := balance.Load(cfg.Balance.File)
	if err != nil {
		logger.Fatal("loading balance document", zap.Error(err))
	}
	if vs := bal.Validate(); !vs.Valid() {
		logger.Fatal("balance document invalid",
			zap.String("violations", vs.Errors().String()),
		)
	}

	diffName := cfg.Balance.Difficulty
	if *difficulty != "" {
		diffName = *difficulty
	}
	diff, err := balance.ParseDifficulty(diffName)
	if err != nil {
		logger.Fatal("parsing difficulty", zap.Error(err))
	}
	prof := bal.Profile(diff)

	content, err := loadContent(cfg.Content)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("classes", len(content.classes)),
		zap.Int("weapons", len(content.weapons)),
		zap.Int("armors", len(content.armors)),
		zap.Int("shields", len(content.shields)),
		zap.Int("spells", len(content.spells)),
		zap.Int("enemies", len(content.enemies)),
	)

	var base rng.Source
	if *seed != 0 {
		base = rng.NewSeededSource(*seed)
		logger.Info("using seeded rng", zap.Int64("seed", *seed))
	} else {
		base = rng.NewCryptoSource()
	}
	src := rng.NewLoggedSource(base, logger)

	scripts := scripting.NewManager(src, logger)
	defer scripts.Close()
	if dir := cfg.Content.ScriptsDir(); dirExists(dir) {
		if err := scripts.Load(dir, 0); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
	}

	// Build and arm the hero.
	cls, ok := content.classes[class.ID(*className)]
	if !ok {
		logger.Fatal("unknown class", zap.String("class", *className))
	}
	hero, err := character.New(*name, cls, bal)
	if err != nil {
		logger.Fatal("creating character", zap.Error(err))
	}

	hero, weaponDef := armHero(hero, content, bal, logger)

	foeDef, ok := content.enemyByID[*enemyID]
	if *enemyID == "" && len(content.enemies) > 0 {
		foeDef, ok = content.enemies[0], true
	}
	if !ok {
		logger.Fatal("unknown enemy", zap.String("enemy", *enemyID))
	}
	if foeDef.WeaponID == "" && len(foeDef.Abilities) == 0 {
		logger.Fatal("enemy has no weapon and no abilities", zap.String("enemy", foeDef.ID))
	}

	stats := foeDef.ScaledStats(hero.Level, prof.EnemyScale)
	logger.Info("enemy scaled",
		zap.String("enemy", foeDef.ID),
		zap.Int("party_level", hero.Level),
		zap.Float64("total_scale", stats.TotalScale),
		zap.Int("max_hp", stats.MaxHP),
		zap.Int("armor_class", stats.ArmorClass),
	)

	enc := newEncounter(hero, weaponDef, foeDef, stats, content, bal, prof, src, scripts)
	heroWon, rounds := enc.run(*maxRounds)

	hero = enc.settle(hero, heroWon, cls)

	fmt.Printf("\n%s after %d round(s): level %d, %d/%d HP, %d/%d mana, purse %s\n",
		hero.Name, rounds, hero.Level,
		hero.CurrentHP, hero.MaxHP, hero.CurrentMana, hero.MaxMana, hero.Purse)

	if *persist {
		if err := persistCharacter(context.Background(), cfg, hero, logger); err != nil {
			logger.Fatal("persisting character", zap.Error(err))
		}
	}
}

// contentSet holds every loaded content document, both ordered and by id.
type contentSet struct {
	classes map[class.ID]*class.Class

	weapons    []*item.WeaponDef
	weaponByID map[string]*item.WeaponDef
	armors     []*item.ArmorDef
	shields    []*item.ShieldDef

	spells    []*spell.SpellDef
	spellByID map[string]*spell.SpellDef

	enemies   []*enemy.Definition
	enemyByID map[string]*enemy.Definition
}

func loadContent(cc config.ContentConfig) (*contentSet, error) {
	classes, err := class.LoadDir(cc.ClassesDir())
	if err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}
	weapons, err := item.LoadWeapons(cc.WeaponsDir())
	if err != nil {
		return nil, fmt.Errorf("weapons: %w", err)
	}
	armors, err := item.LoadArmors(cc.ArmorDir())
	if err != nil {
		return nil, fmt.Errorf("armor: %w", err)
	}
	shields, err := item.LoadShields(cc.ShieldsDir())
	if err != nil {
		return nil, fmt.Errorf("shields: %w", err)
	}
	spells, err := spell.LoadSpells(cc.SpellsDir())
	if err != nil {
		return nil, fmt.Errorf("spells: %w", err)
	}
	enemies, err := enemy.LoadDefinitions(cc.EnemiesDir())
	if err != nil {
		return nil, fmt.Errorf("enemies: %w", err)
	}

	cs := &contentSet{
		classes:    classes,
		weapons:    weapons,
		weaponByID: make(map[string]*item.WeaponDef, len(weapons)),
		armors:     armors,
		shields:    shields,
		spells:     spells,
		spellByID:  make(map[string]*spell.SpellDef, len(spells)),
		enemies:    enemies,
		enemyByID:  make(map[string]*enemy.Definition, len(enemies)),
	}
	for _, w := range weapons {
		cs.weaponByID[w.ID] = w
	}
	for _, s := range spells {
		cs.spellByID[s.ID] = s
	}
	for _, e := range enemies {
		cs.enemyByID[e.ID] = e
	}
	return cs, nil
}

// armHero equips the strongest compatible weapon and armor, adds a shield
// when a hand is free, and coats an enhanceable blade with weak poison.
// Returns the geared character and the chosen weapon definition.
func armHero(pc character.Character, cs *contentSet, bal *balance.Config, logger *zap.Logger) (character.Character, *item.WeaponDef) {
	var weapon *item.WeaponDef
	for _, w := range cs.weapons {
		if !item.CanEquipWeapon(w, pc.Class, pc.Attributes) {
			continue
		}
		if weapon == nil || w.Damage(pc.Attributes) > weapon.Damage(pc.Attributes) {
			weapon = w
		}
	}
	if weapon == nil {
		logger.Fatal("no equippable weapon in content", zap.String("class", string(pc.Class)))
	}
	pc, err := pc.EquipWeapon(weapon)
	if err != nil {
		logger.Fatal("equipping weapon", zap.Error(err))
	}
	fmt.Printf("%s takes up the %s.\n", pc.Name, weapon.Name)

	var armor *item.ArmorDef
	for _, a := range cs.armors {
		if !item.CanEquipArmor(a, pc.Class, pc.Attributes) {
			continue
		}
		if armor == nil || a.EffectiveDefense(pc.Attributes) > armor.EffectiveDefense(pc.Attributes) {
			armor = a
		}
	}
	if armor != nil {
		if geared, err := pc.EquipArmor(armor); err == nil {
			pc = geared
			fmt.Printf("%s dons the %s.\n", pc.Name, armor.Name)
		}
	}

	if weapon.Handedness == item.OneHanded {
		var shield *item.ShieldDef
		for _, s := range cs.shields {
			if !item.CanEquipShield(s, pc.Class, pc.Attributes) {
				continue
			}
			if shield == nil || s.BlockChance(pc.Attributes) > shield.BlockChance(pc.Attributes) {
				shield = s
			}
		}
		if shield != nil {
			if geared, err := pc.EquipShield(shield); err == nil {
				pc = geared
				fmt.Printf("%s straps on the %s.\n", pc.Name, shield.Name)
			}
		}
	}

	if weapon.CanBeEnhanced && pc.Purse.CanAfford(poisonVialCost) {
		paid, ok := pc.Pay(poisonVialCost)
		if ok {
			if coated, applied := paid.PoisonWeapon(weapon, item.PoisonWeak, 3, bal); applied {
				pc = coated
				fmt.Printf("%s coats the %s with weak poison (3 charges, %s).\n",
					pc.Name, weapon.Name, poisonVialCost)
			}
		}
	}

	return pc, weapon
}

// persistCharacter upserts the character: create first, and on a name
// collision adopt the stored row's identity and save over it.
func persistCharacter(ctx context.Context, cfg config.Config, pc character.Character, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	repo := postgres.NewCharacterRepository(pool.DB())
	if _, err := repo.Create(ctx, pc); err != nil {
		if !errors.Is(err, postgres.ErrCharacterNameTaken) {
			return err
		}
		existing, err := repo.GetByName(ctx, pc.Name)
		if err != nil {
			return err
		}
		pc.ID = existing.ID
		if err := repo.Save(ctx, pc); err != nil {
			return err
		}
	}
	logger.Info("character saved",
		zap.String("id", pc.ID),
		zap.String("name", pc.Name),
	)
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

package enemy

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/game/currency"
	"github.com/norvaldb/land-of-mist/internal/rng"
)

// CurrencyDrop defines the copper range an enemy can drop on death.
type CurrencyDrop struct {
	MinCopper int `yaml:"min_copper"`
	MaxCopper int `yaml:"max_copper"`
}

// ItemDrop defines a single item entry in a loot table with a drop chance.
type ItemDrop struct {
	ItemID string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// LootTable defines the possible loot drops for an enemy definition.
type LootTable struct {
	Currency *CurrencyDrop `yaml:"currency"`
	Items    []ItemDrop    `yaml:"items"`
}

// Validate checks that the loot table satisfies its invariants.
//
// Precondition: lt must not be nil.
// Postcondition: Returns nil iff all currency and item constraints hold;
// an empty loot table (no currency, no items) is valid.
func (lt *LootTable) Validate() error {
	if lt.Currency != nil {
		if lt.Currency.MinCopper < 0 {
			return fmt.Errorf("loot table: currency min_copper must be >= 0, got %d", lt.Currency.MinCopper)
		}
		if lt.Currency.MinCopper > lt.Currency.MaxCopper {
			return fmt.Errorf("loot table: currency min_copper (%d) must be <= max_copper (%d)", lt.Currency.MinCopper, lt.Currency.MaxCopper)
		}
	}
	for i, drop := range lt.Items {
		if drop.ItemID == "" {
			return fmt.Errorf("loot table: item[%d] must have a non-empty item id", i)
		}
		if drop.Chance <= 0 || drop.Chance > 1.0 {
			return fmt.Errorf("loot table: item[%d] chance must be in (0, 1.0], got %f", i, drop.Chance)
		}
		if drop.MinQty < 1 {
			return fmt.Errorf("loot table: item[%d] min_qty must be >= 1, got %d", i, drop.MinQty)
		}
		if drop.MinQty > drop.MaxQty {
			return fmt.Errorf("loot table: item[%d] min_qty (%d) must be <= max_qty (%d)", i, drop.MinQty, drop.MaxQty)
		}
	}
	return nil
}

// LootItem represents a single item instance in a loot result.
type LootItem struct {
	ItemDefID  string
	InstanceID string
	Quantity   int
}

// LootResult holds the generated loot from a single enemy kill.
type LootResult struct {
	Currency currency.Currency
	Items    []LootItem
}

// GenerateLoot rolls loot from the given table. Each item entry draws
// uniform [0, 1) against chance × luckModifier × the economy loot drop
// multiplier; on success the quantity is sampled uniformly in
// [MinQty, MaxQty] inclusive. The currency drop is sampled the same way,
// then scaled by totalScale and the economy currency drop multiplier.
//
// Precondition: lt must have passed Validate(); src must be non-nil.
// Postcondition: each item's Quantity is in [MinQty, MaxQty].
func GenerateLoot(lt LootTable, src rng.Source, luckModifier, totalScale float64, econ balance.EconomyConfig) LootResult {
	var result LootResult

	if lt.Currency != nil && lt.Currency.MaxCopper > 0 {
		copper := lt.Currency.MinCopper
		if spread := lt.Currency.MaxCopper - lt.Currency.MinCopper; spread > 0 {
			copper += src.Intn(spread + 1)
		}
		scaled := math.Round(float64(copper) * totalScale * econ.CurrencyDropMultiplier)
		result.Currency = currency.FromCopper(int(scaled))
	}

	for _, drop := range lt.Items {
		chance := drop.Chance * luckModifier * econ.LootDropMultiplier
		if src.Float64() < chance {
			qty := drop.MinQty
			if spread := drop.MaxQty - drop.MinQty; spread > 0 {
				qty += src.Intn(spread + 1)
			}
			result.Items = append(result.Items, LootItem{
				ItemDefID:  drop.ItemID,
				InstanceID: uuid.New().String(),
				Quantity:   qty,
			})
		}
	}

	return result
}

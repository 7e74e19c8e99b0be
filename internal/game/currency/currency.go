// Package currency implements the three-tier coin model used for item values,
// loot drops, and trade. All amounts are stored and compared in the base unit
// (copper); gold and silver are display tiers derived on demand.
package currency

import (
	"fmt"
	"strings"
)

const (
	// CopperPerSilver is the number of base-unit copper coins in one silver.
	CopperPerSilver = 100
	// CopperPerGold is the number of base-unit copper coins in one gold (100 silver).
	CopperPerGold = 10_000
)

// Currency is a non-negative amount of money in total copper.
// The zero value is an empty purse.
type Currency struct {
	total int
}

// FromCopper returns a Currency holding the given total copper.
// Negative totals are clamped to zero.
func FromCopper(total int) Currency {
	if total < 0 {
		total = 0
	}
	return Currency{total: total}
}

// FromCoins returns a Currency composed of the given gold, silver, and copper
// counts. Each tier may exceed its normalized range (e.g. 150 silver is legal
// and worth 1 gold 50 silver). Negative inputs are treated as zero.
func FromCoins(gold, silver, copper int) Currency {
	if gold < 0 {
		gold = 0
	}
	if silver < 0 {
		silver = 0
	}
	if copper < 0 {
		copper = 0
	}
	return Currency{total: gold*CopperPerGold + silver*CopperPerSilver + copper}
}

// TotalCopper returns the amount in the base unit.
//
// Postcondition: Returns >= 0.
func (c Currency) TotalCopper() int { return c.total }

// Gold returns the normalized gold tier: total / 10000.
func (c Currency) Gold() int { return c.total / CopperPerGold }

// Silver returns the normalized silver tier: (total % 10000) / 100.
//
// Postcondition: 0 <= Silver() < 100.
func (c Currency) Silver() int { return (c.total % CopperPerGold) / CopperPerSilver }

// Copper returns the normalized copper tier: total % 100.
//
// Postcondition: 0 <= Copper() < 100.
func (c Currency) Copper() int { return c.total % CopperPerSilver }

// Add returns the sum of c and other.
func (c Currency) Add(other Currency) Currency {
	return Currency{total: c.total + other.total}
}

// Sub returns c minus other, clamped at zero — currency never goes negative.
//
// Postcondition: result.TotalCopper() == max(0, c.TotalCopper() - other.TotalCopper()).
func (c Currency) Sub(other Currency) Currency {
	t := c.total - other.total
	if t < 0 {
		t = 0
	}
	return Currency{total: t}
}

// Scale returns c multiplied by factor, rounded to the nearest copper.
// Negative results are clamped to zero. Used for buy/sell price adjustment.
func (c Currency) Scale(factor float64) Currency {
	scaled := int(float64(c.total)*factor + 0.5)
	if scaled < 0 {
		scaled = 0
	}
	return Currency{total: scaled}
}

// CanAfford reports whether c covers the given cost.
func (c Currency) CanAfford(cost Currency) bool { return c.total >= cost.total }

// Less reports whether c is worth strictly less than other.
func (c Currency) Less(other Currency) bool { return c.total < other.total }

// String renders the normalized tiers, omitting zero-valued higher tiers.
// The copper tier always appears: "2g 15s 47c", "3s 2c", "0c".
func (c Currency) String() string {
	var parts []string
	if g := c.Gold(); g > 0 {
		parts = append(parts, fmt.Sprintf("%dg", g))
	}
	if s := c.Silver(); s > 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	parts = append(parts, fmt.Sprintf("%dc", c.Copper()))
	return strings.Join(parts, " ")
}

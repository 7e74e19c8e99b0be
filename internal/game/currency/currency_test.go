package currency

import (
	"testing"

	"pgregory.net/rapid"
)

func TestFromCoins_TotalCopper(t *testing.T) {
	c := FromCoins(2, 15, 47)
	if got := c.TotalCopper(); got != 21_547 {
		t.Fatalf("TotalCopper = %d, want 21547", got)
	}
}

func TestString_AllTiers(t *testing.T) {
	c := FromCoins(2, 15, 47)
	if got := c.String(); got != "2g 15s 47c" {
		t.Fatalf("String = %q, want %q", got, "2g 15s 47c")
	}
}

func TestString_OmitsZeroHigherTiers(t *testing.T) {
	cases := []struct {
		c    Currency
		want string
	}{
		{FromCopper(0), "0c"},
		{FromCopper(7), "7c"},
		{FromCoins(0, 3, 2), "3s 2c"},
		{FromCoins(1, 0, 0), "1g 0c"},
	}
	for _, tc := range cases {
		if got := tc.c.String(); got != tc.want {
			t.Errorf("String(%d copper) = %q, want %q", tc.c.TotalCopper(), got, tc.want)
		}
	}
}

func TestSub_ClampsAtZero(t *testing.T) {
	a := FromCopper(50)
	b := FromCopper(80)
	if got := a.Sub(b).TotalCopper(); got != 0 {
		t.Fatalf("Sub below zero = %d, want 0", got)
	}
}

func TestFromCoins_DenormalizedTiers(t *testing.T) {
	// 150 silver = 1 gold 50 silver
	c := FromCoins(0, 150, 0)
	if c.Gold() != 1 || c.Silver() != 50 || c.Copper() != 0 {
		t.Fatalf("normalize(150s) = %dg %ds %dc, want 1g 50s 0c", c.Gold(), c.Silver(), c.Copper())
	}
}

func TestCanAfford(t *testing.T) {
	purse := FromCoins(0, 5, 0)
	if !purse.CanAfford(FromCopper(500)) {
		t.Error("exact amount should be affordable")
	}
	if purse.CanAfford(FromCopper(501)) {
		t.Error("one copper over should not be affordable")
	}
}

func TestScale(t *testing.T) {
	c := FromCopper(100)
	if got := c.Scale(1.5).TotalCopper(); got != 150 {
		t.Errorf("Scale(1.5) = %d, want 150", got)
	}
	if got := c.Scale(0.333).TotalCopper(); got != 33 {
		t.Errorf("Scale(0.333) = %d, want 33", got)
	}
	if got := c.Scale(-1).TotalCopper(); got != 0 {
		t.Errorf("Scale(-1) = %d, want 0", got)
	}
}

func TestProperty_FromCoins_RoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := rapid.IntRange(0, 1000).Draw(t, "gold")
		s := rapid.IntRange(0, 99).Draw(t, "silver")
		cp := rapid.IntRange(0, 99).Draw(t, "copper")

		c := FromCoins(g, s, cp)
		if c.Gold() != g || c.Silver() != s || c.Copper() != cp {
			t.Fatalf("round-trip failed: (%d,%d,%d) -> %dg %ds %dc",
				g, s, cp, c.Gold(), c.Silver(), c.Copper())
		}
		if c.Gold()*CopperPerGold+c.Silver()*CopperPerSilver+c.Copper() != c.TotalCopper() {
			t.Fatalf("tiers do not recompose total %d", c.TotalCopper())
		}
	})
}

func TestProperty_Sub_NeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := FromCopper(rapid.IntRange(0, 1_000_000).Draw(t, "a"))
		b := FromCopper(rapid.IntRange(0, 1_000_000).Draw(t, "b"))

		got := a.Sub(b).TotalCopper()
		want := a.TotalCopper() - b.TotalCopper()
		if want < 0 {
			want = 0
		}
		if got != want {
			t.Fatalf("(%d - %d) = %d, want %d", a.TotalCopper(), b.TotalCopper(), got, want)
		}
	})
}

func TestProperty_NormalizedTierRanges(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := FromCopper(rapid.IntRange(0, 10_000_000).Draw(t, "total"))
		if c.Silver() < 0 || c.Silver() >= 100 {
			t.Fatalf("silver out of range: %d", c.Silver())
		}
		if c.Copper() < 0 || c.Copper() >= 100 {
			t.Fatalf("copper out of range: %d", c.Copper())
		}
	})
}

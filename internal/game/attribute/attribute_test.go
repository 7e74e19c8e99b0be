package attribute

import (
	"testing"

	"pgregory.net/rapid"
)

func TestModifier_Baseline(t *testing.T) {
	if got := Modifier(10); got != 0 {
		t.Fatalf("Modifier(10) = %d, want 0", got)
	}
}

func TestModifier_KnownValues(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{20, 5},
		{16, 3},
		{11, 0},
		{12, 1},
		{9, -1},
		{8, -1},
		{7, -2},
		{1, -5},
		{0, -5},
	}
	for _, tc := range cases {
		if got := Modifier(tc.score); got != tc.want {
			t.Errorf("Modifier(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

// floorDiv2 is the reference floor((n)/2) used to pin the division semantics.
func floorDiv2(n int) int {
	if n < 0 && n%2 != 0 {
		return n/2 - 1
	}
	return n / 2
}

func TestProperty_Modifier_FloorDivision(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		score := rapid.IntRange(-50, 200).Draw(t, "score")
		want := floorDiv2(score - 10)
		if got := Modifier(score); got != want {
			t.Fatalf("Modifier(%d) = %d, want floor((s-10)/2) = %d", score, got, want)
		}
	})
}

func TestProperty_Modifier_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		score := rapid.IntRange(-100, 100).Draw(t, "score")
		if Modifier(score+1) < Modifier(score) {
			t.Fatalf("Modifier not monotonic at %d: %d then %d",
				score, Modifier(score), Modifier(score+1))
		}
	})
}

func TestAtLevel_LevelOneIsBase(t *testing.T) {
	base := Set{Strength: 14, Dexterity: 12, Constitution: 13, Intelligence: 8, Wisdom: 10, Charisma: 11}
	growth := Set{Strength: 2, Constitution: 1}
	if got := AtLevel(base, growth, 1); got != base {
		t.Fatalf("AtLevel(base, growth, 1) = %+v, want base %+v", got, base)
	}
}

func TestAtLevel_GrowthApplied(t *testing.T) {
	base := Set{Strength: 14, Dexterity: 12, Constitution: 13, Intelligence: 8, Wisdom: 10, Charisma: 11}
	growth := Set{Strength: 2, Constitution: 1}
	got := AtLevel(base, growth, 5)
	if got.Strength != 22 {
		t.Errorf("Strength at level 5 = %d, want 22", got.Strength)
	}
	if got.Constitution != 17 {
		t.Errorf("Constitution at level 5 = %d, want 17", got.Constitution)
	}
	if got.Dexterity != base.Dexterity {
		t.Errorf("Dexterity changed without growth: %d", got.Dexterity)
	}
	// base must be untouched
	if base.Strength != 14 {
		t.Errorf("base mutated: %+v", base)
	}
}

func TestAtLevel_ClampsLevelBelowOne(t *testing.T) {
	base := Default()
	growth := Set{Strength: 3}
	if got := AtLevel(base, growth, 0); got != base {
		t.Fatalf("AtLevel with level 0 = %+v, want base", got)
	}
}

func TestMeets(t *testing.T) {
	attrs := Set{Strength: 14, Dexterity: 12, Constitution: 13, Intelligence: 8, Wisdom: 10, Charisma: 11}

	if !attrs.Meets(Set{}) {
		t.Error("zero requirement should always be met")
	}
	if !attrs.Meets(Set{Strength: 14, Dexterity: 10}) {
		t.Error("requirement at exact score should be met")
	}
	if attrs.Meets(Set{Intelligence: 9}) {
		t.Error("requirement above score should not be met")
	}
}

func TestSingle(t *testing.T) {
	got, ok := Single(NameStrength, -2)
	if !ok {
		t.Fatal("Single(strength) reported unknown name")
	}
	if got != (Set{Strength: -2}) {
		t.Fatalf("Single(strength, -2) = %+v, want only Strength set", got)
	}

	if _, ok := Single("luck", 1); ok {
		t.Fatal("Single(luck) should report an unknown name")
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{
		NameStrength, NameDexterity, NameConstitution,
		NameIntelligence, NameWisdom, NameCharisma,
	} {
		if !ValidName(name) {
			t.Errorf("ValidName(%q) = false, want true", name)
		}
	}
	if ValidName("Strength") {
		t.Error("attribute names are lowercase; ValidName(\"Strength\") must be false")
	}
}

func TestProperty_AtLevel_Functional(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := Set{
			Strength:     rapid.IntRange(1, 20).Draw(t, "str"),
			Dexterity:    rapid.IntRange(1, 20).Draw(t, "dex"),
			Constitution: rapid.IntRange(1, 20).Draw(t, "con"),
			Intelligence: rapid.IntRange(1, 20).Draw(t, "int"),
			Wisdom:       rapid.IntRange(1, 20).Draw(t, "wis"),
			Charisma:     rapid.IntRange(1, 20).Draw(t, "cha"),
		}
		growth := Set{Strength: rapid.IntRange(0, 3).Draw(t, "growth")}
		level := rapid.IntRange(1, 50).Draw(t, "level")

		got := AtLevel(base, growth, level)
		if got.Strength != base.Strength+growth.Strength*(level-1) {
			t.Fatalf("AtLevel strength = %d, want %d",
				got.Strength, base.Strength+growth.Strength*(level-1))
		}
		// repeated application over the same inputs is stable
		if again := AtLevel(base, growth, level); again != got {
			t.Fatalf("AtLevel not deterministic: %+v vs %+v", got, again)
		}
	})
}

package class

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
)

func validWarrior() *Class {
	return &Class{
		ID:                 Warrior,
		Name:               "Warrior",
		Description:        "A master of heavy arms and armor.",
		KeyAttribute:       "strength",
		HitPointsPerLevel:  12,
		ManaPointsPerLevel: 0,
		AttributeBase: attribute.Set{
			Strength: 16, Dexterity: 12, Constitution: 14,
			Intelligence: 8, Wisdom: 10, Charisma: 10,
		},
		AttributeGrowth: attribute.Set{Strength: 1},
		StartingCopper:  15_000,
	}
}

func TestClassValidateAcceptsWellFormed(t *testing.T) {
	if err := validWarrior().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestClassValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Class)
	}{
		{"unknown id", func(c *Class) { c.ID = "paladin" }},
		{"empty name", func(c *Class) { c.Name = "" }},
		{"bad key attribute", func(c *Class) { c.KeyAttribute = "luck" }},
		{"zero hit points", func(c *Class) { c.HitPointsPerLevel = 0 }},
		{"negative mana", func(c *Class) { c.ManaPointsPerLevel = -1 }},
		{"negative purse", func(c *Class) { c.StartingCopper = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validWarrior()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestAttributesAtLevel(t *testing.T) {
	c := validWarrior()

	lvl1 := c.AttributesAtLevel(1)
	assert.Equal(t, c.AttributeBase, lvl1)

	lvl5 := c.AttributesAtLevel(5)
	assert.Equal(t, 20, lvl5.Strength, "strength should grow by 1 per level")
	assert.Equal(t, 12, lvl5.Dexterity, "ungrown attributes stay at base")
}

const mageYAML = `
id: mage
name: Mage
description: A scholar of the three schools of magic.
key_attribute: intelligence
hit_points_per_level: 6
mana_points_per_level: 10
attribute_base:
  strength: 8
  dexterity: 12
  constitution: 10
  intelligence: 16
  wisdom: 14
  charisma: 10
attribute_growth:
  intelligence: 1
starting_copper: 12000
`

func TestLoadFromBytes(t *testing.T) {
	c, err := LoadFromBytes([]byte(mageYAML))
	require.NoError(t, err)
	assert.Equal(t, Mage, c.ID)
	assert.Equal(t, "intelligence", c.KeyAttribute)
	assert.Equal(t, 10, c.ManaPointsPerLevel)
	assert.Equal(t, 16, c.AttributeBase.Intelligence)
}

func TestLoadFromBytesRejectsUnknownField(t *testing.T) {
	_, err := LoadFromBytes([]byte(mageYAML + "spell_slots: 4\n"))
	assert.Error(t, err)
}

func TestLoadFromBytesRejectsInvalid(t *testing.T) {
	_, err := LoadFromBytes([]byte("id: mage\nname: Mage\nkey_attribute: luck\nhit_points_per_level: 6\n"))
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mage.yaml"), []byte(mageYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	classes, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Mage", classes[Mage].Name)
}

func TestLoadDirRejectsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(mageYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(mageYAML), 0o644))

	_, err := LoadDir(dir)
	assert.ErrorContains(t, err, "duplicate class id")
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

// Package attribute defines the six-score attribute model and pure modifier math.
package attribute

// Set holds the six core attribute scores for a character or enemy.
// Scores are conventionally centered at 10; a Set is a value type and is
// never mutated in place — derived sets are recomputed functionally.
type Set struct {
	Strength     int `yaml:"strength" json:"strength"`
	Dexterity    int `yaml:"dexterity" json:"dexterity"`
	Constitution int `yaml:"constitution" json:"constitution"`
	Intelligence int `yaml:"intelligence" json:"intelligence"`
	Wisdom       int `yaml:"wisdom" json:"wisdom"`
	Charisma     int `yaml:"charisma" json:"charisma"`
}

// Default returns a Set with every score at the baseline of 10.
func Default() Set {
	return Set{
		Strength: 10, Dexterity: 10, Constitution: 10,
		Intelligence: 10, Wisdom: 10, Charisma: 10,
	}
}

// Modifier computes the standard attribute modifier using floor division:
// floor((score - 10) / 2). Integer division in Go truncates toward zero, so
// negative differences are adjusted to round toward negative infinity —
// Modifier(8) == -1, Modifier(7) == -2.
//
// Postcondition: Returns floor((score - 10) / 2) for any integer score.
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// StrengthModifier returns Modifier(s.Strength).
func (s Set) StrengthModifier() int { return Modifier(s.Strength) }

// DexterityModifier returns Modifier(s.Dexterity).
func (s Set) DexterityModifier() int { return Modifier(s.Dexterity) }

// ConstitutionModifier returns Modifier(s.Constitution).
func (s Set) ConstitutionModifier() int { return Modifier(s.Constitution) }

// IntelligenceModifier returns Modifier(s.Intelligence).
func (s Set) IntelligenceModifier() int { return Modifier(s.Intelligence) }

// WisdomModifier returns Modifier(s.Wisdom).
func (s Set) WisdomModifier() int { return Modifier(s.Wisdom) }

// CharismaModifier returns Modifier(s.Charisma).
func (s Set) CharismaModifier() int { return Modifier(s.Charisma) }

// Add returns the element-wise sum of s and delta. Neither operand is mutated.
func (s Set) Add(delta Set) Set {
	return Set{
		Strength:     s.Strength + delta.Strength,
		Dexterity:    s.Dexterity + delta.Dexterity,
		Constitution: s.Constitution + delta.Constitution,
		Intelligence: s.Intelligence + delta.Intelligence,
		Wisdom:       s.Wisdom + delta.Wisdom,
		Charisma:     s.Charisma + delta.Charisma,
	}
}

// Scale returns a Set with every score multiplied by factor.
func (s Set) Scale(factor int) Set {
	return Set{
		Strength:     s.Strength * factor,
		Dexterity:    s.Dexterity * factor,
		Constitution: s.Constitution * factor,
		Intelligence: s.Intelligence * factor,
		Wisdom:       s.Wisdom * factor,
		Charisma:     s.Charisma * factor,
	}
}

// AtLevel recomputes a level-scaled Set as base + growth×(level-1).
// Level values below 1 are treated as 1, yielding the base set unchanged.
//
// Postcondition: AtLevel(base, growth, 1) == base; the inputs are not mutated.
func AtLevel(base, growth Set, level int) Set {
	if level < 1 {
		level = 1
	}
	return base.Add(growth.Scale(level - 1))
}

// Meets reports whether every score in s is at least the corresponding score
// in min. A zero-valued min imposes no requirement.
func (s Set) Meets(min Set) bool {
	return s.Strength >= min.Strength &&
		s.Dexterity >= min.Dexterity &&
		s.Constitution >= min.Constitution &&
		s.Intelligence >= min.Intelligence &&
		s.Wisdom >= min.Wisdom &&
		s.Charisma >= min.Charisma
}

// Attribute names as they appear in content files.
const (
	NameStrength     = "strength"
	NameDexterity    = "dexterity"
	NameConstitution = "constitution"
	NameIntelligence = "intelligence"
	NameWisdom       = "wisdom"
	NameCharisma     = "charisma"
)

// Single returns a Set carrying value in the named score alone, used to
// build buff and debuff deltas from content definitions. The second return
// is false when name is not a recognized attribute.
func Single(name string, value int) (Set, bool) {
	switch name {
	case NameStrength:
		return Set{Strength: value}, true
	case NameDexterity:
		return Set{Dexterity: value}, true
	case NameConstitution:
		return Set{Constitution: value}, true
	case NameIntelligence:
		return Set{Intelligence: value}, true
	case NameWisdom:
		return Set{Wisdom: value}, true
	case NameCharisma:
		return Set{Charisma: value}, true
	default:
		return Set{}, false
	}
}

// ValidName reports whether name is one of the six attribute names.
func ValidName(name string) bool {
	_, ok := Single(name, 0)
	return ok
}

package character

import (
	"errors"

	"github.com/google/uuid"

	"github.com/norvaldb/land-of-mist/internal/balance"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/currency"
)

// New builds a fresh level-1 character of the given class: class base
// attributes, full derived pools, and the class starting purse.
//
// Precondition: name must be non-empty; cls and cfg must be non-nil and
// validated.
// Postcondition: Returns a Character ready for persistence, or a non-nil
// error.
func New(name string, cls *class.Class, cfg *balance.Config) (Character, error) {
	if name == "" {
		return Character{}, errors.New("character name must not be empty")
	}
	if cls == nil {
		return Character{}, errors.New("class must not be nil")
	}
	if cfg == nil {
		return Character{}, errors.New("balance config must not be nil")
	}

	attrs := attributesAtLevel(cls, 1, cfg.Progression)
	hp, mana := derivedPools(cls, 1, attrs, cfg.Progression)

	return Character{
		ID:          uuid.New().String(),
		Name:        name,
		Class:       cls.ID,
		Level:       1,
		Attributes:  attrs,
		MaxHP:       hp,
		CurrentHP:   hp,
		MaxMana:     mana,
		CurrentMana: mana,
		Purse:       currency.FromCopper(cls.StartingCopper),
	}, nil
}

// Package item provides definitions, loaders, and combat formulas for
// weapons, armor, and shields.
package item

import (
	"errors"
	"fmt"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/class"
	"github.com/norvaldb/land-of-mist/internal/game/status"
)

// Resistance reduces incoming damage of one element by a fraction.
type Resistance struct {
	Element status.Element `yaml:"element"`
	// Percent is the damage fraction absorbed, in [0, 1].
	Percent float64 `yaml:"percent"`
}

// Requirement gates who may equip an item: minimum attribute scores plus an
// allowed-class list. An empty class list allows every class.
type Requirement struct {
	Attributes attribute.Set `yaml:"attributes"`
	Classes    []class.ID    `yaml:"classes"`
}

// MeetsAttributes reports whether attrs satisfies every minimum score.
func (r *Requirement) MeetsAttributes(attrs attribute.Set) bool {
	return attrs.Meets(r.Attributes)
}

// AllowsClass reports whether the given class may equip the item.
// An empty class list allows all classes.
func (r *Requirement) AllowsClass(id class.ID) bool {
	if len(r.Classes) == 0 {
		return true
	}
	for _, c := range r.Classes {
		if c == id {
			return true
		}
	}
	return false
}

// Meets reports whether a character of the given class and attributes may
// equip the item.
func (r *Requirement) Meets(attrs attribute.Set, id class.ID) bool {
	return r.MeetsAttributes(attrs) && r.AllowsClass(id)
}

// Validate checks that every entry in the allowed-class list names a real
// class. Attribute minima need no validation: any integer is a legal
// minimum.
// Postcondition: Returns nil iff the requirement is well-formed.
func (r *Requirement) Validate() error {
	var errs []error
	for _, c := range r.Classes {
		switch c {
		case class.Warrior, class.Mage, class.Rogue, class.Cleric:
		default:
			errs = append(errs, fmt.Errorf("requirement class %q is not a valid class", c))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("requirement validation failed: %v", errs)
	}
	return nil
}

// ValidateResistances collects resistance field errors: every element must
// be recognized and appear at most once, every percent must lie in [0, 1].
func ValidateResistances(rs []Resistance) []error {
	var errs []error
	seen := make(map[status.Element]struct{}, len(rs))
	for _, res := range rs {
		if !status.ValidElement(res.Element) {
			errs = append(errs, fmt.Errorf("resistance element %q is not a valid element", res.Element))
			continue
		}
		if _, dup := seen[res.Element]; dup {
			errs = append(errs, fmt.Errorf("duplicate resistance for element %q", res.Element))
		}
		seen[res.Element] = struct{}{}
		if res.Percent < 0 || res.Percent > 1 {
			errs = append(errs, fmt.Errorf("resistance percent for %q must be in [0, 1], got %v", res.Element, res.Percent))
		}
	}
	return errs
}

// ResistanceFor returns the absorbed fraction for element e, or 0.
func ResistanceFor(rs []Resistance, e status.Element) float64 {
	for _, res := range rs {
		if res.Element == e {
			return res.Percent
		}
	}
	return 0
}

// errValueNegative is shared by all equipment validators.
var errValueNegative = errors.New("value_copper must be >= 0")

// clamp01 clamps v to the closed interval [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package rng

import "math/rand"

// NewSeededSource returns a deterministic Source for reproducible
// simulations and property tests. Not safe for concurrent use.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

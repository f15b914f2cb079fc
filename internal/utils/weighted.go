// Package utils provides small, generic helper functions used across
// different layers of the library. These utilities are independent of
// domain or business logic.
package utils

import "math/rand"

// Weighted pairs a payload with the relative weight it should be picked
// with.
type Weighted[T any] struct {
	Payload T
	Weight  float64
}

// WeightedRandom picks one payload at random, with probability
// proportional to its weight. Entries with non-positive weights are never
// picked. It returns the zero value when the slice is empty or no entry
// has positive weight.
func WeightedRandom[T any](pairs []Weighted[T]) T {
	var zero T
	total := 0.0
	for _, p := range pairs {
		if p.Weight > 0 {
			total += p.Weight
		}
	}
	if total == 0 {
		return zero
	}
	target := rand.Float64() * total
	last := zero
	for _, p := range pairs {
		if p.Weight <= 0 {
			continue
		}
		target -= p.Weight
		if target < 0 {
			return p.Payload
		}
		last = p.Payload
	}
	// Floating point accumulation can leave target at exactly 0.
	return last
}

// Package random is the single seam all generation randomness flows through.
// Production code uses a seeded Rand; tests can supply their own Source.
package random

import (
	"math/rand"
)

// Source produces random values
type Source interface {
	// Range returns a uniform integer in [min, max]. If max < min the bounds are swapped.
	Range(min, max int) int
	// Float64 returns a uniform float in [0, 1)
	Float64() float64
	// Seed returns the seed the source was built from
	Seed() int64
}

// Rand is a Source backed by math/rand
type Rand struct {
	rng  *rand.Rand
	seed int64
}

// New creates a deterministic source for the given seed
func New(seed int64) *Rand {
	return &Rand{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

func (r *Rand) Range(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.rng.Intn(max-min+1)
}

func (r *Rand) Float64() float64 {
	return r.rng.Float64()
}

func (r *Rand) Seed() int64 {
	return r.seed
}

// Pick returns a uniformly chosen element. It panics on an empty slice.
func Pick[T any](src Source, items []T) T {
	if len(items) == 0 {
		panic("random: Pick called with no items")
	}
	return items[src.Range(0, len(items)-1)]
}

// Weighted is an option with a relative weight
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// PickWeighted chooses an option proportionally to its weight. Options with a
// weight <= 0 are never chosen unless every weight is <= 0, in which case the
// choice is uniform.
func PickWeighted[T any](src Source, options []Weighted[T]) T {
	if len(options) == 0 {
		panic("random: PickWeighted called with no options")
	}
	total := 0.0
	for _, o := range options {
		if o.Weight > 0 {
			total += o.Weight
		}
	}
	if total <= 0 {
		return options[src.Range(0, len(options)-1)].Value
	}
	target := src.Float64() * total
	for _, o := range options {
		if o.Weight <= 0 {
			continue
		}
		if target < o.Weight {
			return o.Value
		}
		target -= o.Weight
	}
	// Float rounding can leave a sliver at the end
	for i := len(options) - 1; i >= 0; i-- {
		if options[i].Weight > 0 {
			return options[i].Value
		}
	}
	return options[0].Value
}

// RampWeight is zero while danger is below low, rises linearly to scale at high,
// and stays at scale beyond it.
func RampWeight(low, high, scale, danger float64) float64 {
	if danger < low {
		return 0
	}
	if danger >= high || high <= low {
		return scale
	}
	return scale * (danger - low) / (high - low)
}

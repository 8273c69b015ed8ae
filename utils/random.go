package utils

import (
	"math/rand"
	"time"
)

// RandomSource is the only source of non-determinism the simulation consumes.
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// NewRandomSource returns a generator seeded with seed, or with the clock when seed is 0.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomSign returns -1 or 1 with equal probability.
func RandomSign(rng RandomSource) float32 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// RandomBetween returns a value in [min, max].
func RandomBetween(rng RandomSource, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

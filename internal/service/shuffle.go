package service

import "math/rand"

// Shuffle permutes items in place with the Fisher-Yates algorithm:
// walk i from the last index down to 1, pick j uniformly in [0, i], swap.
func Shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

package service

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func TestShuffle_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	in := []int{5, 3, 3, 9, 1, 0, 7}

	for trial := 0; trial < 200; trial++ {
		out := append([]int(nil), in...)
		Shuffle(rng, out)

		if len(out) != len(in) {
			t.Fatalf("length changed: %d -> %d", len(in), len(out))
		}
		a := append([]int(nil), in...)
		b := append([]int(nil), out...)
		sort.Ints(a)
		sort.Ints(b)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("multiset changed: %v -> %v", in, out)
			}
		}
	}
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	var empty []string
	Shuffle(rng, empty)

	one := []string{"only"}
	Shuffle(rng, one)
	if one[0] != "only" {
		t.Fatalf("single element changed: %v", one)
	}
}

func TestShuffle_UniformPositions(t *testing.T) {
	const (
		trials = 40000
		n      = 4
	)
	rng := rand.New(rand.NewSource(99))

	var counts [n][n]int
	for trial := 0; trial < trials; trial++ {
		items := []int{0, 1, 2, 3}
		Shuffle(rng, items)
		for pos, v := range items {
			counts[v][pos]++
		}
	}

	expected := float64(trials) / n
	for v := 0; v < n; v++ {
		for pos := 0; pos < n; pos++ {
			dev := math.Abs(float64(counts[v][pos])-expected) / expected
			if dev > 0.05 {
				t.Fatalf("element %d at position %d: %d hits, expected about %.0f", v, pos, counts[v][pos], expected)
			}
		}
	}
}

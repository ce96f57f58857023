package service

import (
	"math/rand"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// defaultMaxSampleAttempts bounds rejection sampling of distractors.
// Lists dominated by repeated words fall through to drawing from a shuffled pool.
const defaultMaxSampleAttempts = 64

// OptionGenerator generates multiple choice options for quiz questions.
type OptionGenerator struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewOptionGenerator creates a new option generator.
func NewOptionGenerator(rng *rand.Rand) *OptionGenerator {
	return &OptionGenerator{
		rng:         rng,
		maxAttempts: defaultMaxSampleAttempts,
	}
}

// GenerateOptions returns the correct entry plus distractors, shuffled.
// The result is shorter than OptionsCount only when the list has too few distinct words.
func (g *OptionGenerator) GenerateOptions(words []entities.WordEntry, correctIndex int) []entities.WordEntry {
	correct := words[correctIndex]
	distractors := g.sampleDistractors(words, correctIndex, entities.OptionsCount-1)

	options := make([]entities.WordEntry, 0, entities.OptionsCount)
	options = append(options, correct)
	options = append(options, distractors...)

	Shuffle(g.rng, options)

	return options
}

// sampleDistractors picks random indices until count acceptable entries are found.
// An index is accepted when it is not the correct one and its word differs from the
// correct word and from every distractor chosen so far.
func (g *OptionGenerator) sampleDistractors(words []entities.WordEntry, correctIndex, count int) []entities.WordEntry {
	correct := words[correctIndex]
	chosen := make([]entities.WordEntry, 0, count)

	for attempt := 0; len(chosen) < count && attempt < g.maxAttempts; attempt++ {
		idx := g.rng.Intn(len(words))
		if idx == correctIndex {
			continue
		}
		if conflicts(words[idx], correct, chosen) {
			continue
		}
		chosen = append(chosen, words[idx])
	}

	if len(chosen) < count {
		chosen = g.drawDistractors(words, correctIndex, count, chosen)
	}

	return chosen
}

// drawDistractors completes chosen by walking a shuffled pool of the remaining indices.
func (g *OptionGenerator) drawDistractors(
	words []entities.WordEntry,
	correctIndex, count int,
	chosen []entities.WordEntry,
) []entities.WordEntry {
	correct := words[correctIndex]

	candidates := make([]int, 0, len(words)-1)
	for i := range words {
		if i != correctIndex {
			candidates = append(candidates, i)
		}
	}
	Shuffle(g.rng, candidates)

	for _, idx := range candidates {
		if len(chosen) >= count {
			break
		}
		if conflicts(words[idx], correct, chosen) {
			continue
		}
		chosen = append(chosen, words[idx])
	}

	return chosen
}

func conflicts(candidate, correct entities.WordEntry, chosen []entities.WordEntry) bool {
	if candidate.Equal(correct) {
		return true
	}
	for _, c := range chosen {
		if candidate.Equal(c) {
			return true
		}
	}
	return false
}

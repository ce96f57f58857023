// Package entities contains domain entities used across the application.
package entities

import (
	"fmt"
	"strings"
)

const (
	MinWords     = 4 // minimum size of a usable word list
	OptionsCount = 4 // options shown per question (1 correct + 3 distractors)
)

// WordEntry is a single vocabulary record: the word and the meaning shown as the prompt.
type WordEntry struct {
	Word    string `json:"word" db:"word"`       // answer label shown on an option
	Meaning string `json:"meaning" db:"meaning"` // prompt text shown as the question
}

// Equal reports whether two entries name the same word.
// Options are compared by value, never by pointer identity.
func (w WordEntry) Equal(other WordEntry) bool {
	return w.Word == other.Word
}

// IsBlank reports whether the entry has no word.
func (w WordEntry) IsBlank() bool {
	return strings.TrimSpace(w.Word) == ""
}

// ValidateWords checks that a word list can produce a question.
// It needs at least MinWords entries carrying at least MinWords distinct words.
func ValidateWords(words []WordEntry) error {
	if len(words) < MinWords {
		return fmt.Errorf("%w: got %d entries, need at least %d", ErrInsufficientData, len(words), MinWords)
	}

	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[w.Word] = struct{}{}
	}
	if len(distinct) < MinWords {
		return fmt.Errorf("%w: got %d distinct words, need at least %d", ErrInsufficientData, len(distinct), MinWords)
	}

	return nil
}

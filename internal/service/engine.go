package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// QuizEngine owns one quiz session: the word list, the open question and the
// accepting-input flag. It never schedules anything; the caller decides when to ask
// for the next question after an answer.
//
// Lifecycle of one round:
//
//	READY (accepting) --SubmitAnswer--> LOCKED --NextQuestion--> READY
type QuizEngine struct {
	mu sync.Mutex

	rng     *rand.Rand
	options *OptionGenerator

	words          []entities.WordEntry
	current        entities.Question
	hasQuestion    bool
	acceptingInput bool
	serial         uint64
}

// NewQuizEngine creates an engine drawing randomness from rng.
// A nil rng is replaced by a time-seeded source.
func NewQuizEngine(rng *rand.Rand) *QuizEngine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuizEngine{
		rng:     rng,
		options: NewOptionGenerator(rng),
		// Random base so question IDs of a replaced session do not match the new one.
		serial: uint64(rng.Uint32()),
	}
}

// Load stores the word list. It fails with ErrInsufficientData when the list
// cannot produce four distinct options; the engine then stays unloaded.
func (e *QuizEngine) Load(words []entities.WordEntry) error {
	if err := entities.ValidateWords(words); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.words = append([]entities.WordEntry(nil), words...)
	e.current = entities.Question{}
	e.hasQuestion = false
	e.acceptingInput = false

	return nil
}

// NextQuestion opens a new question and starts accepting input.
func (e *QuizEngine) NextQuestion() (entities.Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.words) == 0 {
		return entities.Question{}, entities.ErrNotLoaded
	}

	correctIndex := e.rng.Intn(len(e.words))
	options := e.options.GenerateOptions(e.words, correctIndex)
	if len(options) < entities.OptionsCount {
		return entities.Question{}, fmt.Errorf("%w: only %d distinct options", entities.ErrInsufficientData, len(options))
	}

	e.serial++
	e.current = entities.Question{
		ID:      e.serial,
		Correct: e.words[correctIndex],
		Options: options,
	}
	e.hasQuestion = true
	e.acceptingInput = true

	return e.copyQuestion(), nil
}

// SubmitAnswer evaluates selected against the open question.
// Outside the accepting-input window the call is ignored and changes nothing.
func (e *QuizEngine) SubmitAnswer(selected entities.WordEntry) entities.AnswerResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.submitLocked(selected)
}

// Answer is SubmitAnswer for a specific question. Answers that reference a question
// other than the open one are ignored, so a stale button cannot answer a newer round.
func (e *QuizEngine) Answer(questionID uint64, selected entities.WordEntry) entities.AnswerResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasQuestion || e.current.ID != questionID {
		return entities.IgnoredAnswer()
	}

	return e.submitLocked(selected)
}

func (e *QuizEngine) submitLocked(selected entities.WordEntry) entities.AnswerResult {
	if !e.acceptingInput {
		return entities.IgnoredAnswer()
	}
	e.acceptingInput = false

	return entities.AnswerResult{
		Status:        entities.AnswerAnswered,
		IsCorrect:     selected.Word == e.current.Correct.Word,
		CorrectAnswer: e.current.Correct,
	}
}

// Current returns the most recent question, if any.
func (e *QuizEngine) Current() (entities.Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasQuestion {
		return entities.Question{}, false
	}
	return e.copyQuestion(), true
}

// AcceptingInput reports whether an answer would currently be evaluated.
func (e *QuizEngine) AcceptingInput() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.acceptingInput
}

func (e *QuizEngine) copyQuestion() entities.Question {
	q := e.current
	q.Options = append([]entities.WordEntry(nil), e.current.Options...)
	return q
}

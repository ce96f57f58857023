package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// WordCatalog exposes the loaded word list.
type WordCatalog interface {
	Words() ([]entities.WordEntry, error)
}

// QuizService runs quiz sessions for any presentation layer.
// Every session owns its own engine; the word list is shared read-only.
type QuizService struct {
	catalog  WordCatalog
	sessions SessionStorage
	logger   *zap.Logger

	seedMu sync.Mutex
	seed   *rand.Rand
}

// NewQuizService creates a new QuizService.
func NewQuizService(catalog WordCatalog, sessions SessionStorage, logger *zap.Logger) *QuizService {
	return &QuizService{
		catalog:  catalog,
		sessions: sessions,
		logger:   logger,
		seed:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartSession creates (or replaces) the session stored under key and opens its first question.
func (s *QuizService) StartSession(_ context.Context, key string) (entities.Question, error) {
	words, err := s.catalog.Words()
	if err != nil {
		return entities.Question{}, err
	}

	engine := NewQuizEngine(s.newRand())
	if err := engine.Load(words); err != nil {
		return entities.Question{}, err
	}

	q, err := engine.NextQuestion()
	if err != nil {
		return entities.Question{}, err
	}

	s.sessions.Create(key, engine)
	s.logger.Debug("quiz session started",
		zap.String("session", key),
		zap.Int("sessions", s.sessions.Len()),
	)

	return q, nil
}

// Answer submits the option labelled word for question questionID.
func (s *QuizService) Answer(_ context.Context, key string, questionID uint64, word string) (entities.AnswerResult, error) {
	engine, ok := s.sessions.Get(key)
	if !ok {
		return entities.AnswerResult{}, entities.ErrSessionNotFound
	}

	res := engine.Answer(questionID, entities.WordEntry{Word: word})
	if res.Ignored() {
		s.logger.Debug("answer ignored",
			zap.String("session", key),
			zap.Uint64("question_id", questionID),
		)
	}

	return res, nil
}

// AnswerIndex submits the option at position index of question questionID.
func (s *QuizService) AnswerIndex(ctx context.Context, key string, questionID uint64, index int) (entities.AnswerResult, error) {
	engine, ok := s.sessions.Get(key)
	if !ok {
		return entities.AnswerResult{}, entities.ErrSessionNotFound
	}

	q, ok := engine.Current()
	if !ok || q.ID != questionID || index < 0 || index >= len(q.Options) {
		return entities.IgnoredAnswer(), nil
	}

	return s.Answer(ctx, key, questionID, q.Options[index].Word)
}

// Next opens the next question of the session.
func (s *QuizService) Next(_ context.Context, key string) (entities.Question, error) {
	engine, ok := s.sessions.Get(key)
	if !ok {
		return entities.Question{}, entities.ErrSessionNotFound
	}
	return engine.NextQuestion()
}

// Current returns the open question of the session.
func (s *QuizService) Current(_ context.Context, key string) (entities.Question, bool, error) {
	engine, ok := s.sessions.Get(key)
	if !ok {
		return entities.Question{}, false, entities.ErrSessionNotFound
	}
	q, ok := engine.Current()
	return q, ok, nil
}

// End drops the session.
func (s *QuizService) End(_ context.Context, key string) {
	s.sessions.Delete(key)
}

// newRand derives an independent generator per session; rand.Rand is not safe for
// concurrent use and sessions run concurrently.
func (s *QuizService) newRand() *rand.Rand {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return rand.New(rand.NewSource(s.seed.Int63()))
}

package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// handleQuiz starts a fresh quiz for the chat, discarding any running one.
func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.cancelTimer(chatID)

		q, err := h.quizService.StartSession(ctx, sessionKey(chatID))
		switch {
		case errors.Is(err, entities.ErrWordsLoading):
			h.send(newPlainMessage(chatID, msgWordsLoading))
			return nil
		case err != nil:
			h.logger.Error("failed to start quiz",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.send(newPlainMessage(chatID, msgWordsFailed))
			return nil
		}

		h.logger.Debug("quiz session created", zap.Int64("chat_id", chatID))
		h.sendQuestion(chatID, q)
		return nil
	}
}

// handleNext opens the next question after the feedback delay.
func (h *Handler) handleNext() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		q, err := h.quizService.Next(ctx, sessionKey(chatID))
		if errors.Is(err, entities.ErrSessionNotFound) {
			h.logger.Debug("session gone before next question", zap.Int64("chat_id", chatID))
			return nil
		}
		if err != nil {
			return err
		}

		h.sendQuestion(chatID, q)
		return nil
	}
}

// handleStop ends the chat's quiz and cancels its pending timer.
func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.cancelTimer(chatID)

		key := sessionKey(chatID)
		if _, _, err := h.quizService.Current(ctx, key); errors.Is(err, entities.ErrSessionNotFound) {
			h.send(newPlainMessage(chatID, msgNoActiveQuiz))
			return nil
		}

		h.quizService.End(ctx, key)

		msg := newPlainMessage(chatID, msgQuizStopped)
		msg.ReplyMarkup = buildStoppedKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) sendQuestion(chatID int64, q entities.Question) {
	msg := newHTMLMessage(chatID, formatQuestion(q))
	msg.ReplyMarkup = buildAnswerKeyboard(q)
	h.send(msg)
}

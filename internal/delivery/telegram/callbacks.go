package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	switch cd.Action {
	case actionAnswer:
		h.handleAnswerCallback(ctx, cb, cd)
	case actionQuiz:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling("quiz", h.handleQuiz())(ctx, chatID)
	default:
		// Remove the user's "clock".
		h.answerCallback(cb.ID, "")
	}
}

func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) {
	chatID := cb.Message.Chat.ID

	questionID, index, err := parseAnswerCallback(cd)
	if err != nil {
		h.logger.Warn("invalid answer callback", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	key := sessionKey(chatID)
	q, ok, err := h.quizService.Current(ctx, key)
	if errors.Is(err, entities.ErrSessionNotFound) {
		h.answerCallback(cb.ID, msgSessionExpired)
		return
	}
	if err != nil || !ok {
		h.answerCallback(cb.ID, "")
		return
	}

	res, err := h.quizService.AnswerIndex(ctx, key, questionID, index)
	if err != nil {
		h.logger.Error("failed to submit answer",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.answerCallback(cb.ID, msgInternalError)
		return
	}
	if res.Ignored() {
		h.answerCallback(cb.ID, "")
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID,
		cb.Message.MessageID,
		formatFeedback(q, res),
		buildFeedbackKeyboard(q, index, res),
	)
	edit.ParseMode = tgbotapi.ModeHTML
	h.send(edit)
	h.answerCallback(cb.ID, "")

	h.scheduleNext(ctx, chatID)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

package telegram

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// HandlerFunc runs one quiz step for a chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling names a quiz step in the logs and turns its failure into
// a generic reply. A step cut short by shutdown is logged but not reported to
// the chat.
func (h *Handler) withErrorHandling(name string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		start := time.Now()
		err := fn(ctx, chatID)

		log := h.logger.With(
			zap.String("handler", name),
			zap.Int64("chat_id", chatID),
			zap.Duration("took", time.Since(start)),
		)
		switch {
		case err == nil:
			log.Debug("handler done")
		case errors.Is(err, context.Canceled):
			log.Debug("handler canceled", zap.Error(err))
		default:
			log.Error("handler failed", zap.Error(err))
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}

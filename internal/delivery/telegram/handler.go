package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot           Bot
	logger        *zap.Logger
	quizService   QuizService
	feedbackDelay time.Duration

	timersMu sync.Mutex
	timers   map[int64]*time.Timer
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quizService QuizService,
	feedbackDelay time.Duration,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		quizService:   quizService,
		feedbackDelay: feedbackDelay,
		timers:        make(map[int64]*time.Timer),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()
	defer h.cancelAllTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgHelp))
		return
	}

	switch update.Message.Command() {
	case "start":
		h.send(newPlainMessage(chatID, msgWelcome))
		_ = h.withErrorHandling("quiz", h.handleQuiz())(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling("quiz", h.handleQuiz())(ctx, chatID)

	case "stop":
		_ = h.withErrorHandling("stop", h.handleStop())(ctx, chatID)

	case "help":
		h.send(newPlainMessage(chatID, msgHelp))

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newPlainMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// scheduleNext arms the per-chat timer that opens the next question,
// replacing any timer already armed for the chat.
func (h *Handler) scheduleNext(ctx context.Context, chatID int64) {
	h.timersMu.Lock()
	defer h.timersMu.Unlock()

	if t, ok := h.timers[chatID]; ok {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(h.feedbackDelay, func() {
		h.timersMu.Lock()
		if h.timers[chatID] != t {
			h.timersMu.Unlock()
			return
		}
		delete(h.timers, chatID)
		h.timersMu.Unlock()

		if ctx.Err() != nil {
			return
		}
		_ = h.withErrorHandling("next", h.handleNext())(ctx, chatID)
	})
	h.timers[chatID] = t
}

// cancelTimer stops the pending next-question timer of a chat.
func (h *Handler) cancelTimer(chatID int64) {
	h.timersMu.Lock()
	defer h.timersMu.Unlock()

	if t, ok := h.timers[chatID]; ok {
		t.Stop()
		delete(h.timers, chatID)
	}
}

func (h *Handler) cancelAllTimers() {
	h.timersMu.Lock()
	defer h.timersMu.Unlock()

	for chatID, t := range h.timers {
		t.Stop()
		delete(h.timers, chatID)
	}
}

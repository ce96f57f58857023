package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// Bot is the subset of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type QuizService interface {
	StartSession(ctx context.Context, key string) (entities.Question, error)
	AnswerIndex(ctx context.Context, key string, questionID uint64, index int) (entities.AnswerResult, error)
	Next(ctx context.Context, key string) (entities.Question, error)
	Current(ctx context.Context, key string) (entities.Question, bool, error)
	End(ctx context.Context, key string)
}

package telegram

import (
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	nextID   int
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update)}
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (b *fakeBot) edits() []tgbotapi.EditMessageTextConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.EditMessageTextConfig
	for _, c := range b.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, e)
		}
	}
	return out
}

// questionMessages returns sent messages that carry an answer keyboard.
func (b *fakeBot) questionMessages() []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, m := range b.messages() {
		kb, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
		if !ok || len(kb.InlineKeyboard) == 0 {
			continue
		}
		if data := kb.InlineKeyboard[0][0].CallbackData; data != nil && decodeCallback(*data).Action == actionAnswer {
			out = append(out, m)
		}
	}
	return out
}

type staticCatalog struct {
	words []entities.WordEntry
	err   error
}

func (c staticCatalog) Words() ([]entities.WordEntry, error) { return c.words, c.err }

func testWords() []entities.WordEntry {
	return []entities.WordEntry{
		{Word: "cat", Meaning: "a small domesticated feline"},
		{Word: "dog", Meaning: "a domesticated canine"},
		{Word: "owl", Meaning: "a nocturnal bird of prey"},
		{Word: "fox", Meaning: "a wild canine with a bushy tail"},
		{Word: "elk", Meaning: "a large deer"},
	}
}

func newTestHandler(t *testing.T, catalog service.WordCatalog, delay time.Duration) (*Handler, *fakeBot, *service.QuizService) {
	t.Helper()
	bot := newFakeBot()
	quiz := service.NewQuizService(catalog, storage.NewSessionStorage(), zap.NewNop())
	h := NewHandler(bot, zap.NewNop(), quiz, delay)
	t.Cleanup(h.cancelAllTimers)
	return h, bot, quiz
}

func commandUpdate(chatID int64, command string) tgbotapi.Update {
	text := "/" + command
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			Text:      text,
			Chat:      &tgbotapi.Chat{ID: chatID},
			From:      &tgbotapi.User{ID: chatID},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(text)},
			},
		},
	}
}

func callbackUpdate(chatID int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb",
			From: &tgbotapi.User{ID: chatID},
			Data: data,
			Message: &tgbotapi.Message{
				MessageID: messageID,
				Chat:      &tgbotapi.Chat{ID: chatID},
			},
		},
	}
}

func (h *Handler) pendingTimers() int {
	h.timersMu.Lock()
	defer h.timersMu.Unlock()
	return len(h.timers)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

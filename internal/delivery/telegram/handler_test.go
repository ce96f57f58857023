package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func TestQuizCommandSendsQuestion(t *testing.T) {
	h, bot, quiz := newTestHandler(t, staticCatalog{words: testWords()}, time.Hour)
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(42, "quiz"))

	questions := bot.questionMessages()
	if len(questions) != 1 {
		t.Fatalf("question messages=%d, want 1", len(questions))
	}

	q, ok, err := quiz.Current(ctx, sessionKey(42))
	if err != nil || !ok {
		t.Fatalf("no open question: ok=%v err=%v", ok, err)
	}
	if !strings.Contains(questions[0].Text, q.Meaning()) {
		t.Fatalf("message %q does not contain meaning %q", questions[0].Text, q.Meaning())
	}
	if questions[0].ParseMode != tgbotapi.ModeHTML {
		t.Fatalf("parse mode=%q", questions[0].ParseMode)
	}
}

func TestStartCommandWelcomesAndStarts(t *testing.T) {
	h, bot, _ := newTestHandler(t, staticCatalog{words: testWords()}, time.Hour)

	h.handleUpdate(context.Background(), commandUpdate(1, "start"))

	msgs := bot.messages()
	if len(msgs) != 2 {
		t.Fatalf("messages=%d, want welcome and question", len(msgs))
	}
	if msgs[0].Text != msgWelcome {
		t.Fatalf("first message=%q", msgs[0].Text)
	}
	if len(bot.questionMessages()) != 1 {
		t.Fatal("question not sent after welcome")
	}
}

func TestQuizWhileLoading(t *testing.T) {
	h, bot, _ := newTestHandler(t, staticCatalog{err: entities.ErrWordsLoading}, time.Hour)

	h.handleUpdate(context.Background(), commandUpdate(1, "quiz"))

	msgs := bot.messages()
	if len(msgs) != 1 || msgs[0].Text != msgWordsLoading {
		t.Fatalf("unexpected messages %+v", msgs)
	}
}

func TestQuizWhenWordsFailed(t *testing.T) {
	failure := errors.Join(entities.ErrNoFallbackAvailable, errors.New("primary down"))
	h, bot, _ := newTestHandler(t, staticCatalog{err: failure}, time.Hour)

	h.handleUpdate(context.Background(), commandUpdate(1, "quiz"))

	msgs := bot.messages()
	if len(msgs) != 1 || msgs[0].Text != msgWordsFailed {
		t.Fatalf("unexpected messages %+v", msgs)
	}
}

func TestAnswerEditsMessageAndAdvances(t *testing.T) {
	h, bot, quiz := newTestHandler(t, staticCatalog{words: testWords()}, 10*time.Millisecond)
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(7, "quiz"))
	q, _, _ := quiz.Current(ctx, sessionKey(7))

	correct := q.CorrectIndex()
	h.handleUpdate(ctx, callbackUpdate(7, 1, buildAnswerCallback(q.ID, correct)))

	edits := bot.edits()
	if len(edits) != 1 {
		t.Fatalf("edits=%d, want 1", len(edits))
	}
	if !strings.Contains(edits[0].Text, "Correct!") {
		t.Fatalf("feedback %q does not report a correct answer", edits[0].Text)
	}

	waitFor(t, func() bool { return len(bot.questionMessages()) == 2 })

	next, ok, err := quiz.Current(ctx, sessionKey(7))
	if err != nil || !ok {
		t.Fatalf("no open question after advance: ok=%v err=%v", ok, err)
	}
	if next.ID <= q.ID {
		t.Fatalf("next id=%d, want > %d", next.ID, q.ID)
	}
}

func TestWrongAnswerNamesCorrectWord(t *testing.T) {
	h, bot, quiz := newTestHandler(t, staticCatalog{words: testWords()}, time.Hour)
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(7, "quiz"))
	q, _, _ := quiz.Current(ctx, sessionKey(7))

	wrong := (q.CorrectIndex() + 1) % len(q.Options)
	h.handleUpdate(ctx, callbackUpdate(7, 1, buildAnswerCallback(q.ID, wrong)))

	edits := bot.edits()
	if len(edits) != 1 {
		t.Fatalf("edits=%d, want 1", len(edits))
	}
	if !strings.Contains(edits[0].Text, q.Correct.Word) {
		t.Fatalf("feedback %q does not name %q", edits[0].Text, q.Correct.Word)
	}
}

func TestSecondTapIsIgnored(t *testing.T) {
	h, bot, quiz := newTestHandler(t, staticCatalog{words: testWords()}, time.Hour)
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(7, "quiz"))
	q, _, _ := quiz.Current(ctx, sessionKey(7))

	h.handleUpdate(ctx, callbackUpdate(7, 1, buildAnswerCallback(q.ID, 0)))
	h.handleUpdate(ctx, callbackUpdate(7, 1, buildAnswerCallback(q.ID, 1)))

	if got := len(bot.edits()); got != 1 {
		t.Fatalf("edits=%d, want 1", got)
	}
	if got := h.pendingTimers(); got != 1 {
		t.Fatalf("pending timers=%d, want 1", got)
	}
}

func TestStaleQuestionIsIgnored(t *testing.T) {
	h, bot, quiz := newTestHandler(t, staticCatalog{words: testWords()}, time.Hour)
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(7, "quiz"))
	q, _, _ := quiz.Current(ctx, sessionKey(7))

	h.handleUpdate(ctx, callbackUpdate(7, 1, buildAnswerCallback(q.ID+100, 0)))

	if got := len(bot.edits()); got != 0 {
		t.Fatalf("edits=%d, want 0", got)
	}
	if got := h.pendingTimers(); got != 0 {
		t.Fatalf("pending timers=%d, want 0", got)
	}
}

func TestStopCancelsPendingTimer(t *testing.T) {
	h, bot, quiz := newTestHandler(t, staticCatalog{words: testWords()}, 50*time.Millisecond)
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(7, "quiz"))
	q, _, _ := quiz.Current(ctx, sessionKey(7))
	h.handleUpdate(ctx, callbackUpdate(7, 1, buildAnswerCallback(q.ID, 0)))

	h.handleUpdate(ctx, commandUpdate(7, "stop"))
	if got := h.pendingTimers(); got != 0 {
		t.Fatalf("pending timers=%d, want 0", got)
	}

	time.Sleep(120 * time.Millisecond)
	if got := len(bot.questionMessages()); got != 1 {
		t.Fatalf("question messages=%d, want 1 after stop", got)
	}
	if _, _, err := quiz.Current(ctx, sessionKey(7)); !errors.Is(err, entities.ErrSessionNotFound) {
		t.Fatalf("session still present: %v", err)
	}
}

func TestStopWithoutQuiz(t *testing.T) {
	h, bot, _ := newTestHandler(t, staticCatalog{words: testWords()}, time.Hour)

	h.handleUpdate(context.Background(), commandUpdate(7, "stop"))

	msgs := bot.messages()
	if len(msgs) != 1 || msgs[0].Text != msgNoActiveQuiz {
		t.Fatalf("unexpected messages %+v", msgs)
	}
}

func TestAnswerAfterSessionEnded(t *testing.T) {
	h, bot, _ := newTestHandler(t, staticCatalog{words: testWords()}, time.Hour)

	h.handleUpdate(context.Background(), callbackUpdate(7, 1, buildAnswerCallback(1, 0)))

	if got := len(bot.edits()); got != 0 {
		t.Fatalf("edits=%d, want 0", got)
	}
	bot.mu.Lock()
	defer bot.mu.Unlock()
	if len(bot.requests) != 1 {
		t.Fatalf("callback answers=%d, want 1", len(bot.requests))
	}
	cb, ok := bot.requests[0].(tgbotapi.CallbackConfig)
	if !ok || cb.Text != msgSessionExpired {
		t.Fatalf("unexpected callback answer %+v", bot.requests[0])
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	h, _, _ := newTestHandler(t, staticCatalog{words: testWords()}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run err=%v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

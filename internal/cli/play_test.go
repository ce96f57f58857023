package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

type staticCatalog []entities.WordEntry

func (c staticCatalog) Words() ([]entities.WordEntry, error) { return c, nil }

func newTestQuiz() *service.QuizService {
	words := staticCatalog{
		{Word: "cat", Meaning: "a small domesticated feline"},
		{Word: "dog", Meaning: "a domesticated canine"},
		{Word: "owl", Meaning: "a nocturnal bird of prey"},
		{Word: "fox", Meaning: "a wild canine with a bushy tail"},
	}
	return service.NewQuizService(words, storage.NewSessionStorage(), zap.NewNop())
}

func TestPlaySingleRound(t *testing.T) {
	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader("1\n"), &out, newTestQuiz(), 1, 0)
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	got := out.String()
	if strings.Count(got, "Which word means:") != 1 {
		t.Fatalf("expected one question, got:\n%s", got)
	}
	if !strings.Contains(got, "Correct!") && !strings.Contains(got, "Incorrect. The answer was") {
		t.Fatalf("no feedback in output:\n%s", got)
	}
}

func TestPlayRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader("x\n9\n2\n"), &out, newTestQuiz(), 1, 0)
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	if got := strings.Count(out.String(), "Enter a number from 1 to 4"); got != 2 {
		t.Fatalf("reprompts=%d, want 2:\n%s", got, out.String())
	}
}

func TestPlayAdvancesBetweenRounds(t *testing.T) {
	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader("1\n2\n3\n"), &out, newTestQuiz(), 3, 0)
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	if got := strings.Count(out.String(), "Which word means:"); got != 3 {
		t.Fatalf("questions=%d, want 3", got)
	}
}

func TestPlayStopsOnQuitOrEOF(t *testing.T) {
	for _, input := range []string{"q\n", ""} {
		var out bytes.Buffer
		err := play(context.Background(), strings.NewReader(input), &out, newTestQuiz(), 0, 0)
		if err != nil {
			t.Fatalf("play(%q): %v", input, err)
		}
		if !strings.Contains(out.String(), "Bye!") {
			t.Fatalf("play(%q) output:\n%s", input, out.String())
		}
	}
}

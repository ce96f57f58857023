package telegram

import (
	"testing"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func TestAnswerCallbackRoundTrip(t *testing.T) {
	data := buildAnswerCallback(17, 3)
	if data != "answer:17:3" {
		t.Fatalf("encoded=%q", data)
	}

	id, index, err := parseAnswerCallback(decodeCallback(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 17 || index != 3 {
		t.Fatalf("got id=%d index=%d", id, index)
	}
}

func TestParseAnswerCallbackRejectsMalformed(t *testing.T) {
	for _, data := range []string{
		"answer",
		"answer:1",
		"answer:x:1",
		"answer:1:y",
		"answer:1:-1",
		"answer:1:2:3",
		"quiz:1:2",
	} {
		if _, _, err := parseAnswerCallback(decodeCallback(data)); err == nil {
			t.Errorf("%q: expected error", data)
		}
	}
}

func TestBuildAnswerKeyboard(t *testing.T) {
	q := entities.Question{
		ID:      5,
		Correct: entities.WordEntry{Word: "owl", Meaning: "a nocturnal bird of prey"},
		Options: []entities.WordEntry{
			{Word: "cat"}, {Word: "owl"}, {Word: "dog"}, {Word: "fox"},
		},
	}

	kb := buildAnswerKeyboard(q)
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("rows=%d, want 2", len(kb.InlineKeyboard))
	}

	i := 0
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.Text != q.Options[i].Word {
				t.Errorf("button %d text=%q, want %q", i, btn.Text, q.Options[i].Word)
			}
			if btn.CallbackData == nil || *btn.CallbackData != buildAnswerCallback(5, i) {
				t.Errorf("button %d callback=%v", i, btn.CallbackData)
			}
			i++
		}
	}
	if i != 4 {
		t.Fatalf("buttons=%d, want 4", i)
	}
}

func TestBuildFeedbackKeyboardMarksOptions(t *testing.T) {
	q := entities.Question{
		ID:      5,
		Correct: entities.WordEntry{Word: "owl"},
		Options: []entities.WordEntry{
			{Word: "cat"}, {Word: "owl"}, {Word: "dog"}, {Word: "fox"},
		},
	}
	res := entities.AnswerResult{Status: entities.AnswerAnswered, CorrectAnswer: q.Correct}

	kb := buildFeedbackKeyboard(q, 2, res)
	labels := []string{
		kb.InlineKeyboard[0][0].Text,
		kb.InlineKeyboard[0][1].Text,
		kb.InlineKeyboard[1][0].Text,
		kb.InlineKeyboard[1][1].Text,
	}
	want := []string{"cat", "✅ owl", "❌ dog", "fox"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d=%q, want %q", i, labels[i], want[i])
		}
	}
	if *kb.InlineKeyboard[0][0].CallbackData != actionNoop {
		t.Errorf("feedback buttons must be inert, got %q", *kb.InlineKeyboard[0][0].CallbackData)
	}
}

func TestFormatQuestionEscapesHTML(t *testing.T) {
	q := entities.Question{Correct: entities.WordEntry{Word: "lt", Meaning: "the < sign"}}
	if got := formatQuestion(q); got != "❓ <b>Which word means:</b>\n\nthe &lt; sign" {
		t.Fatalf("formatted=%q", got)
	}
}

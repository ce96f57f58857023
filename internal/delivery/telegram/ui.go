package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// buildAnswerKeyboard builds keyboard for a quiz question, two options per row.
func buildAnswerKeyboard(q entities.Question) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(option.Word, buildAnswerCallback(q.ID, i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildFeedbackKeyboard marks the correct option and the chosen wrong one.
// Its buttons are inert so late taps do nothing.
func buildFeedbackKeyboard(q entities.Question, chosen int, res entities.AnswerResult) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := option.Word
		switch {
		case option.Word == res.CorrectAnswer.Word:
			label = "✅ " + label
		case i == chosen:
			label = "❌ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildNoopCallback()))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildStoppedKeyboard offers a fresh quiz.
func buildStoppedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildQuizStartCallback()),
		),
	)
}

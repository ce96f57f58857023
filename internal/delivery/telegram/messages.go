// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

const (
	msgWelcome = "👋 Welcome to the vocabulary quiz!\n\n" +
		"I show a meaning, you pick the word that matches it.\n" +
		"After every answer the next question arrives on its own.\n\n" +
		"/quiz — start a new quiz\n/stop — stop the current quiz"
	msgHelp           = "/quiz — start a new quiz\n/stop — stop the current quiz"
	msgWordsLoading   = "⏳ Words are still loading, try again in a moment."
	msgWordsFailed    = "⚠️ The word list could not be loaded. Please try again later."
	msgQuizStopped    = "Quiz stopped. Send /quiz to start again."
	msgNoActiveQuiz   = "There is no active quiz. Send /quiz to start one."
	msgSessionExpired = "This quiz has expired. Send /quiz to start a new one."
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command.\n\n" + msgHelp
)

// formatQuestion renders the prompt for a question.
func formatQuestion(q entities.Question) string {
	return fmt.Sprintf("❓ <b>Which word means:</b>\n\n%s", html.EscapeString(q.Meaning()))
}

// formatFeedback renders the prompt together with the outcome of an answer.
func formatFeedback(q entities.Question, res entities.AnswerResult) string {
	var sb strings.Builder
	sb.WriteString(formatQuestion(q))
	sb.WriteString("\n\n")
	if res.IsCorrect {
		sb.WriteString("✅ <b>Correct!</b>")
	} else {
		sb.WriteString(fmt.Sprintf("❌ <b>Incorrect.</b> The answer was <b>%s</b>.",
			html.EscapeString(res.CorrectAnswer.Word)))
	}
	return sb.String()
}

package entities

// AnswerStatus tells whether a submitted answer was evaluated.
type AnswerStatus string

const (
	AnswerAnswered AnswerStatus = "answered" // the answer was the first one for the open question
	AnswerIgnored  AnswerStatus = "ignored"  // no question was open, or the answer was stale
)

// AnswerResult is the outcome of submitting an answer.
// CorrectAnswer lets the caller highlight the right option among the ones on screen.
type AnswerResult struct {
	Status        AnswerStatus `json:"status"`
	IsCorrect     bool         `json:"correct"`
	CorrectAnswer WordEntry    `json:"correctAnswer"`
}

// Ignored reports whether the answer was dropped without evaluation.
func (r AnswerResult) Ignored() bool {
	return r.Status == AnswerIgnored
}

// IgnoredAnswer is returned for submissions outside the accepting-input window.
func IgnoredAnswer() AnswerResult {
	return AnswerResult{Status: AnswerIgnored}
}

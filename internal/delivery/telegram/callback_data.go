package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer = "answer"
	actionQuiz   = "quiz"
	actionNoop   = "noop"
)

var errInvalidCallback = errors.New("invalid callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildAnswerCallback builds callback data for choosing option index of question questionID.
func buildAnswerCallback(questionID uint64, index int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			strconv.FormatUint(questionID, 10),
			strconv.Itoa(index),
		},
	}.encode()
}

// parseAnswerCallback extracts question id and option index from an answer callback.
func parseAnswerCallback(cd callbackData) (uint64, int, error) {
	if cd.Action != actionAnswer || len(cd.Params) != 2 {
		return 0, 0, errInvalidCallback
	}

	questionID, err := strconv.ParseUint(cd.Params[0], 10, 64)
	if err != nil {
		return 0, 0, errInvalidCallback
	}

	index, err := strconv.Atoi(cd.Params[1])
	if err != nil || index < 0 {
		return 0, 0, errInvalidCallback
	}

	return questionID, index, nil
}

// buildQuizStartCallback builds callback data for starting a new quiz.
func buildQuizStartCallback() string {
	return actionQuiz
}

// buildNoopCallback builds callback data for buttons that only display state.
func buildNoopCallback() string {
	return actionNoop
}

package entities

// Question is one quiz round: the entry whose meaning is shown and the four options.
// Options contains Correct exactly once, every option has a distinct Word.
type Question struct {
	ID      uint64      `json:"id"`      // serial within one engine, used to reject stale answers
	Correct WordEntry   `json:"correct"` // entry whose meaning is the prompt
	Options []WordEntry `json:"options"` // shuffled options
}

// Meaning returns the prompt text of the question.
func (q Question) Meaning() string {
	return q.Correct.Meaning
}

// CorrectIndex returns the position of the correct entry among the options, or -1.
func (q Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt.Equal(q.Correct) {
			return i
		}
	}
	return -1
}

// OptionWords returns the option labels in display order.
func (q Question) OptionWords() []string {
	out := make([]string, len(q.Options))
	for i, opt := range q.Options {
		out[i] = opt.Word
	}
	return out
}

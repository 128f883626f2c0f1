package question

import "fmt"

// NumOptions is fixed: every question carries exactly four options.
const NumOptions = 4

type Question struct {
	ID            string   `json:"id"`
	AuthorID      string   `json:"author_id,omitempty"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	TopicTags     []string `json:"topic_tags"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

// ValidationError marks input the caller can fix; the HTTP layer maps it to 400.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Validate enforces the structural invariants on an authored question.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return invalidf("question text required")
	}
	if len(q.Options) != NumOptions {
		return invalidf("exactly %d options required, got %d", NumOptions, len(q.Options))
	}
	for i, o := range q.Options {
		if o == "" {
			return invalidf("option %d is empty", i)
		}
	}
	if q.CorrectOption < 0 || q.CorrectOption >= NumOptions {
		return invalidf("correct_option must be in [0,%d], got %d", NumOptions-1, q.CorrectOption)
	}
	if len(q.TopicTags) == 0 {
		return invalidf("at least one topic tag required")
	}
	for _, t := range q.TopicTags {
		if t == "" {
			return invalidf("empty topic tag")
		}
	}
	return nil
}

// HasAnyTag reports whether the question's tag list intersects the given set.
func (q Question) HasAnyTag(tags map[string]bool) bool {
	for _, t := range q.TopicTags {
		if tags[t] {
			return true
		}
	}
	return false
}

// StripAnswer returns a copy safe to serve to students.
func (q Question) StripAnswer() Question {
	q.CorrectOption = -1
	return q
}

// Package history records answer events: one immutable row per student per
// question per submission. Tags are copied from the question at submission
// time so later edits to a question never rewrite history.
package history

import (
	"context"
	"database/sql"

	"github.com/prepdeck/prepdeck/internal/question"
)

type Event struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	QuestionID string `json:"question_id"`
	// SelectedOption is nil when the student left the question unattempted.
	SelectedOption *int     `json:"selected_option"`
	Correct        bool     `json:"correct"`
	TopicTags      []string `json:"topic_tags"`
	CreatedAt      int64    `json:"created_at"`

	// Question is populated on detail reads, never stored.
	Question *question.Question `json:"question,omitempty"`
}

// Execer is satisfied by both *sql.DB and *sql.Tx, so appends can join a
// caller-owned transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type Store interface {
	Append(ctx context.Context, events ...Event) error
	// AllTagSets returns the tag list of every recorded event, the snapshot
	// the association analyzer runs over.
	AllTagSets(ctx context.Context) ([][]string, error)
	ByUser(ctx context.Context, userID string) ([]Event, error)
	// ByUserTopic returns the user's events carrying the topic, each joined
	// with its question when the question still exists.
	ByUserTopic(ctx context.Context, userID, topic string) ([]Event, error)
}

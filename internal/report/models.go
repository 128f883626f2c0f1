// Package report scores submitted tests, persists the resulting report
// together with its answer events, and summarizes historical per-topic
// accuracy.
package report

import (
	"context"
	"errors"

	"github.com/prepdeck/prepdeck/internal/history"
	"github.com/prepdeck/prepdeck/internal/question"
)

var ErrNotFound = errors.New("report not found")

// Answer is one entry of a submission, in the order the student answered.
// A nil Option means the question was left unattempted; this is an explicit
// variant, not a missing map key.
type Answer struct {
	QuestionID string
	Option     *int
}

// QuestionDetail captures one question's outcome inside a report. The
// question is a snapshot taken at submission time, answer key included, so a
// later edit to the question does not rewrite the report.
type QuestionDetail struct {
	Question   question.Question `json:"question"`
	UserAnswer *int              `json:"user_answer"`
	Correct    bool              `json:"correct"`
	TopicTags  []string          `json:"topic_tags"`
}

type TopicStat struct {
	Topic   string `json:"topic"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

type Report struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	Score        int              `json:"score"`
	Total        int              `json:"total"`
	TimeTakenSec int64            `json:"time_taken_sec"`
	AvgTimePerQ  float64          `json:"avg_time_per_q"`
	Unattempted  int              `json:"unattempted"`
	Questions    []QuestionDetail `json:"questions"`
	TopicStats   []TopicStat      `json:"topic_stats"`
	CreatedAt    int64            `json:"created_at"`
}

// Summary is what a submission returns inline; the full report is fetched
// separately by ID.
type Summary struct {
	Score    int    `json:"score"`
	Total    int    `json:"total"`
	ReportID string `json:"report_id"`
}

// Store persists reports. SaveSubmission must write the report and its answer
// events atomically: either both land or neither does.
type Store interface {
	SaveSubmission(ctx context.Context, rep Report, events []history.Event) error
	Get(ctx context.Context, id string) (Report, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error)
}

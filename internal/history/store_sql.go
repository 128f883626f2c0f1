package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepdeck/prepdeck/internal/question"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Append(ctx context.Context, events ...Event) error {
	return AppendTx(ctx, s.db, events...)
}

// AppendTx inserts events through ex, which may be a transaction owned by the
// caller (the report store commits its report and the matching events
// atomically this way).
func AppendTx(ctx context.Context, ex Execer, events ...Event) error {
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt == 0 {
			e.CreatedAt = time.Now().Unix()
		}
		tj, err := json.Marshal(e.TopicTags)
		if err != nil {
			return err
		}
		var sel sql.NullInt64
		if e.SelectedOption != nil {
			sel = sql.NullInt64{Int64: int64(*e.SelectedOption), Valid: true}
		}
		_, err = ex.ExecContext(ctx, `INSERT INTO answer_events (id,user_id,question_id,selected_option,is_correct,topic_tags_json,created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			e.ID, e.UserID, e.QuestionID, sel, e.Correct, string(tj), e.CreatedAt)
		if err != nil {
			return fmt.Errorf("append answer event: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) AllTagSets(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT topic_tags_json FROM answer_events`)
	if err != nil {
		return nil, fmt.Errorf("scan answer events: %w", err)
	}
	defer rows.Close()
	var out [][]string
	for rows.Next() {
		var tj string
		if err := rows.Scan(&tj); err != nil {
			return nil, err
		}
		var tags []string
		if err := json.Unmarshal([]byte(tj), &tags); err != nil {
			continue
		}
		out = append(out, tags)
	}
	return out, rows.Err()
}

func (s *SQLStore) ByUser(ctx context.Context, userID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,user_id,question_id,selected_option,is_correct,topic_tags_json,created_at
		FROM answer_events WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("events by user: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows, false)
}

func (s *SQLStore) ByUserTopic(ctx context.Context, userID, topic string) ([]Event, error) {
	// Topic filtering happens in Go: tags live in a JSON column.
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.user_id, e.question_id, e.selected_option, e.is_correct, e.topic_tags_json, e.created_at,
		       q.id, q.author_id, q.prompt, q.options_json, q.correct_option, q.topic_tags_json, q.created_at
		FROM answer_events e
		LEFT JOIN questions q ON q.id = e.question_id
		WHERE e.user_id=$1 ORDER BY e.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("events by user topic: %w", err)
	}
	defer rows.Close()

	all, err := collectEvents(rows, true)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(all))
	for _, e := range all {
		for _, t := range e.TopicTags {
			if t == topic {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func collectEvents(rows *sql.Rows, joined bool) ([]Event, error) {
	out := []Event{}
	for rows.Next() {
		var (
			e   Event
			sel sql.NullInt64
			tj  string
		)
		if joined {
			var (
				qid, qauthor, qprompt, qoptions, qtags sql.NullString
				qcorrect, qcreated                     sql.NullInt64
			)
			if err := rows.Scan(&e.ID, &e.UserID, &e.QuestionID, &sel, &e.Correct, &tj, &e.CreatedAt,
				&qid, &qauthor, &qprompt, &qoptions, &qcorrect, &qtags, &qcreated); err != nil {
				return nil, err
			}
			if qid.Valid {
				q := question.Question{
					ID:            qid.String,
					AuthorID:      qauthor.String,
					Prompt:        qprompt.String,
					CorrectOption: int(qcorrect.Int64),
					CreatedAt:     qcreated.Int64,
				}
				_ = json.Unmarshal([]byte(qoptions.String), &q.Options)
				_ = json.Unmarshal([]byte(qtags.String), &q.TopicTags)
				e.Question = &q
			}
		} else {
			if err := rows.Scan(&e.ID, &e.UserID, &e.QuestionID, &sel, &e.Correct, &tj, &e.CreatedAt); err != nil {
				return nil, err
			}
		}
		if sel.Valid {
			v := int(sel.Int64)
			e.SelectedOption = &v
		}
		if err := json.Unmarshal([]byte(tj), &e.TopicTags); err != nil {
			e.TopicTags = nil
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

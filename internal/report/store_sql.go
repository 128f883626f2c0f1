package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prepdeck/prepdeck/internal/history"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// SaveSubmission writes the report row and its answer events in one
// transaction. A failure on either side rolls back both, so a report never
// exists without its matching history.
func (s *SQLStore) SaveSubmission(ctx context.Context, rep Report, events []history.Event) error {
	qj, err := json.Marshal(rep.Questions)
	if err != nil {
		return err
	}
	tj, err := json.Marshal(rep.TopicStats)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO reports (id,user_id,score,total,time_taken_sec,avg_time_per_q,unattempted,questions_json,topic_stats_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rep.ID, rep.UserID, rep.Score, rep.Total, rep.TimeTakenSec, rep.AvgTimePerQ,
		rep.Unattempted, string(qj), string(tj), rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	if err := history.AppendTx(ctx, tx, events...); err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return tx.Commit()
}

func (s *SQLStore) Get(ctx context.Context, id string) (Report, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,user_id,score,total,time_taken_sec,avg_time_per_q,unattempted,questions_json,topic_stats_json,created_at
		FROM reports WHERE id=$1`, id)
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	return rep, err
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,user_id,score,total,time_taken_sec,avg_time_per_q,unattempted,questions_json,topic_stats_json,created_at
		FROM reports WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	out := []Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (Report, error) {
	var rep Report
	var qj, tj string
	if err := row.Scan(&rep.ID, &rep.UserID, &rep.Score, &rep.Total, &rep.TimeTakenSec,
		&rep.AvgTimePerQ, &rep.Unattempted, &qj, &tj, &rep.CreatedAt); err != nil {
		return Report{}, err
	}
	if err := json.Unmarshal([]byte(qj), &rep.Questions); err != nil {
		return Report{}, fmt.Errorf("decode report %s questions: %w", rep.ID, err)
	}
	if err := json.Unmarshal([]byte(tj), &rep.TopicStats); err != nil {
		return Report{}, fmt.Errorf("decode report %s topic stats: %w", rep.ID, err)
	}
	return rep, nil
}

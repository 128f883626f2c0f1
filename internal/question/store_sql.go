package question

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Put(ctx context.Context, q Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	tj, err := json.Marshal(q.TopicTags)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (id,author_id,prompt,options_json,correct_option,topic_tags_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET prompt=EXCLUDED.prompt, options_json=EXCLUDED.options_json,
		  correct_option=EXCLUDED.correct_option, topic_tags_json=EXCLUDED.topic_tags_json`,
		q.ID, q.AuthorID, q.Prompt, string(oj), q.CorrectOption, string(tj), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put question: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,author_id,prompt,options_json,correct_option,topic_tags_json,created_at
		FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}

func (s *SQLStore) GetBatch(ctx context.Context, ids []string) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ph := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,author_id,prompt,options_json,correct_option,topic_tags_json,created_at
		FROM questions WHERE id IN (`+strings.Join(ph, ",")+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()
	return collectQuestions(rows)
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Question, error) {
	if opts.Limit <= 0 || opts.Limit > 200 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	var (
		where []string
		args  []interface{}
	)
	if opts.Q != "" {
		args = append(args, "%"+opts.Q+"%")
		where = append(where, fmt.Sprintf("prompt LIKE $%d", len(args)))
	}
	q := `SELECT id,author_id,prompt,options_json,correct_option,topic_tags_json,created_at FROM questions`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, opts.Limit, opts.Offset)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	out, err := collectQuestions(rows)
	if err != nil {
		return nil, err
	}
	// Tag filtering happens in Go: tags live in a JSON column and both
	// drivers must behave the same.
	if opts.Tag != "" {
		want := map[string]bool{opts.Tag: true}
		kept := out[:0]
		for _, qq := range out {
			if qq.HasAnyTag(want) {
				kept = append(kept, qq)
			}
		}
		out = kept
	}
	return out, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ByTags(ctx context.Context, tags []string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,author_id,prompt,options_json,correct_option,topic_tags_json,created_at
		FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}
	defer rows.Close()
	all, err := collectQuestions(rows)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	out := make([]Question, 0, len(all))
	for _, q := range all {
		if q.HasAnyTag(want) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *SQLStore) DistinctTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT topic_tags_json FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}
	defer rows.Close()
	seen := map[string]bool{}
	for rows.Next() {
		var tj string
		if err := rows.Scan(&tj); err != nil {
			return nil, err
		}
		var tags []string
		if err := json.Unmarshal([]byte(tj), &tags); err != nil {
			continue
		}
		for _, t := range tags {
			if t != "" {
				seen[t] = true
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var oj, tj string
	if err := row.Scan(&q.ID, &q.AuthorID, &q.Prompt, &oj, &q.CorrectOption, &tj, &q.CreatedAt); err != nil {
		return Question{}, err
	}
	if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
		return Question{}, fmt.Errorf("decode options for %s: %w", q.ID, err)
	}
	if err := json.Unmarshal([]byte(tj), &q.TopicTags); err != nil {
		return Question{}, fmt.Errorf("decode tags for %s: %w", q.ID, err)
	}
	return q, nil
}

func collectQuestions(rows *sql.Rows) ([]Question, error) {
	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

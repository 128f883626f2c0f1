package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prepdeck/prepdeck/internal/history"
	"github.com/prepdeck/prepdeck/internal/question"
)

type Service struct {
	questions question.Store
	reports   Store
	now       func() time.Time
}

// NewService wires the aggregator. now is injectable for tests; pass nil for
// the wall clock.
func NewService(qs question.Store, rs Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{questions: qs, reports: rs, now: now}
}

// Submit scores one completed attempt and persists the report plus one answer
// event per question in a single transaction. startTimeMS is the epoch-ms
// test start, or nil when the client did not time the attempt.
//
// Scoring is deterministic for a fixed answer list and question snapshot:
// an answer is correct iff its option equals the question's correct option;
// an absent option is unattempted and always incorrect. Answers referencing
// unknown question IDs reject the whole submission with a validation error.
func (s *Service) Submit(ctx context.Context, userID string, answers []Answer, startTimeMS *int64) (Summary, error) {
	ids := make([]string, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	loaded, err := s.questions.GetBatch(ctx, ids)
	if err != nil {
		return Summary{}, fmt.Errorf("submit test: %w", err)
	}
	byID := make(map[string]question.Question, len(loaded))
	for _, q := range loaded {
		byID[q.ID] = q
	}
	if missing := missingIDs(ids, byID); len(missing) > 0 {
		return Summary{}, &question.ValidationError{Msg: "unknown question ids: " + strings.Join(missing, ", ")}
	}

	now := s.now()
	rep := Report{
		ID:        uuid.NewString(),
		UserID:    userID,
		Total:     len(answers),
		CreatedAt: now.Unix(),
	}
	topicStats := map[string]*TopicStat{}
	events := make([]history.Event, 0, len(answers))

	for _, a := range answers {
		q := byID[a.QuestionID]
		correct := a.Option != nil && *a.Option == q.CorrectOption
		if correct {
			rep.Score++
		}
		if a.Option == nil {
			rep.Unattempted++
		}
		for _, t := range q.TopicTags {
			st, ok := topicStats[t]
			if !ok {
				st = &TopicStat{Topic: t}
				topicStats[t] = st
			}
			st.Total++
			if correct {
				st.Correct++
			}
		}
		rep.Questions = append(rep.Questions, QuestionDetail{
			Question:   q,
			UserAnswer: a.Option,
			Correct:    correct,
			TopicTags:  q.TopicTags,
		})
		events = append(events, history.Event{
			UserID:         userID,
			QuestionID:     q.ID,
			SelectedOption: a.Option,
			Correct:        correct,
			TopicTags:      q.TopicTags,
			CreatedAt:      now.Unix(),
		})
	}

	rep.TopicStats = sortedStats(topicStats)
	rep.TimeTakenSec, rep.AvgTimePerQ = timing(startTimeMS, now, len(answers))

	if err := s.reports.SaveSubmission(ctx, rep, events); err != nil {
		return Summary{}, fmt.Errorf("submit test: %w", err)
	}
	return Summary{Score: rep.Score, Total: rep.Total, ReportID: rep.ID}, nil
}

func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	return s.reports.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	return s.reports.ListByUser(ctx, userID, limit, offset)
}

// timing computes elapsed whole seconds clamped at zero (a start timestamp in
// the future must not yield a negative duration) and the per-question average,
// clamped to zero when the division is not finite.
func timing(startMS *int64, now time.Time, count int) (int64, float64) {
	if startMS == nil {
		return 0, 0
	}
	elapsed := now.UnixMilli() - *startMS
	if elapsed < 0 {
		elapsed = 0
	}
	taken := elapsed / 1000
	avg := float64(taken) / float64(count)
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		avg = 0
	}
	return taken, avg
}

func missingIDs(ids []string, byID map[string]question.Question) []string {
	var missing []string
	seen := map[string]bool{}
	for _, id := range ids {
		if _, ok := byID[id]; !ok && !seen[id] {
			seen[id] = true
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

func sortedStats(m map[string]*TopicStat) []TopicStat {
	out := make([]TopicStat, 0, len(m))
	for _, st := range m {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

package report_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prepdeck/prepdeck/internal/db"
	"github.com/prepdeck/prepdeck/internal/history"
	"github.com/prepdeck/prepdeck/internal/question"
	"github.com/prepdeck/prepdeck/internal/report"
)

// These tests run against a throwaway sqlite file, the same driver the
// gateway defaults to.

func openTestDB(t *testing.T) *testDeps {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return &testDeps{
		questions: question.NewSQLStore(dbh),
		events:    history.NewSQLStore(dbh),
		reports:   report.NewSQLStore(dbh),
	}
}

type testDeps struct {
	questions *question.SQLStore
	events    *history.SQLStore
	reports   *report.SQLStore
}

func TestSQLStores_EndToEnd(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	qs := []question.Question{
		{ID: "q1", Prompt: "p1", Options: []string{"a", "b", "c", "d"}, CorrectOption: 0, TopicTags: []string{"algebra"}},
		{ID: "q2", Prompt: "p2", Options: []string{"a", "b", "c", "d"}, CorrectOption: 1, TopicTags: []string{"algebra", "geometry"}},
	}
	for _, q := range qs {
		if err := d.questions.Put(ctx, q); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	svc := report.NewService(d.questions, d.reports, nil)
	sel := 0
	sum, err := svc.Submit(ctx, "u1", []report.Answer{
		{QuestionID: "q1", Option: &sel},
		{QuestionID: "q2", Option: nil},
	}, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sum.Score != 1 || sum.Total != 2 {
		t.Fatalf("summary = %+v", sum)
	}

	// Report round-trips through the JSON columns.
	rep, err := d.reports.Get(ctx, sum.ReportID)
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if rep.Unattempted != 1 || len(rep.Questions) != 2 || len(rep.TopicStats) != 2 {
		t.Fatalf("report = %+v", rep)
	}

	// Events landed in the same transaction.
	events, err := d.events.ByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	tagSets, err := d.events.AllTagSets(ctx)
	if err != nil {
		t.Fatalf("tag sets: %v", err)
	}
	if len(tagSets) != 2 {
		t.Fatalf("expected 2 tag sets, got %d", len(tagSets))
	}

	// Topic detail joins the question back in.
	detail, err := d.events.ByUserTopic(ctx, "u1", "geometry")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(detail) != 1 || detail[0].QuestionID != "q2" {
		t.Fatalf("detail = %+v", detail)
	}
	if detail[0].Question == nil || detail[0].Question.Prompt != "p2" {
		t.Fatalf("question not joined: %+v", detail[0])
	}
}

func TestSaveSubmission_RollsBackOnEventFailure(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	rep := report.Report{ID: "r1", UserID: "u1", Score: 1, Total: 1, CreatedAt: 1}
	// Duplicate event IDs violate the primary key on the second insert; the
	// whole submission must roll back, report row included.
	events := []history.Event{
		{ID: "dup", UserID: "u1", QuestionID: "q1", Correct: true, TopicTags: []string{"a"}, CreatedAt: 1},
		{ID: "dup", UserID: "u1", QuestionID: "q2", Correct: false, TopicTags: []string{"a"}, CreatedAt: 1},
	}
	if err := d.reports.SaveSubmission(ctx, rep, events); err == nil {
		t.Fatal("expected duplicate key failure")
	}

	if _, err := d.reports.Get(ctx, "r1"); err != report.ErrNotFound {
		t.Fatalf("report must not survive rollback, got err=%v", err)
	}
	got, err := d.events.ByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("events must not survive rollback, got %d", len(got))
	}
}

func TestSQLQuestionStore_DeleteAndNotFound(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	q := question.Question{ID: "q1", Prompt: "p", Options: []string{"a", "b", "c", "d"}, CorrectOption: 0, TopicTags: []string{"t"}}
	if err := d.questions.Put(ctx, q); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := d.questions.Delete(ctx, "q1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := d.questions.Get(ctx, "q1"); err != question.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := d.questions.Delete(ctx, "q1"); err != question.ErrNotFound {
		t.Fatalf("second delete want ErrNotFound, got %v", err)
	}
}

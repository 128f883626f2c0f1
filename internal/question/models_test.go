package question_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prepdeck/prepdeck/internal/question"
)

func valid() question.Question {
	return question.Question{
		Prompt:        "What is 2+2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectOption: 1,
		TopicTags:     []string{"arithmetic"},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*question.Question)
		ok     bool
	}{
		{"valid", func(q *question.Question) {}, true},
		{"empty prompt", func(q *question.Question) { q.Prompt = "" }, false},
		{"three options", func(q *question.Question) { q.Options = q.Options[:3] }, false},
		{"five options", func(q *question.Question) { q.Options = append(q.Options, "7") }, false},
		{"empty option", func(q *question.Question) { q.Options[2] = "" }, false},
		{"negative correct", func(q *question.Question) { q.CorrectOption = -1 }, false},
		{"correct out of range", func(q *question.Question) { q.CorrectOption = 4 }, false},
		{"no tags", func(q *question.Question) { q.TopicTags = nil }, false},
		{"empty tag", func(q *question.Question) { q.TopicTags = []string{""} }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := valid()
			tc.mutate(&q)
			err := q.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				var verr *question.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected validation error, got %v", err)
				}
			}
		})
	}
}

func TestStripAnswer(t *testing.T) {
	q := valid()
	stripped := q.StripAnswer()
	if stripped.CorrectOption != -1 {
		t.Errorf("stripped correct option = %d, want -1", stripped.CorrectOption)
	}
	if q.CorrectOption != 1 {
		t.Errorf("original mutated: %d", q.CorrectOption)
	}
}

func TestMemoryStore_GetBatchOmitsMissing(t *testing.T) {
	s := question.NewInMemoryStore()
	q := valid()
	q.ID = "q1"
	if err := s.Put(context.Background(), q); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.GetBatch(context.Background(), []string{"q1", "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "q1" {
		t.Errorf("batch = %+v, want only q1", got)
	}
}

func TestMemoryStore_PutRejectsInvalid(t *testing.T) {
	s := question.NewInMemoryStore()
	q := valid()
	q.Options = q.Options[:2]
	if err := s.Put(context.Background(), q); err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestMemoryStore_DistinctTags(t *testing.T) {
	s := question.NewInMemoryStore()
	for i, tags := range [][]string{{"b"}, {"a", "b"}, {"c"}} {
		q := valid()
		q.ID = string(rune('x' + i))
		q.TopicTags = tags
		if err := s.Put(context.Background(), q); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	tags, err := s.DistinctTags(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
}

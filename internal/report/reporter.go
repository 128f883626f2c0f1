package report

import (
	"context"
	"sort"

	"github.com/prepdeck/prepdeck/internal/history"
)

// TopicPerformance is one topic's historical accuracy for a student.
// Accuracy is a raw percentage, not rounded.
type TopicPerformance struct {
	Topic    string  `json:"topic"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// Reporter answers read-only performance queries over answer history.
type Reporter struct {
	events history.Store
}

func NewReporter(hs history.Store) *Reporter { return &Reporter{events: hs} }

// TopicPerformance groups the student's answer events by topic. An event with
// several tags contributes to each of its topics. A student with no history
// gets an empty slice, not an error.
func (r *Reporter) TopicPerformance(ctx context.Context, userID string) ([]TopicPerformance, error) {
	events, err := r.events.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return GroupByTopic(events), nil
}

// TopicDetail returns the raw events for one of the student's topics, question
// detail included, so the client can split correct from incorrect for review.
// No events for the topic is an empty result, not an error.
func (r *Reporter) TopicDetail(ctx context.Context, userID, topic string) ([]history.Event, error) {
	return r.events.ByUserTopic(ctx, userID, topic)
}

// GroupByTopic tallies correct/total per topic over an event snapshot.
func GroupByTopic(events []history.Event) []TopicPerformance {
	byTopic := map[string]*TopicPerformance{}
	for _, e := range events {
		for _, t := range e.TopicTags {
			tp, ok := byTopic[t]
			if !ok {
				tp = &TopicPerformance{Topic: t}
				byTopic[t] = tp
			}
			tp.Total++
			if e.Correct {
				tp.Correct++
			}
		}
	}
	out := make([]TopicPerformance, 0, len(byTopic))
	for _, tp := range byTopic {
		tp.Accuracy = 100 * float64(tp.Correct) / float64(tp.Total)
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

package question

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// memoryStore backs tests and quick local runs; the gateway wires SQLStore.
type memoryStore struct {
	mu sync.RWMutex
	qs map[string]Question
}

func NewInMemoryStore() Store {
	return &memoryStore{qs: map[string]Question{}}
}

func (m *memoryStore) Put(_ context.Context, q Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qs[q.ID] = q
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.qs[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return q, nil
}

func (m *memoryStore) GetBatch(_ context.Context, ids []string) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := m.qs[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryStore) List(_ context.Context, opts ListOpts) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := map[string]bool{}
	if opts.Tag != "" {
		want[opts.Tag] = true
	}
	var out []Question
	for _, q := range m.qs {
		if opts.Q != "" && !strings.Contains(q.Prompt, opts.Q) {
			continue
		}
		if opts.Tag != "" && !q.HasAnyTag(want) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.qs[id]; !ok {
		return ErrNotFound
	}
	delete(m.qs, id)
	return nil
}

func (m *memoryStore) ByTags(_ context.Context, tags []string) ([]Question, error) {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Question
	for _, q := range m.qs {
		if q.HasAnyTag(want) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryStore) DistinctTags(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[string]bool{}
	for _, q := range m.qs {
		for _, t := range q.TopicTags {
			seen[t] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Append(_ context.Context, events ...Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt == 0 {
			e.CreatedAt = time.Now().Unix()
		}
		m.events = append(m.events, e)
	}
	return nil
}

func (m *memoryStore) AllTagSets(_ context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.TopicTags)
	}
	return out, nil
}

func (m *memoryStore) ByUser(_ context.Context, userID string) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Event{}
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryStore) ByUserTopic(_ context.Context, userID, topic string) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Event{}
	for _, e := range m.events {
		if e.UserID != userID {
			continue
		}
		for _, t := range e.TopicTags {
			if t == topic {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

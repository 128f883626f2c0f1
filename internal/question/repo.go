package question

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("question not found")

type ListOpts struct {
	Q      string // substring match on the prompt
	Tag    string // filter by a single topic tag
	Limit  int
	Offset int
}

type Store interface {
	Put(ctx context.Context, q Question) error
	Get(ctx context.Context, id string) (Question, error)
	// GetBatch returns the questions whose IDs exist; missing IDs are simply
	// omitted from the result, callers decide how to treat them.
	GetBatch(ctx context.Context, ids []string) ([]Question, error)
	List(ctx context.Context, opts ListOpts) ([]Question, error)
	Delete(ctx context.Context, id string) error
	// ByTags returns every question whose tag list intersects tags.
	ByTags(ctx context.Context, tags []string) ([]Question, error)
	DistinctTags(ctx context.Context) ([]string, error)
}

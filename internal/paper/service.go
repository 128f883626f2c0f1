// Package paper builds question papers: it widens the caller's topic
// selection with association rules computed from answer history, then draws a
// bounded random sample of matching questions.
package paper

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/prepdeck/prepdeck/internal/assoc"
	"github.com/prepdeck/prepdeck/internal/history"
	"github.com/prepdeck/prepdeck/internal/question"
)

// DefaultSize caps a paper at ten questions.
const DefaultSize = 10

type Service struct {
	questions question.Store
	events    history.Store
	size      int
}

func NewService(qs question.Store, hs history.Store, size int) *Service {
	if size <= 0 {
		size = DefaultSize
	}
	return &Service{questions: qs, events: hs, size: size}
}

// Build returns at most s.size questions whose tags intersect the expanded
// selection, answer keys stripped. An empty selection means no filter: the
// effective set is every distinct tag across all questions. Association rules
// are recomputed from the full event history on every call; there is no cache,
// so the expansion always reflects history as of now. Any store failure fails
// the whole build, there is no fallback to the unexpanded selection.
func (s *Service) Build(ctx context.Context, selected []string) ([]question.Question, error) {
	var err error
	if len(selected) == 0 {
		selected, err = s.questions.DistinctTags(ctx)
		if err != nil {
			return nil, fmt.Errorf("build question paper: %w", err)
		}
	}

	tagSets, err := s.events.AllTagSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("build question paper: %w", err)
	}
	related := assoc.Expand(selected, assoc.ComputeRules(tagSets))

	candidates, err := s.questions.ByTags(ctx, related)
	if err != nil {
		return nil, fmt.Errorf("build question paper: %w", err)
	}

	sampled := sample(candidates, s.size)
	for i := range sampled {
		sampled[i] = sampled[i].StripAnswer()
	}
	return sampled, nil
}

// sample draws up to n questions uniformly without replacement.
func sample(qs []question.Question, n int) []question.Question {
	out := make([]question.Question, len(qs))
	copy(out, qs)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

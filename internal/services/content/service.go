package content

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"organo/internal/domain"
)

// outlineFetchLimit bounds the concurrent concept requests of Outline.
const outlineFetchLimit = 4

// Service implements domain.ContentService.
type Service struct {
	domain.ContentClient
}

var _ domain.ContentService = (*Service)(nil)

// New returns a content service over client.
func New(client domain.ContentClient) *Service { return &Service{ContentClient: client} }

// Outline returns every topic of a subject, in backend order, with its
// concepts. Any failed fetch fails the whole outline.
func (s *Service) Outline(ctx context.Context, subjectID domain.ID) ([]domain.TopicOutline, error) {
	topics, err := s.ListTopics(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}

	out := make([]domain.TopicOutline, len(topics))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(outlineFetchLimit)
	for i, t := range topics {
		i, t := i, t // per-iteration copies; go directive predates 1.22 loopvar semantics
		g.Go(func() error {
			concepts, err := s.ListConcepts(gctx, t.ID)
			if err != nil {
				return fmt.Errorf("listing concepts of %q: %w", t.Title, err)
			}
			out[i] = domain.TopicOutline{Topic: t, Concepts: concepts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// TopicTitles lists the titles of a subject's topics, for voice lookup.
func (s *Service) TopicTitles(ctx context.Context, subjectID domain.ID) ([]string, error) {
	topics, err := s.ListTopics(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(topics))
	for i, t := range topics {
		titles[i] = t.Title
	}
	return titles, nil
}

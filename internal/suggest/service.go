package suggest

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"searchbox/internal/api"
	"searchbox/internal/domain"
)

// Backend is the part of the search backend the suggestion service needs.
// *api.Client satisfies it.
type Backend interface {
	History(ctx context.Context) ([]string, error)
	Suggestions(ctx context.Context, query string, pinyin bool) (api.TraditionalResult, error)
	Completions(ctx context.Context, query string) ([]api.Completion, error)
	ClearHistory(ctx context.Context) error
	RemoveHistory(ctx context.Context, query string) error
}

// Service fetches, merges and caps suggestions and history
type Service struct {
	backend      Backend
	limit        int
	historyLimit int
}

// NewService creates a suggestion service. Non-positive limits select DefaultLimit.
func NewService(backend Backend, limit, historyLimit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if historyLimit <= 0 {
		historyLimit = DefaultLimit
	}
	return &Service{
		backend:      backend,
		limit:        limit,
		historyLimit: historyLimit,
	}
}

// Fetch returns merged suggestions for query. Both sources are queried
// concurrently; if either fails the traditional source is asked alone, and if
// that fails too the result is empty. Fetch never returns an error.
func (s *Service) Fetch(ctx context.Context, query string) []domain.Suggestion {
	pinyin := IsPinyinLike(query)

	var (
		completions []api.Completion
		traditional api.TraditionalResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		completions, err = s.backend.Completions(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		traditional, err = s.backend.Suggestions(gctx, query, pinyin)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("Suggest: intelligent fetch for %q failed, falling back to traditional: %v", query, err)
		return s.fetchTraditional(ctx, query, pinyin)
	}

	return Merge(traditional.Correction, completions, traditional.Suggestions, s.limit)
}

func (s *Service) fetchTraditional(ctx context.Context, query string, pinyin bool) []domain.Suggestion {
	res, err := s.backend.Suggestions(ctx, query, pinyin)
	if err != nil {
		log.Printf("Suggest: traditional fetch for %q failed: %v", query, err)
		return nil
	}
	return Merge(res.Correction, nil, res.Suggestions, s.limit)
}

// History returns at most the configured number of history entries
func (s *Service) History(ctx context.Context) ([]string, error) {
	all, err := s.AllHistory(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > s.historyLimit {
		all = all[:s.historyLimit]
	}
	return all, nil
}

// AllHistory returns every history entry the backend sends, for the pager
func (s *Service) AllHistory(ctx context.Context) ([]string, error) {
	history, err := s.backend.History(ctx)
	if err != nil {
		log.Printf("Suggest: history fetch failed: %v", err)
		return nil, err
	}
	return history, nil
}

// RemoveHistory removes one query from the backend history
func (s *Service) RemoveHistory(ctx context.Context, query string) error {
	if err := s.backend.RemoveHistory(ctx, query); err != nil {
		log.Printf("Suggest: remove history %q failed: %v", query, err)
		return err
	}
	return nil
}

// ClearHistory drops all backend history
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.backend.ClearHistory(ctx); err != nil {
		log.Printf("Suggest: clear history failed: %v", err)
		return err
	}
	return nil
}

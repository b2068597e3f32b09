package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
	"github.com/promptstash/promptstash-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService is the single search entry point. It decides between the
// ranked index path and the substring fallback and hydrates results.
type SearchService struct {
	cfg        domain.SearchConfig
	store      driven.PromptStore
	index      driven.SearchIndex
	normaliser driven.Normaliser
}

// NewSearchService creates a new search service. The index may be nil;
// every query is then served by the fallback path.
func NewSearchService(
	cfg domain.SearchConfig,
	store driven.PromptStore,
	index driven.SearchIndex,
	normaliser driven.Normaliser,
) *SearchService {
	def := domain.DefaultSearchConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	return &SearchService{
		cfg:        cfg,
		store:      store,
		index:      index,
		normaliser: normaliser,
	}
}

// Search executes q. Empty queries are plain filtered listings against
// the store; non-empty queries go through the ranked index, degrading to
// the substring fallback when the index cannot be queried.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) (domain.SearchPage, error) {
	if s.store == nil {
		return domain.SearchPage{}, domain.ErrSearchUnavailable
	}
	if q.Skip < 0 {
		return domain.SearchPage{}, fmt.Errorf("%w: negative skip", domain.ErrInvalidInput)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	f := driven.PromptFilter{
		TagIDs:     q.TagIDs,
		PinnedOnly: q.PinnedOnly,
		Skip:       q.Skip,
		Limit:      limit,
	}

	query := strings.TrimSpace(q.Query)
	if query == "" {
		logger.Debug("Empty query, listing with filters (skip=%d limit=%d)", f.Skip, f.Limit)
		items, total, err := s.store.List(ctx, f)
		if err != nil {
			return domain.SearchPage{}, fmt.Errorf("listing prompts: %w", err)
		}
		return domain.SearchPage{Items: items, Total: total}, nil
	}

	useIndex := s.cfg.UseIndex
	if q.UseIndex != nil {
		useIndex = *q.UseIndex
	}

	if useIndex && s.index != nil {
		logger.Debug("Ranked search: query=%q skip=%d limit=%d", query, f.Skip, f.Limit)
		page, err := s.rankedSearch(ctx, query, f)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, domain.ErrIndexUnavailable) {
			return domain.SearchPage{}, err
		}
		logger.Warn("Index unavailable, falling back to substring search: %v", err)
	}

	return s.fallbackSearch(ctx, query, f)
}

// rankedSearch queries the index for ordered ids, hydrates them from the
// store and re-imposes the ranked order on the hydrated set. The store's
// batch fetch does not guarantee order.
func (s *SearchService) rankedSearch(
	ctx context.Context, query string, f driven.PromptFilter,
) (domain.SearchPage, error) {
	ids, total, err := s.index.Search(ctx, query, f)
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("ranked search: %w", err)
	}

	if len(ids) == 0 {
		return domain.SearchPage{Items: []domain.Prompt{}, Total: total}, nil
	}

	prompts, err := s.store.GetByIDs(ctx, ids)
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("hydrating results: %w", err)
	}

	byID := make(map[int64]domain.Prompt, len(prompts))
	for i := range prompts {
		byID[prompts[i].ID] = prompts[i]
	}

	ordered := make([]domain.Prompt, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	logger.Debug("Ranked search: %d ids, %d hydrated, total=%d", len(ids), len(ordered), total)
	return domain.SearchPage{Items: ordered, Total: total}, nil
}

// fallbackSearch serves the query with case-insensitive substring
// matching directly against the store. It has no further fallback.
func (s *SearchService) fallbackSearch(
	ctx context.Context, query string, f driven.PromptFilter,
) (domain.SearchPage, error) {
	normalized := query
	if s.normaliser != nil {
		normalized = s.normaliser.Normalise(query)
	}

	logger.Debug("Fallback search: query=%q normalized=%q", query, normalized)
	items, total, err := s.store.SearchLike(ctx, query, normalized, f)
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("fallback search: %w", err)
	}
	return domain.SearchPage{Items: items, Total: total}, nil
}

// RebuildIndex repopulates the index from all live prompts.
func (s *SearchService) RebuildIndex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, domain.ErrSearchUnavailable
	}
	n, err := s.index.Rebuild(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuilding index: %w", err)
	}
	if live, cerr := s.store.CountLive(ctx, driven.PromptFilter{}); cerr == nil {
		logger.Info("Index rebuild inserted %d entries, %d live prompts", n, live)
	} else {
		logger.Info("Index rebuild inserted %d entries", n)
	}
	return n, nil
}

package driving

import (
	"context"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// SearchService is the single search entry point for outer adapters.
// It owns the degradation policy between the ranked index path and the
// substring fallback.
type SearchService interface {
	// Search executes q and returns one page of hydrated prompts in
	// final order plus the total match count.
	Search(ctx context.Context, q domain.SearchQuery) (domain.SearchPage, error)

	// RebuildIndex repopulates the search index from all live prompts.
	// Safe to re-run; returns the number of entries inserted.
	RebuildIndex(ctx context.Context) (int, error)
}

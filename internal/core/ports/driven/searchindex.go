package driven

import (
	"context"
)

// SearchIndex provides ranked full-text search over the derived index.
// Backed by SQLite FTS5.
//
// The index itself is maintained by the PromptStore's mutations; this
// port only reads it, except for Rebuild.
type SearchIndex interface {
	// Search matches query against the index and returns prompt ids in
	// final ranked order plus the pre-pagination total. Ranking: match
	// tier (exact tag phrase > exact text phrase > partial) descending,
	// then relevance (BM25) best first, then creation time newest first.
	// Filters are applied before counting.
	//
	// Any construction or execution failure on the index path is
	// reported as domain.ErrIndexUnavailable; this method performs no
	// fallback of its own.
	Search(ctx context.Context, query string, f PromptFilter) (ids []int64, total int, err error)

	// Rebuild populates the index from all live prompts. It is meant for
	// startup/migration and is idempotent per prompt: records that
	// already have an entry are skipped. Returns the number of entries
	// inserted. It must not run concurrently with live mutations.
	Rebuild(ctx context.Context) (int, error)
}

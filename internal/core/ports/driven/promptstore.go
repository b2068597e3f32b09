package driven

import (
	"context"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// PromptFilter narrows prompt reads and searches.
// The zero value matches all live prompts.
type PromptFilter struct {
	// TagIDs keeps prompts linked to ANY of the given tags (union
	// semantics). Empty means no tag filter.
	TagIDs []int64

	// PinnedOnly filters on the pinned flag when non-nil.
	PinnedOnly *bool

	// Skip and Limit paginate the result. Totals are always counted
	// before pagination.
	Skip  int
	Limit int
}

// PromptStore persists the authoritative prompt records.
// Backed by SQLite.
//
// Every mutation updates the derived search index as part of the same
// transaction. A failed index update aborts the mutation with
// domain.ErrIndexSync; callers never observe a prompt whose index entry
// disagrees with it.
type PromptStore interface {
	// Create stores a new prompt and its index entry. The prompt's
	// NormalizedText must already be computed by the caller.
	// Fills ID, CreatedAt and UpdatedAt.
	// Returns domain.ErrAlreadyExists if the message id is taken.
	Create(ctx context.Context, p *domain.Prompt) error

	// UpdateText replaces the raw and normalised text of a live prompt
	// and refreshes the text fields of its index entry.
	UpdateText(ctx context.Context, id int64, text, normalizedText string) (*domain.Prompt, error)

	// SetPinned updates the pinned flag. The index carries no pin state,
	// so no index write happens.
	SetPinned(ctx context.Context, id int64, pinned bool) (*domain.Prompt, error)

	// SetImage updates the image reference. Empty clears it.
	SetImage(ctx context.Context, id int64, imageURL string) (*domain.Prompt, error)

	// SoftDelete marks a live prompt deleted and removes its index entry.
	// The prompt row itself is never deleted.
	SoftDelete(ctx context.Context, id int64) error

	// LinkTag associates a tag with a live prompt and recomputes the
	// index entry's tag blob. Linking an already-linked tag is a no-op.
	LinkTag(ctx context.Context, promptID, tagID int64) error

	// UnlinkTag removes a tag association and recomputes the index
	// entry's tag blob. Unlinking an absent tag is a no-op.
	UnlinkTag(ctx context.Context, promptID, tagID int64) error

	// Get retrieves a live prompt with its tags.
	Get(ctx context.Context, id int64) (*domain.Prompt, error)

	// GetByMessageID retrieves a prompt by its Telegram message id,
	// including soft-deleted ones.
	GetByMessageID(ctx context.Context, messageID int64) (*domain.Prompt, error)

	// GetByIDs retrieves the live prompts among ids, with their tags.
	// The returned order is unspecified; callers that care about order
	// re-sort the result themselves.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Prompt, error)

	// List returns live prompts matching the filter, pinned first and
	// newest first within each group, plus the pre-pagination total.
	List(ctx context.Context, f PromptFilter) ([]domain.Prompt, int, error)

	// CountLive returns the number of live prompts matching the filter,
	// ignoring pagination.
	CountLive(ctx context.Context, f PromptFilter) (int, error)

	// SearchLike is the substring fallback search. It never touches the
	// search index. Live prompts match when their raw text contains
	// query or their normalised text contains normalizedQuery. Order:
	// pinned first, then text-starts-with-query, then
	// normalised-starts-with, then newest first.
	SearchLike(ctx context.Context, query, normalizedQuery string, f PromptFilter) ([]domain.Prompt, int, error)
}

package driven

import (
	"context"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// TagStore persists tags and their prompt associations.
type TagStore interface {
	// Create stores a new tag. Name and Slug must be set; the slug
	// collision loop lives in the tag service. Fills ID and CreatedAt.
	// Returns domain.ErrAlreadyExists if the slug is taken.
	Create(ctx context.Context, tag *domain.Tag) error

	// Get retrieves a tag by ID.
	Get(ctx context.Context, id int64) (*domain.Tag, error)

	// GetBySlug retrieves a tag by its unique slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Tag, error)

	// List returns all tags ordered by name.
	List(ctx context.Context) ([]domain.Tag, error)

	// ListWithCounts returns tags with their prompt counts,
	// most-used first, name as tie-break.
	ListWithCounts(ctx context.Context) ([]domain.TagCount, error)

	// Rename updates a tag's name and slug.
	Rename(ctx context.Context, id int64, name, slug string) (*domain.Tag, error)

	// Delete hard-deletes a tag, cascades its prompt associations and
	// refreshes the tag blob of every affected live prompt's index
	// entry, all in one transaction. Tag deletion is the only hard
	// delete in the system.
	Delete(ctx context.Context, id int64) error
}

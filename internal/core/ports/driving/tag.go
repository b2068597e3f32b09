package driving

import (
	"context"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// TagService manages tags.
type TagService interface {
	// Create stores a new tag, deriving a unique slug from name.
	// Slug collisions are resolved with a numeric suffix.
	Create(ctx context.Context, name string) (*domain.Tag, error)

	// Get retrieves a tag by id.
	Get(ctx context.Context, id int64) (*domain.Tag, error)

	// GetBySlug retrieves a tag by slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Tag, error)

	// List returns all tags ordered by name.
	List(ctx context.Context) ([]domain.Tag, error)

	// ListWithCounts returns tags with prompt counts, most-used first.
	ListWithCounts(ctx context.Context) ([]domain.TagCount, error)

	// Rename changes a tag's name, re-deriving its slug.
	Rename(ctx context.Context, id int64, name string) (*domain.Tag, error)

	// Delete hard-deletes a tag and its associations.
	Delete(ctx context.Context, id int64) error
}

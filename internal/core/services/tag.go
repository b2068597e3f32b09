package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
)

// Ensure TagService implements the interface.
var _ driving.TagService = (*TagService)(nil)

// TagService manages tags and their slugs.
type TagService struct {
	store   driven.TagStore
	slugify func(string) string
}

// NewTagService creates a new tag service. slugify derives the base slug
// from a tag name; the service resolves collisions with numeric suffixes.
func NewTagService(store driven.TagStore, slugify func(string) string) *TagService {
	return &TagService{
		store:   store,
		slugify: slugify,
	}
}

// Create stores a new tag with a unique slug derived from name.
func (s *TagService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty tag name", domain.ErrInvalidInput)
	}

	slug, err := s.uniqueSlug(ctx, s.slugify(name), 0)
	if err != nil {
		return nil, err
	}

	tag := &domain.Tag{Name: name, Slug: slug}
	if err := s.store.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}
	return tag, nil
}

// Get retrieves a tag by id.
func (s *TagService) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.store.Get(ctx, id)
}

// GetBySlug retrieves a tag by slug.
func (s *TagService) GetBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	return s.store.GetBySlug(ctx, slug)
}

// List returns all tags ordered by name.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.store.List(ctx)
}

// ListWithCounts returns tags with prompt counts, most-used first.
func (s *TagService) ListWithCounts(ctx context.Context) ([]domain.TagCount, error) {
	return s.store.ListWithCounts(ctx)
}

// Rename changes a tag's name and re-derives its slug, keeping it unique.
func (s *TagService) Rename(ctx context.Context, id int64, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty tag name", domain.ErrInvalidInput)
	}

	slug, err := s.uniqueSlug(ctx, s.slugify(name), id)
	if err != nil {
		return nil, err
	}

	tag, err := s.store.Rename(ctx, id, name, slug)
	if err != nil {
		return nil, fmt.Errorf("renaming tag: %w", err)
	}
	return tag, nil
}

// Delete hard-deletes a tag and cascades its associations.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// uniqueSlug resolves slug collisions by appending -1, -2, ... to base.
// selfID is ignored when checking ownership so a rename can keep its slug.
func (s *TagService) uniqueSlug(ctx context.Context, base string, selfID int64) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		existing, err := s.store.GetBySlug(ctx, slug)
		if errors.Is(err, domain.ErrNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", slug, err)
		}
		if existing.ID == selfID {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

package memory

import (
	"context"
	"sort"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
)

// Ensure TagStore implements the interface.
var _ driven.TagStore = (*TagStore)(nil)

// TagStore is the in-memory implementation of driven.TagStore.
type TagStore struct {
	store *Store
}

// Create stores a new tag.
func (s *TagStore) Create(_ context.Context, tag *domain.Tag) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for id := range s.store.tags {
		if s.store.tags[id].Slug == tag.Slug {
			return domain.ErrAlreadyExists
		}
	}

	s.store.nextTagID++
	tag.ID = s.store.nextTagID
	tag.CreatedAt = now()
	s.store.tags[tag.ID] = *tag
	return nil
}

// Get retrieves a tag by ID.
func (s *TagStore) Get(_ context.Context, id int64) (*domain.Tag, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	t, ok := s.store.tags[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// GetBySlug retrieves a tag by slug.
func (s *TagStore) GetBySlug(_ context.Context, slug string) (*domain.Tag, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for id := range s.store.tags {
		if s.store.tags[id].Slug == slug {
			t := s.store.tags[id]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all tags ordered by name.
func (s *TagStore) List(_ context.Context) ([]domain.Tag, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	tags := make([]domain.Tag, 0, len(s.store.tags))
	for id := range s.store.tags {
		tags = append(tags, s.store.tags[id])
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// ListWithCounts returns tags with prompt counts, most-used first.
func (s *TagStore) ListWithCounts(_ context.Context) ([]domain.TagCount, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	counts := make(map[int64]int)
	for promptID := range s.store.promptTags {
		for tagID := range s.store.promptTags[promptID] {
			counts[tagID]++
		}
	}

	result := make([]domain.TagCount, 0, len(s.store.tags))
	for id := range s.store.tags {
		result = append(result, domain.TagCount{
			Tag:   s.store.tags[id],
			Count: counts[id],
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Rename updates a tag's name and slug and refreshes the tag blob of
// every live prompt carrying it.
func (s *TagStore) Rename(_ context.Context, id int64, name, slug string) (*domain.Tag, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	t, ok := s.store.tags[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	t.Name = name
	t.Slug = slug
	s.store.tags[id] = t

	for promptID := range s.store.promptTags {
		if s.store.promptTags[promptID][id] {
			s.store.refreshEntryTags(promptID)
		}
	}
	return &t, nil
}

// Delete hard-deletes a tag, cascades associations and refreshes the
// affected index entries.
func (s *TagStore) Delete(_ context.Context, id int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.tags[id]; !ok {
		return domain.ErrNotFound
	}

	delete(s.store.tags, id)
	for promptID := range s.store.promptTags {
		if s.store.promptTags[promptID][id] {
			delete(s.store.promptTags[promptID], id)
			s.store.refreshEntryTags(promptID)
		}
	}
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore is the in-memory implementation of driven.PromptStore.
// Each mutation updates the derived index entry under the same lock, so
// readers never observe a prompt whose entry disagrees with it.
type PromptStore struct {
	store *Store
}

// Create stores a new prompt and its index entry.
func (s *PromptStore) Create(_ context.Context, p *domain.Prompt) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for i := range s.store.prompts {
		if s.store.prompts[i].MessageID == p.MessageID {
			return domain.ErrAlreadyExists
		}
	}

	s.store.nextPromptID++
	p.ID = s.store.nextPromptID
	ts := now()
	p.CreatedAt = ts
	p.UpdatedAt = ts

	s.store.prompts[p.ID] = *p
	s.store.entries[p.ID] = indexEntry{
		promptID:       p.ID,
		text:           p.Text,
		normalizedText: p.NormalizedText,
	}
	return nil
}

// UpdateText replaces the text of a live prompt and its index entry.
func (s *PromptStore) UpdateText(_ context.Context, id int64, text, normalizedText string) (*domain.Prompt, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.prompts[id]
	if !ok || !p.Live() {
		return nil, domain.ErrNotFound
	}

	p.Text = text
	p.NormalizedText = normalizedText
	p.UpdatedAt = now()
	s.store.prompts[id] = p

	if e, ok := s.store.entries[id]; ok {
		e.text = text
		e.normalizedText = normalizedText
		s.store.entries[id] = e
	}

	hydrated := s.store.hydrated(p)
	return &hydrated, nil
}

// SetPinned updates the pinned flag.
func (s *PromptStore) SetPinned(_ context.Context, id int64, pinned bool) (*domain.Prompt, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.prompts[id]
	if !ok || !p.Live() {
		return nil, domain.ErrNotFound
	}

	p.Pinned = pinned
	p.UpdatedAt = now()
	s.store.prompts[id] = p

	hydrated := s.store.hydrated(p)
	return &hydrated, nil
}

// SetImage updates the image reference.
func (s *PromptStore) SetImage(_ context.Context, id int64, imageURL string) (*domain.Prompt, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.prompts[id]
	if !ok || !p.Live() {
		return nil, domain.ErrNotFound
	}

	p.ImageURL = imageURL
	p.UpdatedAt = now()
	s.store.prompts[id] = p

	hydrated := s.store.hydrated(p)
	return &hydrated, nil
}

// SoftDelete marks a prompt deleted and removes its index entry.
// The prompt row is kept.
func (s *PromptStore) SoftDelete(_ context.Context, id int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.prompts[id]
	if !ok || !p.Live() {
		return domain.ErrNotFound
	}

	ts := now()
	p.DeletedAt = &ts
	p.UpdatedAt = ts
	s.store.prompts[id] = p

	delete(s.store.entries, id)
	return nil
}

// LinkTag associates a tag with a live prompt.
func (s *PromptStore) LinkTag(_ context.Context, promptID, tagID int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.prompts[promptID]
	if !ok || !p.Live() {
		return domain.ErrNotFound
	}
	if _, ok := s.store.tags[tagID]; !ok {
		return domain.ErrNotFound
	}

	if s.store.promptTags[promptID] == nil {
		s.store.promptTags[promptID] = make(map[int64]bool)
	}
	s.store.promptTags[promptID][tagID] = true
	s.store.refreshEntryTags(promptID)
	return nil
}

// UnlinkTag removes a tag association. Absent associations are a no-op.
func (s *PromptStore) UnlinkTag(_ context.Context, promptID, tagID int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.prompts[promptID]
	if !ok || !p.Live() {
		return domain.ErrNotFound
	}

	delete(s.store.promptTags[promptID], tagID)
	s.store.refreshEntryTags(promptID)
	return nil
}

// Get retrieves a live prompt with its tags.
func (s *PromptStore) Get(_ context.Context, id int64) (*domain.Prompt, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	p, ok := s.store.prompts[id]
	if !ok || !p.Live() {
		return nil, domain.ErrNotFound
	}
	hydrated := s.store.hydrated(p)
	return &hydrated, nil
}

// GetByMessageID retrieves a prompt by message id, deleted or not.
func (s *PromptStore) GetByMessageID(_ context.Context, messageID int64) (*domain.Prompt, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for id := range s.store.prompts {
		if s.store.prompts[id].MessageID == messageID {
			hydrated := s.store.hydrated(s.store.prompts[id])
			return &hydrated, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByIDs retrieves the live prompts among ids in unspecified order.
func (s *PromptStore) GetByIDs(_ context.Context, ids []int64) ([]domain.Prompt, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	prompts := make([]domain.Prompt, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.store.prompts[id]; ok && p.Live() {
			prompts = append(prompts, s.store.hydrated(p))
		}
	}
	return prompts, nil
}

// List returns live prompts matching the filter, pinned first then newest
// first, plus the pre-pagination total.
func (s *PromptStore) List(_ context.Context, f driven.PromptFilter) ([]domain.Prompt, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var matched []domain.Prompt
	for id := range s.store.prompts {
		p := s.store.prompts[id]
		if !p.Live() || !s.store.matchesFilter(&p, f.TagIDs, f.PinnedOnly) {
			continue
		}
		matched = append(matched, s.store.hydrated(p))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Pinned != matched[j].Pinned {
			return matched[i].Pinned
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	return paginate(matched, f.Skip, f.Limit), total, nil
}

// CountLive returns the number of live prompts matching the filter.
func (s *PromptStore) CountLive(_ context.Context, f driven.PromptFilter) (int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	count := 0
	for id := range s.store.prompts {
		p := s.store.prompts[id]
		if p.Live() && s.store.matchesFilter(&p, f.TagIDs, f.PinnedOnly) {
			count++
		}
	}
	return count, nil
}

// SearchLike is the substring fallback search.
func (s *PromptStore) SearchLike(
	_ context.Context, query, normalizedQuery string, f driven.PromptFilter,
) ([]domain.Prompt, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	lowerQuery := strings.ToLower(query)

	var matched []domain.Prompt
	for id := range s.store.prompts {
		p := s.store.prompts[id]
		if !p.Live() || !s.store.matchesFilter(&p, f.TagIDs, f.PinnedOnly) {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Text), lowerQuery) &&
			!strings.Contains(p.NormalizedText, normalizedQuery) {
			continue
		}
		matched = append(matched, s.store.hydrated(p))
	}

	// Pinned first, then prefix matches, then newest first.
	sort.Slice(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		aStarts := strings.HasPrefix(strings.ToLower(a.Text), lowerQuery)
		bStarts := strings.HasPrefix(strings.ToLower(b.Text), lowerQuery)
		if aStarts != bStarts {
			return aStarts
		}
		aNorm := strings.HasPrefix(a.NormalizedText, normalizedQuery)
		bNorm := strings.HasPrefix(b.NormalizedText, normalizedQuery)
		if aNorm != bNorm {
			return aNorm
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := len(matched)
	return paginate(matched, f.Skip, f.Limit), total, nil
}

// Package memory provides in-memory implementations of the storage ports.
//
// The memory store mirrors the SQLite adapter's shape: one Store owns all
// state and hands out views implementing the driven port interfaces. Index
// entries are kept in lockstep with prompt mutations under one lock, the
// in-memory analogue of the SQLite adapter's single transaction.
//
// Used for tests and as a reference implementation of the
// synchronisation invariants.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// indexEntry is the derived, index-only view of one live prompt.
type indexEntry struct {
	promptID       int64
	text           string
	normalizedText string
	tags           string // space-joined tag names, ascending by name
}

// Store is a unified in-memory storage backing all port interfaces.
type Store struct {
	mu         sync.RWMutex
	prompts    map[int64]domain.Prompt
	tags       map[int64]domain.Tag
	promptTags map[int64]map[int64]bool
	entries    map[int64]indexEntry

	nextPromptID int64
	nextTagID    int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		prompts:    make(map[int64]domain.Prompt),
		tags:       make(map[int64]domain.Tag),
		promptTags: make(map[int64]map[int64]bool),
		entries:    make(map[int64]indexEntry),
	}
}

// PromptStore returns a PromptStore view backed by this store.
func (s *Store) PromptStore() *PromptStore {
	return &PromptStore{store: s}
}

// TagStore returns a TagStore view backed by this store.
func (s *Store) TagStore() *TagStore {
	return &TagStore{store: s}
}

// SearchIndex returns a SearchIndex view backed by this store.
func (s *Store) SearchIndex() *SearchIndex {
	return &SearchIndex{store: s}
}

// ==================== shared helpers (caller holds lock) ====================

// tagNames returns the names of a prompt's tags, ascending.
func (s *Store) tagNames(promptID int64) []string {
	ids := s.promptTags[promptID]
	names := make([]string, 0, len(ids))
	for tagID := range ids {
		if t, ok := s.tags[tagID]; ok {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names
}

// tagList returns a prompt's tags ordered by name.
func (s *Store) tagList(promptID int64) []domain.Tag {
	ids := s.promptTags[promptID]
	tags := make([]domain.Tag, 0, len(ids))
	for tagID := range ids {
		if t, ok := s.tags[tagID]; ok {
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags
}

// refreshEntryTags recomputes the tag blob of a prompt's index entry.
// No-op when the prompt has no entry (soft-deleted).
func (s *Store) refreshEntryTags(promptID int64) {
	e, ok := s.entries[promptID]
	if !ok {
		return
	}
	e.tags = strings.Join(s.tagNames(promptID), " ")
	s.entries[promptID] = e
}

// hydrated returns a copy of the prompt with its tags attached.
func (s *Store) hydrated(p domain.Prompt) domain.Prompt {
	p.Tags = s.tagList(p.ID)
	return p
}

// matchesFilter applies tag (union) and pinned filters.
func (s *Store) matchesFilter(p *domain.Prompt, tagIDs []int64, pinnedOnly *bool) bool {
	if pinnedOnly != nil && p.Pinned != *pinnedOnly {
		return false
	}
	if len(tagIDs) == 0 {
		return true
	}
	linked := s.promptTags[p.ID]
	for _, id := range tagIDs {
		if linked[id] {
			return true
		}
	}
	return false
}

// paginate slices items by skip/limit. A zero limit means no cap.
func paginate(items []domain.Prompt, skip, limit int) []domain.Prompt {
	if skip >= len(items) {
		return []domain.Prompt{}
	}
	items = items[skip:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func now() time.Time {
	return time.Now().UTC()
}

package mcp

import (
	"context"
	"time"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
)

// mockSearchService returns canned pages.
type mockSearchService struct {
	page      domain.SearchPage
	lastQuery domain.SearchQuery
	err       error
}

var _ driving.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(_ context.Context, q domain.SearchQuery) (domain.SearchPage, error) {
	m.lastQuery = q
	return m.page, m.err
}

func (m *mockSearchService) RebuildIndex(context.Context) (int, error) {
	return 0, m.err
}

// mockPromptService serves a fixed set of prompts.
type mockPromptService struct {
	prompts map[int64]*domain.Prompt
}

var _ driving.PromptService = (*mockPromptService)(nil)

func (m *mockPromptService) Create(context.Context, driving.CreatePrompt) (*domain.Prompt, error) {
	return nil, domain.ErrInvalidInput
}

func (m *mockPromptService) Get(_ context.Context, id int64) (*domain.Prompt, error) {
	p, ok := m.prompts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPromptService) UpdateText(context.Context, int64, string) (*domain.Prompt, error) {
	return nil, domain.ErrNotFound
}

func (m *mockPromptService) SetPinned(context.Context, int64, bool) (*domain.Prompt, error) {
	return nil, domain.ErrNotFound
}

func (m *mockPromptService) SetImage(context.Context, int64, string) (*domain.Prompt, error) {
	return nil, domain.ErrNotFound
}

func (m *mockPromptService) Delete(context.Context, int64) error {
	return domain.ErrNotFound
}

func (m *mockPromptService) LinkTag(context.Context, int64, int64) error {
	return domain.ErrNotFound
}

func (m *mockPromptService) UnlinkTag(context.Context, int64, int64) error {
	return domain.ErrNotFound
}

// mockTagService serves a fixed tag list.
type mockTagService struct {
	tags []domain.TagCount
}

var _ driving.TagService = (*mockTagService)(nil)

func (m *mockTagService) Create(context.Context, string) (*domain.Tag, error) {
	return nil, domain.ErrInvalidInput
}

func (m *mockTagService) Get(_ context.Context, id int64) (*domain.Tag, error) {
	for i := range m.tags {
		if m.tags[i].Tag.ID == id {
			return &m.tags[i].Tag, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockTagService) GetBySlug(_ context.Context, slug string) (*domain.Tag, error) {
	for i := range m.tags {
		if m.tags[i].Tag.Slug == slug {
			return &m.tags[i].Tag, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockTagService) List(context.Context) ([]domain.Tag, error) {
	tags := make([]domain.Tag, len(m.tags))
	for i := range m.tags {
		tags[i] = m.tags[i].Tag
	}
	return tags, nil
}

func (m *mockTagService) ListWithCounts(context.Context) ([]domain.TagCount, error) {
	return m.tags, nil
}

func (m *mockTagService) Rename(context.Context, int64, string) (*domain.Tag, error) {
	return nil, domain.ErrNotFound
}

func (m *mockTagService) Delete(context.Context, int64) error {
	return domain.ErrNotFound
}

func testPrompt(id int64, text string) domain.Prompt {
	return domain.Prompt{
		ID:        id,
		MessageID: id * 100,
		Text:      text,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

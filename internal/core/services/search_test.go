package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash-cli/internal/adapters/driven/storage/memory"
	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
	"github.com/promptstash/promptstash-cli/internal/normalisers/searchtext"
)

// failingIndex simulates an unreachable search index.
type failingIndex struct{}

func (failingIndex) Search(context.Context, string, driven.PromptFilter) ([]int64, int, error) {
	return nil, 0, fmt.Errorf("%w: index offline", domain.ErrIndexUnavailable)
}

func (failingIndex) Rebuild(context.Context) (int, error) {
	return 0, fmt.Errorf("%w: index offline", domain.ErrIndexUnavailable)
}

func newSearchFixture(t *testing.T) (*memory.Store, *SearchService, driving.PromptService, driving.TagService) {
	t.Helper()
	store := memory.NewStore()
	normaliser := searchtext.New()
	search := NewSearchService(domain.DefaultSearchConfig(),
		store.PromptStore(), store.SearchIndex(), normaliser)
	prompts := NewPromptService(store.PromptStore(), store.TagStore(), normaliser)
	tags := NewTagService(store.TagStore(), searchtext.Slugify)
	return store, search, prompts, tags
}

func mustCreate(t *testing.T, prompts driving.PromptService, messageID int64, text string) *domain.Prompt {
	t.Helper()
	p, err := prompts.Create(context.Background(), driving.CreatePrompt{
		MessageID: messageID,
		ChannelID: -100500,
		Text:      text,
	})
	require.NoError(t, err)
	return p
}

func TestSearchService_EmptyQueryListsAll(t *testing.T) {
	_, search, prompts, _ := newSearchFixture(t)
	ctx := context.Background()

	mustCreate(t, prompts, 1, "first prompt")
	mustCreate(t, prompts, 2, "second prompt")

	page, err := search.Search(ctx, domain.SearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Items, 2)
}

func TestSearchService_EmptyQueryPinnedFirst(t *testing.T) {
	_, search, prompts, _ := newSearchFixture(t)
	ctx := context.Background()

	mustCreate(t, prompts, 1, "older")
	pinned := mustCreate(t, prompts, 2, "pinned one")
	mustCreate(t, prompts, 3, "newest")

	_, err := prompts.SetPinned(ctx, pinned.ID, true)
	require.NoError(t, err)

	page, err := search.Search(ctx, domain.SearchQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, pinned.ID, page.Items[0].ID)
}

func TestSearchService_RankedTagBeatsText(t *testing.T) {
	_, search, prompts, tags := newSearchFixture(t)
	ctx := context.Background()

	textHit := mustCreate(t, prompts, 1, "golang tips collection")
	tagHit := mustCreate(t, prompts, 2, "assorted snippets")

	tag, err := tags.Create(ctx, "golang")
	require.NoError(t, err)
	require.NoError(t, prompts.LinkTag(ctx, tagHit.ID, tag.ID))

	page, err := search.Search(ctx, domain.SearchQuery{Query: "golang"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, tagHit.ID, page.Items[0].ID)
	assert.Equal(t, textHit.ID, page.Items[1].ID)
}

func TestSearchService_HydratedResultsKeepRankedOrder(t *testing.T) {
	_, search, prompts, _ := newSearchFixture(t)
	ctx := context.Background()

	// Prefix-only match created after the exact match: tier ordering
	// must still put the exact match first.
	partial := mustCreate(t, prompts, 1, "golanguage experiments")
	exact := mustCreate(t, prompts, 2, "golang basics")

	page, err := search.Search(ctx, domain.SearchQuery{Query: "golang"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, exact.ID, page.Items[0].ID)
	assert.Equal(t, partial.ID, page.Items[1].ID)
}

func TestSearchService_SoftDeletedNeverSurface(t *testing.T) {
	_, search, prompts, _ := newSearchFixture(t)
	ctx := context.Background()

	keep := mustCreate(t, prompts, 1, "golang alpha")
	gone := mustCreate(t, prompts, 2, "golang beta")
	require.NoError(t, prompts.Delete(ctx, gone.ID))

	page, err := search.Search(ctx, domain.SearchQuery{Query: "golang"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, keep.ID, page.Items[0].ID)

	// The empty-query listing excludes it too.
	page, err = search.Search(ctx, domain.SearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestSearchService_FallbackOnIndexFailure(t *testing.T) {
	store := memory.NewStore()
	normaliser := searchtext.New()
	prompts := NewPromptService(store.PromptStore(), store.TagStore(), normaliser)
	search := NewSearchService(domain.DefaultSearchConfig(),
		store.PromptStore(), failingIndex{}, normaliser)
	ctx := context.Background()

	mustCreate(t, prompts, 1, "golang fallback material")

	page, err := search.Search(ctx, domain.SearchQuery{Query: "golang"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Items, 1)
}

func TestSearchService_FallbackNormalisesQuery(t *testing.T) {
	store := memory.NewStore()
	normaliser := searchtext.New()
	prompts := NewPromptService(store.PromptStore(), store.TagStore(), normaliser)
	search := NewSearchService(domain.DefaultSearchConfig(),
		store.PromptStore(), failingIndex{}, normaliser)
	ctx := context.Background()

	// Stored text carries markdown; its normalised form does not.
	mustCreate(t, prompts, 1, "**Review** my code")

	page, err := search.Search(ctx, domain.SearchQuery{Query: "**review**"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestSearchService_ExplicitNoIndexSkipsRanked(t *testing.T) {
	_, search, prompts, _ := newSearchFixture(t)
	ctx := context.Background()

	mustCreate(t, prompts, 1, "golang content")

	useIndex := false
	page, err := search.Search(ctx, domain.SearchQuery{Query: "golang", UseIndex: &useIndex})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestSearchService_LimitClamping(t *testing.T) {
	store := memory.NewStore()
	normaliser := searchtext.New()
	prompts := NewPromptService(store.PromptStore(), store.TagStore(), normaliser)
	cfg := domain.SearchConfig{DefaultLimit: 2, MaxLimit: 3, UseIndex: true}
	search := NewSearchService(cfg, store.PromptStore(), store.SearchIndex(), normaliser)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		mustCreate(t, prompts, i, "golang prompt")
	}

	// No limit: default applies, total still counts everything.
	page, err := search.Search(ctx, domain.SearchQuery{Query: "golang"})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Items, 2)

	// Oversized limit clamps to the maximum.
	page, err = search.Search(ctx, domain.SearchQuery{Query: "golang", Limit: 100})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}

func TestSearchService_NegativeSkipRejected(t *testing.T) {
	_, search, _, _ := newSearchFixture(t)

	_, err := search.Search(context.Background(), domain.SearchQuery{Skip: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchService_TagFilterUnion(t *testing.T) {
	_, search, prompts, tags := newSearchFixture(t)
	ctx := context.Background()

	a := mustCreate(t, prompts, 1, "golang alpha")
	b := mustCreate(t, prompts, 2, "golang beta")
	mustCreate(t, prompts, 3, "golang gamma")

	work, err := tags.Create(ctx, "work")
	require.NoError(t, err)
	home, err := tags.Create(ctx, "home")
	require.NoError(t, err)
	require.NoError(t, prompts.LinkTag(ctx, a.ID, work.ID))
	require.NoError(t, prompts.LinkTag(ctx, b.ID, home.ID))

	page, err := search.Search(ctx, domain.SearchQuery{
		Query:  "golang",
		TagIDs: []int64{work.ID, home.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestSearchService_RebuildIndex(t *testing.T) {
	_, search, prompts, _ := newSearchFixture(t)
	ctx := context.Background()

	mustCreate(t, prompts, 1, "golang alpha")
	mustCreate(t, prompts, 2, "golang beta")

	// The hooks keep the index current, so nothing is missing.
	added, err := search.RebuildIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestSearchService_RebuildIndexUnavailable(t *testing.T) {
	store := memory.NewStore()
	search := NewSearchService(domain.DefaultSearchConfig(),
		store.PromptStore(), failingIndex{}, searchtext.New())

	_, err := search.RebuildIndex(context.Background())
	assert.True(t, errors.Is(err, domain.ErrIndexUnavailable))
}

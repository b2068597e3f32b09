package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
)

func seedPrompt(t *testing.T, store *Store, messageID int64, text string) *domain.Prompt {
	t.Helper()
	p := &domain.Prompt{
		MessageID:      messageID,
		ChannelID:      -100123,
		Text:           text,
		NormalizedText: text,
	}
	require.NoError(t, store.PromptStore().Create(context.Background(), p))
	return p
}

func seedTag(t *testing.T, store *Store, name, slug string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name, Slug: slug}
	require.NoError(t, store.TagStore().Create(context.Background(), tag))
	return tag
}

func TestPromptStore_CreateAssignsSequentialIDs(t *testing.T) {
	store := NewStore()

	a := seedPrompt(t, store, 1, "first")
	b := seedPrompt(t, store, 2, "second")
	assert.Equal(t, a.ID+1, b.ID)
}

func TestPromptStore_DuplicateMessageID(t *testing.T) {
	store := NewStore()
	seedPrompt(t, store, 1, "first")

	err := store.PromptStore().Create(context.Background(), &domain.Prompt{
		MessageID: 1,
		Text:      "second",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestSearchIndex_TierOrdering(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	partial := seedPrompt(t, store, 1, "golanguage deep dive")
	text := seedPrompt(t, store, 2, "golang cheatsheet")
	tagged := seedPrompt(t, store, 3, "assorted notes")

	tag := seedTag(t, store, "golang", "golang")
	require.NoError(t, store.PromptStore().LinkTag(ctx, tagged.ID, tag.ID))

	ids, total, err := store.SearchIndex().Search(ctx, "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, ids, 3)
	assert.Equal(t, tagged.ID, ids[0])
	assert.Equal(t, text.ID, ids[1])
	assert.Equal(t, partial.ID, ids[2])
}

func TestSearchIndex_SoftDeleteDropsEntry(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	p := seedPrompt(t, store, 1, "golang entry")
	require.NoError(t, store.PromptStore().SoftDelete(ctx, p.ID))

	ids, total, err := store.SearchIndex().Search(ctx, "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, ids)
}

func TestSearchIndex_RebuildRestoresEntries(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	p := seedPrompt(t, store, 1, "golang entry")

	// Simulate index loss.
	store.mu.Lock()
	delete(store.entries, p.ID)
	store.mu.Unlock()

	added, err := store.SearchIndex().Rebuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	ids, _, err := store.SearchIndex().Search(ctx, "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{p.ID}, ids)

	added, err = store.SearchIndex().Rebuild(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestSearchIndex_TagBlobFollowsLinks(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	p := seedPrompt(t, store, 1, "assorted notes")
	tag := seedTag(t, store, "golang", "golang")

	// Not matched before linking.
	_, total, err := store.SearchIndex().Search(ctx, "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, store.PromptStore().LinkTag(ctx, p.ID, tag.ID))
	_, total, err = store.SearchIndex().Search(ctx, "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	require.NoError(t, store.PromptStore().UnlinkTag(ctx, p.ID, tag.ID))
	_, total, err = store.SearchIndex().Search(ctx, "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSearchLike_Ordering(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	contains := seedPrompt(t, store, 1, "notes about golang habits")
	starts := seedPrompt(t, store, 2, "golang habits")
	pinned := seedPrompt(t, store, 3, "more golang material")
	_, err := store.PromptStore().SetPinned(ctx, pinned.ID, true)
	require.NoError(t, err)

	prompts, total, err := store.PromptStore().SearchLike(ctx, "golang", "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, prompts, 3)
	assert.Equal(t, pinned.ID, prompts[0].ID)
	assert.Equal(t, starts.ID, prompts[1].ID)
	assert.Equal(t, contains.ID, prompts[2].ID)
}

func TestTagStore_RenameReflectsInIndex(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	p := seedPrompt(t, store, 1, "assorted notes")
	tag := seedTag(t, store, "golang", "golang")
	require.NoError(t, store.PromptStore().LinkTag(ctx, p.ID, tag.ID))

	_, err := store.TagStore().Rename(ctx, tag.ID, "go", "go")
	require.NoError(t, err)

	_, total, err := store.SearchIndex().Search(ctx, "go", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = store.SearchIndex().Search(ctx, "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTagStore_DeleteDetaches(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	p := seedPrompt(t, store, 1, "assorted notes")
	tag := seedTag(t, store, "golang", "golang")
	require.NoError(t, store.PromptStore().LinkTag(ctx, p.ID, tag.ID))

	require.NoError(t, store.TagStore().Delete(ctx, tag.ID))

	got, err := store.PromptStore().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	_, total, err := store.SearchIndex().Search(ctx, "golang", driven.PromptFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

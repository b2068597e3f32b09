package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash-cli/internal/adapters/driven/storage/memory"
	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/normalisers/searchtext"
)

func newTagFixture(t *testing.T) *TagService {
	t.Helper()
	store := memory.NewStore()
	return NewTagService(store.TagStore(), searchtext.Slugify)
}

func TestTagService_CreateDerivesSlug(t *testing.T) {
	svc := newTagFixture(t)
	ctx := context.Background()

	tag, err := svc.Create(ctx, "Code Review")
	require.NoError(t, err)
	assert.Equal(t, "Code Review", tag.Name)
	assert.Equal(t, "code-review", tag.Slug)
}

func TestTagService_CreateTransliteratesCyrillic(t *testing.T) {
	svc := newTagFixture(t)

	tag, err := svc.Create(context.Background(), "Проверка кода")
	require.NoError(t, err)
	assert.Equal(t, "proverka-koda", tag.Slug)
}

func TestTagService_SlugCollisionSuffix(t *testing.T) {
	svc := newTagFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, "golang", first.Slug)

	// Different name, same derived slug.
	second, err := svc.Create(ctx, "GoLang")
	require.NoError(t, err)
	assert.Equal(t, "golang-1", second.Slug)

	third, err := svc.Create(ctx, "GOLANG")
	require.NoError(t, err)
	assert.Equal(t, "golang-2", third.Slug)
}

func TestTagService_CreateEmptyName(t *testing.T) {
	svc := newTagFixture(t)

	_, err := svc.Create(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTagService_RenameKeepsOwnSlug(t *testing.T) {
	svc := newTagFixture(t)
	ctx := context.Background()

	tag, err := svc.Create(ctx, "golang")
	require.NoError(t, err)

	// Renaming to a name with the same derived slug must not grow a
	// suffix.
	renamed, err := svc.Rename(ctx, tag.ID, "GoLang")
	require.NoError(t, err)
	assert.Equal(t, "GoLang", renamed.Name)
	assert.Equal(t, "golang", renamed.Slug)
}

func TestTagService_RenameAvoidsForeignSlug(t *testing.T) {
	svc := newTagFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "golang")
	require.NoError(t, err)
	other, err := svc.Create(ctx, "python")
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, other.ID, "Golang")
	require.NoError(t, err)
	assert.Equal(t, "golang-1", renamed.Slug)
}

func TestTagService_GetBySlug(t *testing.T) {
	svc := newTagFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "code review")
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, "code-review")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

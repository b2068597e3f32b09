package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

func TestHandleSearch_DefaultLimit(t *testing.T) {
	search := &mockSearchService{
		page: domain.SearchPage{
			Items: []domain.Prompt{testPrompt(1, "golang tips")},
			Total: 1,
		},
	}
	server, err := NewServer(&Ports{Search: search})
	require.NoError(t, err)

	_, out, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "golang"})
	require.NoError(t, err)

	assert.Equal(t, 10, search.lastQuery.Limit)
	assert.Equal(t, "golang", search.lastQuery.Query)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "golang tips", out.Results[0].Text)
}

func TestHandleSearch_PinnedOnly(t *testing.T) {
	search := &mockSearchService{}
	server, err := NewServer(&Ports{Search: search})
	require.NoError(t, err)

	_, _, err = server.handleSearch(context.Background(), nil, SearchInput{PinnedOnly: true})
	require.NoError(t, err)

	require.NotNil(t, search.lastQuery.PinnedOnly)
	assert.True(t, *search.lastQuery.PinnedOnly)
}

func TestHandleSearch_ResolvesTagSlugs(t *testing.T) {
	search := &mockSearchService{}
	tags := &mockTagService{tags: []domain.TagCount{
		{Tag: domain.Tag{ID: 3, Name: "golang", Slug: "golang"}},
	}}
	server, err := NewServer(&Ports{Search: search, Tag: tags})
	require.NoError(t, err)

	_, _, err = server.handleSearch(context.Background(), nil, SearchInput{
		Query:    "tips",
		TagSlugs: []string{"golang"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, search.lastQuery.TagIDs)

	_, _, err = server.handleSearch(context.Background(), nil, SearchInput{
		TagSlugs: []string{"missing"},
	})
	assert.Error(t, err)
}

func TestHandleListTags(t *testing.T) {
	tags := &mockTagService{tags: []domain.TagCount{
		{Tag: domain.Tag{ID: 1, Name: "golang", Slug: "golang"}, Count: 4},
		{Tag: domain.Tag{ID: 2, Name: "python", Slug: "python"}, Count: 1},
	}}
	server, err := NewServer(&Ports{Search: &mockSearchService{}, Tag: tags})
	require.NoError(t, err)

	_, out, err := server.handleListTags(context.Background(), nil, struct{}{})
	require.NoError(t, err)
	require.Len(t, out.Tags, 2)
	assert.Equal(t, "golang", out.Tags[0].Name)
	assert.Equal(t, 4, out.Tags[0].PromptCount)
}

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_prompts tool.
type SearchInput struct {
	Query      string  `json:"query,omitempty" jsonschema:"the search query; empty lists all prompts"`
	Limit      int     `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Skip       int     `json:"skip,omitempty" jsonschema:"number of results to skip for pagination"`
	TagSlugs   []string `json:"tags,omitempty" jsonschema:"tag slugs to filter by; a prompt matches when it carries any of them"`
	PinnedOnly bool    `json:"pinned_only,omitempty" jsonschema:"restrict results to pinned prompts"`
}

// SearchOutput is the output schema for the search_prompts tool.
type SearchOutput struct {
	Results []PromptOutput `json:"results"`
	Total   int            `json:"total"`
}

// PromptOutput represents a single prompt in tool results.
type PromptOutput struct {
	ID       int64    `json:"id"`
	Text     string   `json:"text"`
	Tags     []string `json:"tags,omitempty"`
	Pinned   bool     `json:"pinned,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Created  string   `json:"created"`
}

// TagsOutput is the output schema for the list_tags tool.
type TagsOutput struct {
	Tags []TagOutput `json:"tags"`
}

// TagOutput represents a single tag with its usage count.
type TagOutput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	PromptCount int    `json:"prompt_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_prompts",
		Description: "Search the prompt library. Exact tag matches rank highest, then exact text matches, then partial matches.",
	}, s.handleSearch)

	if s.ports.Tag != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_tags",
			Description: "List all tags with the number of prompts carrying each",
		}, s.handleListTags)
	}
}

// handleSearch handles the search_prompts tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	q := domain.SearchQuery{
		Query: input.Query,
		Skip:  input.Skip,
		Limit: limit,
	}
	if input.PinnedOnly {
		pinned := true
		q.PinnedOnly = &pinned
	}

	tagIDs, err := s.resolveTags(ctx, input.TagSlugs)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	q.TagIDs = tagIDs

	page, err := s.ports.Search.Search(ctx, q)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]PromptOutput, len(page.Items)),
		Total:   page.Total,
	}
	for i := range page.Items {
		output.Results[i] = promptOutput(&page.Items[i])
	}
	return nil, output, nil
}

// handleListTags handles the list_tags tool invocation.
func (s *Server) handleListTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, TagsOutput, error) {
	counts, err := s.ports.Tag.ListWithCounts(ctx)
	if err != nil {
		return nil, TagsOutput{}, err
	}

	output := TagsOutput{Tags: make([]TagOutput, len(counts))}
	for i, tc := range counts {
		output.Tags[i] = TagOutput{
			Name:        tc.Tag.Name,
			Slug:        tc.Tag.Slug,
			PromptCount: tc.Count,
		}
	}
	return nil, output, nil
}

// resolveTags maps tag slugs to ids. Unknown slugs fail the call.
func (s *Server) resolveTags(ctx context.Context, slugs []string) ([]int64, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	if s.ports.Tag == nil {
		return nil, fmt.Errorf("tag filtering is not available")
	}

	ids := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		tag, err := s.ports.Tag.GetBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("unknown tag: %s", slug)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func promptOutput(p *domain.Prompt) PromptOutput {
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = t.Name
	}
	if len(tags) == 0 {
		tags = nil
	}
	return PromptOutput{
		ID:       p.ID,
		Text:     p.Text,
		Tags:     tags,
		Pinned:   p.Pinned,
		ImageURL: p.ImageURL,
		Created:  p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for promptstash resources.
	uriScheme = "promptstash://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing tags.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tags",
		Name:        "tags",
		Description: "All tags with prompt counts",
		MIMEType:    "application/json",
	}, s.handleTagsResource)

	// Template for prompt text.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "prompts/{promptId}",
		Name:        "prompt-text",
		Description: "Full text of a stored prompt",
		MIMEType:    "text/plain",
	}, s.handlePromptResource)
}

// handleTagsResource returns the tag list as JSON.
func (s *Server) handleTagsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Tag == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	counts, err := s.ports.Tag.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	infos := make([]TagOutput, len(counts))
	for i, tc := range counts {
		infos[i] = TagOutput{
			Name:        tc.Tag.Name,
			Slug:        tc.Tag.Slug,
			PromptCount: tc.Count,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling tags: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePromptResource returns the text of a specific prompt.
func (s *Server) handlePromptResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Prompt == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractPromptID(req.Params.URI)
	if id == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	prompt, err := s.ports.Prompt.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     prompt.Text,
		}},
	}, nil
}

// extractPromptID extracts the prompt id from a URI like promptstash://prompts/{promptId}.
func extractPromptID(uri string) int64 {
	const prefix = uriScheme + "prompts/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

package mcp

import (
	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Prompt provides prompt retrieval.
	Prompt driving.PromptService

	// Tag provides tag listings.
	Tag driving.TagService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Prompt and Tag are optional; their tools degrade gracefully.
	return nil
}

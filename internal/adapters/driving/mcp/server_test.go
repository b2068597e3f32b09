package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

func TestNewServer_RequiresSearchService(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestNewServer_SearchOnly(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}})
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewServer_AllPorts(t *testing.T) {
	server, err := NewServer(&Ports{
		Search: &mockSearchService{},
		Prompt: &mockPromptService{},
		Tag:    &mockTagService{},
	})
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestPortsValidate(t *testing.T) {
	ports := &Ports{Search: &mockSearchService{}}
	assert.NoError(t, ports.Validate())

	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSearchService)
}

func TestExtractPromptID(t *testing.T) {
	assert.Equal(t, int64(42), extractPromptID("promptstash://prompts/42"))
	assert.Zero(t, extractPromptID("promptstash://prompts/abc"))
	assert.Zero(t, extractPromptID("promptstash://prompts/-1"))
	assert.Zero(t, extractPromptID("promptstash://tags"))
	assert.Zero(t, extractPromptID("other://prompts/42"))
}

func TestPromptOutput(t *testing.T) {
	p := testPrompt(7, "hello world")
	p.Pinned = true
	p.Tags = []domain.Tag{{Name: "golang"}}

	out := promptOutput(&p)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "hello world", out.Text)
	assert.Equal(t, []string{"golang"}, out.Tags)
	assert.True(t, out.Pinned)
	assert.Equal(t, "2025-06-01T12:00:00Z", out.Created)
}

package cli

import (
	"testing"

	"github.com/promptstash/promptstash-cli/internal/adapters/driven/storage/memory"
	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/services"
	"github.com/promptstash/promptstash-cli/internal/normalisers/searchtext"
)

// setupTestServices wires the commands to an in-memory store.
// The returned cleanup restores the previous services.
func setupTestServices() func() {
	oldSearch := searchService
	oldPrompt := promptService
	oldTag := tagService

	store := memory.NewStore()
	normaliser := searchtext.New()

	searchService = services.NewSearchService(domain.DefaultSearchConfig(),
		store.PromptStore(), store.SearchIndex(), normaliser)
	promptService = services.NewPromptService(store.PromptStore(), store.TagStore(), normaliser)
	tagService = services.NewTagService(store.TagStore(), searchtext.Slugify)

	return func() {
		searchService = oldSearch
		promptService = oldPrompt
		tagService = oldTag
	}
}

// resetFlags restores flag values mutated by a command run.
func resetFlags(t *testing.T) {
	t.Helper()
	searchLimit = 0
	searchSkip = 0
	searchTags = nil
	searchPinned = false
	searchJSON = false
	searchNoIndex = false
	listLimit = 0
	listSkip = 0
	listTags = nil
	listPinned = false
	listJSON = false
	addMessageID = 0
	addChannelID = 0
	addPinned = false
	addImageURL = ""
	addTags = nil
}

package driving

import (
	"context"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// CreatePrompt carries the fields needed to store a new prompt.
type CreatePrompt struct {
	// MessageID is the originating Telegram message id. Required, unique.
	MessageID int64

	// ChannelID is the originating Telegram channel id.
	ChannelID int64

	// Text is the raw prompt text. Required.
	Text string

	// Pinned optionally pins the prompt on creation.
	Pinned bool

	// ImageURL optionally references an attached image.
	ImageURL string
}

// PromptService manages the prompt lifecycle. Text normalisation and the
// duplicate-message-id check happen here; index synchronisation happens
// inside the store, in the same transaction as each mutation.
type PromptService interface {
	// Create stores a new prompt.
	Create(ctx context.Context, in CreatePrompt) (*domain.Prompt, error)

	// Get retrieves a live prompt.
	Get(ctx context.Context, id int64) (*domain.Prompt, error)

	// UpdateText replaces a prompt's text, recomputing its normalised form.
	UpdateText(ctx context.Context, id int64, text string) (*domain.Prompt, error)

	// SetPinned pins or unpins a prompt.
	SetPinned(ctx context.Context, id int64, pinned bool) (*domain.Prompt, error)

	// SetImage updates a prompt's image reference. Empty clears it.
	SetImage(ctx context.Context, id int64, imageURL string) (*domain.Prompt, error)

	// Delete soft-deletes a prompt. The record is kept; only its index
	// entry is removed.
	Delete(ctx context.Context, id int64) error

	// LinkTag attaches a tag to a prompt.
	LinkTag(ctx context.Context, promptID, tagID int64) error

	// UnlinkTag detaches a tag from a prompt.
	UnlinkTag(ctx context.Context, promptID, tagID int64) error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
)

// Ensure PromptService implements the interface.
var _ driving.PromptService = (*PromptService)(nil)

// PromptService manages the prompt lifecycle. The store keeps the search
// index in sync transactionally; this service only prepares inputs
// (normalised text, duplicate checks) and delegates.
type PromptService struct {
	store      driven.PromptStore
	tags       driven.TagStore
	normaliser driven.Normaliser
}

// NewPromptService creates a new prompt service.
func NewPromptService(
	store driven.PromptStore,
	tags driven.TagStore,
	normaliser driven.Normaliser,
) *PromptService {
	return &PromptService{
		store:      store,
		tags:       tags,
		normaliser: normaliser,
	}
}

// Create stores a new prompt with its normalised text.
func (s *PromptService) Create(ctx context.Context, in driving.CreatePrompt) (*domain.Prompt, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}
	if in.MessageID == 0 {
		return nil, fmt.Errorf("%w: missing message id", domain.ErrInvalidInput)
	}

	existing, err := s.store.GetByMessageID(ctx, in.MessageID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking message id: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: message %d", domain.ErrAlreadyExists, in.MessageID)
	}

	p := &domain.Prompt{
		MessageID:      in.MessageID,
		ChannelID:      in.ChannelID,
		Text:           in.Text,
		NormalizedText: s.normaliser.Normalise(in.Text),
		Pinned:         in.Pinned,
		ImageURL:       in.ImageURL,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating prompt: %w", err)
	}
	return p, nil
}

// Get retrieves a live prompt.
func (s *PromptService) Get(ctx context.Context, id int64) (*domain.Prompt, error) {
	return s.store.Get(ctx, id)
}

// UpdateText replaces a prompt's text and recomputes its normalised form.
func (s *PromptService) UpdateText(ctx context.Context, id int64, text string) (*domain.Prompt, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}
	p, err := s.store.UpdateText(ctx, id, text, s.normaliser.Normalise(text))
	if err != nil {
		return nil, fmt.Errorf("updating text: %w", err)
	}
	return p, nil
}

// SetPinned pins or unpins a prompt.
func (s *PromptService) SetPinned(ctx context.Context, id int64, pinned bool) (*domain.Prompt, error) {
	return s.store.SetPinned(ctx, id, pinned)
}

// SetImage updates a prompt's image reference.
func (s *PromptService) SetImage(ctx context.Context, id int64, imageURL string) (*domain.Prompt, error) {
	return s.store.SetImage(ctx, id, imageURL)
}

// Delete soft-deletes a prompt.
func (s *PromptService) Delete(ctx context.Context, id int64) error {
	return s.store.SoftDelete(ctx, id)
}

// LinkTag attaches a tag to a prompt.
func (s *PromptService) LinkTag(ctx context.Context, promptID, tagID int64) error {
	if s.tags != nil {
		if _, err := s.tags.Get(ctx, tagID); err != nil {
			return fmt.Errorf("looking up tag %d: %w", tagID, err)
		}
	}
	return s.store.LinkTag(ctx, promptID, tagID)
}

// UnlinkTag detaches a tag from a prompt.
func (s *PromptService) UnlinkTag(ctx context.Context, promptID, tagID int64) error {
	return s.store.UnlinkTag(ctx, promptID, tagID)
}

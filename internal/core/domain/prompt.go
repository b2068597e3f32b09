package domain

import "time"

// Prompt represents a stored text prompt.
// It is the authoritative record; the search index only ever holds a
// derived copy of its searchable fields.
type Prompt struct {
	// ID is the unique identifier (database rowid).
	ID int64 `json:"id"`

	// MessageID is the originating Telegram message id. Unique and stable.
	MessageID int64 `json:"message_id"`

	// ChannelID is the originating Telegram channel id.
	ChannelID int64 `json:"channel_id"`

	// Text is the raw prompt text as received.
	Text string `json:"text"`

	// NormalizedText is Text passed through the search-text normaliser.
	// It is recomputed on every text update.
	NormalizedText string `json:"normalized_text"`

	// Pinned marks the prompt as pinned. Pinned prompts sort first in
	// listings and in the fallback search order.
	Pinned bool `json:"pinned"`

	// ImageURL is an optional reference to an attached image.
	ImageURL string `json:"image_url,omitempty"`

	// Tags are the currently linked tags.
	Tags []Tag `json:"tags,omitempty"`

	// CreatedAt is when the prompt was first stored.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the prompt was last modified.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt marks a soft-deleted prompt. The row is kept but the
	// prompt disappears from the index and from all reads.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Live reports whether the prompt has not been soft-deleted.
// Only live prompts have a search index entry.
func (p *Prompt) Live() bool {
	return p.DeletedAt == nil
}

package sqlite

import (
	"context"
	"fmt"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// tagBlobSubquery computes the space-joined tag names of a prompt,
// ascending by name so the blob is deterministic. Yields '' for a
// prompt with no tags.
const tagBlobSubquery = `COALESCE((
	SELECT GROUP_CONCAT(t.name, ' ' ORDER BY t.name)
	FROM tags t
	JOIN prompt_tags pt ON pt.tag_id = t.id
	WHERE pt.prompt_id = ?
), '')`

// indexSync keeps the derived prompts_fts table in lockstep with the
// prompts table. Every hook runs on the transaction of the triggering
// mutation; a hook failure is reported as domain.ErrIndexSync and must
// roll the whole mutation back. An index entry exists iff the prompt is
// live.
type indexSync struct{}

// onCreate inserts the index entry for a newly created prompt.
// A new prompt has no tags yet, so the blob starts empty.
func (indexSync) onCreate(ctx context.Context, tx querier, p *domain.Prompt) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO prompts_fts (rowid, prompt_id, text, normalized_text, tags)
		VALUES (?, ?, ?, ?, '')
	`, p.ID, p.ID, p.Text, p.NormalizedText)
	if err != nil {
		return fmt.Errorf("%w: inserting entry for prompt %d: %v", domain.ErrIndexSync, p.ID, err)
	}
	return nil
}

// onTextChanged refreshes the text fields of an existing entry.
// No-op when the prompt has no entry (soft-deleted).
func (indexSync) onTextChanged(ctx context.Context, tx querier, p *domain.Prompt) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE prompts_fts SET text = ?, normalized_text = ? WHERE rowid = ?
	`, p.Text, p.NormalizedText, p.ID)
	if err != nil {
		return fmt.Errorf("%w: updating entry for prompt %d: %v", domain.ErrIndexSync, p.ID, err)
	}
	return nil
}

// onSoftDeleted removes the entry of a soft-deleted prompt.
// Idempotent: deleting an absent entry is not an error.
func (indexSync) onSoftDeleted(ctx context.Context, tx querier, promptID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM prompts_fts WHERE rowid = ?`, promptID)
	if err != nil {
		return fmt.Errorf("%w: deleting entry for prompt %d: %v", domain.ErrIndexSync, promptID, err)
	}
	return nil
}

// onTagLinked recomputes the tag blob after a tag was linked.
func (s indexSync) onTagLinked(ctx context.Context, tx querier, promptID int64) error {
	return s.recomputeTags(ctx, tx, promptID)
}

// onTagUnlinked recomputes the tag blob after a tag was unlinked.
func (s indexSync) onTagUnlinked(ctx context.Context, tx querier, promptID int64) error {
	return s.recomputeTags(ctx, tx, promptID)
}

// recomputeTags rewrites the tag blob from the current association set.
// No-op when the prompt has no entry (soft-deleted).
func (indexSync) recomputeTags(ctx context.Context, tx querier, promptID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE prompts_fts SET tags = `+tagBlobSubquery+` WHERE rowid = ?
	`, promptID, promptID)
	if err != nil {
		return fmt.Errorf("%w: recomputing tag blob for prompt %d: %v", domain.ErrIndexSync, promptID, err)
	}
	return nil
}

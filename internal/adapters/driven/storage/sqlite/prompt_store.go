package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore implements driven.PromptStore. Every mutation runs in one
// transaction together with its index-sync hook, so the prompts table and
// the prompts_fts table never disagree across a completed call.
type PromptStore struct {
	store *Store
	sync  indexSync
}

// promptColumns is the scan list shared by all prompt reads.
const promptColumns = `id, tg_message_id, tg_channel_id, text, normalized_text,
	is_pinned, image_url, created_at, updated_at, deleted_at`

// Create stores a new prompt and its index entry.
func (s *PromptStore) Create(ctx context.Context, p *domain.Prompt) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := tx.ExecContext(ctx, `
		INSERT INTO prompts (tg_message_id, tg_channel_id, text, normalized_text,
			is_pinned, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.MessageID, p.ChannelID, p.Text, p.NormalizedText,
		p.Pinned, nullString(p.ImageURL), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("inserting prompt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading prompt id: %w", err)
	}
	p.ID = id

	if err := s.sync.onCreate(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpdateText replaces the text of a live prompt and refreshes its index
// entry within the same transaction.
func (s *PromptStore) UpdateText(ctx context.Context, id int64, text, normalizedText string) (*domain.Prompt, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `
		UPDATE prompts SET text = ?, normalized_text = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, text, normalizedText, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("updating prompt text: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}

	if err := s.sync.onTextChanged(ctx, tx, &domain.Prompt{ID: id, Text: text, NormalizedText: normalizedText}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return s.Get(ctx, id)
}

// SetPinned updates the pinned flag. The index carries no pin state.
func (s *PromptStore) SetPinned(ctx context.Context, id int64, pinned bool) (*domain.Prompt, error) {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE prompts SET is_pinned = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, pinned, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("updating pinned flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return s.Get(ctx, id)
}

// SetImage updates the image reference. Empty clears it.
func (s *PromptStore) SetImage(ctx context.Context, id int64, imageURL string) (*domain.Prompt, error) {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE prompts SET image_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, nullString(imageURL), time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("updating image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return s.Get(ctx, id)
}

// SoftDelete marks a live prompt deleted and removes its index entry.
// The prompt row persists.
func (s *PromptStore) SoftDelete(ctx context.Context, id int64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		UPDATE prompts SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, now, now, id)
	if err != nil {
		return fmt.Errorf("soft-deleting prompt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	if err := s.sync.onSoftDeleted(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LinkTag associates a tag with a live prompt and refreshes the tag blob.
// Linking an already-linked tag is a no-op.
func (s *PromptStore) LinkTag(ctx context.Context, promptID, tagID int64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := requireLivePrompt(ctx, tx, promptID); err != nil {
		return err
	}
	if err := requireTag(ctx, tx, tagID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO prompt_tags (prompt_id, tag_id) VALUES (?, ?)
	`, promptID, tagID); err != nil {
		return fmt.Errorf("linking tag: %w", err)
	}

	if err := s.sync.onTagLinked(ctx, tx, promptID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UnlinkTag removes a tag association and refreshes the tag blob.
// Unlinking an absent association is a no-op.
func (s *PromptStore) UnlinkTag(ctx context.Context, promptID, tagID int64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := requireLivePrompt(ctx, tx, promptID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM prompt_tags WHERE prompt_id = ? AND tag_id = ?
	`, promptID, tagID); err != nil {
		return fmt.Errorf("unlinking tag: %w", err)
	}

	if err := s.sync.onTagUnlinked(ctx, tx, promptID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a live prompt with its tags.
func (s *PromptStore) Get(ctx context.Context, id int64) (*domain.Prompt, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+promptColumns+` FROM prompts WHERE id = ? AND deleted_at IS NULL
	`, id)

	p, err := scanPrompt(row)
	if err != nil {
		return nil, err
	}

	tags, err := s.promptTags(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Tags = tags[p.ID]
	return p, nil
}

// GetByMessageID retrieves a prompt by message id, deleted or not.
func (s *PromptStore) GetByMessageID(ctx context.Context, messageID int64) (*domain.Prompt, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+promptColumns+` FROM prompts WHERE tg_message_id = ?
	`, messageID)

	p, err := scanPrompt(row)
	if err != nil {
		return nil, err
	}

	tags, err := s.promptTags(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Tags = tags[p.ID]
	return p, nil
}

// GetByIDs retrieves the live prompts among ids with their tags.
// The returned order is unspecified.
func (s *PromptStore) GetByIDs(ctx context.Context, ids []int64) ([]domain.Prompt, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + promptColumns + ` FROM prompts
		WHERE id IN (` + placeholders(len(ids)) + `) AND deleted_at IS NULL`

	rows, err := s.store.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("querying prompts: %w", err)
	}
	defer rows.Close()

	prompts, err := scanPrompts(rows)
	if err != nil {
		return nil, err
	}
	return s.attachTags(ctx, prompts)
}

// List returns live prompts matching the filter, pinned first then
// newest first, plus the pre-pagination total.
func (s *PromptStore) List(ctx context.Context, f driven.PromptFilter) ([]domain.Prompt, int, error) {
	where, args := filterClauses(f)

	total, err := s.countWhere(ctx, where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + promptColumns + ` FROM prompts ` + where + `
		ORDER BY is_pinned DESC, created_at DESC, id DESC`
	query, args = withPagination(query, args, f)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing prompts: %w", err)
	}
	defer rows.Close()

	prompts, err := scanPrompts(rows)
	if err != nil {
		return nil, 0, err
	}

	prompts, err = s.attachTags(ctx, prompts)
	if err != nil {
		return nil, 0, err
	}
	return prompts, total, nil
}

// CountLive returns the number of live prompts matching the filter.
func (s *PromptStore) CountLive(ctx context.Context, f driven.PromptFilter) (int, error) {
	where, args := filterClauses(f)
	return s.countWhere(ctx, where, args)
}

// SearchLike is the substring fallback search. Matches live prompts
// whose raw text contains query or whose normalised text contains
// normalizedQuery, case-insensitively. Never touches prompts_fts.
func (s *PromptStore) SearchLike(
	ctx context.Context, query, normalizedQuery string, f driven.PromptFilter,
) ([]domain.Prompt, int, error) {
	// Wildcards in the query must match literally.
	likeQuery := escapeLike(query)
	likeNormalized := escapeLike(normalizedQuery)

	where, args := filterClauses(f)
	where += ` AND (text LIKE '%' || ? || '%' ESCAPE '\' OR normalized_text LIKE '%' || ? || '%' ESCAPE '\')`
	args = append(args, likeQuery, likeNormalized)

	total, err := s.countWhere(ctx, where, args)
	if err != nil {
		return nil, 0, err
	}

	// Pinned first, then prefix matches on either text form, then newest.
	sel := `SELECT ` + promptColumns + ` FROM prompts ` + where + `
		ORDER BY is_pinned DESC,
			(text LIKE ? || '%' ESCAPE '\') DESC,
			(normalized_text LIKE ? || '%' ESCAPE '\') DESC,
			created_at DESC, id DESC`
	selArgs := append(append([]any{}, args...), likeQuery, likeNormalized)
	sel, selArgs = withPagination(sel, selArgs, f)

	rows, err := s.store.db.QueryContext(ctx, sel, selArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("fallback query: %w", err)
	}
	defer rows.Close()

	prompts, err := scanPrompts(rows)
	if err != nil {
		return nil, 0, err
	}

	prompts, err = s.attachTags(ctx, prompts)
	if err != nil {
		return nil, 0, err
	}
	return prompts, total, nil
}

// ==================== Helper Functions ====================

// escapeLike escapes LIKE metacharacters so they match literally.
// Pair with an ESCAPE '\' clause.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// filterClauses builds the shared WHERE clause for live prompts with
// tag (union) and pinned filters applied.
func filterClauses(f driven.PromptFilter) (string, []any) {
	where := "WHERE deleted_at IS NULL"
	var args []any

	if f.PinnedOnly != nil {
		where += " AND is_pinned = ?"
		args = append(args, *f.PinnedOnly)
	}
	if len(f.TagIDs) > 0 {
		where += ` AND id IN (SELECT prompt_id FROM prompt_tags
			WHERE tag_id IN (` + placeholders(len(f.TagIDs)) + `))`
		args = append(args, int64Args(f.TagIDs)...)
	}
	return where, args
}

// withPagination appends LIMIT/OFFSET when the filter asks for them.
func withPagination(query string, args []any, f driven.PromptFilter) (string, []any) {
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	if f.Skip > 0 {
		if f.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, f.Skip)
	}
	return query, args
}

// countWhere counts prompts matching an assembled WHERE clause.
func (s *PromptStore) countWhere(ctx context.Context, where string, args []any) (int, error) {
	var total int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM prompts "+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting prompts: %w", err)
	}
	return total, nil
}

// attachTags loads and attaches the tags of each prompt.
func (s *PromptStore) attachTags(ctx context.Context, prompts []domain.Prompt) ([]domain.Prompt, error) {
	if len(prompts) == 0 {
		return prompts, nil
	}

	ids := make([]int64, len(prompts))
	for i := range prompts {
		ids[i] = prompts[i].ID
	}

	tags, err := s.promptTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range prompts {
		prompts[i].Tags = tags[prompts[i].ID]
	}
	return prompts, nil
}

// promptTags loads the tags of the given prompts, ordered by name.
func (s *PromptStore) promptTags(ctx context.Context, promptIDs []int64) (map[int64][]domain.Tag, error) {
	query := `
		SELECT pt.prompt_id, t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN prompt_tags pt ON pt.tag_id = t.id
		WHERE pt.prompt_id IN (` + placeholders(len(promptIDs)) + `)
		ORDER BY t.name ASC`

	rows, err := s.store.db.QueryContext(ctx, query, int64Args(promptIDs)...)
	if err != nil {
		return nil, fmt.Errorf("querying prompt tags: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Tag)
	for rows.Next() {
		var promptID int64
		var t domain.Tag
		if err := rows.Scan(&promptID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning prompt tag: %w", err)
		}
		result[promptID] = append(result[promptID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prompt tags: %w", err)
	}
	return result, nil
}

// requireLivePrompt fails with ErrNotFound unless the prompt is live.
func requireLivePrompt(ctx context.Context, q querier, id int64) error {
	var one int
	err := q.QueryRowContext(ctx,
		"SELECT 1 FROM prompts WHERE id = ? AND deleted_at IS NULL", id).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking prompt: %w", err)
	}
	return nil
}

// requireTag fails with ErrNotFound unless the tag exists.
func requireTag(ctx context.Context, q querier, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM tags WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking tag: %w", err)
	}
	return nil
}

// scanPrompt scans a single prompt row.
func scanPrompt(row *sql.Row) (*domain.Prompt, error) {
	var p domain.Prompt
	var imageURL sql.NullString
	var deletedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.MessageID, &p.ChannelID, &p.Text, &p.NormalizedText,
		&p.Pinned, &imageURL, &p.CreatedAt, &p.UpdatedAt, &deletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning prompt: %w", err)
	}
	p.ImageURL = imageURL.String
	if deletedAt.Valid {
		t := deletedAt.Time
		p.DeletedAt = &t
	}
	return &p, nil
}

// scanPrompts scans prompt rows.
func scanPrompts(rows *sql.Rows) ([]domain.Prompt, error) {
	var prompts []domain.Prompt //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.Prompt
		var imageURL sql.NullString
		var deletedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.MessageID, &p.ChannelID, &p.Text, &p.NormalizedText,
			&p.Pinned, &imageURL, &p.CreatedAt, &p.UpdatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("scanning prompt: %w", err)
		}
		p.ImageURL = imageURL.String
		if deletedAt.Valid {
			t := deletedAt.Time
			p.DeletedAt = &t
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prompts: %w", err)
	}
	return prompts, nil
}

// nullString converts "" to NULL for optional columns.
func nullString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
)

var _ driven.TagStore = (*TagStore)(nil)

// TagStore implements driven.TagStore. Renaming or deleting a tag
// changes the tag blob of every linked prompt, so those mutations run
// in a transaction and refresh the affected index entries before
// committing.
type TagStore struct {
	store *Store
	sync  indexSync
}

// Create stores a new tag. Name and slug must be unique.
func (s *TagStore) Create(ctx context.Context, t *domain.Tag) error {
	t.CreatedAt = time.Now().UTC()

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO tags (name, slug, created_at) VALUES (?, ?, ?)
	`, t.Name, t.Slug, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("inserting tag: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading tag id: %w", err)
	}
	t.ID = id
	return nil
}

// Get retrieves a tag by id.
func (s *TagStore) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.getWhere(ctx, "id = ?", id)
}

// GetBySlug retrieves a tag by slug.
func (s *TagStore) GetBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	return s.getWhere(ctx, "slug = ?", slug)
}

// List returns all tags ordered by name.
func (s *TagStore) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, slug, created_at FROM tags ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

// ListWithCounts returns all tags with their live-prompt counts,
// most used first, ties by name.
func (s *TagStore) ListWithCounts(ctx context.Context) ([]domain.TagCount, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, t.created_at,
			COUNT(p.id) AS prompt_count
		FROM tags t
		LEFT JOIN prompt_tags pt ON pt.tag_id = t.id
		LEFT JOIN prompts p ON p.id = pt.prompt_id AND p.deleted_at IS NULL
		GROUP BY t.id
		ORDER BY prompt_count DESC, t.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing tag counts: %w", err)
	}
	defer rows.Close()

	var counts []domain.TagCount
	for rows.Next() {
		var tc domain.TagCount
		if err := rows.Scan(&tc.Tag.ID, &tc.Tag.Name, &tc.Tag.Slug,
			&tc.Tag.CreatedAt, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning tag count: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag counts: %w", err)
	}
	return counts, nil
}

// Rename changes a tag's name and slug, then refreshes the tag blob of
// every prompt the tag is linked to.
func (s *TagStore) Rename(ctx context.Context, id int64, name, slug string) (*domain.Tag, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `
		UPDATE tags SET name = ?, slug = ? WHERE id = ?
	`, name, slug, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("renaming tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}

	if err := s.refreshLinked(ctx, tx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a tag and all its links, then refreshes the tag blob
// of each formerly linked prompt. Prompts themselves are untouched.
func (s *TagStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	linked, err := linkedPromptIDs(ctx, tx, id)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	// prompt_tags rows are gone via ON DELETE CASCADE. Recompute the
	// blob for each prompt that carried the tag.
	for _, promptID := range linked {
		if err := s.sync.onTagUnlinked(ctx, tx, promptID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// refreshLinked recomputes the tag blob of every prompt linked to tagID.
func (s *TagStore) refreshLinked(ctx context.Context, tx *sql.Tx, tagID int64) error {
	linked, err := linkedPromptIDs(ctx, tx, tagID)
	if err != nil {
		return err
	}
	for _, promptID := range linked {
		if err := s.sync.onTagLinked(ctx, tx, promptID); err != nil {
			return err
		}
	}
	return nil
}

func linkedPromptIDs(ctx context.Context, q querier, tagID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT prompt_id FROM prompt_tags WHERE tag_id = ?", tagID)
	if err != nil {
		return nil, fmt.Errorf("querying tag links: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning tag link: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag links: %w", err)
	}
	return ids, nil
}

func (s *TagStore) getWhere(ctx context.Context, where string, arg any) (*domain.Tag, error) {
	var t domain.Tag
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id, name, slug, created_at FROM tags WHERE "+where, arg).
		Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying tag: %w", err)
	}
	return &t, nil
}

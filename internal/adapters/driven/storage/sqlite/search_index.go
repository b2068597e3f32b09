package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
)

var _ driven.SearchIndex = (*SearchIndex)(nil)

// SearchIndex implements driven.SearchIndex over the prompts_fts table.
// Every failure is wrapped as domain.ErrIndexUnavailable so callers can
// degrade to the substring fallback instead of surfacing FTS errors.
type SearchIndex struct {
	store *Store
}

// Search runs the ranked full-text query and returns matching prompt
// ids best first, plus the total match count before pagination.
//
// Ranking is three-tiered: an exact phrase hit in the tag blob scores
// 100, an exact phrase hit in the text columns scores 50, and any
// remaining prefix match scores 10. Ties break on bm25 relevance
// (lower is better), then on newest prompt first.
func (s *SearchIndex) Search(ctx context.Context, query string, f driven.PromptFilter) ([]int64, int, error) {
	matchExpr, tagMatch, textMatch := matchExpressions(query)

	where := `WHERE prompts_fts MATCH ? AND p.deleted_at IS NULL`
	filterArgs := []any{}
	if f.PinnedOnly != nil {
		where += " AND p.is_pinned = ?"
		filterArgs = append(filterArgs, *f.PinnedOnly)
	}
	if len(f.TagIDs) > 0 {
		where += ` AND p.id IN (SELECT prompt_id FROM prompt_tags
			WHERE tag_id IN (` + placeholders(len(f.TagIDs)) + `))`
		filterArgs = append(filterArgs, int64Args(f.TagIDs)...)
	}

	countQuery := `
		SELECT COUNT(*) FROM prompts_fts
		JOIN prompts p ON p.id = prompts_fts.rowid ` + where

	var total int
	countArgs := append([]any{matchExpr}, filterArgs...)
	if err := s.store.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, indexErr("counting matches", err)
	}

	selQuery := `
		SELECT prompts_fts.rowid,
			CASE
				WHEN prompts_fts.rowid IN
					(SELECT rowid FROM prompts_fts WHERE prompts_fts MATCH ?) THEN 100
				WHEN prompts_fts.rowid IN
					(SELECT rowid FROM prompts_fts WHERE prompts_fts MATCH ?) THEN 50
				ELSE 10
			END AS match_score,
			bm25(prompts_fts) AS rank_score
		FROM prompts_fts
		JOIN prompts p ON p.id = prompts_fts.rowid ` + where + `
		ORDER BY match_score DESC, rank_score ASC, p.created_at DESC, p.id DESC`

	selArgs := append([]any{tagMatch, textMatch, matchExpr}, filterArgs...)
	if f.Limit > 0 {
		selQuery += " LIMIT ?"
		selArgs = append(selArgs, f.Limit)
	}
	if f.Skip > 0 {
		if f.Limit <= 0 {
			selQuery += " LIMIT -1"
		}
		selQuery += " OFFSET ?"
		selArgs = append(selArgs, f.Skip)
	}

	rows, err := s.store.db.QueryContext(ctx, selQuery, selArgs...)
	if err != nil {
		return nil, 0, indexErr("querying index", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		var matchScore int
		var rankScore float64
		if err := rows.Scan(&id, &matchScore, &rankScore); err != nil {
			return nil, 0, indexErr("scanning match", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, indexErr("iterating matches", err)
	}
	return ids, total, nil
}

// Rebuild inserts index entries for every live prompt missing one.
// Existing entries are kept, so a rebuild after partial loss only
// fills the gaps. Returns the number of entries added.
func (s *SearchIndex) Rebuild(ctx context.Context) (int, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO prompts_fts (rowid, prompt_id, text, normalized_text, tags)
		SELECT p.id, p.id, p.text, p.normalized_text,
			COALESCE((SELECT GROUP_CONCAT(t.name, ' ' ORDER BY t.name)
				FROM tags t
				JOIN prompt_tags pt ON pt.tag_id = t.id
				WHERE pt.prompt_id = p.id), '')
		FROM prompts p
		WHERE p.deleted_at IS NULL
			AND p.id NOT IN (SELECT rowid FROM prompts_fts)
	`)
	if err != nil {
		return 0, indexErr("rebuilding index", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, indexErr("counting rebuilt entries", err)
	}
	return int(n), nil
}

// matchExpressions builds the three FTS5 match strings for a raw query:
// the broad expression (exact phrase with prefix, or plain prefix), the
// tag-column phrase probe and the text-column phrase probe. Double
// quotes are doubled so user input cannot break out of the phrase.
func matchExpressions(query string) (matchExpr, tagMatch, textMatch string) {
	esc := strings.ReplaceAll(query, `"`, `""`)
	matchExpr = fmt.Sprintf(`"%s"* OR %s*`, esc, esc)
	tagMatch = fmt.Sprintf(`tags : "%s"`, esc)
	textMatch = fmt.Sprintf(`text : "%s" OR normalized_text : "%s"`, esc, esc)
	return matchExpr, tagMatch, textMatch
}

func indexErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrIndexUnavailable, op, err)
}

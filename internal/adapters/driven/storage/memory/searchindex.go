package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
)

// Ensure SearchIndex implements the interface.
var _ driven.SearchIndex = (*SearchIndex)(nil)

// SearchIndex is the in-memory implementation of driven.SearchIndex.
// It reproduces the ranked path's contract: phrase/prefix matching over
// the derived entries, tier 100 for an exact tag phrase, 50 for an exact
// text phrase, 10 for partial matches, with term frequency standing in
// for BM25 as the in-tier tie-break.
type SearchIndex struct {
	store *Store
}

// scored is one ranked candidate before pagination.
type scored struct {
	id        int64
	tier      int
	relevance float64 // lower is better, mirroring BM25's ascending order
}

// Search matches query against the entries and returns ranked prompt ids
// plus the pre-pagination total.
func (s *SearchIndex) Search(_ context.Context, query string, f driven.PromptFilter) ([]int64, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	qTokens := strings.Fields(strings.ToLower(query))
	if len(qTokens) == 0 {
		return nil, 0, nil
	}

	var candidates []scored
	for id := range s.store.entries {
		e := s.store.entries[id]

		p, ok := s.store.prompts[id]
		if !ok || !p.Live() {
			continue
		}
		if !s.store.matchesFilter(&p, f.TagIDs, f.PinnedOnly) {
			continue
		}

		textTokens := strings.Fields(strings.ToLower(e.text))
		normTokens := strings.Fields(e.normalizedText)
		tagTokens := strings.Fields(strings.ToLower(e.tags))

		if !prefixPhraseMatch(textTokens, qTokens) &&
			!prefixPhraseMatch(normTokens, qTokens) &&
			!prefixPhraseMatch(tagTokens, qTokens) {
			continue
		}

		tier := 10
		switch {
		case exactPhraseMatch(tagTokens, qTokens):
			tier = 100
		case exactPhraseMatch(textTokens, qTokens):
			tier = 50
		}

		hits := countHits(textTokens, qTokens) +
			countHits(normTokens, qTokens) +
			countHits(tagTokens, qTokens)

		candidates = append(candidates, scored{
			id:        id,
			tier:      tier,
			relevance: -float64(hits),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.tier != b.tier {
			return a.tier > b.tier
		}
		if a.relevance != b.relevance {
			return a.relevance < b.relevance
		}
		pa, pb := s.store.prompts[a.id], s.store.prompts[b.id]
		return pa.CreatedAt.After(pb.CreatedAt)
	})

	total := len(candidates)

	if f.Skip >= len(candidates) {
		return []int64{}, total, nil
	}
	candidates = candidates[f.Skip:]
	if f.Limit > 0 && len(candidates) > f.Limit {
		candidates = candidates[:f.Limit]
	}

	ids := make([]int64, len(candidates))
	for i := range candidates {
		ids[i] = candidates[i].id
	}
	return ids, total, nil
}

// Rebuild inserts entries for live prompts missing one. Idempotent.
func (s *SearchIndex) Rebuild(_ context.Context) (int, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	inserted := 0
	for id := range s.store.prompts {
		p := s.store.prompts[id]
		if !p.Live() {
			continue
		}
		if _, ok := s.store.entries[id]; ok {
			continue
		}
		s.store.entries[id] = indexEntry{
			promptID:       id,
			text:           p.Text,
			normalizedText: p.NormalizedText,
			tags:           strings.Join(s.store.tagNames(id), " "),
		}
		inserted++
	}
	return inserted, nil
}

// prefixPhraseMatch reports whether the query tokens occur contiguously
// in tokens, with the last query token matching as a prefix.
func prefixPhraseMatch(tokens, query []string) bool {
	return phraseAt(tokens, query, true)
}

// exactPhraseMatch reports whether the query tokens occur contiguously
// in tokens with every token matching exactly.
func exactPhraseMatch(tokens, query []string) bool {
	return phraseAt(tokens, query, false)
}

func phraseAt(tokens, query []string, lastPrefix bool) bool {
	if len(query) == 0 || len(tokens) < len(query) {
		return false
	}
	for start := 0; start+len(query) <= len(tokens); start++ {
		ok := true
		for i, q := range query {
			tok := tokens[start+i]
			if lastPrefix && i == len(query)-1 {
				if !strings.HasPrefix(tok, q) {
					ok = false
				}
			} else if tok != q {
				ok = false
			}
			if !ok {
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// countHits counts tokens that any query token is a prefix of.
func countHits(tokens, query []string) int {
	hits := 0
	for _, tok := range tokens {
		for _, q := range query {
			if strings.HasPrefix(tok, q) {
				hits++
				break
			}
		}
	}
	return hits
}

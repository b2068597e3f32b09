package domain

// SearchQuery describes a single search or listing request.
type SearchQuery struct {
	// Query is the free-text query. Empty means "listing only":
	// no text matching, just filters and pagination.
	Query string

	// TagIDs filters to prompts linked to ANY of the given tags
	// (union semantics). Empty means no tag filter.
	TagIDs []int64

	// PinnedOnly filters on the pinned flag when non-nil.
	PinnedOnly *bool

	// Skip is the number of matches to skip. Must be >= 0.
	Skip int

	// Limit is the maximum number of items to return. Zero means
	// "use the configured default"; values are clamped to the
	// configured maximum.
	Limit int

	// UseIndex overrides the configured index preference when non-nil.
	// When the indexed path is disabled or fails, the substring
	// fallback serves the query instead.
	UseIndex *bool
}

// SearchPage is one page of hydrated search results.
type SearchPage struct {
	// Items are the matched prompts in final ranked order.
	Items []Prompt `json:"items"`

	// Total is the number of matches across all pages,
	// independent of Skip/Limit.
	Total int `json:"total"`
}

// SearchConfig carries the tunables the search facade is constructed with.
// It is passed explicitly; there is no global configuration.
type SearchConfig struct {
	// DefaultLimit is used when a query does not specify a limit.
	DefaultLimit int

	// MaxLimit caps the per-page limit.
	MaxLimit int

	// UseIndex selects the ranked index path by default.
	UseIndex bool
}

// DefaultSearchConfig returns the stock search configuration.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		DefaultLimit: 50,
		MaxLimit:     100,
		UseIndex:     true,
	}
}

package driven

// Normaliser canonicalises raw text for indexing and search.
//
// Normalise must be pure, total and idempotent:
// Normalise(Normalise(s)) == Normalise(s) for all s.
type Normaliser interface {
	// Normalise strips markdown markers, lowercases, collapses
	// whitespace runs and trims. Empty input yields "".
	Normalise(text string) string
}

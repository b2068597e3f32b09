// Package searchtext canonicalises prompt text for indexing and search.
//
// The normaliser flattens the markdown subset Telegram produces: links
// keep their text and lose their target, emphasis and code markers are
// stripped, heading markers are dropped. The result is lowercased with
// whitespace collapsed, so the same wording always indexes and queries
// identically regardless of formatting.
package searchtext

import (
	"regexp"
	"strings"

	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var (
	linkRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	boldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe  = regexp.MustCompile(`\*([^*]+)\*`)
	codeRe    = regexp.MustCompile("`([^`]+)`")
	headingRe = regexp.MustCompile(`#+\s*`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Normaliser canonicalises text for search.
type Normaliser struct{}

// New creates a new search-text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise strips markdown markers, lowercases, collapses whitespace
// runs to single spaces and trims. It is pure and idempotent; empty
// input yields "".
func (n *Normaliser) Normalise(text string) string {
	if text == "" {
		return ""
	}

	// Links [text](url) keep the text, drop the target.
	text = linkRe.ReplaceAllString(text, "$1")

	// Emphasis and code markers keep the inner text.
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")

	// Heading markers.
	text = headingRe.ReplaceAllString(text, "")

	text = strings.ToLower(strings.TrimSpace(text))
	text = spaceRe.ReplaceAllString(text, " ")

	return text
}

package searchtext

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalise_MarkdownStripping(t *testing.T) {
	n := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "link keeps text drops target",
			input:    "see [the docs](https://example.com/page)",
			expected: "see the docs",
		},
		{
			name:     "bold markers stripped",
			input:    "a **bold** statement",
			expected: "a bold statement",
		},
		{
			name:     "italic markers stripped",
			input:    "an *italic* word",
			expected: "an italic word",
		},
		{
			name:     "inline code markers stripped",
			input:    "run `go build` now",
			expected: "run go build now",
		},
		{
			name:     "heading markers stripped",
			input:    "## Heading Text",
			expected: "heading text",
		},
		{
			name:     "lowercased",
			input:    "Hello World",
			expected: "hello world",
		},
		{
			name:     "whitespace collapsed and trimmed",
			input:    "  too   many\n\nspaces  ",
			expected: "too many spaces",
		},
		{
			name:     "combined markup",
			input:    "# Title\n**Bold** and [link](http://x) with `code`",
			expected: "title bold and link with code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalise(tt.input))
		})
	}
}

func TestNormalise_EmptyInput(t *testing.T) {
	n := New()
	assert.Equal(t, "", n.Normalise(""))
	assert.Equal(t, "", n.Normalise("   "))
}

func TestNormalise_Idempotent(t *testing.T) {
	n := New()

	inputs := []string{
		"",
		"plain text",
		"Hello World",
		"# Title\n**Bold** and [link](http://x)",
		"  spaced   out  ",
		"`code` *and* **more**",
		"mixed # inline heading markers",
	}

	for _, in := range inputs {
		once := n.Normalise(in)
		assert.Equal(t, once, n.Normalise(once), "input %q", in)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Nature", "nature"},
		{"spaces to dashes", "Machine Learning", "machine-learning"},
		{"cyrillic transliterated", "Привет Мир", "privet-mir"},
		{"specials dropped", "C++ & Go!", "c-go"},
		{"dashes collapsed", "a -- b", "a-b"},
		{"underscores", "snake_case_name", "snake-case-name"},
		{"empty falls back", "!!!", "tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugify_LengthCapped(t *testing.T) {
	long := Slugify("this is a very long tag name that keeps going and going and going forever")
	assert.LessOrEqual(t, len(long), maxSlugLen)
	assert.NotEqual(t, "", long)
}

func TestSlugify_LengthCappedOnRuneBoundary(t *testing.T) {
	long := Slugify(strings.Repeat("日", maxSlugLen+10))
	assert.True(t, utf8.ValidString(long))
	assert.Equal(t, maxSlugLen, utf8.RuneCountInString(long))
}

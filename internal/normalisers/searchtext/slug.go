package searchtext

import (
	"regexp"
	"strings"
	"unicode"
)

// maxSlugLen caps generated slugs.
const maxSlugLen = 50

// translit maps Cyrillic letters to their latin spellings.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

var dashRe = regexp.MustCompile(`-+`)

// Slugify derives a URL-safe slug from a tag name: lowercase,
// Cyrillic transliterated, separators collapsed to single dashes,
// everything else non-alphanumeric dropped. Never returns "".
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case translit[r] != "" || r == 'ъ' || r == 'ь':
			b.WriteString(translit[r])
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}

	slug := dashRe.ReplaceAllString(b.String(), "-")
	slug = strings.Trim(slug, "-")

	if runes := []rune(slug); len(runes) > maxSlugLen {
		slug = strings.TrimRight(string(runes[:maxSlugLen]), "-")
	}
	if slug == "" {
		return "tag"
	}
	return slug
}

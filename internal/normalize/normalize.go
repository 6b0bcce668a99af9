// package normalize canonicalizes track titles and artist names for duplicate grouping.
//
// Normalization is deterministic and idempotent: feeding an already normalized
// string back through produces the same string.
package normalize

import (
	"regexp"
	"strings"
)

// qualifierWords is the fixed vocabulary of version qualifiers stripped from
// titles. Matching is case-insensitive because titles are lowercased first.
const qualifierWords = `remaster(?:ed)?|reissue|version|edit|mix|remix|mono|stereo|single|radio edit|album version`

var (
	whitespace       = regexp.MustCompile(`\s+`)
	parenQualifier   = regexp.MustCompile(`\s*\(([^)]*(?:` + qualifierWords + `)[^)]*)\)`)
	bracketQualifier = regexp.MustCompile(`\s*\[([^\]]*(?:` + qualifierWords + `)[^\]]*)\]`)
	dashQualifier    = regexp.MustCompile(`\s*-\s*(?:\d{4}\s*)?(?:` + qualifierWords + `)\b.*$`)
	trailingYear     = regexp.MustCompile(`\s*-\s*\d{4}$`)
)

// Title canonicalizes a track title for duplicate grouping:
// lowercase, unified dashes, collapsed whitespace, and common
// remaster/reissue/version qualifiers stripped in parenthesized,
// bracketed, and trailing "- 2011 Remaster" forms.
func Title(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "–", "-")
	name = strings.ReplaceAll(name, "—", "-")
	name = strings.TrimSpace(whitespace.ReplaceAllString(name, " "))

	name = parenQualifier.ReplaceAllString(name, "")
	name = bracketQualifier.ReplaceAllString(name, "")
	name = dashQualifier.ReplaceAllString(name, "")
	name = trailingYear.ReplaceAllString(name, "")

	name = whitespace.ReplaceAllString(name, " ")
	return strings.Trim(name, " -")
}

// Artist canonicalizes the main artist name for duplicate grouping.
// No qualifier stripping happens for artists.
func Artist(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// Key is the grouping key for duplicate detection: two tracks belong to the
// same group exactly when their normalized titles and artists both match.
type Key struct {
	Title  string
	Artist string
}

// NewKey builds a Key from a raw title and the primary artist name.
func NewKey(title, artist string) Key {
	return Key{Title: Title(title), Artist: Artist(artist)}
}

// String renders the key for ordering and display.
func (k Key) String() string {
	return k.Title + "|" + k.Artist
}

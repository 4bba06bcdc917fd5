package teamname

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopTokens are generic club-type words that carry no identity when
// matching. Matched as whole tokens only.
var stopTokens = map[string]struct{}{
	"fc": {}, "ec": {}, "ac": {}, "sc": {}, "afc": {}, "cf": {}, "club": {}, "clube": {},
}

// NormalizeKey reduces a raw name to the ASCII lowercase lookup key used by
// the alias table. It is idempotent and total.
func NormalizeKey(raw string) string {
	s := Clean(raw)
	if s == "" {
		return ""
	}
	s = toASCIILower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.':
			return ' '
		}
		return r
	}, s)

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, tok := range fields {
		if _, stop := stopTokens[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Clean trims the name, unifies dashes and quotes, drops punctuation other
// than - / ( ) & and collapses whitespace. Case and diacritics are kept, so
// the result is suitable for display.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		r = unifyRune(r)
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.Is(unicode.Mn, r):
			b.WriteRune(r)
		case r == '-', r == '/', r == '(', r == ')', r == '&':
			b.WriteRune(r)
		}
	}
	return collapseWhitespace(b.String())
}

func unifyRune(r rune) rune {
	switch r {
	case '‐', '‑', '‒', '–', '—', '―',
		'−', '﹘', '﹣', '－':
		return '-'
	case '‘', '’', '‚', '‛', '′', 'ʼ', '`', '´',
		'“', '”', '„':
		return '\''
	}
	return r
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// asciiFold covers Latin letters that have no canonical decomposition.
var asciiFold = map[rune]string{
	'ø': "o", 'Ø': "o",
	'ß': "ss",
	'æ': "ae", 'Æ': "ae",
	'œ': "oe", 'Œ': "oe",
	'đ': "d", 'Đ': "d",
	'ł': "l", 'Ł': "l",
	'þ': "th", 'Þ': "th",
	'ð': "d", 'Ð': "d",
	'ı': "i",
}

func toASCIILower(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if rep, ok := asciiFold[r]; ok {
			b.WriteString(rep)
		}
	}
	return collapseWhitespace(b.String())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Slug renders a name as a lowercase ASCII slug: "&" becomes "and" and runs
// of anything other than letters and digits become a single '-'.
func Slug(name string) string {
	s := toASCIILower(strings.ReplaceAll(name, "&", " and "))
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

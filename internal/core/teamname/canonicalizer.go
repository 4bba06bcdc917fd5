package teamname

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// upperTokens render fully upper-case in fallback display names:
// Brazilian federative units, age groups and club-type abbreviations.
var upperTokens = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
	"U17": {}, "U19": {}, "U20": {}, "U21": {}, "U23": {},
	"FC": {}, "EC": {}, "AFC": {}, "CF": {},
}

// Resolution is the outcome of canonicalizing one raw name.
type Resolution struct {
	Input   string
	Key     string
	Name    string
	Matched bool // true when the alias table supplied Name
}

// Canonicalizer resolves raw names against an injected AliasTable.
type Canonicalizer struct {
	table *AliasTable
}

func New(table *AliasTable) *Canonicalizer {
	if table == nil {
		table = NewAliasTable()
	}
	return &Canonicalizer{table: table}
}

func (c *Canonicalizer) Table() *AliasTable { return c.table }

// Canonicalize returns the canonical display name for raw.
func (c *Canonicalizer) Canonicalize(raw string) string {
	return c.Resolve(raw).Name
}

// Resolve looks raw up by its normalized key and falls back to a cleaned,
// title-cased rendering of the input when no alias exists.
func (c *Canonicalizer) Resolve(raw string) Resolution {
	key := NormalizeKey(raw)
	if name, ok := c.table.Lookup(key); ok {
		return Resolution{Input: raw, Key: key, Name: name, Matched: true}
	}
	return Resolution{Input: raw, Key: key, Name: TitleCase(Clean(raw))}
}

// TitleCase capitalizes each word of an already cleaned name. Words are
// split further on '-' and '/', so "atletico-pr" becomes "Atletico-PR".
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	var b strings.Builder
	b.Grow(len(w))
	start := 0
	for i, r := range w {
		if r == '-' || r == '/' {
			b.WriteString(titleSegment(w[start:i]))
			b.WriteRune(r)
			start = i + 1
		}
	}
	b.WriteString(titleSegment(w[start:]))
	return b.String()
}

func titleSegment(seg string) string {
	if seg == "" {
		return ""
	}
	alnum := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, seg)
	if _, ok := upperTokens[alnum]; ok {
		return strings.ToUpper(seg)
	}

	// Only the first letter changes; the rest keeps the input's casing.
	for i, r := range seg {
		if unicode.IsLetter(r) {
			return seg[:i] + string(unicode.ToUpper(r)) + seg[i+utf8.RuneLen(r):]
		}
	}
	return seg
}

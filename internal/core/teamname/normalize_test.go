package teamname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only spaces", input: "   \t ", want: ""},
		{name: "only punctuation", input: "!!!", want: ""},
		{name: "stoplist suffix", input: "  Avaí FC ", want: "avai"},
		{name: "stoplist only", input: "FC", want: ""},
		{name: "stoplist is whole-token", input: "FCB Porto", want: "fcb porto"},
		{name: "clube prefix", input: "Clube do Remo", want: "do remo"},
		{name: "slash becomes space", input: "Botafogo/SP", want: "botafogo sp"},
		{name: "en dash unified", input: "Atlético–GO", want: "atletico-go"},
		{name: "em dash unified", input: "Atlético—GO", want: "atletico-go"},
		{name: "periods dropped", input: "A.C. Milan", want: "milan"},
		{name: "curly apostrophe dropped", input: "Nott’m Forest", want: "nottm forest"},
		{name: "parentheses kept", input: "Paysandu (PA)", want: "paysandu (pa)"},
		{name: "ampersand kept", input: "Brighton & Hove Albion", want: "brighton & hove albion"},
		{name: "nbsp collapsed", input: "São\u00a0 Paulo", want: "sao paulo"},
		{name: "zero width space dropped", input: "Vila\u200b Nova", want: "vila nova"},
		{name: "decomposed accent", input: "Ava\u0301i", want: "avai"},
		{name: "cedilla", input: "Beşiktaş", want: "besiktas"},
		{name: "slashed o", input: "Bodø/Glimt", want: "bodo glimt"},
		{name: "sharp s", input: "Straße", want: "strasse"},
		{name: "upper case", input: "ATLETICO-PR", want: "atletico-pr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeKey(tt.input))
		})
	}
}

func TestNormalizeKey_Idempotent(t *testing.T) {
	t.Parallel()

	corpus := []string{
		"", " ", "FC", "fc fc fc", "Avaí FC", "Clube do Remo", "A.C. Milan",
		"Botafogo/SP", "Botafogo\\SP", "Paysandu (PA)", "Nott’m Forest", "Atlético–GO",
		"Brighton & Hove Albion", "São Paulo", "Bodø/Glimt", "1. FC Köln",
		"  ---  ", "(fc)", "U20 Brasil", "北京国安", "Ölüdeniz SC / AC", "x . fc . y",
	}
	for _, s := range corpus {
		once := NormalizeKey(s)
		assert.Equal(t, once, NormalizeKey(once), "input %q", s)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "  Avaí   FC ", want: "Avaí FC"},
		{input: "Atlético–GO", want: "Atlético-GO"},
		{input: "A.C. Milan", want: "AC Milan"},
		{input: "Paysandu (PA)", want: "Paysandu (PA)"},
		{input: "Botafogo/SP", want: "Botafogo/SP"},
		{input: "Nott`m Forest!", want: "Nottm Forest"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.input), "input %q", tt.input)
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "São Paulo", want: "sao-paulo"},
		{input: "Botafogo-SP", want: "botafogo-sp"},
		{input: "Brighton & Hove Albion", want: "brighton-and-hove-albion"},
		{input: "  Paysandu (PA) ", want: "paysandu-pa"},
		{input: "--Remo--", want: "remo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.input), "input %q", tt.input)
	}
}

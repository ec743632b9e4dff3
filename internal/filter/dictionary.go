package filter

import (
	"strings"
	"unicode"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/retroenv/retrogolib/set"
	"golang.org/x/text/unicode/norm"
)

// DictionaryWord rewards text that contains known words. The bonus grows
// linearly with the fraction of matching tokens and reaches the full bonus
// when FullMatchRatio of the tokens are known.
type DictionaryWord struct {
	Words          set.Set[string]
	Bonus          float64
	FullMatchRatio float64
	MinTokens      int
}

// NewDictionaryWord returns the dictionary filter using the built-in
// common word list.
func NewDictionaryWord() DictionaryWord {
	return DictionaryWord{
		Words:          commonWords,
		Bonus:          1.0,
		FullMatchRatio: 0.5,
		MinTokens:      2,
	}
}

// Name implements the Filter interface.
func (f DictionaryWord) Name() string { return "dictionary_word" }

// Score returns a bonus proportional to the fraction of known tokens.
// Texts with fewer than MinTokens tokens score 0.
func (f DictionaryWord) Score(c *candidate.TextCandidate) float64 {
	tokens := Tokenize(c.Text())
	if len(tokens) < f.MinTokens || len(tokens) == 0 {
		return 0.0
	}

	var matches int
	for _, token := range tokens {
		if f.Words.Contains(token) {
			matches++
		}
	}

	fraction := float64(matches) / float64(len(tokens))
	return f.Bonus * min(1.0, fraction/f.FullMatchRatio)
}

// Tokenize splits text on whitespace and returns the lowercase tokens with
// leading and trailing punctuation removed. Tokens without letters or
// digits are skipped.
func Tokenize(text string) []string {
	fields := strings.Fields(norm.NFKC.String(text))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimFunc(strings.ToLower(field), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

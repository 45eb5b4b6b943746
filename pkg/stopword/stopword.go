// Package stopword removes configured stop tokens from cleaned query
// remainders. Protected phrases are never filtered.
package stopword

// Set is a stop-token lookup set. Tokens are compared by exact value, so
// callers should populate it with already-normalized tokens.
type Set map[string]bool

// NewSet builds a Set from the given words.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}

// Contains reports whether tok is a stop token.
func (s Set) Contains(tok string) bool {
	return s[tok]
}

// Filter returns the tokens not present in the set, preserving order.
// A nil or empty set passes everything through.
func (s Set) Filter(tokens []string) []string {
	if len(s) == 0 || len(tokens) == 0 {
		return tokens
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !s[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// DefaultEnglish returns a small curated set of common English function words.
func DefaultEnglish() Set {
	return NewSet(
		"the", "of", "and", "a", "an",
		"to", "in", "on", "for", "at", "by",
		"is", "it", "as", "be", "was",
		"are", "been", "with", "from", "into",
		"that", "this", "has", "have", "had",
		"do", "does", "did", "i", "you", "we",
	)
}

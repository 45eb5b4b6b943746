// Package textnorm canonicalizes and tokenizes query text.
// All comparisons downstream ("is this the same query") happen on the
// normalized form produced here.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// wordPattern matches a run of letters/digits, optionally joined to a second
// run by a single internal hyphen or apostrophe ("pre-clear", "don't").
// Compiled once; FindAllString is safe for concurrent use.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['-][\p{L}\p{N}]+)?`)

// Normalize applies Unicode canonical normalization (NFC), case folding and
// whitespace trimming. It is idempotent and total.
func Normalize(text string) string {
	folded := cases.Fold().String(norm.NFC.String(text))
	return strings.TrimSpace(folded)
}

// Tokenize normalizes text and extracts word-like tokens, discarding
// punctuation and whitespace. Tokens never contain whitespace and are never
// empty.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(Normalize(text), -1)
}

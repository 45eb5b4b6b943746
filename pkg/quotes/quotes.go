// Package quotes classifies quotation balance in raw query input and extracts
// user-quoted spans as protected phrases.
package quotes

import (
	"strings"
)

const (
	escape     = '\\'
	straight   = '"'
	curlyOpen  = '“'
	curlyClose = '”'
)

// Result is the outcome of analyzing one raw input.
type Result struct {
	// Phrases holds the trimmed inner text of each quoted span, in input
	// order, verbatim (not normalized). Empty when quotes are unbalanced.
	Phrases []string
	// Remainder is the unquoted text (balanced case) or the input with all
	// quote characters stripped and whitespace collapsed (unbalanced case).
	Remainder string
	Balanced  bool
}

// Analyze checks quote balance and splits the input into protected phrases
// plus the unquoted remainder. It is total: malformed quoting degrades to
// quote stripping, never an error.
func Analyze(input string) Result {
	rs := []rune(input)
	if !balanced(rs) {
		return Result{Remainder: stripQuotes(input)}
	}
	phrases, remainder := extract(rs)
	return Result{Phrases: phrases, Remainder: remainder, Balanced: true}
}

// balanced requires an even number of unescaped straight quotes and matching
// counts of curly open/close marks. The two families are counted
// independently.
func balanced(rs []rune) bool {
	var straights, opens, closes int
	for i, r := range rs {
		switch r {
		case straight:
			if !escapedAt(rs, i) {
				straights++
			}
		case curlyOpen:
			opens++
		case curlyClose:
			closes++
		}
	}
	return straights%2 == 0 && opens == closes
}

func escapedAt(rs []rune, i int) bool {
	return i > 0 && rs[i-1] == escape
}

// extract walks the input once, pulling out quoted spans. An opener with no
// later closer of the same family is emitted into the remainder as a literal
// character (possible when the families offset each other in the balance
// check); it never aborts the scan.
func extract(rs []rune) ([]string, string) {
	var phrases []string
	var rem strings.Builder
	i := 0
	for i < len(rs) {
		var closer rune
		switch {
		case rs[i] == straight && !escapedAt(rs, i):
			closer = straight
		case rs[i] == curlyOpen:
			closer = curlyClose
		default:
			rem.WriteRune(rs[i])
			i++
			continue
		}

		end := -1
		for j := i + 1; j < len(rs); j++ {
			if rs[j] == closer && !(closer == straight && escapedAt(rs, j)) {
				end = j
				break
			}
		}
		if end == -1 {
			rem.WriteRune(rs[i])
			i++
			continue
		}

		inner := strings.TrimSpace(string(rs[i+1 : end]))
		if inner != "" {
			phrases = append(phrases, inner)
		}
		i = end + 1
	}
	return phrases, strings.TrimSpace(rem.String())
}

// stripQuotes deletes every quote character and collapses whitespace runs.
func stripQuotes(input string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case straight, curlyOpen, curlyClose:
			return -1
		}
		return r
	}, input)
	return strings.Join(strings.Fields(cleaned), " ")
}

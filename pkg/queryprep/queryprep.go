// Package queryprep turns free-text user input into an OR-joined, quote-exact
// query string for downstream full-text search backends. It preserves
// user-quoted phrases, strips stop words from the remainder, and augments the
// query with known utterances found by a token-level Aho-Corasick pass.
package queryprep

import (
	"fmt"
	"strings"

	"github.com/kittclouds/queryprep/pkg/automaton"
	"github.com/kittclouds/queryprep/pkg/quotes"
	"github.com/kittclouds/queryprep/pkg/stopword"
	"github.com/kittclouds/queryprep/pkg/textnorm"
)

// separator joins the wrapped clauses of the final query string.
const separator = " OR "

// NormalizeFunc canonicalizes text for comparison. Must be pure and total.
type NormalizeFunc func(string) string

// TokenizeFunc splits text into word-like tokens. Must be pure and total.
type TokenizeFunc func(string) []string

// WrapFunc decorates one escaped clause before joining.
type WrapFunc func(string) string

// DefaultWrap brackets a clause between slashes.
func DefaultWrap(clause string) string {
	return "/" + clause + "/"
}

// PreparedQuery is the result of one Prepare call. All fields are call-local;
// nothing is shared with the Builder.
type PreparedQuery struct {
	OriginalInput    string
	ProtectedPhrases []string
	CleanedTokens    []string
	CleanedText      string
	UtteranceMatches []string
	// QueryString is empty exactly when the trimmed input was empty.
	QueryString         string
	HadUnbalancedQuotes bool
}

type config struct {
	stops                stopword.Set
	utterances           []string
	tokenized            [][]string
	normalize            NormalizeFunc
	tokenize             TokenizeFunc
	wrap                 WrapFunc
	matcher              automaton.Matcher
	alwaysIncludeCleaned bool
}

// Option configures a Builder at construction time.
type Option func(*config)

// WithStopWords sets the tokens excluded from the cleaned remainder.
func WithStopWords(words ...string) Option {
	return func(c *config) { c.stops = stopword.NewSet(words...) }
}

// WithStopWordSet sets the stop set directly.
func WithStopWordSet(s stopword.Set) Option {
	return func(c *config) { c.stops = s }
}

// WithUtterances registers phrases from raw strings, tokenized internally
// with the builder's tokenizer.
func WithUtterances(phrases ...string) Option {
	return func(c *config) { c.utterances = append(c.utterances, phrases...) }
}

// WithTokenizedUtterances registers already-tokenized phrases, skipping the
// internal tokenization pass.
func WithTokenizedUtterances(phrases [][]string) Option {
	return func(c *config) { c.tokenized = append(c.tokenized, phrases...) }
}

// WithNormalize overrides the default normalizer.
func WithNormalize(fn NormalizeFunc) Option {
	return func(c *config) { c.normalize = fn }
}

// WithTokenize overrides the default tokenizer.
func WithTokenize(fn TokenizeFunc) Option {
	return func(c *config) { c.tokenize = fn }
}

// WithWrap overrides the default clause wrapper.
func WithWrap(fn WrapFunc) Option {
	return func(c *config) { c.wrap = fn }
}

// WithMatcher adopts an externally built matcher. No phrases are inserted and
// no build pass runs; the structure is trusted as already valid.
func WithMatcher(m automaton.Matcher) Option {
	return func(c *config) { c.matcher = m }
}

// WithAlwaysIncludeCleaned emits the cleaned-text clause even when it is
// identical to the normalized input.
func WithAlwaysIncludeCleaned() Option {
	return func(c *config) { c.alwaysIncludeCleaned = true }
}

// Builder prepares queries. It is immutable after New and safe for concurrent
// use; Prepare allocates only call-local data.
type Builder struct {
	stops                stopword.Set
	normalize            NormalizeFunc
	tokenize             TokenizeFunc
	wrap                 WrapFunc
	matcher              automaton.Matcher
	alwaysIncludeCleaned bool
}

// New constructs a Builder. With no options it has no stop words, no
// utterances, the textnorm defaults, and the slash wrapper.
func New(opts ...Option) *Builder {
	cfg := config{
		normalize: textnorm.Normalize,
		tokenize:  textnorm.Tokenize,
		wrap:      DefaultWrap,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	matcher := cfg.matcher
	if matcher == nil {
		ac := automaton.New()
		for _, toks := range cfg.tokenized {
			ac.Insert(toks)
		}
		for _, p := range cfg.utterances {
			ac.Insert(cfg.tokenize(p))
		}
		ac.Build()
		matcher = ac
	}

	return &Builder{
		stops:                cfg.stops,
		normalize:            cfg.normalize,
		tokenize:             cfg.tokenize,
		wrap:                 cfg.wrap,
		matcher:              matcher,
		alwaysIncludeCleaned: cfg.alwaysIncludeCleaned,
	}
}

// Prepare runs the full pipeline on one raw input. It is total: malformed
// quoting degrades gracefully and is reported via HadUnbalancedQuotes.
func (b *Builder) Prepare(rawInput string) PreparedQuery {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return PreparedQuery{}
	}

	qr := quotes.Analyze(rawInput)
	cleanedTokens := b.stops.Filter(b.tokenize(qr.Remainder))
	cleanedText := strings.Join(cleanedTokens, " ")
	matches := b.matcher.Match(cleanedTokens)

	// Clause order: raw input, cleaned text, protected phrases, utterances.
	// Escaping happens before dedup so equal clauses collapse reliably.
	clauses := make([]string, 0, 2+len(qr.Phrases)+len(matches))
	clauses = append(clauses, EscapeClause(trimmed))
	if cleanedText != "" && (b.alwaysIncludeCleaned || cleanedText != b.normalize(trimmed)) {
		clauses = append(clauses, EscapeClause(cleanedText))
	}
	if qr.Balanced {
		for _, p := range qr.Phrases {
			clauses = append(clauses, EscapeClause(p))
		}
	}
	for _, m := range matches {
		clauses = append(clauses, EscapeClause(m))
	}

	seen := make(map[string]bool, len(clauses))
	wrapped := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if seen[c] {
			continue
		}
		seen[c] = true
		wrapped = append(wrapped, b.wrap(c))
	}

	return PreparedQuery{
		OriginalInput:       rawInput,
		ProtectedPhrases:    qr.Phrases,
		CleanedTokens:       cleanedTokens,
		CleanedText:         cleanedText,
		UtteranceMatches:    matches,
		QueryString:         strings.Join(wrapped, separator),
		HadUnbalancedQuotes: !qr.Balanced,
	}
}

// EscapeClause wraps text in double quotes, doubling every backslash and
// prefixing every embedded double quote with a backslash.
func EscapeClause(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `"`, `\"`)
	return `"` + text + `"`
}

// UnescapeClause reverses EscapeClause.
func UnescapeClause(clause string) (string, error) {
	if len(clause) < 2 || clause[0] != '"' || clause[len(clause)-1] != '"' {
		return "", fmt.Errorf("clause %q is not quote-wrapped", clause)
	}
	inner := clause[1 : len(clause)-1]
	var out strings.Builder
	out.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' {
			i++
			if i >= len(inner) {
				return "", fmt.Errorf("clause %q has a dangling escape", clause)
			}
		}
		out.WriteByte(inner[i])
	}
	return out.String(), nil
}

// Package automaton implements exact multi-pattern matching over token
// sequences: a trie keyed by whole tokens plus failure links (Aho-Corasick
// generalized from bytes to tokens). Built once, immutable afterwards, and
// matched in a single linear pass.
package automaton

import (
	"sort"
	"strings"
)

// Matcher finds registered phrases inside a cleaned token sequence.
// Implementations must be read-only after construction so a single value can
// serve concurrent callers. Externally built matchers are adopted as-is; the
// caller vouches for their invariants.
type Matcher interface {
	// Match returns the canonical strings of every registered phrase found
	// in tokens, keeping only the longest match per start position,
	// deduplicated, sorted by descending length then ascending lexicographic
	// order.
	Match(tokens []string) []string
}

// phrase is one registered pattern. The id is its index in the phrases slice
// and never changes once assigned.
type phrase struct {
	text string // space-joined canonical form
	size int    // token count
}

// node is one automaton state. States live in a flat arena indexed by id,
// avoiding pointer cycles between children and failure links. State 0 is the
// root; its failure link is itself.
type node struct {
	next map[string]int
	fail int
	// out holds the phrase ids recognized when this state is reached,
	// including ids inherited through the failure chain (folded in at build
	// time, breadth-first, so every failure target is final before its
	// dependents union it in).
	out []int
}

// TokenAutomaton is the trie + failure-link matcher.
type TokenAutomaton struct {
	nodes   []node
	phrases []phrase
	ids     map[string]int // canonical phrase -> id, dedups inserts
	built   bool
}

var _ Matcher = (*TokenAutomaton)(nil)

// New creates an empty automaton holding only the root state.
func New() *TokenAutomaton {
	return &TokenAutomaton{
		nodes: []node{{next: make(map[string]int)}},
		ids:   make(map[string]int),
	}
}

// Len returns the number of distinct registered phrases.
func (a *TokenAutomaton) Len() int {
	return len(a.phrases)
}

// Insert registers a phrase given as a token sequence. Re-inserting a phrase
// with the same canonical string is a no-op; empty sequences are ignored.
// Insert must not be called after Build.
func (a *TokenAutomaton) Insert(tokens []string) {
	if len(tokens) == 0 || a.built {
		return
	}
	canonical := strings.Join(tokens, " ")
	if _, dup := a.ids[canonical]; dup {
		return
	}
	id := len(a.phrases)
	a.phrases = append(a.phrases, phrase{text: canonical, size: len(tokens)})
	a.ids[canonical] = id

	cur := 0
	for _, tok := range tokens {
		child, ok := a.nodes[cur].next[tok]
		if !ok {
			child = len(a.nodes)
			a.nodes = append(a.nodes, node{next: make(map[string]int)})
			a.nodes[cur].next[tok] = child
		}
		cur = child
	}
	a.nodes[cur].out = append(a.nodes[cur].out, id)
}

// Build computes failure links and propagates output sets breadth-first.
// Afterwards the automaton is frozen; further Inserts are ignored.
func (a *TokenAutomaton) Build() {
	if a.built {
		return
	}
	a.built = true

	queue := make([]int, 0, len(a.nodes))
	for _, child := range a.nodes[0].next {
		queue = append(queue, child) // depth-1 fail is already root
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for tok, child := range a.nodes[cur].next {
			queue = append(queue, child)

			// Walk the parent's failure chain until a state has a
			// transition on tok, or the root is reached.
			f := a.nodes[cur].fail
			for {
				if target, ok := a.nodes[f].next[tok]; ok {
					a.nodes[child].fail = target
					break
				}
				if f == 0 {
					break
				}
				f = a.nodes[f].fail
			}
			a.nodes[child].out = append(a.nodes[child].out, a.nodes[a.nodes[child].fail].out...)
		}
	}
}

// Match scans tokens once, O(len(tokens) + matches).
func (a *TokenAutomaton) Match(tokens []string) []string {
	if len(tokens) == 0 || len(a.phrases) == 0 {
		return nil
	}

	// Per start index, keep the candidate with the largest end seen so far:
	// at a fixed start a larger end means a longer phrase.
	bestEnd := make(map[int]int)
	bestID := make(map[int]int)

	cur := 0
	for i, tok := range tokens {
		for {
			if next, ok := a.nodes[cur].next[tok]; ok {
				cur = next
				break
			}
			if cur == 0 {
				break
			}
			cur = a.nodes[cur].fail
		}
		for _, id := range a.nodes[cur].out {
			start := i - a.phrases[id].size + 1
			if start < 0 {
				continue
			}
			if end, ok := bestEnd[start]; !ok || i > end {
				bestEnd[start] = i
				bestID[start] = id
			}
		}
	}
	if len(bestID) == 0 {
		return nil
	}

	// Distinct starts can retain the same phrase text; dedup before sorting.
	seen := make(map[string]bool, len(bestID))
	out := make([]string, 0, len(bestID))
	for _, id := range bestID {
		text := a.phrases[id].text
		if !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

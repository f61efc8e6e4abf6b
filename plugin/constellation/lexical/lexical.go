// Package lexical computes textual relatedness between thoughts: token-set
// Jaccard similarity, batch word frequency, and prevalence scoring. Pure
// functions, no state.
package lexical

import (
	"math"
	"sort"
	"strings"
)

// Tokenize lowercases text and splits it on whitespace. Duplicates are kept;
// callers that need set semantics use TokenSet.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// TokenSet returns the distinct lowercase tokens of text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// Similarity computes the Jaccard index of the two texts' token sets.
// Returns 0 when either text is empty. Symmetric, and 1 for identical
// non-empty texts. No stemming and no stopword removal at this layer.
func Similarity(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var intersection int
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// WordFrequency tallies qualifying tokens over a batch of thoughts.
type WordFrequency map[string]int

// BuildWordFrequency counts qualifying tokens (length > 2, not a stopword)
// over all texts in the batch. Computed once per analysis run.
func BuildWordFrequency(texts []string) WordFrequency {
	freq := make(WordFrequency)
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			if !Qualifies(tok) {
				continue
			}
			freq[tok]++
		}
	}
	return freq
}

// TopWords returns up to limit words with count >= minCount, ordered by
// count descending with alphabetical tie-break for determinism.
func (f WordFrequency) TopWords(limit, minCount int) []string {
	type entry struct {
		word  string
		count int
	}
	entries := make([]entry, 0, len(f))
	for word, count := range f {
		if count >= minCount {
			entries = append(entries, entry{word, count})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].word < entries[j].word
	})

	if limit > len(entries) {
		limit = len(entries)
	}
	words := make([]string, 0, limit)
	for _, e := range entries[:limit] {
		words = append(words, e.word)
	}
	return words
}

// Qualifies reports whether a token participates in frequency and prevalence
// statistics.
func Qualifies(tok string) bool {
	return len(tok) > 2 && !IsStopword(tok)
}

// Prevalence scores a thought's importance from global word frequency:
// the mean of ln(freq+1) over its qualifying tokens. A thought with no
// qualifying tokens scores exactly 0.
func Prevalence(text string, freq WordFrequency) float64 {
	var total float64
	var qualifying int
	for _, tok := range Tokenize(text) {
		if !Qualifies(tok) {
			continue
		}
		qualifying++
		total += math.Log(float64(freq[tok]) + 1)
	}
	if qualifying == 0 {
		return 0
	}
	return total / float64(qualifying)
}

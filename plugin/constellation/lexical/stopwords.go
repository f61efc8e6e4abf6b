package lexical

// stopwords is the fixed set excluded from word-frequency and prevalence
// statistics. The Jaccard similarity layer deliberately does not use it.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
		"her", "was", "one", "our", "out", "day", "get", "has", "him", "his",
		"how", "man", "new", "now", "old", "see", "two", "way", "who", "its",
		"did", "yes", "with", "have", "this", "will", "your", "from", "they",
		"know", "want", "been", "good", "much", "some", "time", "very", "when",
		"come", "here", "just", "like", "long", "make", "many", "more", "only",
		"over", "such", "take", "than", "them", "well", "were", "what", "that",
		"into", "about", "would", "there", "their", "which", "could", "other",
		"after", "first", "never", "these", "think", "where", "being", "every",
		"those", "should", "because", "between", "really", "something", "things",
	} {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether the lowercase token is in the fixed stopword set.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// Package merge collapses highly similar thoughts into composite nodes with
// synthesized narrative text.
//
// The algorithm is a single greedy ordered scan with an explicit consumed
// set: the first unconsumed node anchors a group, claims every later
// unconsumed node above the threshold, and removes all of them from
// consideration. The result therefore depends on input order; a stable input
// order makes it fully deterministic, which is a documented property of the
// product, not a bug.
package merge

import (
	"fmt"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/lexical"
)

// Run merges nodes whose pairwise similarity with a group anchor exceeds
// threshold. Nodes must already carry connections and prevalence. The
// returned slice contains standalone nodes unchanged plus one composite node
// per merge group, in anchor order.
func Run(nodes []constellation.Node, threshold float64, cfg constellation.Config) []constellation.Node {
	consumed := make(map[string]bool, len(nodes))
	out := make([]constellation.Node, 0, len(nodes))

	for i := range nodes {
		if consumed[nodes[i].ID] {
			continue
		}
		consumed[nodes[i].ID] = true

		group := []constellation.Node{nodes[i]}
		for j := i + 1; j < len(nodes); j++ {
			if consumed[nodes[j].ID] {
				continue
			}
			if lexical.Similarity(nodes[i].Text, nodes[j].Text) > threshold {
				consumed[nodes[j].ID] = true
				group = append(group, nodes[j])
			}
		}

		if len(group) == 1 {
			out = append(out, nodes[i])
			continue
		}
		out = append(out, combine(group, cfg))
	}
	return out
}

// combine builds the composite node for a merge group of two or more members.
func combine(group []constellation.Node, cfg constellation.Config) constellation.Node {
	memberIDs := make([]string, 0, len(group))
	memberSet := make(map[string]bool, len(group))
	texts := make([]string, 0, len(group))
	var prevalenceSum float64
	for _, m := range group {
		memberIDs = append(memberIDs, m.ID)
		memberSet[m.ID] = true
		texts = append(texts, m.Text)
		prevalenceSum += m.Prevalence
	}

	// Union of member connections, minus siblings consumed into this group.
	var connections []string
	seen := make(map[string]bool)
	for _, m := range group {
		for _, id := range m.Connections {
			if memberSet[id] || seen[id] {
				continue
			}
			seen[id] = true
			connections = append(connections, id)
		}
	}

	radius := cfg.MergedRadiusBase + prevalenceSum*cfg.MergedRadiusScale
	if radius < cfg.MinMergedRadius {
		radius = cfg.MinMergedRadius
	}
	if radius > cfg.MaxMergedRadius {
		radius = cfg.MaxMergedRadius
	}

	anchor := group[0]
	node := constellation.Node{
		Thought: constellation.Thought{
			ID:           "merge-" + shortuuid.New(),
			Text:         strings.Join(texts, " • "),
			Color:        anchor.Color,
			DocumentName: anchor.DocumentName,
			DocumentDate: anchor.DocumentDate,
			X:            anchor.X,
			Y:            anchor.Y,
		},
		Connections: connections,
		Prevalence:  prevalenceSum / float64(len(group)),
		BaseRadius:  radius,
		Radius:      radius,
		IsMerged:    true,
		MergedIDs:   memberIDs,
		Synthesis:   Synthesis(texts),
	}
	return node
}

// Synthesis renders the narrative for a merge group. Themes are the top-3
// tokens longer than three characters that appear in more than one member's
// text, ranked by frequency; "these ideas" when no token repeats across
// members.
func Synthesis(texts []string) string {
	if len(texts) == 1 {
		return texts[0]
	}

	themes := sharedThemes(texts, 3)
	themeLabel := "these ideas"
	if len(themes) > 0 {
		themeLabel = strings.Join(themes, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This cluster explores %s, connecting %d related thoughts:", themeLabel, len(texts))
	for i, text := range texts {
		fmt.Fprintf(&b, " (%d) %s", i+1, text)
	}
	return b.String()
}

// sharedThemes extracts up to limit case-folded tokens (length > 3) that
// occur in at least two member texts, ordered by total frequency descending
// with alphabetical tie-break.
func sharedThemes(texts []string, limit int) []string {
	totalCount := make(map[string]int)
	memberCount := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]bool)
		for _, tok := range lexical.Tokenize(text) {
			if len(tok) <= 3 {
				continue
			}
			totalCount[tok]++
			if !seen[tok] {
				seen[tok] = true
				memberCount[tok]++
			}
		}
	}

	shared := lexical.WordFrequency{}
	for tok, members := range memberCount {
		if members > 1 {
			shared[tok] = totalCount[tok]
		}
	}
	return shared.TopWords(limit, 1)
}

// Package insight derives human-readable narration from the analyzed
// thought network: detected patterns, a synthesis paragraph, next-step
// suggestions, and reflective path questions. Everything here is a pure,
// deterministic function of the node set and the batch word frequency; the
// only randomness in the pipeline lives in the layout jitter.
package insight

import (
	"fmt"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/lexical"
)

// Insights is the full narration bundle for one snapshot.
type Insights struct {
	Synthesis   string                     `json:"synthesis"`
	Patterns    []constellation.Pattern    `json:"patterns"`
	Suggestions []string                   `json:"suggestions"`
	Questions   []string                   `json:"questions"`
	Stats       constellation.NetworkStats `json:"stats"`
}

// Generate produces the complete narration for the current node set
// (post-merge, post-density). An empty node set yields the documented
// fallback synthesis and empty collections.
func Generate(nodes []constellation.Node, freq lexical.WordFrequency) *Insights {
	if len(nodes) == 0 {
		return &Insights{
			Synthesis:   emptySynthesis,
			Patterns:    []constellation.Pattern{},
			Suggestions: []string{},
			Questions:   []string{},
		}
	}

	stats := networkStats(nodes)
	patterns := DetectPatterns(nodes, freq)
	return &Insights{
		Synthesis:   Synthesize(nodes, freq, stats),
		Patterns:    patterns,
		Suggestions: Suggest(nodes, freq, stats),
		Questions:   PathQuestions(nodes),
		Stats:       stats,
	}
}

const emptySynthesis = "Your constellation is empty. Start adding thoughts and patterns will emerge across your days."

// networkStats summarizes the graph for narration and for the optional
// narrative provider.
func networkStats(nodes []constellation.Node) constellation.NetworkStats {
	stats := constellation.NetworkStats{NodeCount: len(nodes)}
	totalConnections := 0
	for i := range nodes {
		totalConnections += len(nodes[i].Connections)
		if nodes[i].IsMerged {
			stats.MergedCount++
		}
		if nodes[i].IsIsolated() {
			stats.IsolatedCount++
		}
		if len(nodes[i].Connections) >= hubConnectionCount {
			stats.HubCount++
		}
	}
	// Symmetric storage counts each edge twice.
	stats.EdgeCount = totalConnections / 2
	if len(nodes) > 0 {
		stats.AvgConnections = float64(totalConnections) / float64(len(nodes))
	}
	return stats
}

// truncate shortens text to maxLen runes for headlines, CJK-safe.
func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

func fmtPct(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

package insight

import (
	"fmt"
	"strings"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/lexical"
)

// Synthesize assembles the templated narrative paragraph for the network.
// Deterministic given identical node and frequency state.
func Synthesize(nodes []constellation.Node, freq lexical.WordFrequency, stats constellation.NetworkStats) string {
	var b strings.Builder

	// Opening, banded by how much material there is to talk about.
	switch {
	case stats.NodeCount < 5:
		fmt.Fprintf(&b, "Your constellation holds %d thoughts, still early and full of open space.", stats.NodeCount)
	case stats.NodeCount < 15:
		fmt.Fprintf(&b, "Your constellation spans %d thoughts and a shape is starting to show.", stats.NodeCount)
	default:
		fmt.Fprintf(&b, "Your constellation has grown to %d thoughts, a rich field with clear structure.", stats.NodeCount)
	}

	if themes := freq.TopWords(3, themeMinFrequency); len(themes) > 0 {
		fmt.Fprintf(&b, " Your mind keeps returning to %s.", strings.Join(themes, ", "))
	}

	if dense := densestNode(nodes); dense != nil {
		fmt.Fprintf(&b, " The busiest region centers on \"%s\".", truncate(dense.Text, 50))
	}

	if hubs := HubNodes(nodes); len(hubs) > 0 {
		fmt.Fprintf(&b, " \"%s\" anchors the network, tied to %d other thoughts.", truncate(hubs[0].Text, 50), len(hubs[0].Connections))
	}

	if stats.NodeCount > 0 {
		isolationRatio := float64(stats.IsolatedCount) / float64(stats.NodeCount)
		fmt.Fprintf(&b, " %s of your thoughts stand alone, while the rest average %.1f connections each.",
			fmtPct(isolationRatio), stats.AvgConnections)
	}

	b.WriteString(" ")
	b.WriteString(nextStep(nodes, freq, stats))
	return b.String()
}

// nextStep picks the closing suggestion by fixed priority.
func nextStep(nodes []constellation.Node, freq lexical.WordFrequency, stats constellation.NetworkStats) string {
	switch {
	case stats.HubCount >= 2 && stats.IsolatedCount > 0:
		return "Next step: try linking your standalone thoughts to one of your hubs and see whether they belong to an existing theme."
	case denseCount(nodes) > 0 && stats.IsolatedCount > 5:
		return "Next step: your dense clusters are pulling attention while many thoughts drift alone; revisit the loners and decide which cluster claims them."
	case len(freq.TopWords(3, themeMinFrequency)) >= 3:
		return "Next step: your recurring themes are strong enough to name; give each one a thought of its own."
	default:
		return "Next step: keep adding thoughts and let the constellation reveal where they pull together."
	}
}

// densestNode returns the node with the highest touch count among dense
// nodes, or nil when no node qualifies.
func densestNode(nodes []constellation.Node) *constellation.Node {
	var best *constellation.Node
	for i := range nodes {
		if nodes[i].TouchCount < denseTouchCount {
			continue
		}
		if best == nil || nodes[i].TouchCount > best.TouchCount {
			best = &nodes[i]
		}
	}
	return best
}

func denseCount(nodes []constellation.Node) int {
	count := 0
	for i := range nodes {
		if nodes[i].TouchCount >= denseTouchCount {
			count++
		}
	}
	return count
}

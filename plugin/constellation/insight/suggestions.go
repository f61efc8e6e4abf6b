package insight

import (
	"fmt"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/lexical"
)

// Suggest returns short actionable strings selected by independent threshold
// checks; several can fire at once. When none fires, a single default
// encouragement is returned.
func Suggest(nodes []constellation.Node, freq lexical.WordFrequency, stats constellation.NetworkStats) []string {
	suggestions := []string{}

	if stats.NodeCount > 0 {
		isolationRatio := float64(stats.IsolatedCount) / float64(stats.NodeCount)
		if isolationRatio > 0.3 {
			suggestions = append(suggestions,
				fmt.Sprintf("Over %s of your thoughts are unconnected. Try rephrasing a few of them with words you already use elsewhere.", fmtPct(isolationRatio)))
		}
	}

	if stats.HubCount > 0 && stats.IsolatedCount > 0 {
		suggestions = append(suggestions,
			"You have both hubs and loners. Drag a standalone thought next to a hub and see if it sticks.")
	}

	if stats.NodeCount < 10 {
		suggestions = append(suggestions,
			"Your constellation is still small. A handful of new thoughts will give the patterns more to work with.")
	}

	if stats.HubCount >= 2 {
		suggestions = append(suggestions,
			fmt.Sprintf("%d hub thoughts are organizing your space. Consider splitting each hub into its own document.", stats.HubCount))
	}

	if words := freq.TopWords(1, themeMinFrequency); len(words) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("\"%s\" is your most frequent word. Is it a theme worth exploring on purpose?", words[0]))
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"Keep jotting. Constellations appear when thoughts accumulate.")
	}
	return suggestions
}

package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/lexical"
)

const (
	// denseTouchCount is the touch count at which a node belongs to a dense
	// cluster.
	denseTouchCount = 3
	// hubConnectionCount is the connection count at which a node is a hub.
	hubConnectionCount = 3
	// themeWordLimit caps the theme pattern's word list.
	themeWordLimit = 5
	// themeMinFrequency is the minimum batch frequency for a theme word.
	themeMinFrequency = 2
)

// DetectPatterns emits every non-empty structural pattern: dense clusters,
// hubs, isolated thoughts, and recurring themes, in that order.
func DetectPatterns(nodes []constellation.Node, freq lexical.WordFrequency) []constellation.Pattern {
	patterns := []constellation.Pattern{}

	if p, ok := denseClusterPattern(nodes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := hubPattern(nodes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := isolatedPattern(nodes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := themePattern(freq); ok {
		patterns = append(patterns, p)
	}
	return patterns
}

func denseClusterPattern(nodes []constellation.Node) (constellation.Pattern, bool) {
	var ids []string
	for i := range nodes {
		if nodes[i].TouchCount >= denseTouchCount {
			ids = append(ids, nodes[i].ID)
		}
	}
	if len(ids) == 0 {
		return constellation.Pattern{}, false
	}
	return constellation.Pattern{
		Type:        constellation.PatternCluster,
		Title:       "Dense cluster forming",
		Description: fmt.Sprintf("%d thoughts are crowding the same space, a sign they belong to one evolving idea.", len(ids)),
		ThoughtIDs:  ids,
	}, true
}

func hubPattern(nodes []constellation.Node) (constellation.Pattern, bool) {
	hubs := HubNodes(nodes)
	if len(hubs) == 0 {
		return constellation.Pattern{}, false
	}
	ids := make([]string, 0, len(hubs))
	for _, h := range hubs {
		ids = append(ids, h.ID)
	}
	top := hubs[0]
	return constellation.Pattern{
		Type:        constellation.PatternHub,
		Title:       fmt.Sprintf("Hub: %s", truncate(top.Text, 50)),
		Description: fmt.Sprintf("%d thoughts act as hubs; the strongest links %d other thoughts together.", len(hubs), len(top.Connections)),
		ThoughtIDs:  ids,
	}, true
}

func isolatedPattern(nodes []constellation.Node) (constellation.Pattern, bool) {
	var ids []string
	for i := range nodes {
		if nodes[i].IsIsolated() {
			ids = append(ids, nodes[i].ID)
		}
	}
	if len(ids) == 0 {
		return constellation.Pattern{}, false
	}
	return constellation.Pattern{
		Type:        constellation.PatternIsolated,
		Title:       "Standalone thoughts",
		Description: fmt.Sprintf("%d thoughts have no connections yet. They may be seeds of new themes.", len(ids)),
		ThoughtIDs:  ids,
	}, true
}

func themePattern(freq lexical.WordFrequency) (constellation.Pattern, bool) {
	words := freq.TopWords(themeWordLimit, themeMinFrequency)
	if len(words) == 0 {
		return constellation.Pattern{}, false
	}
	return constellation.Pattern{
		Type:        constellation.PatternTheme,
		Title:       "Recurring themes",
		Description: fmt.Sprintf("Words that keep coming back: %s.", strings.Join(words, ", ")),
	}, true
}

// HubNodes returns nodes with at least hubConnectionCount connections,
// sorted by connection count descending; ties keep input order.
func HubNodes(nodes []constellation.Node) []constellation.Node {
	var hubs []constellation.Node
	for i := range nodes {
		if len(nodes[i].Connections) >= hubConnectionCount {
			hubs = append(hubs, nodes[i])
		}
	}
	sort.SliceStable(hubs, func(i, j int) bool {
		return len(hubs[i].Connections) > len(hubs[j].Connections)
	})
	return hubs
}

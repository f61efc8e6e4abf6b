// Package graph builds the lexical connection graph between thought nodes
// and discovers its connected components.
package graph

import (
	"strings"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/lexical"
)

// BuildConnections populates every node's connection list from pairwise text
// similarity above the fixed threshold. Adjacency is stored symmetric: both
// directions are inserted together, so BFS traversal never depends on the
// similarity function staying symmetric.
func BuildConnections(nodes []constellation.Node, threshold float64) []constellation.Node {
	adjacency := make(map[string]map[string]struct{}, len(nodes))
	for i := range nodes {
		adjacency[nodes[i].ID] = make(map[string]struct{})
	}

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if lexical.Similarity(nodes[i].Text, nodes[j].Text) > threshold {
				adjacency[nodes[i].ID][nodes[j].ID] = struct{}{}
				adjacency[nodes[j].ID][nodes[i].ID] = struct{}{}
			}
		}
	}

	for i := range nodes {
		ids := adjacency[nodes[i].ID]
		conns := make([]string, 0, len(ids))
		// Preserve input order for reproducibility rather than map order.
		for j := range nodes {
			if i == j {
				continue
			}
			if _, ok := ids[nodes[j].ID]; ok {
				conns = append(conns, nodes[j].ID)
			}
		}
		nodes[i].Connections = conns
	}
	return nodes
}

// Components discovers connectivity clusters via breadth-first traversal
// over the connection sets. Each cluster is named after the first ~20
// characters of its most prevalent member's text; ties keep the earlier
// node.
func Components(nodes []constellation.Node) []constellation.ConnectivityCluster {
	index := make(map[string]int, len(nodes))
	for i := range nodes {
		index[nodes[i].ID] = i
	}

	visited := make(map[string]bool, len(nodes))
	// Non-nil so an empty analysis serializes as an empty list, not null.
	clusters := []constellation.ConnectivityCluster{}

	for i := range nodes {
		if visited[nodes[i].ID] {
			continue
		}

		var memberIdx []int
		queue := []string{nodes[i].ID}
		visited[nodes[i].ID] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			idx, ok := index[id]
			if !ok {
				// Dangling reference, e.g. a connection to a merged-away id.
				continue
			}
			memberIdx = append(memberIdx, idx)
			for _, next := range nodes[idx].Connections {
				if visited[next] {
					continue
				}
				if _, ok := index[next]; !ok {
					continue
				}
				visited[next] = true
				queue = append(queue, next)
			}
		}

		top := memberIdx[0]
		ids := make([]string, 0, len(memberIdx))
		for _, idx := range memberIdx {
			ids = append(ids, nodes[idx].ID)
			if nodes[idx].Prevalence > nodes[top].Prevalence {
				top = idx
			}
		}
		clusters = append(clusters, constellation.ConnectivityCluster{
			Name:       clusterName(nodes[top].Text),
			ThoughtIDs: ids,
		})
	}
	return clusters
}

// clusterName truncates the representative text to roughly 20 characters,
// rune-safe so CJK text is not cut mid-character.
func clusterName(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > 20 {
		return string(runes[:20]) + "..."
	}
	return text
}

// Package constellation contains the shared data model for the
// constellation analysis pipeline. Subpackages (lexical, graph, merge,
// density, layout, insight) operate on these types and never persist them:
// everything here is recomputed from the source thoughts on every run.
package constellation

import (
	"time"
)

// Thought is a single user-authored text snippet with a canvas position.
// It is the immutable input of one analysis pass; the source of truth lives
// in document storage.
type Thought struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Color        string    `json:"color,omitempty"`
	DocumentName string    `json:"document_name,omitempty"`
	DocumentDate time.Time `json:"document_date,omitempty"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	Size         float64   `json:"size,omitempty"`
}

// Node is the in-memory analysis representation of a thought (or a merged
// group of thoughts) during one constellation session.
type Node struct {
	Thought

	// Connections holds ids of lexically related nodes. Storage is forced
	// symmetric: inserting i->j always inserts j->i as well.
	Connections []string `json:"connections"`

	Prevalence float64 `json:"prevalence"`

	// BaseRadius is frozen once computed from prevalence (or from the merge
	// group); Radius is BaseRadius scaled by local density and is recomputed
	// together with TouchCount on every position change.
	BaseRadius float64 `json:"base_radius"`
	Radius     float64 `json:"radius"`
	TouchCount int     `json:"touch_count"`

	IsMerged  bool     `json:"is_merged,omitempty"`
	MergedIDs []string `json:"merged_ids,omitempty"`
	Synthesis string   `json:"synthesis,omitempty"`

	// TargetX/TargetY are set only after a layout pass; the tick loop eases
	// X/Y toward them.
	TargetX *float64 `json:"target_x,omitempty"`
	TargetY *float64 `json:"target_y,omitempty"`
}

// IsIsolated reports whether the node has no connections, independent of
// whether it was merged.
func (n *Node) IsIsolated() bool {
	return len(n.Connections) == 0
}

// ConnectivityCluster is a connected component of the connection graph,
// used to pick a layout strategy. Distinct from DensityCluster.
type ConnectivityCluster struct {
	Name       string   `json:"name"`
	ThoughtIDs []string `json:"thought_ids"`
	CenterX    float64  `json:"center_x"`
	CenterY    float64  `json:"center_y"`
}

// DensityCluster is the informal set of nodes with high touch count, used
// only for insight narration.
type DensityCluster struct {
	ThoughtIDs []string `json:"thought_ids"`
}

// PatternType enumerates the detected pattern kinds.
type PatternType string

const (
	PatternCluster  PatternType = "cluster"
	PatternHub      PatternType = "hub"
	PatternIsolated PatternType = "isolated"
	PatternTheme    PatternType = "theme"
)

// Pattern is a detected structural pattern in the thought network.
type Pattern struct {
	Type        PatternType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ThoughtIDs  []string    `json:"thought_ids"`
}

// StrongConnection is an unordered pair of node ids flagged for emphasized
// rendering. A and B are stored in canonical order (A < B) so that the pair
// identity is stable under serialization.
type StrongConnection struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewStrongConnection builds the canonical form of an unordered pair.
func NewStrongConnection(a, b string) StrongConnection {
	if b < a {
		a, b = b, a
	}
	return StrongConnection{A: a, B: b}
}

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NetworkStats summarizes the analyzed graph for narration and for the
// optional narrative provider.
type NetworkStats struct {
	NodeCount      int     `json:"node_count"`
	EdgeCount      int     `json:"edge_count"`
	MergedCount    int     `json:"merged_count"`
	IsolatedCount  int     `json:"isolated_count"`
	HubCount       int     `json:"hub_count"`
	AvgConnections float64 `json:"avg_connections"`
}

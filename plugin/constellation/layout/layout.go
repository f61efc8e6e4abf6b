// Package layout computes non-overlapping(ish) 2D target positions for the
// thought network ("connect the dots"). Layout is stateless per call: it
// reads only the current node/connection snapshot and returns fresh
// positions; easing toward them is the caller's concern.
package layout

import (
	"context"
	"math"
	"sort"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/graph"
)

// Rand is the source of placement jitter. Injectable so tests can run the
// engine with a fixed seed.
type Rand interface {
	Float64() float64
}

// Result is the layout output. The shape matches the layout-as-a-service
// boundary so in-process and remote implementations are interchangeable.
type Result struct {
	Positions         map[string]constellation.Position   `json:"positions"`
	Clusters          []constellation.ConnectivityCluster `json:"clusters"`
	StrongConnections []constellation.StrongConnection    `json:"strong_connections"`
}

// Service is the layout boundary. The in-process Engine and any remote
// layout provider implement the same contract.
type Service interface {
	Layout(ctx context.Context, nodes []constellation.Node, width, height, padding float64) (*Result, error)
}

// Engine is the in-process layout implementation.
type Engine struct {
	rng Rand
}

// New creates an Engine with the given jitter source.
func New(rng Rand) *Engine {
	return &Engine{rng: rng}
}

// band is the jitter distance range for neighbor-centroid placement. Smaller
// bands for strategies that pack many clusters into small cells.
type band struct {
	min      float64
	span     float64
	ringStep float64
}

var (
	bandSingle   = band{min: 120, span: 80, ringStep: 48}
	bandTwo      = band{min: 100, span: 60, ringStep: 40}
	bandQuadrant = band{min: 90, span: 50, ringStep: 36}
	bandGrid     = band{min: 70, span: 40, ringStep: 30}
)

// Layout implements Service.
func (e *Engine) Layout(_ context.Context, nodes []constellation.Node, width, height, padding float64) (*Result, error) {
	result := &Result{
		Positions:         make(map[string]constellation.Position),
		StrongConnections: []constellation.StrongConnection{},
	}
	if len(nodes) == 0 {
		result.Clusters = []constellation.ConnectivityCluster{}
		return result, nil
	}

	byID := make(map[string]int, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = i
	}

	clusters := graph.Components(nodes)

	// Strategy is chosen purely by cluster count.
	var anchors []constellation.Position
	var b band
	clamp := false
	switch n := len(clusters); {
	case n == 1:
		anchors = []constellation.Position{{X: width / 2, Y: height / 2}}
		b = bandSingle
		clamp = true
	case n == 2:
		anchors = []constellation.Position{
			{X: width * 0.25, Y: height / 2},
			{X: width * 0.75, Y: height / 2},
		}
		b = bandTwo
	case n <= 4:
		anchors = []constellation.Position{
			{X: width * 0.25, Y: height * 0.25},
			{X: width * 0.75, Y: height * 0.25},
			{X: width * 0.25, Y: height * 0.75},
			{X: width * 0.75, Y: height * 0.75},
		}
		b = bandQuadrant
	default:
		cols := int(math.Ceil(math.Sqrt(float64(n))))
		rows := (n + cols - 1) / cols
		cellW := width / float64(cols)
		cellH := height / float64(rows)
		for i := 0; i < n; i++ {
			col := i % cols
			row := i / cols
			anchors = append(anchors, constellation.Position{
				X: cellW*float64(col) + cellW/2,
				Y: cellH*float64(row) + cellH/2,
			})
		}
		b = bandGrid
	}

	for ci := range clusters {
		anchor := anchors[ci%len(anchors)]
		clusters[ci].CenterX = anchor.X
		clusters[ci].CenterY = anchor.Y
		e.placeCluster(&clusters[ci], anchor, b, nodes, byID, result.Positions)
	}

	if clamp {
		for id, pos := range result.Positions {
			result.Positions[id] = constellation.Position{
				X: clampTo(pos.X, padding, width-padding),
				Y: clampTo(pos.Y, padding, height-padding),
			}
		}
	}

	result.Clusters = clusters
	result.StrongConnections = strongConnections(nodes)
	return result, nil
}

// placeCluster positions one connectivity cluster. The most prevalent member
// anchors the cluster center; each later member is placed near the centroid
// of its already-placed connected neighbors at a random angle within the
// strategy's distance band, or on an expanding ring around the center when
// no neighbor has been placed yet.
func (e *Engine) placeCluster(cluster *constellation.ConnectivityCluster, anchor constellation.Position, b band, nodes []constellation.Node, byID map[string]int, positions map[string]constellation.Position) {
	members := make([]int, 0, len(cluster.ThoughtIDs))
	for _, id := range cluster.ThoughtIDs {
		if idx, ok := byID[id]; ok {
			members = append(members, idx)
		}
	}
	sort.SliceStable(members, func(i, j int) bool {
		return nodes[members[i]].Prevalence > nodes[members[j]].Prevalence
	})

	ringCount := 0
	for rank, idx := range members {
		node := &nodes[idx]
		if rank == 0 {
			positions[node.ID] = anchor
			continue
		}

		var cx, cy float64
		var placedNeighbors int
		for _, connID := range node.Connections {
			if pos, ok := positions[connID]; ok {
				cx += pos.X
				cy += pos.Y
				placedNeighbors++
			}
		}

		if placedNeighbors > 0 {
			cx /= float64(placedNeighbors)
			cy /= float64(placedNeighbors)
			angle := e.rng.Float64() * 2 * math.Pi
			dist := b.min + e.rng.Float64()*b.span
			positions[node.ID] = constellation.Position{
				X: cx + math.Cos(angle)*dist,
				Y: cy + math.Sin(angle)*dist,
			}
			continue
		}

		// Ring fallback: increasing angle as more unconnected members land,
		// stepping outward one ring per full turn.
		angle := float64(ringCount) * (math.Pi / 4)
		radius := b.min + b.span + float64(ringCount/8)*b.ringStep
		positions[node.ID] = constellation.Position{
			X: anchor.X + math.Cos(angle)*radius,
			Y: anchor.Y + math.Sin(angle)*radius,
		}
		ringCount++
	}
}

// strongConnections collects emphasized pairs: every node with at least
// three connections nominates its first three; pairs are deduplicated by
// unordered identity.
func strongConnections(nodes []constellation.Node) []constellation.StrongConnection {
	seen := make(map[constellation.StrongConnection]bool)
	pairs := []constellation.StrongConnection{}
	for i := range nodes {
		if len(nodes[i].Connections) < 3 {
			continue
		}
		for _, connID := range nodes[i].Connections[:3] {
			pair := constellation.NewStrongConnection(nodes[i].ID, connID)
			if seen[pair] {
				continue
			}
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

func clampTo(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

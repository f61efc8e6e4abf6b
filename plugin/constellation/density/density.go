// Package density computes per-node touch counts and density-scaled radii.
package density

import (
	"math"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

// Apply recomputes TouchCount and Radius for every node in place.
//
// TouchCount is derived from BaseRadius (pre-scaling) so that growing a
// radius cannot increase the touch count and feed back into the radius.
// Radius never drops below cfg.MinRadius. Must be re-run on every position
// change; results are not cached across moves.
func Apply(nodes []constellation.Node, factor float64, cfg constellation.Config) {
	for i := range nodes {
		touches := 0
		for j := range nodes {
			if i == j {
				continue
			}
			dx := nodes[i].X - nodes[j].X
			dy := nodes[i].Y - nodes[j].Y
			dist := math.Hypot(dx, dy)
			if dist < nodes[i].BaseRadius+nodes[j].BaseRadius {
				touches++
			}
		}
		nodes[i].TouchCount = touches

		radius := nodes[i].BaseRadius * (1 + float64(touches)*factor)
		if radius < cfg.MinRadius {
			radius = cfg.MinRadius
		}
		nodes[i].Radius = radius
	}
}

// Clusters groups nodes with TouchCount >= minTouches into a single density
// cluster for narration. Returns nil when no node qualifies.
func Clusters(nodes []constellation.Node, minTouches int) []constellation.DensityCluster {
	var ids []string
	for i := range nodes {
		if nodes[i].TouchCount >= minTouches {
			ids = append(ids, nodes[i].ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return []constellation.DensityCluster{{ThoughtIDs: ids}}
}

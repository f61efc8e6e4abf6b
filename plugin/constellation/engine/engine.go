// Package engine orchestrates the constellation pipeline: it turns a flat
// list of thoughts into the analyzed node set, runs layout on demand, and
// advances per-tick animation. State is single-owner and replaced wholesale:
// readers always observe a consistent snapshot through an atomic pointer,
// writers are serialized by a mutex.
package engine

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/density"
	"github.com/nebulanotes/constellation/plugin/constellation/graph"
	"github.com/nebulanotes/constellation/plugin/constellation/insight"
	"github.com/nebulanotes/constellation/plugin/constellation/layout"
	"github.com/nebulanotes/constellation/plugin/constellation/lexical"
	"github.com/nebulanotes/constellation/plugin/constellation/merge"
)

// snapEpsilon is the remaining distance at which an easing node snaps to its
// target and stops animating.
const snapEpsilon = 0.5

// Snapshot is one immutable view of the analyzed constellation. Never
// mutated after publication; every writer builds a fresh one.
type Snapshot struct {
	// Generation increments whenever the input thoughts or merge threshold
	// change. Async provider results stamped with an older generation are
	// stale and must be discarded.
	Generation uint64 `json:"generation"`

	Nodes             []constellation.Node                `json:"nodes"`
	Clusters          []constellation.ConnectivityCluster `json:"clusters"`
	StrongConnections []constellation.StrongConnection    `json:"strong_connections"`
	Insights          *insight.Insights                   `json:"insights"`
	AnalyzedAt        time.Time                           `json:"analyzed_at"`

	freq lexical.WordFrequency
}

// WordFrequency exposes the batch word statistics the snapshot was built
// with, for the optional narrative provider.
func (s *Snapshot) WordFrequency() lexical.WordFrequency {
	return s.freq
}

// Engine owns the current snapshot.
type Engine struct {
	cfg    constellation.Config
	layout layout.Service
	logger *slog.Logger

	mu         sync.Mutex
	generation atomic.Uint64
	current    atomic.Pointer[Snapshot]
}

// New creates an engine seeded with an empty snapshot.
func New(cfg constellation.Config, layoutService layout.Service, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{cfg: cfg, layout: layoutService, logger: logger}
	e.current.Store(&Snapshot{
		Nodes:             []constellation.Node{},
		Clusters:          []constellation.ConnectivityCluster{},
		StrongConnections: []constellation.StrongConnection{},
		Insights:          insight.Generate(nil, nil),
		freq:              lexical.WordFrequency{},
	})
	return e
}

// Snapshot returns the current published snapshot.
func (e *Engine) Snapshot() *Snapshot {
	return e.current.Load()
}

// Generation returns the current input generation.
func (e *Engine) Generation() uint64 {
	return e.generation.Load()
}

// Analyze rebuilds the constellation from scratch: word frequency,
// prevalence, connection graph, merge, density sizing, and insights.
// Duplicate thought ids are tolerated with last-wins semantics.
func (e *Engine) Analyze(thoughts []constellation.Thought, mergeThreshold float64) *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	if !constellation.ValidMergeThreshold(mergeThreshold) {
		mergeThreshold = e.cfg.MergeThreshold
	}
	thoughts = dedupe(thoughts)

	texts := make([]string, 0, len(thoughts))
	for _, t := range thoughts {
		texts = append(texts, t.Text)
	}
	freq := lexical.BuildWordFrequency(texts)

	nodes := make([]constellation.Node, 0, len(thoughts))
	for _, t := range thoughts {
		prevalence := lexical.Prevalence(t.Text, freq)
		radius := e.cfg.RadiusBase + prevalence*e.cfg.RadiusScale
		if radius < e.cfg.MinRadius {
			radius = e.cfg.MinRadius
		}
		nodes = append(nodes, constellation.Node{
			Thought:    t,
			Prevalence: prevalence,
			BaseRadius: radius,
			Radius:     radius,
		})
	}

	nodes = graph.BuildConnections(nodes, e.cfg.ConnectionThreshold)
	nodes = merge.Run(nodes, mergeThreshold, e.cfg)
	nodes = rewireMerged(nodes)
	density.Apply(nodes, e.cfg.DensityFactorInitial, e.cfg)

	snap := &Snapshot{
		Generation:        e.generation.Add(1),
		Nodes:             nodes,
		Clusters:          graph.Components(nodes),
		StrongConnections: []constellation.StrongConnection{},
		Insights:          insight.Generate(nodes, freq),
		AnalyzedAt:        start,
		freq:              freq,
	}
	e.current.Store(snap)

	e.logger.Debug("constellation analyzed",
		"thoughts", len(thoughts),
		"nodes", len(nodes),
		"merge_threshold", mergeThreshold,
		"duration_ms", time.Since(start).Milliseconds())
	return snap
}

// Organize runs the layout service against the current snapshot and stamps
// target positions on a fresh node set. Positions ease toward the targets on
// subsequent ticks.
func (e *Engine) Organize(ctx context.Context, width, height, padding float64) (*layout.Result, error) {
	return e.OrganizeWith(ctx, e.layout, width, height, padding)
}

// OrganizeWith runs a caller-supplied layout service, used for seeded
// deterministic layouts.
func (e *Engine) OrganizeWith(ctx context.Context, layoutService layout.Service, width, height, padding float64) (*layout.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.current.Load()
	result, err := layoutService.Layout(ctx, snap.Nodes, width, height, padding)
	if err != nil {
		return nil, err
	}

	nodes := cloneNodes(snap.Nodes)
	for i := range nodes {
		if pos, ok := result.Positions[nodes[i].ID]; ok {
			x, y := pos.X, pos.Y
			nodes[i].TargetX = &x
			nodes[i].TargetY = &y
		}
	}

	next := *snap
	next.Nodes = nodes
	next.Clusters = result.Clusters
	next.StrongConnections = result.StrongConnections
	e.current.Store(&next)
	return result, nil
}

// Tick advances easing toward layout targets and re-runs density sizing
// with the steady-state factor. Safe to call once per rendering frame.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.current.Load()
	animating := false
	for i := range snap.Nodes {
		if snap.Nodes[i].TargetX != nil || snap.Nodes[i].TargetY != nil {
			animating = true
			break
		}
	}
	if !animating {
		return
	}

	nodes := cloneNodes(snap.Nodes)
	for i := range nodes {
		if nodes[i].TargetX == nil || nodes[i].TargetY == nil {
			continue
		}
		dx := *nodes[i].TargetX - nodes[i].X
		dy := *nodes[i].TargetY - nodes[i].Y
		if math.Hypot(dx, dy) < snapEpsilon {
			nodes[i].X = *nodes[i].TargetX
			nodes[i].Y = *nodes[i].TargetY
			nodes[i].TargetX = nil
			nodes[i].TargetY = nil
			continue
		}
		nodes[i].X += dx * e.cfg.EaseFactor
		nodes[i].Y += dy * e.cfg.EaseFactor
	}
	density.Apply(nodes, e.cfg.DensityFactorSteady, e.cfg)

	next := *snap
	next.Nodes = nodes
	e.current.Store(&next)
}

// Run drives the tick loop until the context is canceled.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// rewireMerged redirects connections that still point at merged-away member
// ids to the composite node, and drops anything dangling. A single bad
// reference must never blank the view, so unknown ids are skipped silently.
func rewireMerged(nodes []constellation.Node) []constellation.Node {
	alias := make(map[string]string)
	present := make(map[string]bool, len(nodes))
	for i := range nodes {
		present[nodes[i].ID] = true
		for _, memberID := range nodes[i].MergedIDs {
			alias[memberID] = nodes[i].ID
		}
	}

	for i := range nodes {
		rewired := make([]string, 0, len(nodes[i].Connections))
		seen := make(map[string]bool, len(nodes[i].Connections))
		for _, id := range nodes[i].Connections {
			if target, ok := alias[id]; ok {
				id = target
			}
			if id == nodes[i].ID || seen[id] || !present[id] {
				continue
			}
			seen[id] = true
			rewired = append(rewired, id)
		}
		nodes[i].Connections = rewired
	}
	return nodes
}

// dedupe drops earlier occurrences of duplicate thought ids (last wins),
// preserving input order of the surviving entries.
func dedupe(thoughts []constellation.Thought) []constellation.Thought {
	last := make(map[string]int, len(thoughts))
	for i, t := range thoughts {
		last[t.ID] = i
	}
	out := make([]constellation.Thought, 0, len(thoughts))
	for i, t := range thoughts {
		if last[t.ID] == i {
			out = append(out, t)
		}
	}
	return out
}

func cloneNodes(nodes []constellation.Node) []constellation.Node {
	out := make([]constellation.Node, len(nodes))
	copy(out, nodes)
	return out
}

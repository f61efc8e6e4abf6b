package engine

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/layout"
)

func newTestEngine() *Engine {
	return New(constellation.DefaultConfig(), layout.New(layout.NewSeededRand(1)), nil)
}

func thought(id, text string) constellation.Thought {
	return constellation.Thought{ID: id, Text: text}
}

func TestNewSeedsEmptySnapshot(t *testing.T) {
	e := newTestEngine()
	snap := e.Snapshot()
	if snap == nil {
		t.Fatal("no initial snapshot")
	}
	if snap.Generation != 0 {
		t.Errorf("initial generation = %d, want 0", snap.Generation)
	}
	if snap.Insights == nil || snap.Insights.Synthesis == "" {
		t.Error("initial snapshot should carry the empty-state insights")
	}
}

func TestAnalyze(t *testing.T) {
	e := newTestEngine()
	snap := e.Analyze([]constellation.Thought{
		thought("a", "garden compost experiment"),
		thought("b", "garden compost results"),
		thought("c", "quarterly tax deadline"),
	}, 0.9) // high threshold: connected but not merged

	if snap.Generation != 1 {
		t.Errorf("generation = %d, want 1", snap.Generation)
	}
	if len(snap.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(snap.Nodes))
	}
	if len(snap.Nodes[0].Connections) != 1 || snap.Nodes[0].Connections[0] != "b" {
		t.Errorf("node a connections = %v", snap.Nodes[0].Connections)
	}
	if len(snap.Clusters) != 2 {
		t.Errorf("got %d clusters, want 2", len(snap.Clusters))
	}
	if snap.Insights == nil {
		t.Error("insights missing")
	}
}

func TestAnalyzeEmptyInputSerializesEmptyCollections(t *testing.T) {
	e := newTestEngine()
	snap := e.Analyze(nil, 0.3)

	if snap.Nodes == nil || snap.Clusters == nil || snap.StrongConnections == nil {
		t.Fatalf("empty analysis must publish non-nil collections: %+v", snap)
	}

	encoded, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"nodes":[]`, `"clusters":[]`, `"strong_connections":[]`} {
		if !strings.Contains(string(encoded), want) {
			t.Errorf("snapshot JSON missing %s: %s", want, encoded)
		}
	}
}

func TestAnalyzeDuplicateIDsLastWins(t *testing.T) {
	e := newTestEngine()
	snap := e.Analyze([]constellation.Thought{
		thought("a", "first version"),
		thought("a", "second version"),
	}, 0.9)

	if len(snap.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(snap.Nodes))
	}
	if snap.Nodes[0].Text != "second version" {
		t.Errorf("text = %q, want last occurrence", snap.Nodes[0].Text)
	}
}

func TestAnalyzeInvalidThresholdFallsBack(t *testing.T) {
	e := newTestEngine()
	// Identical thoughts merge under any sane threshold; an invalid one
	// must fall back to the config default, not disable merging.
	snap := e.Analyze([]constellation.Thought{
		thought("a", "same words here"),
		thought("b", "same words here"),
	}, -1)

	if len(snap.Nodes) != 1 || !snap.Nodes[0].IsMerged {
		t.Errorf("expected a single composite node, got %+v", snap.Nodes)
	}
}

func TestAnalyzeGenerationAdvances(t *testing.T) {
	e := newTestEngine()
	e.Analyze([]constellation.Thought{thought("a", "one")}, 0.3)
	e.Analyze([]constellation.Thought{thought("a", "two")}, 0.3)
	if got := e.Generation(); got != 2 {
		t.Errorf("generation = %d, want 2", got)
	}
}

func TestAnalyzeRewiresMergedConnections(t *testing.T) {
	e := newTestEngine()
	snap := e.Analyze([]constellation.Thought{
		thought("a", "deep ocean diving notes"),
		thought("b", "deep ocean diving plans"),
		thought("c", "diving notes from the deep ocean shore"),
	}, 0.5)

	present := map[string]bool{}
	for _, n := range snap.Nodes {
		present[n.ID] = true
	}
	for _, n := range snap.Nodes {
		for _, conn := range n.Connections {
			if !present[conn] {
				t.Errorf("node %s has dangling connection %s", n.ID, conn)
			}
			if conn == n.ID {
				t.Errorf("node %s connected to itself", n.ID)
			}
		}
	}
}

func TestOrganizeStampsTargets(t *testing.T) {
	e := newTestEngine()
	e.Analyze([]constellation.Thought{
		thought("a", "garden compost experiment"),
		thought("b", "garden compost results"),
	}, 0.9)

	result, err := e.Organize(context.Background(), 800, 600, 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(result.Positions))
	}

	snap := e.Snapshot()
	for _, n := range snap.Nodes {
		if n.TargetX == nil || n.TargetY == nil {
			t.Errorf("node %s missing layout target", n.ID)
			continue
		}
		pos := result.Positions[n.ID]
		if *n.TargetX != pos.X || *n.TargetY != pos.Y {
			t.Errorf("node %s target (%v, %v) != layout position %+v", n.ID, *n.TargetX, *n.TargetY, pos)
		}
	}
}

func TestTickEasesTowardTarget(t *testing.T) {
	e := newTestEngine()
	e.Analyze([]constellation.Thought{thought("a", "single thought")}, 0.9)

	if _, err := e.Organize(context.Background(), 800, 600, 40); err != nil {
		t.Fatal(err)
	}

	before := e.Snapshot().Nodes[0]
	if before.TargetX == nil {
		t.Fatal("no target after organize")
	}
	startDX := *before.TargetX - before.X

	e.Tick()
	after := e.Snapshot().Nodes[0]
	if after.TargetX != nil {
		remaining := *after.TargetX - after.X
		if remaining >= startDX && startDX > 0 {
			t.Errorf("tick did not move node toward target: %v -> %v", startDX, remaining)
		}
	}

	// Enough ticks must converge and clear the targets.
	for i := 0; i < 500; i++ {
		e.Tick()
	}
	final := e.Snapshot().Nodes[0]
	if final.TargetX != nil || final.TargetY != nil {
		t.Error("node never snapped to its target")
	}
}

func TestTickWithoutTargetsIsNoop(t *testing.T) {
	e := newTestEngine()
	snap := e.Analyze([]constellation.Thought{thought("a", "single thought")}, 0.9)
	e.Tick()
	if e.Snapshot() != snap {
		t.Error("tick without animation should not publish a new snapshot")
	}
}

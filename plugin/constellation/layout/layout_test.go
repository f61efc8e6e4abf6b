package layout

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

func node(id, text string, prevalence float64, connections ...string) constellation.Node {
	return constellation.Node{
		Thought:     constellation.Thought{ID: id, Text: text},
		Prevalence:  prevalence,
		Connections: connections,
	}
}

func TestLayoutEmpty(t *testing.T) {
	engine := New(NewSeededRand(1))
	result, err := engine.Layout(context.Background(), nil, 800, 600, 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Positions) != 0 || len(result.Clusters) != 0 {
		t.Errorf("empty input should produce empty result: %+v", result)
	}
}

func TestLayoutDeterministicWithSeed(t *testing.T) {
	build := func() []constellation.Node {
		return []constellation.Node{
			node("a", "anchor thought", 3.0, "b", "c"),
			node("b", "second thought", 2.0, "a"),
			node("c", "third thought", 1.0, "a"),
		}
	}

	first, err := New(NewSeededRand(42)).Layout(context.Background(), build(), 800, 600, 40)
	if err != nil {
		t.Fatal(err)
	}
	second, err := New(NewSeededRand(42)).Layout(context.Background(), build(), 800, 600, 40)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Positions, second.Positions) {
		t.Errorf("same seed produced different positions:\n%v\n%v", first.Positions, second.Positions)
	}
}

func TestLayoutSingleClusterCenteredAndClamped(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "anchor", 3.0, "b", "c", "d"),
		node("b", "one", 2.0, "a"),
		node("c", "two", 1.0, "a"),
		node("d", "three", 0.5, "a"),
	}

	width, height, padding := 800.0, 600.0, 40.0
	result, err := New(NewSeededRand(7)).Layout(context.Background(), nodes, width, height, padding)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(result.Clusters))
	}

	// Most prevalent member sits on the canvas center.
	center := result.Positions["a"]
	if center.X != width/2 || center.Y != height/2 {
		t.Errorf("anchor at %+v, want canvas center", center)
	}

	for id, pos := range result.Positions {
		if pos.X < padding || pos.X > width-padding || pos.Y < padding || pos.Y > height-padding {
			t.Errorf("node %s at %+v escapes the padded canvas", id, pos)
		}
	}
}

func TestLayoutTwoClusterAnchors(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "left side", 2.0, "b"),
		node("b", "left follower", 1.0, "a"),
		node("c", "right side", 2.0, "d"),
		node("d", "right follower", 1.0, "c"),
	}

	result, err := New(NewSeededRand(3)).Layout(context.Background(), nodes, 800, 600, 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(result.Clusters))
	}

	if result.Clusters[0].CenterX != 200 || result.Clusters[0].CenterY != 300 {
		t.Errorf("first anchor = (%v, %v), want (200, 300)", result.Clusters[0].CenterX, result.Clusters[0].CenterY)
	}
	if result.Clusters[1].CenterX != 600 || result.Clusters[1].CenterY != 300 {
		t.Errorf("second anchor = (%v, %v), want (600, 300)", result.Clusters[1].CenterX, result.Clusters[1].CenterY)
	}
}

func TestLayoutGridForManyClusters(t *testing.T) {
	var nodes []constellation.Node
	ids := []string{"a", "b", "c", "d", "e"}
	texts := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	for i, id := range ids {
		nodes = append(nodes, node(id, texts[i], 1.0))
	}

	result, err := New(NewSeededRand(11)).Layout(context.Background(), nodes, 900, 600, 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Clusters) != 5 {
		t.Fatalf("got %d clusters, want 5", len(result.Clusters))
	}

	// ceil(sqrt(5)) = 3 columns, 2 rows: first cell center is (150, 150).
	if result.Clusters[0].CenterX != 150 || result.Clusters[0].CenterY != 150 {
		t.Errorf("first cell anchor = (%v, %v), want (150, 150)",
			result.Clusters[0].CenterX, result.Clusters[0].CenterY)
	}
}

func TestConnectedMembersPlacedNearNeighbors(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "anchor", 2.0, "b"),
		node("b", "follower", 1.0, "a"),
	}

	result, err := New(NewSeededRand(5)).Layout(context.Background(), nodes, 2000, 2000, 0)
	if err != nil {
		t.Fatal(err)
	}

	a, b := result.Positions["a"], result.Positions["b"]
	dist := math.Hypot(a.X-b.X, a.Y-b.Y)
	if dist < bandSingle.min || dist > bandSingle.min+bandSingle.span {
		t.Errorf("follower distance %v outside [%v, %v]", dist, bandSingle.min, bandSingle.min+bandSingle.span)
	}
}

func TestStrongConnectionsDeduplicated(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "hub one", 0, "b", "c", "d"),
		node("b", "hub two", 0, "a", "c", "d"),
		node("c", "member", 0, "a", "b"),
		node("d", "member", 0, "a", "b"),
	}

	pairs := strongConnections(nodes)
	seen := map[constellation.StrongConnection]bool{}
	for _, p := range pairs {
		if seen[p] {
			t.Errorf("duplicate pair %+v", p)
		}
		seen[p] = true
	}
	// a nominates ab, ac, ad; b nominates ba (dup), bc, bd.
	if len(pairs) != 5 {
		t.Errorf("got %d pairs, want 5", len(pairs))
	}
}

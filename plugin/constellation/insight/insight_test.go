package insight

import (
	"strings"
	"testing"

	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/lexical"
)

func node(id, text string, connections ...string) constellation.Node {
	return constellation.Node{
		Thought:     constellation.Thought{ID: id, Text: text},
		Connections: connections,
	}
}

func TestGenerateEmpty(t *testing.T) {
	insights := Generate(nil, nil)

	if !strings.Contains(insights.Synthesis, "Your constellation is empty") {
		t.Errorf("empty synthesis = %q", insights.Synthesis)
	}
	if len(insights.Patterns) != 0 || len(insights.Suggestions) != 0 || len(insights.Questions) != 0 {
		t.Errorf("empty input should yield empty collections: %+v", insights)
	}
	if insights.Patterns == nil || insights.Suggestions == nil || insights.Questions == nil {
		t.Error("collections must be non-nil for JSON encoding")
	}
}

func TestNetworkStats(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "hub", "b", "c", "d"),
		node("b", "spoke", "a"),
		node("c", "spoke", "a"),
		node("d", "spoke", "a"),
		node("e", "loner"),
	}
	nodes[0].IsMerged = true

	stats := networkStats(nodes)
	if stats.NodeCount != 5 {
		t.Errorf("NodeCount = %d, want 5", stats.NodeCount)
	}
	// Symmetric storage: 6 directed entries are 3 edges.
	if stats.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", stats.EdgeCount)
	}
	if stats.HubCount != 1 {
		t.Errorf("HubCount = %d, want 1", stats.HubCount)
	}
	if stats.IsolatedCount != 1 {
		t.Errorf("IsolatedCount = %d, want 1", stats.IsolatedCount)
	}
	if stats.MergedCount != 1 {
		t.Errorf("MergedCount = %d, want 1", stats.MergedCount)
	}
}

func TestDetectPatterns(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "central planning thought", "b", "c", "d"),
		node("b", "spoke", "a"),
		node("c", "spoke", "a"),
		node("d", "spoke", "a"),
		node("e", "alone"),
	}
	nodes[0].TouchCount = 4
	freq := lexical.WordFrequency{"planning": 3, "garden": 2}

	patterns := DetectPatterns(nodes, freq)
	if len(patterns) != 4 {
		t.Fatalf("got %d patterns, want 4", len(patterns))
	}

	// Fixed emission order.
	wantTypes := []constellation.PatternType{
		constellation.PatternCluster,
		constellation.PatternHub,
		constellation.PatternIsolated,
		constellation.PatternTheme,
	}
	for i, want := range wantTypes {
		if patterns[i].Type != want {
			t.Errorf("pattern[%d].Type = %v, want %v", i, patterns[i].Type, want)
		}
	}

	if !strings.Contains(patterns[1].Title, "central planning thought") {
		t.Errorf("hub title = %q", patterns[1].Title)
	}
	if !strings.Contains(patterns[3].Description, "planning, garden") {
		t.Errorf("theme description = %q", patterns[3].Description)
	}
}

func TestDetectPatternsNoneFire(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "one", "b"),
		node("b", "two", "a"),
	}
	patterns := DetectPatterns(nodes, lexical.WordFrequency{"once": 1})
	if len(patterns) != 0 {
		t.Errorf("got %d patterns, want 0: %+v", len(patterns), patterns)
	}
}

func TestHubNodesSorted(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "three", "x", "y", "z"),
		node("b", "four", "w", "x", "y", "z"),
		node("c", "two", "x", "y"),
	}
	hubs := HubNodes(nodes)
	if len(hubs) != 2 {
		t.Fatalf("got %d hubs, want 2", len(hubs))
	}
	if hubs[0].ID != "b" || hubs[1].ID != "a" {
		t.Errorf("hub order = [%s %s], want [b a]", hubs[0].ID, hubs[1].ID)
	}
}

func TestSynthesizeBands(t *testing.T) {
	tests := []struct {
		name      string
		nodeCount int
		want      string
	}{
		{name: "small", nodeCount: 3, want: "still early"},
		{name: "medium", nodeCount: 10, want: "a shape is starting to show"},
		{name: "large", nodeCount: 20, want: "rich field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := make([]constellation.Node, tt.nodeCount)
			for i := range nodes {
				nodes[i] = node(string(rune('a'+i)), "text")
			}
			got := Synthesize(nodes, lexical.WordFrequency{}, networkStats(nodes))
			if !strings.Contains(got, tt.want) {
				t.Errorf("synthesis %q missing %q", got, tt.want)
			}
		})
	}
}

func TestNextStepPriority(t *testing.T) {
	freq := lexical.WordFrequency{"alpha": 2, "beta": 2, "gamma": 2}

	t.Run("hubs with isolated wins", func(t *testing.T) {
		stats := constellation.NetworkStats{HubCount: 2, IsolatedCount: 1}
		got := nextStep(nil, freq, stats)
		if !strings.Contains(got, "linking your standalone thoughts") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("dense with many isolated", func(t *testing.T) {
		nodes := []constellation.Node{{TouchCount: denseTouchCount}}
		stats := constellation.NetworkStats{IsolatedCount: 6}
		got := nextStep(nodes, freq, stats)
		if !strings.Contains(got, "dense clusters") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("themes", func(t *testing.T) {
		got := nextStep(nil, freq, constellation.NetworkStats{})
		if !strings.Contains(got, "recurring themes") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("default", func(t *testing.T) {
		got := nextStep(nil, lexical.WordFrequency{}, constellation.NetworkStats{})
		if !strings.Contains(got, "keep adding thoughts") {
			t.Errorf("got %q", got)
		}
	})
}

func TestSuggestDefault(t *testing.T) {
	// One well-connected pair: no rule fires except the small-network one,
	// so silence that with enough nodes.
	nodes := make([]constellation.Node, 12)
	for i := range nodes {
		id := string(rune('a' + i))
		other := string(rune('a' + (i+1)%12))
		nodes[i] = node(id, "text", other)
	}
	stats := networkStats(nodes)
	got := Suggest(nodes, lexical.WordFrequency{}, stats)
	if len(got) != 1 || !strings.Contains(got[0], "Keep jotting") {
		t.Errorf("suggestions = %v, want single default", got)
	}
}

func TestSuggestIsolationRule(t *testing.T) {
	nodes := []constellation.Node{
		node("a", "loner one"),
		node("b", "loner two"),
		node("c", "pair", "d"),
		node("d", "pair", "c"),
	}
	got := Suggest(nodes, lexical.WordFrequency{}, networkStats(nodes))

	found := false
	for _, s := range got {
		if strings.Contains(s, "unconnected") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected isolation suggestion in %v", got)
	}
}

func TestPathQuestions(t *testing.T) {
	big := node("m1", "morning pages habit")
	big.IsMerged = true
	big.MergedIDs = []string{"a", "b", "c", "d", "e"}

	small := node("m2", "garden notes")
	small.IsMerged = true
	small.MergedIDs = []string{"f", "g"}

	loner := node("x", "standalone idea")

	questions := PathQuestions([]constellation.Node{big, small, loner})

	if len(questions) > maxQuestions {
		t.Fatalf("got %d questions, cap is %d", len(questions), maxQuestions)
	}
	if !strings.Contains(questions[0], "5 thoughts circling") {
		t.Errorf("first question = %q", questions[0])
	}
	if !strings.Contains(questions[1], "prioritize") {
		t.Errorf("second question = %q", questions[1])
	}

	joined := strings.Join(questions, " | ")
	if !strings.Contains(joined, "stands alone") {
		t.Errorf("missing isolated question: %v", questions)
	}
	if !strings.Contains(joined, "Where do they meet?") {
		t.Errorf("missing bridge question: %v", questions)
	}
}

func TestPathQuestionsCap(t *testing.T) {
	var nodes []constellation.Node
	for i := 0; i < 6; i++ {
		n := node(string(rune('a'+i)), "theme text")
		n.IsMerged = true
		n.MergedIDs = []string{"x", "y"}
		nodes = append(nodes, n)
	}
	questions := PathQuestions(nodes)
	if len(questions) != maxQuestions {
		t.Errorf("got %d questions, want %d", len(questions), maxQuestions)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("a very long piece of text", 10); got != "a very lon..." {
		t.Errorf("got %q", got)
	}
}

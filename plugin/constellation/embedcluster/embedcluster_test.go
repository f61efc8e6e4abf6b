package embedcluster

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embedding(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 0, 0},
			b:        []float32{1, 0, 0},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0, 0},
			b:        []float32{0, 1, 0},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 0},
			b:        []float32{-1, 0},
			expected: -1.0,
		},
		{
			name:     "mismatched lengths",
			a:        []float32{1, 0},
			b:        []float32{1, 0, 0},
			expected: 0.0,
		},
		{
			name:     "empty vectors",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
		{
			name:     "zero vector",
			a:        []float32{0, 0},
			b:        []float32{1, 1},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDBSCAN(t *testing.T) {
	// Two tight groups pointing along different axes, plus one noise point
	// in between.
	vectors := [][]float32{
		{1, 0},
		{0.99, 0.01},
		{0, 1},
		{0.01, 0.99},
		{0.7, 0.7},
	}
	labels := dbscan(vectors, 0.05, 2)

	if labels[0] != labels[1] {
		t.Errorf("first group split: %v", labels)
	}
	if labels[2] != labels[3] {
		t.Errorf("second group split: %v", labels)
	}
	if labels[0] == labels[2] {
		t.Errorf("groups merged: %v", labels)
	}
	if labels[4] != -1 {
		t.Errorf("middle point label = %d, want noise", labels[4])
	}
}

func TestRun(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"ocean swim":  {1, 0},
		"ocean tides": {0.99, 0.01},
		"tax forms":   {0, 1},
	}}
	thoughts := []constellation.Thought{
		{ID: "a", Text: "ocean swim"},
		{ID: "b", Text: "ocean tides"},
		{ID: "c", Text: "tax forms"},
	}

	cfg := DefaultConfig()
	cfg.Epsilon = 0.05
	result := Run(context.Background(), embedder, thoughts, cfg)

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if len(result.Embeddings) != 3 {
		t.Errorf("got %d embeddings, want 3", len(result.Embeddings))
	}
	if _, ok := result.SimilarityMatrix["a-b"]; !ok {
		t.Error("similarity matrix missing pair a-b")
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(result.Clusters))
	}
	if !reflect.DeepEqual(result.Clusters[0].ThoughtIDs, []string{"a", "b"}) {
		t.Errorf("cluster members = %v, want [a b]", result.Clusters[0].ThoughtIDs)
	}
	if result.Clusters[0].ID != "embed-cluster-0" {
		t.Errorf("cluster id = %q", result.Clusters[0].ID)
	}
}

func TestRunProviderFailureIsSoft(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("provider down")}
	result := Run(context.Background(), embedder, []constellation.Thought{{ID: "a", Text: "x"}}, DefaultConfig())

	if result.Error == "" {
		t.Fatal("expected error marker in result")
	}
	if len(result.Embeddings) != 0 || len(result.Clusters) != 0 {
		t.Errorf("failure result should be empty: %+v", result)
	}
}

func TestRunNilEmbedder(t *testing.T) {
	result := Run(context.Background(), nil, []constellation.Thought{{ID: "a", Text: "x"}}, DefaultConfig())
	if result.Error == "" {
		t.Fatal("expected error marker for missing provider")
	}
}

func TestRunEmptyInput(t *testing.T) {
	embedder := &stubEmbedder{}
	result := Run(context.Background(), embedder, nil, DefaultConfig())
	if result.Error != "" {
		t.Errorf("empty input is not an error: %s", result.Error)
	}
	if len(result.Clusters) != 0 {
		t.Errorf("clusters = %v, want none", result.Clusters)
	}
}

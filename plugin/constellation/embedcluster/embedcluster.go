// Package embedcluster is the optional embedding-based alternative to the
// lexical similarity path: it embeds thought texts through an external
// provider, builds a cosine similarity matrix, and clusters with DBSCAN.
// Failures here are never fatal; the caller falls back to the lexical path.
package embedcluster

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

// Embedder is the external embedding provider boundary.
type Embedder interface {
	Embedding(ctx context.Context, text string) ([]float32, error)
}

// Cluster is one embedding-derived thought group.
type Cluster struct {
	ID         string   `json:"id"`
	ThoughtIDs []string `json:"thought_ids"`
	Label      string   `json:"label"`
}

// Result is the provider-boundary response shape. On provider failure Error
// carries a structured marker and all collections are empty, so the caller
// can fall back to the lexical path without special-casing.
type Result struct {
	Embeddings       map[string][]float32 `json:"embeddings"`
	SimilarityMatrix map[string]float64   `json:"similarity_matrix"`
	Clusters         []Cluster            `json:"clusters"`
	Error            string               `json:"error,omitempty"`
}

// Config controls the embedding clustering pass.
type Config struct {
	// Epsilon is the DBSCAN neighborhood radius in cosine-distance space.
	Epsilon float64
	// MinPoints is the DBSCAN core-point neighbor minimum.
	MinPoints int
	// Concurrency bounds parallel embedding requests.
	Concurrency int
}

// DefaultConfig returns defaults tuned for short thought texts.
func DefaultConfig() Config {
	return Config{
		Epsilon:     0.25,
		MinPoints:   2,
		Concurrency: 3,
	}
}

// emptyResult returns the fail-soft marker result.
func emptyResult(err error) *Result {
	return &Result{
		Embeddings:       map[string][]float32{},
		SimilarityMatrix: map[string]float64{},
		Clusters:         []Cluster{},
		Error:            err.Error(),
	}
}

// Run embeds all thoughts and clusters them. Provider errors are returned
// inside the Result, never as a Go error, matching the boundary contract.
func Run(ctx context.Context, embedder Embedder, thoughts []constellation.Thought, cfg Config) *Result {
	if embedder == nil {
		return emptyResult(fmt.Errorf("embedding provider not configured"))
	}
	if len(thoughts) == 0 {
		return &Result{
			Embeddings:       map[string][]float32{},
			SimilarityMatrix: map[string]float64{},
			Clusters:         []Cluster{},
		}
	}

	vectors := make([][]float32, len(thoughts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i := range thoughts {
		i := i
		g.Go(func() error {
			vec, err := embedder.Embedding(gctx, thoughts[i].Text)
			if err != nil {
				return fmt.Errorf("embed thought %s: %w", thoughts[i].ID, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return emptyResult(err)
	}

	result := &Result{
		Embeddings:       make(map[string][]float32, len(thoughts)),
		SimilarityMatrix: make(map[string]float64),
		Clusters:         []Cluster{},
	}
	for i := range thoughts {
		result.Embeddings[thoughts[i].ID] = vectors[i]
	}
	for i := 0; i < len(thoughts); i++ {
		for j := i + 1; j < len(thoughts); j++ {
			key := fmt.Sprintf("%s-%s", thoughts[i].ID, thoughts[j].ID)
			result.SimilarityMatrix[key] = CosineSimilarity(vectors[i], vectors[j])
		}
	}

	labels := dbscan(vectors, cfg.Epsilon, cfg.MinPoints)
	byLabel := make(map[int][]int)
	var order []int
	for i, label := range labels {
		if label < 0 {
			continue // noise
		}
		if _, ok := byLabel[label]; !ok {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], i)
	}
	for _, label := range order {
		members := byLabel[label]
		ids := make([]string, 0, len(members))
		for _, idx := range members {
			ids = append(ids, thoughts[idx].ID)
		}
		result.Clusters = append(result.Clusters, Cluster{
			ID:         fmt.Sprintf("embed-cluster-%d", label),
			ThoughtIDs: ids,
			Label:      clusterLabel(thoughts[members[0]].Text),
		})
	}
	return result
}

// CosineSimilarity computes cosine similarity between two vectors, 0 on
// mismatched or empty input.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clusterLabel(text string) string {
	runes := []rune(text)
	if len(runes) > 30 {
		return string(runes[:30]) + "..."
	}
	return text
}

package store

import (
	"context"
)

// ThoughtEmbedding caches one provider embedding per (thought, model) so the
// embedding-clustering path does not re-embed unchanged thoughts.
type ThoughtEmbedding struct {
	ID        int32
	ThoughtID string
	Model     string
	Embedding []float32
	CreatedTs int64
	UpdatedTs int64
}

// FindThoughtEmbedding is the query object for cached embeddings.
type FindThoughtEmbedding struct {
	ThoughtID *string
	Model     *string
}

func (s *Store) UpsertThoughtEmbedding(ctx context.Context, upsert *ThoughtEmbedding) (*ThoughtEmbedding, error) {
	return s.driver.UpsertThoughtEmbedding(ctx, upsert)
}

func (s *Store) ListThoughtEmbeddings(ctx context.Context, find *FindThoughtEmbedding) ([]*ThoughtEmbedding, error) {
	return s.driver.ListThoughtEmbeddings(ctx, find)
}

func (s *Store) DeleteThoughtEmbedding(ctx context.Context, thoughtID string) error {
	return s.driver.DeleteThoughtEmbedding(ctx, thoughtID)
}

// ListThoughtsWithoutEmbedding returns thoughts missing a cached embedding
// for the given model, up to limit.
func (s *Store) ListThoughtsWithoutEmbedding(ctx context.Context, model string, limit int) ([]*Thought, error) {
	return s.driver.ListThoughtsWithoutEmbedding(ctx, model, limit)
}

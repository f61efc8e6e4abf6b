package sqlite

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nebulanotes/constellation/store"
)

// SQLite has no vector column type. The embedding cache is only available on
// PostgreSQL with the pgvector extension; with SQLite the engine sticks to
// lexical analysis.

// UpsertThoughtEmbedding is NOT supported for SQLite.
func (d *DB) UpsertThoughtEmbedding(ctx context.Context, upsert *store.ThoughtEmbedding) (*store.ThoughtEmbedding, error) {
	return nil, errors.New("thought embedding (vector storage) requires PostgreSQL with pgvector extension")
}

// ListThoughtEmbeddings is NOT supported for SQLite.
func (d *DB) ListThoughtEmbeddings(ctx context.Context, find *store.FindThoughtEmbedding) ([]*store.ThoughtEmbedding, error) {
	return nil, errors.New("thought embedding (vector storage) requires PostgreSQL with pgvector extension")
}

// DeleteThoughtEmbedding returns nil so cascade deletes keep working.
func (d *DB) DeleteThoughtEmbedding(ctx context.Context, thoughtID string) error {
	return nil
}

// ListThoughtsWithoutEmbedding is NOT supported for SQLite.
func (d *DB) ListThoughtsWithoutEmbedding(ctx context.Context, model string, limit int) ([]*store.Thought, error) {
	return nil, errors.New("thought embedding features require PostgreSQL with pgvector extension")
}

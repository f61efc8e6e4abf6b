package store

import (
	"context"
	"database/sql"
)

// Driver is the interface a store database driver implements.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Document model related methods.
	UpsertDocument(ctx context.Context, upsert *Document) (*Document, error)
	ListDocuments(ctx context.Context, find *FindDocument) ([]*Document, error)
	DeleteDocument(ctx context.Context, delete *DeleteDocument) error

	// Thought model related methods.
	CreateThought(ctx context.Context, create *Thought) (*Thought, error)
	ListThoughts(ctx context.Context, find *FindThought) ([]*Thought, error)
	UpdateThought(ctx context.Context, update *UpdateThought) error
	DeleteThought(ctx context.Context, delete *DeleteThought) error

	// ThoughtEmbedding model related methods.
	UpsertThoughtEmbedding(ctx context.Context, upsert *ThoughtEmbedding) (*ThoughtEmbedding, error)
	ListThoughtEmbeddings(ctx context.Context, find *FindThoughtEmbedding) ([]*ThoughtEmbedding, error)
	DeleteThoughtEmbedding(ctx context.Context, thoughtID string) error
	ListThoughtsWithoutEmbedding(ctx context.Context, model string, limit int) ([]*Thought, error)
}

package store

import (
	"context"
	"time"
)

// Document is a named canvas of thoughts, dated so constellations can be
// scoped to a day range.
type Document struct {
	Name      string
	Date      time.Time
	CreatedTs int64
}

// FindDocument is the query object for documents.
type FindDocument struct {
	Name *string
}

// DeleteDocument removes a document and, via cascade, its thoughts.
type DeleteDocument struct {
	Name string
}

func (s *Store) UpsertDocument(ctx context.Context, upsert *Document) (*Document, error) {
	return s.driver.UpsertDocument(ctx, upsert)
}

func (s *Store) ListDocuments(ctx context.Context, find *FindDocument) ([]*Document, error) {
	return s.driver.ListDocuments(ctx, find)
}

func (s *Store) DeleteDocument(ctx context.Context, delete *DeleteDocument) error {
	return s.driver.DeleteDocument(ctx, delete)
}

package store

import (
	"context"
	"time"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

// Thought is the persisted form of a canvas bubble.
type Thought struct {
	ID           string
	DocumentName string
	Text         string
	Color        string
	X            float64
	Y            float64
	Size         float64
	CreatedTs    int64
	UpdatedTs    int64
}

// FindThought is the query object for thoughts.
type FindThought struct {
	ID           *string
	DocumentName *string
}

// UpdateThought carries a partial update; nil fields are left untouched.
type UpdateThought struct {
	ID    string
	Text  *string
	Color *string
	X     *float64
	Y     *float64
	Size  *float64
}

// DeleteThought removes a thought and its cached embedding.
type DeleteThought struct {
	ID string
}

// ToAnalysis converts the stored row into the analysis input shape, carrying
// the owning document's date.
func (t *Thought) ToAnalysis(documentDate time.Time) constellation.Thought {
	return constellation.Thought{
		ID:           t.ID,
		Text:         t.Text,
		Color:        t.Color,
		DocumentName: t.DocumentName,
		DocumentDate: documentDate,
		X:            t.X,
		Y:            t.Y,
		Size:         t.Size,
	}
}

func (s *Store) CreateThought(ctx context.Context, create *Thought) (*Thought, error) {
	return s.driver.CreateThought(ctx, create)
}

func (s *Store) ListThoughts(ctx context.Context, find *FindThought) ([]*Thought, error) {
	return s.driver.ListThoughts(ctx, find)
}

func (s *Store) UpdateThought(ctx context.Context, update *UpdateThought) error {
	return s.driver.UpdateThought(ctx, update)
}

func (s *Store) DeleteThought(ctx context.Context, delete *DeleteThought) error {
	return s.driver.DeleteThought(ctx, delete)
}

// ListAnalysisThoughts loads every stored thought in creation order, joined
// with its document date, ready to feed one analysis run.
func (s *Store) ListAnalysisThoughts(ctx context.Context) ([]constellation.Thought, error) {
	documents, err := s.ListDocuments(ctx, &FindDocument{})
	if err != nil {
		return nil, err
	}
	dates := make(map[string]time.Time, len(documents))
	for _, doc := range documents {
		dates[doc.Name] = doc.Date
	}

	thoughts, err := s.ListThoughts(ctx, &FindThought{})
	if err != nil {
		return nil, err
	}
	out := make([]constellation.Thought, 0, len(thoughts))
	for _, t := range thoughts {
		out = append(out, t.ToAnalysis(dates[t.DocumentName]))
	}
	return out, nil
}

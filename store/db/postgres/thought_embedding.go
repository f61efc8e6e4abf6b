package postgres

import (
	"context"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/nebulanotes/constellation/store"
)

// UpsertThoughtEmbedding inserts or refreshes the cached embedding for one
// (thought, model) pair.
func (d *DB) UpsertThoughtEmbedding(ctx context.Context, upsert *store.ThoughtEmbedding) (*store.ThoughtEmbedding, error) {
	stmt := `
		INSERT INTO thought_embedding (thought_id, model, embedding)
		VALUES (` + placeholders(3) + `)
		ON CONFLICT (thought_id, model)
		DO UPDATE SET
			embedding = EXCLUDED.embedding,
			updated_ts = EXTRACT(EPOCH FROM NOW())
		RETURNING id, created_ts, updated_ts
	`
	vector := pgvector.NewVector(upsert.Embedding)
	err := d.db.QueryRowContext(ctx, stmt,
		upsert.ThoughtID,
		upsert.Model,
		vector,
	).Scan(&upsert.ID, &upsert.CreatedTs, &upsert.UpdatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert thought embedding")
	}
	return upsert, nil
}

func (d *DB) ListThoughtEmbeddings(ctx context.Context, find *store.FindThoughtEmbedding) ([]*store.ThoughtEmbedding, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ThoughtID != nil {
		where, args = append(where, "thought_id = "+placeholder(len(args)+1)), append(args, *find.ThoughtID)
	}
	if find.Model != nil {
		where, args = append(where, "model = "+placeholder(len(args)+1)), append(args, *find.Model)
	}

	query := `
		SELECT id, thought_id, model, embedding, created_ts, updated_ts
		FROM thought_embedding
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC
	`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list thought embeddings")
	}
	defer rows.Close()

	list := []*store.ThoughtEmbedding{}
	for rows.Next() {
		var embedding store.ThoughtEmbedding
		var vector pgvector.Vector
		err := rows.Scan(
			&embedding.ID,
			&embedding.ThoughtID,
			&embedding.Model,
			&vector,
			&embedding.CreatedTs,
			&embedding.UpdatedTs,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan thought embedding")
		}
		embedding.Embedding = vector.Slice()
		list = append(list, &embedding)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) DeleteThoughtEmbedding(ctx context.Context, thoughtID string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM thought_embedding WHERE thought_id = "+placeholder(1), thoughtID)
	if err != nil {
		return errors.Wrap(err, "failed to delete thought embedding")
	}
	return nil
}

// ListThoughtsWithoutEmbedding returns thoughts that have no cached embedding
// for the given model, oldest first, so the background runner can fill the
// cache incrementally.
func (d *DB) ListThoughtsWithoutEmbedding(ctx context.Context, model string, limit int) ([]*store.Thought, error) {
	query := `
		SELECT t.id, t.document_name, t.text, t.color, t.x, t.y, t.size, t.created_ts, t.updated_ts
		FROM thought t
		LEFT JOIN thought_embedding te ON te.thought_id = t.id AND te.model = $1
		WHERE te.id IS NULL
		ORDER BY t.created_ts ASC
		LIMIT $2
	`
	rows, err := d.db.QueryContext(ctx, query, model, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list thoughts without embedding")
	}
	defer rows.Close()

	list := []*store.Thought{}
	for rows.Next() {
		var thought store.Thought
		err := rows.Scan(
			&thought.ID,
			&thought.DocumentName,
			&thought.Text,
			&thought.Color,
			&thought.X,
			&thought.Y,
			&thought.Size,
			&thought.CreatedTs,
			&thought.UpdatedTs,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan thought")
		}
		list = append(list, &thought)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

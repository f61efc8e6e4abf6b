package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nebulanotes/constellation/store"
)

func (d *DB) CreateThought(ctx context.Context, create *store.Thought) (*store.Thought, error) {
	stmt := `
		INSERT INTO thought (id, document_name, text, color, x, y, size)
		VALUES (` + placeholders(7) + `)
		RETURNING created_ts, updated_ts
	`
	err := d.db.QueryRowContext(ctx, stmt,
		create.ID,
		create.DocumentName,
		create.Text,
		create.Color,
		create.X,
		create.Y,
		create.Size,
	).Scan(&create.CreatedTs, &create.UpdatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create thought")
	}
	return create, nil
}

func (d *DB) ListThoughts(ctx context.Context, find *store.FindThought) ([]*store.Thought, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.DocumentName != nil {
		where, args = append(where, "document_name = "+placeholder(len(args)+1)), append(args, *find.DocumentName)
	}

	query := `
		SELECT id, document_name, text, color, x, y, size, created_ts, updated_ts
		FROM thought
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts ASC, id ASC
	`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list thoughts")
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

func (d *DB) UpdateThought(ctx context.Context, update *store.UpdateThought) error {
	set, args := []string{}, []any{}

	if update.Text != nil {
		set, args = append(set, "text = "+placeholder(len(args)+1)), append(args, *update.Text)
	}
	if update.Color != nil {
		set, args = append(set, "color = "+placeholder(len(args)+1)), append(args, *update.Color)
	}
	if update.X != nil {
		set, args = append(set, "x = "+placeholder(len(args)+1)), append(args, *update.X)
	}
	if update.Y != nil {
		set, args = append(set, "y = "+placeholder(len(args)+1)), append(args, *update.Y)
	}
	if update.Size != nil {
		set, args = append(set, "size = "+placeholder(len(args)+1)), append(args, *update.Size)
	}
	if len(set) == 0 {
		return nil
	}
	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, time.Now().Unix())
	args = append(args, update.ID)

	stmt := `UPDATE thought SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update thought")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.Errorf("thought %s not found", update.ID)
	}
	return nil
}

func (d *DB) DeleteThought(ctx context.Context, delete *store.DeleteThought) error {
	result, err := d.db.ExecContext(ctx, "DELETE FROM thought WHERE id = "+placeholder(1), delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete thought")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.Errorf("thought %s not found", delete.ID)
	}
	return nil
}

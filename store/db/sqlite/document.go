package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nebulanotes/constellation/store"
)

const dateLayout = "2006-01-02"

func (d *DB) UpsertDocument(ctx context.Context, upsert *store.Document) (*store.Document, error) {
	stmt := `
		INSERT INTO document (name, date)
		VALUES (` + placeholders(2) + `)
		ON CONFLICT (name)
		DO UPDATE SET date = EXCLUDED.date
		RETURNING created_ts
	`
	err := d.db.QueryRowContext(ctx, stmt,
		upsert.Name,
		upsert.Date.Format(dateLayout),
	).Scan(&upsert.CreatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert document")
	}
	return upsert, nil
}

func (d *DB) ListDocuments(ctx context.Context, find *store.FindDocument) ([]*store.Document, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.Name != nil {
		where, args = append(where, "name = "+placeholder(len(args)+1)), append(args, *find.Name)
	}

	query := `
		SELECT name, date, created_ts
		FROM document
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC
	`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list documents")
	}
	defer rows.Close()

	list := []*store.Document{}
	for rows.Next() {
		var document store.Document
		var date string
		if err := rows.Scan(&document.Name, &date, &document.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan document")
		}
		document.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse document date %q", date)
		}
		list = append(list, &document)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) DeleteDocument(ctx context.Context, delete *store.DeleteDocument) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM thought WHERE document_name = "+placeholder(1), delete.Name); err != nil {
		return errors.Wrap(err, "failed to delete document thoughts")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM document WHERE name = "+placeholder(1), delete.Name); err != nil {
		return errors.Wrap(err, "failed to delete document")
	}
	return tx.Commit()
}

package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/nebulanotes/constellation/internal/version"
)

// Migration files live under store/migration/{driver}/. A fresh database is
// initialized from LATEST.sql; existing databases apply the versioned
// directories greater than the recorded schema version, in semver order.

//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName holds the full schema for new installations.
const LatestSchemaFileName = "LATEST.sql"

// Migrate brings the database schema up to the current version.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database initialization")
	}

	if !initialized {
		if err := s.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if err := s.recordSchemaVersion(ctx, version.Version); err != nil {
			return errors.Wrap(err, "failed to record schema version")
		}
		slog.Info("database initialized", "driver", s.profile.Driver, "schema_version", version.Version)
		return nil
	}

	current, err := s.currentSchemaVersion(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read schema version")
	}

	pending, err := s.pendingVersions(current)
	if err != nil {
		return err
	}
	for _, v := range pending {
		if err := s.applyVersion(ctx, v); err != nil {
			return errors.Wrapf(err, "failed to apply migration %s", v)
		}
		if err := s.recordSchemaVersion(ctx, v); err != nil {
			return errors.Wrapf(err, "failed to record schema version %s", v)
		}
		slog.Info("migration applied", "version", v)
	}
	return nil
}

func (s *Store) migrationDir() string {
	return fmt.Sprintf("migration/%s", s.profile.Driver)
}

func (s *Store) applyLatestSchema(ctx context.Context) error {
	buf, err := fs.ReadFile(migrationFS, fmt.Sprintf("%s/%s", s.migrationDir(), LatestSchemaFileName))
	if err != nil {
		return errors.Wrap(err, "failed to read latest schema file")
	}
	_, err = s.driver.GetDB().ExecContext(ctx, string(buf))
	return err
}

// pendingVersions lists embedded versioned directories above current,
// ascending.
func (s *Store) pendingVersions(current string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, s.migrationDir())
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migration directory")
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if version.IsVersionGreaterThan(entry.Name(), current) {
			versions = append(versions, entry.Name())
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return version.Compare(versions[i], versions[j]) < 0
	})
	return versions, nil
}

// applyVersion executes every SQL file of one versioned directory in a
// single transaction, in file-name order.
func (s *Store) applyVersion(ctx context.Context, v string) error {
	dir := fmt.Sprintf("%s/%s", s.migrationDir(), v)
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return errors.Wrap(err, "failed to read migration version directory")
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	tx, err := s.driver.GetDB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin migration transaction")
	}
	defer tx.Rollback()

	for _, name := range names {
		buf, err := fs.ReadFile(migrationFS, fmt.Sprintf("%s/%s", dir, name))
		if err != nil {
			return errors.Wrapf(err, "failed to read migration file %s", name)
		}
		if _, err := tx.ExecContext(ctx, string(buf)); err != nil {
			return errors.Wrapf(err, "failed to execute migration file %s", name)
		}
	}
	return tx.Commit()
}

func (s *Store) currentSchemaVersion(ctx context.Context) (string, error) {
	var v string
	err := s.driver.GetDB().QueryRowContext(ctx,
		"SELECT version FROM migration_history ORDER BY created_ts DESC LIMIT 1",
	).Scan(&v)
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) recordSchemaVersion(ctx context.Context, v string) error {
	_, err := s.driver.GetDB().ExecContext(ctx,
		"INSERT INTO migration_history (version) VALUES ($1)", v,
	)
	return err
}

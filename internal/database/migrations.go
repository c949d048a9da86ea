package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migration is one numbered schema script, e.g. 001_create_dataset_tables.sql
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrator applies the embedded schema scripts in version order
type Migrator struct {
	db     *sql.DB
	source fs.FS
	dir    string
}

// NewMigrator creates a migrator over the embedded scripts
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db, source: embeddedMigrations, dir: "migrations"}
}

// Migrate applies every script not yet recorded in schema_migrations
func (m *Migrator) Migrate(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}

	for _, mig := range pending {
		err := Transaction(ctx, m.db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
				return fmt.Errorf("migration %s: %w", mig.Name, err)
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return err
		}
		slog.Info("applied migration", "version", mig.Version, "name", mig.Name)
	}
	return nil
}

// Pending returns the scripts whose version has not been applied
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	all, err := m.scripts()
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(mig Migration) bool {
		return slices.Contains(applied, mig.Version)
	}), nil
}

// Applied lists the applied versions in ascending order
func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (m *Migrator) scripts() ([]Migration, error) {
	entries, err := fs.ReadDir(m.source, m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".sql")
		if e.IsDir() || !ok {
			continue
		}
		prefix, _, _ := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil {
			slog.Warn("ignoring migration without a numeric prefix", "file", e.Name())
			continue
		}
		body, err := fs.ReadFile(m.source, path.Join(m.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	return out, nil
}

package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema step newer than the database's user_version.
// Each step runs in its own transaction together with the version bump.
func Migrate(database *sql.DB) error {
	var current int
	if err := database.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		if err := applyMigration(database, i); err != nil {
			return err
		}
	}
	return nil
}

// SchemaVersion reports how many migration steps the database has applied.
func SchemaVersion(database *sql.DB) (int, error) {
	var v int
	if err := database.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

func applyMigration(database *sql.DB, step int) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: beginning transaction: %w", step+1, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range migrations[step] {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", step+1, err)
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", step+1)); err != nil {
		return fmt.Errorf("migration %d: recording version: %w", step+1, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: committing: %w", step+1, err)
	}
	return nil
}

var migrations = [][]string{
	// 1: directories and the external task source
	{
		`CREATE TABLE IF NOT EXISTS projects (
			id         TEXT PRIMARY KEY,
			short_id   TEXT NOT NULL,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id COLLATE NOCASE)`,

		`CREATE TABLE IF NOT EXISTS people (
			id           TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			email        TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS external_tasks (
			id             TEXT PRIMARY KEY,
			project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			parent_id      TEXT,
			order_index    INTEGER NOT NULL DEFAULT 0,
			title          TEXT NOT NULL,
			assignee_id    TEXT,
			due_date       TEXT,
			estimate_hours REAL NOT NULL DEFAULT 0 CHECK(estimate_hours >= 0),
			done           INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_external_tasks_project ON external_tasks(project_id)`,
	},

	// 2: one WBS collection per project, stored whole
	{
		`CREATE TABLE IF NOT EXISTS wbs_collections (
			project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
			revision   INTEGER NOT NULL CHECK(revision > 0),
			nodes      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
}

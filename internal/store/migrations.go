package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// SchemaVersion returns the recorded schema version.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	return v, err
}

// migrateV1 creates the analysis history tables.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id                    TEXT PRIMARY KEY,
			created_at            TEXT NOT NULL,
			source_kind           TEXT NOT NULL,
			platform              TEXT,
			source                TEXT,
			size_bytes            INTEGER,
			seed                  TEXT NOT NULL,
			degraded              BOOLEAN NOT NULL DEFAULT false,
			file_count            INTEGER NOT NULL,
			line_count            INTEGER NOT NULL,
			contributors          INTEGER NOT NULL,
			complexity            INTEGER NOT NULL,
			maintainability       INTEGER NOT NULL,
			test_coverage         INTEGER NOT NULL,
			documentation         INTEGER NOT NULL,
			vulnerabilities       INTEGER NOT NULL,
			outdated_dependencies INTEGER NOT NULL,
			license               TEXT NOT NULL,
			security_score        INTEGER NOT NULL,
			bundle                TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS language_shares (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
			position    INTEGER NOT NULL,
			name        TEXT NOT NULL,
			percentage  INTEGER NOT NULL,
			files       INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS suggestions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id  TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
			category     TEXT NOT NULL,
			priority     INTEGER NOT NULL,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL,
			impact_score REAL NOT NULL,
			status       TEXT NOT NULL DEFAULT 'open'
		)`,

		`CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_language_shares_analysis ON language_shares(analysis_id)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_analysis ON suggestions(analysis_id)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_status ON suggestions(status)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}

// Package db is the SQLite store for saved items.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/stash/internal/config"
	_ "modernc.org/sqlite"
)

// DBFile is the database file name inside the base directory.
const DBFile = "stash.db"

// migrations are applied in order; migrations[i] moves user_version from i to i+1.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS items (
	  id                TEXT PRIMARY KEY,
	  kind              TEXT NOT NULL,
	  raw_content       TEXT NOT NULL,
	  extracted_text    TEXT,
	  extracted_title   TEXT,
	  extracted_excerpt TEXT,
	  source_url        TEXT,
	  filename          TEXT,
	  tags_json         TEXT,
	  created_at        INTEGER NOT NULL,
	  updated_at        INTEGER NOT NULL,
	  deleted_at        INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_items_created
	ON items(created_at DESC, id DESC)
	WHERE deleted_at IS NULL;

	CREATE INDEX IF NOT EXISTS idx_items_kind_created
	ON items(kind, created_at DESC)
	WHERE deleted_at IS NULL;
	`,
}

// CurrentSchemaVersion is the user_version after all migrations ran.
var CurrentSchemaVersion = len(migrations)

// Init opens (creating if needed) baseDir/stash.db in WAL mode and brings
// the schema up to date. Tests pass t.TempDir() as baseDir.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	path := filepath.Join(baseDir, DBFile)
	// DSN pragmas apply to every pooled connection.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("read journal mode: %w", err)
	}
	if mode != "wal" {
		db.Close()
		return nil, fmt.Errorf("journal mode is %q, want wal", mode)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	_ = os.Chmod(path, 0600)

	return db, nil
}

// ConfigurePool applies the pool limits set in cfg. Zero leaves the driver default.
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}
	for v := version; v < len(migrations); v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version=%d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: set user_version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", v+1, err)
		}
	}
	return nil
}

// GetUserVersion returns the schema version stored in the user_version pragma.
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion overwrites the user_version pragma.
func SetUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

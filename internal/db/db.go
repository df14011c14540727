// ABOUTME: Database connection and initialization
// ABOUTME: Handles SQLite setup, integrity repair and schema creation
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// InitDB opens the database at dbPath, replacing it with a fresh one if
// it is corrupt, and ensures the schema exists.
func InitDB(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return nil, err
	}

	db, err := openChecked(dbPath)
	if err != nil {
		if !isCorrupt(err) {
			return nil, fmt.Errorf("open database: %w", err)
		}
		// Corrupt: move it aside and start over
		if _, bErr := backupCorrupt(dbPath); bErr != nil {
			return nil, fmt.Errorf("open database: %w (backup failed: %v)", err, bErr)
		}
		db, err = openChecked(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
	}

	// Execute schema
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// openChecked opens dbPath, applies pragmas and runs an integrity check.
func openChecked(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	if err := checkIntegrity(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

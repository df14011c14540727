// ABOUTME: Integrity checking and corrupt database recovery
// ABOUTME: Moves a damaged database aside so a fresh one can be created
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrCorrupt is returned when PRAGMA integrity_check does not report ok.
var ErrCorrupt = errors.New("database integrity check failed")

// checkIntegrity runs SQLite's integrity check.
func checkIntegrity(db *sql.DB) error {
	var status string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&status); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if !strings.EqualFold(status, "ok") {
		return fmt.Errorf("%w: %s", ErrCorrupt, status)
	}
	return nil
}

// isCorrupt reports whether err means the file itself is damaged, as
// opposed to locked or unreachable.
func isCorrupt(err error) bool {
	if errors.Is(err, ErrCorrupt) {
		return true
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB:
			return true
		}
	}
	return false
}

// backupCorrupt renames dbPath to <stem>_corrupt_<unix>.bak next to it and
// removes stale WAL files. It returns the backup path, or "" when there
// was nothing to move.
func backupCorrupt(dbPath string) (string, error) {
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	stem := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	backup := filepath.Join(filepath.Dir(dbPath), fmt.Sprintf("%s_corrupt_%d.bak", stem, time.Now().Unix()))
	if err := os.Rename(dbPath, backup); err != nil {
		return "", fmt.Errorf("backup corrupt database: %w", err)
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}
	return backup, nil
}

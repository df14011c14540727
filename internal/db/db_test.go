// ABOUTME: Database tests for schema initialization and recovery
// ABOUTME: Validates table creation, corrupt file backup and seeding
package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitDB(t *testing.T) {
	// Create temp directory
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer db.Close()

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	// Verify tables exist
	tables := []string{"wins", "deleted_wins"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		}
	}
}

func TestInitDBReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if _, err := InsertEntry(db, Entry{Date: "2025-01-01", Text: "kept", Tags: "a"}); err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}
	_ = db.Close()

	db, err = InitDB(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	n, err := CountActive(db)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d wins after reopen, want 1", n)
	}
}

func TestInitDBRecoversCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "quietwins.db")

	garbage := []byte(strings.Repeat("this is not a sqlite database ", 200))
	_ = os.WriteFile(dbPath, garbage, 0644) //nolint:gosec // Test file permissions

	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB should recover from a corrupt file: %v", err)
	}
	defer func() { _ = db.Close() }()

	matches, _ := filepath.Glob(filepath.Join(tmpDir, "quietwins_corrupt_*.bak"))
	if len(matches) != 1 {
		t.Errorf("expected one corrupt backup, found %v", matches)
	}

	if _, err := InsertEntry(db, Entry{Date: "2025-01-01", Text: "fresh", Tags: "a"}); err != nil {
		t.Errorf("fresh database unusable: %v", err)
	}
}

func TestInitDBLeavesUnopenablePathAlone(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "quietwins.db")

	// A directory cannot be opened as a database but is not corrupt
	if err := os.Mkdir(dbPath, 0755); err != nil { //nolint:gosec // Test directory permissions
		t.Fatalf("mkdir: %v", err)
	}

	if db, err := InitDB(dbPath); err == nil {
		_ = db.Close()
		t.Fatal("expected error opening a directory")
	}

	if info, err := os.Stat(dbPath); err != nil || !info.IsDir() {
		t.Errorf("path was moved aside: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(tmpDir, "quietwins_corrupt_*.bak"))
	if len(matches) != 0 {
		t.Errorf("unexpected backups %v", matches)
	}
}

func TestSeedWelcome(t *testing.T) {
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	seeded, err := SeedWelcome(db)
	if err != nil || !seeded {
		t.Fatalf("expected seed on empty db, got %v, %v", seeded, err)
	}
	seeded, err = SeedWelcome(db)
	if err != nil || seeded {
		t.Fatalf("expected no second seed, got %v, %v", seeded, err)
	}

	entries, err := ListActive(db, 0)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != WelcomeText || entries[0].Tags != WelcomeTags {
		t.Errorf("unexpected seeded entries: %+v", entries)
	}
}

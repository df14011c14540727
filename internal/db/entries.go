// ABOUTME: Win storage with soft delete, restore and purge
// ABOUTME: Active wins live in wins, deleted ones in deleted_wins
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no win has the requested id.
var ErrNotFound = errors.New("win not found")

// Entry is a logged win. Tags holds the denormalized tag string.
type Entry struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Text      string `json:"text"`
	Tags      string `json:"tags"`
	CreatedAt int64  `json:"created_at"`
}

// DeletedEntry is a soft-deleted win awaiting restore or purge.
type DeletedEntry struct {
	Entry
	DeletedAt int64 `json:"deleted_at"`
}

const entryColumns = "id, date, text, tags, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Date, &e.Text, &e.Tags, &e.CreatedAt)
	return e, err
}

// InsertEntry stores a new win and returns its id. A zero CreatedAt is
// set to the current time.
func InsertEntry(db *sql.DB, entry Entry) (int64, error) {
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	result, err := db.Exec(
		"INSERT INTO wins (date, text, tags, created_at) VALUES (?, ?, ?, ?)",
		entry.Date, entry.Text, entry.Tags, entry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert win: %w", err)
	}
	return result.LastInsertId()
}

// GetEntry returns the active win with id.
func GetEntry(db *sql.DB, id int64) (*Entry, error) {
	e, err := scanEntry(db.QueryRow("SELECT "+entryColumns+" FROM wins WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get win %d: %w", id, err)
	}
	return &e, nil
}

// UpdateEntry overwrites date, text and tags of an active win.
func UpdateEntry(db *sql.DB, entry Entry) error {
	result, err := db.Exec(
		"UPDATE wins SET date = ?, text = ?, tags = ? WHERE id = ?",
		entry.Date, entry.Text, entry.Tags, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update win %d: %w", entry.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns active wins, newest created first. A limit of zero
// or less returns all of them.
func ListActive(db *sql.DB, limit int) ([]Entry, error) {
	query := "SELECT " + entryColumns + " FROM wins ORDER BY created_at DESC, id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wins: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListDeleted returns soft-deleted wins, most recently deleted first.
func ListDeleted(db *sql.DB) ([]DeletedEntry, error) {
	rows, err := db.Query("SELECT " + entryColumns + ", deleted_at FROM deleted_wins ORDER BY deleted_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list deleted wins: %w", err)
	}
	defer rows.Close()

	entries := []DeletedEntry{}
	for rows.Next() {
		var d DeletedEntry
		if err := rows.Scan(&d.ID, &d.Date, &d.Text, &d.Tags, &d.CreatedAt, &d.DeletedAt); err != nil {
			return nil, err
		}
		entries = append(entries, d)
	}
	return entries, rows.Err()
}

// SoftDelete moves the win with id into deleted_wins, stamped with the
// current time.
func SoftDelete(db *sql.DB, id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	e, err := scanEntry(tx.QueryRow("SELECT "+entryColumns+" FROM wins WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select win %d: %w", id, err)
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO deleted_wins (id, date, text, tags, created_at, deleted_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.Date, e.Text, e.Tags, e.CreatedAt, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert deleted win: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM wins WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete win: %w", err)
	}

	return tx.Commit()
}

// Restore moves a soft-deleted win back into wins with its original id
// and creation time.
func Restore(db *sql.DB, id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	e, err := scanEntry(tx.QueryRow("SELECT "+entryColumns+" FROM deleted_wins WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select deleted win %d: %w", id, err)
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO wins (id, date, text, tags, created_at) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Date, e.Text, e.Tags, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("reinsert win: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM deleted_wins WHERE id = ?", id); err != nil {
		return fmt.Errorf("drop deleted win: %w", err)
	}

	return tx.Commit()
}

// PurgeDeletedOlderThan permanently removes wins deleted more than hours
// ago and returns how many were removed.
func PurgeDeletedOlderThan(db *sql.DB, hours int) (int64, error) {
	now := time.Now().Unix()
	// Nothing can have been deleted before the epoch.
	if int64(hours) > now/3600 {
		return 0, nil
	}
	cutoff := now - int64(hours)*3600
	result, err := db.Exec("DELETE FROM deleted_wins WHERE deleted_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge deleted wins: %w", err)
	}
	return result.RowsAffected()
}

// CountActive returns the number of active wins.
func CountActive(db *sql.DB) (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM wins").Scan(&n)
	return n, err
}

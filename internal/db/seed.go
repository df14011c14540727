// ABOUTME: First-run seeding of the wins table
// ABOUTME: Inserts a welcome win when the journal is empty
package db

import (
	"database/sql"
	"time"
)

const (
	WelcomeText = "Welcome to Quiet Wins! Log your first win here."
	WelcomeTags = "start, welcome"
)

// SeedWelcome inserts the welcome win if there are no active wins. It
// reports whether a win was inserted.
func SeedWelcome(db *sql.DB) (bool, error) {
	n, err := CountActive(db)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	now := time.Now()
	_, err = InsertEntry(db, Entry{
		Date:      now.Format("2006-01-02"),
		Text:      WelcomeText,
		Tags:      WelcomeTags,
		CreatedAt: now.Unix(),
	})
	return err == nil, err
}

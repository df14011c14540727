// ABOUTME: Daily wins journal file writing
// ABOUTME: Formats wins as markdown or JSON and appends to per-day logs
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/quietwins/internal/db"
)

// WriteJournal appends a win to the journal file for the win's date.
func WriteJournal(dir, format string, entry db.Entry) error {
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return err
	}

	// One file per win date
	logFile := filepath.Join(dir, journalDay(entry)+".log")

	var content string
	switch format {
	case "json":
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		content = string(data) + "\n"
	case "markdown":
		fallthrough
	default:
		content = formatMarkdown(entry)
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // Journal is user-readable
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

func journalDay(entry db.Entry) string {
	if entry.Date != "" {
		return entry.Date
	}
	return time.Unix(entry.CreatedAt, 0).Format("2006-01-02")
}

func formatMarkdown(entry db.Entry) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## #%d - %s\n", entry.ID, entry.Text))

	if entry.Tags != "" {
		sb.WriteString(fmt.Sprintf("- **Tags**: %s\n", entry.Tags))
	}

	sb.WriteString(fmt.Sprintf("- **Logged**: %s\n", time.Unix(entry.CreatedAt, 0).Format(time.RFC3339)))
	sb.WriteString("\n")

	return sb.String()
}

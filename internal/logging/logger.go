// ABOUTME: Structured logger construction
// ABOUTME: Wraps charmbracelet/log with a level parsed from config
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level. Unknown levels
// fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "quietwins",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ABOUTME: Tests for the structured logger constructor
// ABOUTME: Validates level parsing and the discard logger
package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(&bytes.Buffer{}, tt.level)
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level %q: got %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info")

	logger.Debug("hidden")
	logger.Info("win added", "id", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
	if !strings.Contains(out, "win added") || !strings.Contains(out, "id=3") {
		t.Errorf("unexpected log output: %q", out)
	}
}

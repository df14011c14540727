// ABOUTME: Shared helpers for CLI command tests
// ABOUTME: Isolates config and database per test and captures stdout
package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harper/quietwins/internal/config"
)

// setupTestEnv points quietwins at a fresh config and database.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	configPath := filepath.Join(dir, "config.toml")
	content := "seed_welcome = false\nrules_path = \"" + filepath.ToSlash(filepath.Join(dir, "rules.toml")) + "\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil { //nolint:gosec // Test file permissions
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(config.EnvConfigPath, configPath)
	t.Setenv(config.EnvDBPath, filepath.Join(dir, "test.db"))
	color.NoColor = true
	resetFlags(rootCmd)
	return dir
}

// resetFlags clears flag values left over from earlier executions.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with args and returns captured stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var errBuf bytes.Buffer
	rootCmd.SetOut(&errBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// Restore stdout and read captured output
	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	resetFlags(rootCmd)
	return buf.String(), err
}

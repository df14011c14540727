// ABOUTME: Root command definition and CLI setup
// ABOUTME: Loads config, builds the logger and injects "add" for bare text
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/quietwins/internal/config"
	"github.com/harper/quietwins/internal/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	logger    = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "quietwins",
	Short: "Journal of small wins",
	Long:  `Quiet Wins logs short positive moments, tags them automatically and shows how they connect.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.ResolvePath(cfgFile))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg

		level := cfg.LogLevel
		if verbose {
			level = log.DebugLevel.String()
		}
		logger = logging.New(os.Stderr, level)
		return nil
	},
	SilenceUsage: true,
}

func Execute() error {
	// If first arg is not a known subcommand, inject "add"
	if len(os.Args) > 1 {
		arg := os.Args[1]
		// Check if it's not a flag and not a known command
		if len(arg) > 0 && arg[0] != '-' {
			isCommand := false
			for _, cmd := range rootCmd.Commands() {
				if cmd.Name() == arg || cmd.HasAlias(arg) {
					isCommand = true
					break
				}
			}
			if !isCommand && arg != "help" && arg != "completion" {
				os.Args = append([]string{os.Args[0], "add"}, os.Args[1:]...)
			}
		}
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/quietwins/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

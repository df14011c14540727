// ABOUTME: Serve subcommand running the HTTP API and the purge loop
// ABOUTME: Both stop together on interrupt or when either fails
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harper/quietwins/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	Long:  `Serve the JSON API on a local address and purge old deleted wins every purge_interval.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}
		router := api.NewRouter(svc, logger, appConfig.RetentionHours)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return api.Serve(gctx, addr, router, logger)
		})
		g.Go(func() error {
			return svc.RunPurgeLoop(gctx, appConfig.Server.PurgeInterval.Duration, appConfig.RetentionHours)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/talentflow/internal/app"
)

var serveShutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and message consumers",
	Long: `Run the HTTP server and the enabled message consumers until SIGINT,
SIGTERM or SIGHUP, then shut down gracefully.

Configuration is read from CONFIG_PATH (default /config/config.yaml, or
./config/config.yaml when LOCAL=true).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 10*time.Second, "Grace period for in-flight work on shutdown")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	application := app.New()
	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
	defer cancel()
	application.Stop(ctx)

	return nil
}

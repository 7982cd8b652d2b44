package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/cleanslate/internal/logging"
	"github.com/danieljhkim/cleanslate/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the merge API over HTTP",
	Long: `Start an HTTP server exposing POST /v1/merge.

The request body is a GeoJSON FeatureCollection; the response carries the
merge summary, the planned edits and the edited collection. Nothing is stored
between requests.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(eng, logging.Default()).ListenAndServe(ctx, serveAddr)
	},
}

func init() {
	addr := os.Getenv("CLEANSLATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", addr, "Address to listen on")
}

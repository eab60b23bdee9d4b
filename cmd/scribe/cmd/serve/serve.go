package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clinic-scribe/internal/app"
	"clinic-scribe/internal/config"
)

var port string

func init() {
	Cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the clinic API server",
	Long: `Start the clinic API server.

Listens on PORT (default 8000) and serves the transcription, patient,
appointment, and encounter summary endpoints. Requires OPENAI_API_KEY for
transcription and summarization; without it those endpoints return 503.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port != "" {
			os.Setenv("PORT", port)
		}

		// A malformed key is a configuration error, not a runtime
		// condition. Refuse to start rather than serve a half-broken API.
		if _, err := config.GetOpenAIKey(); err != nil {
			log.Fatalf("Refusing to start: %v\n", err)
		}

		server := app.InitializeServer()
		if err := server.Start(); err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

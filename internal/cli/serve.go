package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/payload-distance/api"
	"github.com/gcbaptista/payload-distance/internal/engine"
	"github.com/gcbaptista/payload-distance/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		port    string
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search server",
		Long: `Run the HTTP search server.

Configuration comes from PAYLOAD_DISTANCE_* environment variables; flags win
over the environment.

Examples:
  payload-distance serve                          # Listen on $PAYLOAD_DISTANCE_PORT (default 8080)
  payload-distance serve --port 9000              # Listen on port 9000
  payload-distance serve --data-dir /tmp/search   # Use a custom data directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewLogger(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel, Output: os.Stdout})
			if err != nil {
				return err
			}

			eng, err := engine.NewEngine(cfg.DataDir, cfg.DefaultStrategy(), logger)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			router := api.NewRouter(api.NewAPI(eng, cfg.DefaultStrategy(), logger), cfg.MaxBodyBytes)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := &http.Server{
				Addr:              net.JoinHostPort("", cfg.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", server.Addr).Str("data_dir", cfg.DataDir).
					Str("default_strategy", cfg.DefaultStrategy().String()).Msg("starting server")
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			for _, name := range eng.ListIndexes() {
				if err := eng.PersistIndexData(name); err != nil {
					logger.Error().Err(err).Str("index", name).Msg("failed to persist index on shutdown")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PAYLOAD_DISTANCE_PORT)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory to store index data (overrides PAYLOAD_DISTANCE_DATA_DIR)")
	return cmd
}

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/auktionera/cataloger/internal/handlers"
	"github.com/auktionera/cataloger/internal/scoring"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port        string
		weightsPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the cataloging interface",
		Long: `Starts the cataloging validation API on the specified port.

The API scores record snapshots, runs the sparse-data gate before any
generation attempt, and drives gated LLM generation with the correction
cycle.`,
		Example: `  # Start server on default port 8888
  cataloger serve

  # Start server on custom port with tuned weights
  cataloger serve --port 3000 --weights weights.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScoringConfig(weightsPath)
			if err != nil {
				return err
			}
			handler := handlers.New(cfg)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/score", handler.HandleScore)
			mux.HandleFunc("/api/assess", handler.HandleAssess)
			mux.HandleFunc("/api/generate", handler.HandleGenerate)
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Cataloger interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "Optional YAML weights file overriding the defaults")

	return cmd
}

func loadScoringConfig(weightsPath string) (scoring.Config, error) {
	if weightsPath == "" {
		return scoring.DefaultConfig(), nil
	}
	return scoring.LoadConfig(weightsPath)
}

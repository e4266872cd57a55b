package handlers

import (
	"context"
	"fmt"
	"time"

	"cadence/internal/config"
	"cadence/internal/logger"
	"cadence/internal/server"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start an HTTP server that generates content plans on request.

Endpoints:
  GET  /health           Health check
  GET  /api/categories   Categories, keywords and pool sizes
  POST /api/plans        Generate a plan ({"theme": "...", "days": 30, "use_llm": false})
                         Add ?format=csv to download the plan as CSV

Examples:
  # Start server on default port 8080
  cadence serve

  # Listen on all interfaces, port 3000
  cadence serve --host 0.0.0.0 --port 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 127.0.0.1)")

	return cmd
}

func runServe(ctx context.Context, port int, host string) error {
	serverCfg := config.GetServer()
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	srv := server.New(serverCfg, server.Options{LLM: config.GetLLM(), Catalog: c})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on http://%s", serverCfg.Addr()))
		logger.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		logger.Info("Server shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed, forcing close", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info("Server stopped successfully")
	}

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rezonia/mydata-validator/internal/config"
	"github.com/rezonia/mydata-validator/internal/logger"
	"github.com/rezonia/mydata-validator/internal/processor"
	"github.com/rezonia/mydata-validator/internal/server"
	"github.com/rezonia/mydata-validator/internal/store"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for validating myDATA documents.

The API provides endpoints for:
  - POST /api/v1/validate        - Validate an XML document
  - POST /api/v1/validate/batch  - Validate multiple files (multipart)
  - POST /api/v1/diff            - Compare two invoice revisions
  - GET  /health                 - Health check

When DATABASE_URL is set, validation outcomes are logged to Postgres.

Examples:
  # Start server on default address
  mydata-validator serve

  # Start on a custom port in debug mode
  mydata-validator serve --address :8080 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from SERVER_ADDR/PORT)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if serverAddr != "" {
		cfg.ServerAddr = serverAddr
	}

	logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	opts := []processor.Option{processor.WithLogger(log.Logger)}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		st, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer st.Close()

		opts = append(opts, processor.WithStore(st))
		log.Info().Msg("validation logging enabled")
	}

	srv := server.NewServer(&server.Config{
		Address:      cfg.ServerAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}, processor.NewPipeline(opts...))

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down server")
		os.Exit(0)
	}()

	log.Info().Str("address", cfg.ServerAddr).Str("environment", string(cfg.Environment)).Msg("starting server")
	return srv.Run()
}

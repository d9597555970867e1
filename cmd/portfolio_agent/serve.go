package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/analysis"
	"github.com/jonathan/portfolio-generator/internal/config"
	"github.com/jonathan/portfolio-generator/internal/extraction"
	"github.com/jonathan/portfolio-generator/internal/payment"
	"github.com/jonathan/portfolio-generator/internal/server"
	"github.com/jonathan/portfolio-generator/internal/store"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the portfolio generation, extraction, analysis and payment endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := buildServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Run(ctx)
}

// buildServer wires every configured collaborator into a server. cleanup
// releases the store, the LLM client and the rate limiter.
func buildServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	st, err := store.Open(ctx, store.Options{
		Backend:  cfg.Store.Backend,
		DSN:      cfg.StoreDSN(),
		TTL:      time.Duration(cfg.Store.TTL),
		Capacity: cfg.Store.Capacity,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	client, err := newLLMClient(ctx, cfg, logger)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	var signer *payment.Signer
	if cfg.PaymentSigningSecret != "" {
		if signer, err = payment.NewSigner(cfg.PaymentSigningSecret); err != nil {
			_ = st.Close()
			return nil, nil, err
		}
	}

	srvCfg := server.Config{
		Port:           cfg.Port,
		Store:          st,
		Pipeline:       pipelineOptions(cfg, logger),
		Payments:       payment.NewService(signer),
		ExtractTimeout: time.Duration(cfg.CVTimeout),
		Logger:         logger,
	}
	if client != nil {
		srvCfg.Extractor = extraction.New(client, logger)
		srvCfg.Analyzer = analysis.New(client,
			analysis.WithFetcher(newFetcher(cfg, logger)),
			analysis.WithLogger(logger))
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}

	cleanup := func() {
		srv.Close()
		if client != nil {
			_ = client.Close()
		}
		if err := st.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}
	return srv, cleanup, nil
}

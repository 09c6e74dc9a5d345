// Raindropd is an MCP server for the Raindrop.io bookmarking service.
//
// It exposes collections, bookmarks, tags, and highlights as MCP tools
// and resources over stdio (the default) or HTTP.
//
// Configuration is loaded from ~/.config/raindropd/config.yaml with
// environment variable overrides. The only required setting is the
// Raindrop.io API token:
//
//	RAINDROP_TOKEN=... raindropd
//
//	# HTTP transport instead of stdio
//	RAINDROP_TOKEN=... raindropd --transport http
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/raindropd/internal/config"
	raindrophttp "github.com/fyrsmithlabs/raindropd/internal/http"
	"github.com/fyrsmithlabs/raindropd/internal/logging"
	raindropmcp "github.com/fyrsmithlabs/raindropd/internal/mcp"
	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
	"github.com/fyrsmithlabs/raindropd/internal/session"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
)

var (
	configPath string
	transport  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raindropd",
	Short: "MCP server for Raindrop.io",
	Long: `raindropd serves the Raindrop.io bookmarking API as MCP tools and
resources. By default it speaks MCP over stdio for use as a client
subprocess; --transport http serves the Streamable HTTP and SSE
endpoints instead.`,
	Version:      fmt.Sprintf("%s (%s)", version, gitCommit),
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/raindropd/config.yaml)")
	rootCmd.Flags().StringVar(&transport, "transport", "stdio", "transport to serve: stdio or http")
}

// validTransport reports whether the --transport value is supported.
func validTransport(t string) bool {
	return t == "stdio" || t == "http"
}

func runServe(cmd *cobra.Command, args []string) error {
	if !validTransport(transport) {
		return fmt.Errorf("unknown transport %q (expected stdio or http)", transport)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := raindrop.NewClient(raindrop.Config{
		Token:   cfg.Raindrop.Token.Value(),
		BaseURL: cfg.Raindrop.BaseURL,
		Timeout: cfg.Raindrop.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	sessions := session.NewStore()
	mcpServer, err := raindropmcp.NewServer(&raindropmcp.Config{
		Version: version,
		Logger:  logger,
	}, client, sessions)
	if err != nil {
		return err
	}

	if transport == "stdio" {
		return mcpServer.Run(ctx)
	}

	return serveHTTP(ctx, cfg, logger, mcpServer, sessions)
}

// serveHTTP runs the HTTP transports until the context is cancelled,
// then shuts down within the configured timeout.
func serveHTTP(ctx context.Context, cfg *config.Config, logger *zap.Logger, mcpServer *raindropmcp.Server, sessions *session.Store) error {
	httpCfg := &raindrophttp.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}
	if cfg.RateLimit.Enabled {
		httpCfg.RateLimitPerMinute = cfg.RateLimit.PerMinute
		httpCfg.RateLimitBurst = cfg.RateLimit.Burst
	}

	srv, err := raindrophttp.NewServer(mcpServer, sessions, logger, httpCfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("server shutdown complete")
	return nil
}

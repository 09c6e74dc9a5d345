// Package http hosts the network-facing MCP transports: the Streamable
// HTTP endpoint, the legacy SSE endpoint, and a health check. CORS and
// rate limiting are applied once here rather than per transport.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	raindropmcp "github.com/fyrsmithlabs/raindropd/internal/mcp"
	"github.com/fyrsmithlabs/raindropd/internal/session"
)

// Server serves the HTTP transports for one MCP server.
type Server struct {
	echo     *echo.Echo
	mcp      *raindropmcp.Server
	sessions *session.Store
	logger   *zap.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int

	// RateLimitPerMinute caps requests per client IP; 0 disables
	// limiting. RateLimitBurst is the short-term allowance.
	RateLimitPerMinute int
	RateLimitBurst     int
}

// NewServer creates the HTTP transport host.
func NewServer(mcpServer *raindropmcp.Server, sessions *session.Store, logger *zap.Logger, cfg *Config) (*Server, error) {
	if mcpServer == nil {
		return nil, fmt.Errorf("mcp server is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 3000,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	if cfg.RateLimitPerMinute > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = cfg.RateLimitPerMinute
		}
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0),
				Burst: burst,
			},
		)))
	}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		mcp:      mcpServer,
		sessions: sessions,
		logger:   logger,
		config:   cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the transport endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp.MCP()
	}, nil)
	s.echo.Any("/mcp", echo.WrapHandler(streamable))
	s.echo.Any("/mcp/*", echo.WrapHandler(streamable))

	sse := mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return s.mcp.MCP()
	}, nil)
	s.echo.Any("/sse", echo.WrapHandler(sse))
	s.echo.Any("/sse/*", echo.WrapHandler(sse))
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:         "ok",
		ActiveSessions: s.sessions.Count(),
	})
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

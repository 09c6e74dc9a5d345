// Package mcp exposes the Raindrop.io API as MCP tools and resources.
//
// This implementation uses the MCP SDK (github.com/modelcontextprotocol/go-sdk/mcp)
// and calls the API client directly. Related operations are consolidated
// behind a single tool name with an `operation` discriminator so callers
// disambiguate fewer names.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
	"github.com/fyrsmithlabs/raindropd/internal/session"
)

// Server registers the tool and resource catalogue on an MCP server.
type Server struct {
	mcp      *mcp.Server
	client   *raindrop.Client
	sessions *session.Store
	logger   *zap.Logger
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "raindropd")
	Name string

	// Version is the server version (default: "1.0.0")
	Version string

	// Logger for structured logging
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "raindropd",
		Version: "1.0.0",
		Logger:  zap.NewNop(),
	}
}

// NewServer creates an MCP server backed by the given API client.
func NewServer(cfg *Config, client *raindrop.Client, sessions *session.Store) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if client == nil {
		return nil, fmt.Errorf("raindrop client is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Name == "" {
		cfg.Name = "raindropd"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		client:   client,
		sessions: sessions,
		logger:   cfg.Logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		&mcp.ServerOptions{
			Instructions:       "Access Raindrop.io bookmarks, collections, tags and highlights.",
			InitializedHandler: s.onInitialized,
		},
	)

	s.registerCollectionTools()
	s.registerBookmarkTools()
	s.registerTagTools()
	s.registerHighlightTools()
	s.registerUserTools()
	s.registerSyncTools()
	s.registerResources()

	return s, nil
}

// MCP returns the underlying SDK server, for attaching HTTP transports.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run starts the MCP server on the stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio transport")
	transport := &mcp.StdioTransport{}
	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// onInitialized tracks the session until its connection ends.
func (s *Server) onInitialized(ctx context.Context, req *mcp.InitializedRequest) {
	ss := req.Session
	info := s.sessions.Add(ss.ID())
	s.logger.Info("session initialized", zap.String("session_id", info.ID))

	go func() {
		_ = ss.Wait()
		s.sessions.Remove(info.ID)
		s.logger.Info("session closed", zap.String("session_id", info.ID))
	}()
}

// toolErrorf wraps a handler failure with the operation's human name.
// The message is what the calling model sees, hence the sentence casing.
func toolErrorf(op string, err error) error {
	return fmt.Errorf("Failed to %s: %w", op, err)
}

// validationErrorf rejects bad input before any remote call is made.
func validationErrorf(op, format string, args ...any) error {
	return fmt.Errorf("Failed to %s: %s", op, fmt.Sprintf(format, args...))
}

// textResult builds the human-readable half of a tool result.
func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

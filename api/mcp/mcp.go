// Package mcp provides an MCP (Model Context Protocol) server exposing the
// membank tool surface: explicit, model-initiated memory recall and retain.
package mcp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aletheiahq/membank/pkg/bank"
	"github.com/aletheiahq/membank/pkg/utils"
)

type Config struct {
	// Service is the memory bank the tools operate on.
	Service bank.Service

	// Logger is the configured slog logger.
	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the memory tools.
func NewServer(c Config) (*Server, error) {
	if c.Service == nil {
		return nil, errors.New("memory service is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "membank",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        recallToolName,
		Description: recallDescription,
	}, s.handleRecall)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        retainToolName,
		Description: retainDescription,
	}, s.handleRetain)

	s.mcpServer = mcpServer

	// Stateless streamable HTTP handler: every request is self-contained,
	// so the server can sit behind any plain HTTP mux.
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

package api

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/aletheiahq/membank/api/mcp"
	"github.com/aletheiahq/membank/api/worker"
	"github.com/aletheiahq/membank/pkg/plugin"
)

// Server is the host-facing HTTP server. Hook events arrive as JSON posts;
// the MCP tool surface is mounted under /mcp. The turn-end path acks
// immediately and defers the retention work to the worker pool.
type Server struct {
	config     Config
	plugin     *plugin.Plugin
	workerPool *worker.Pool
	logger     *slog.Logger
	app        *fiber.App
}

// NewServer creates a new API server around an assembled plugin.
func NewServer(config Config, p *plugin.Plugin, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	wp, err := worker.NewPool(&worker.Config{
		Handler: p.TurnEnded,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create worker pool: %w", err)
	}

	mcpServer, err := mcp.NewServer(mcp.Config{
		Service: p.Client(),
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create MCP server: %w", err)
	}

	s := &Server{
		config:     config,
		plugin:     p,
		workerPool: wp,
		logger:     logger,
		app:        app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/hooks/turn-start", s.handleTurnStart)
	app.Post("/hooks/turn-end", s.handleTurnEnd)
	app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting membank server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the server, draining queued turn-end work
// after the listener stops accepting new events.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	s.workerPool.Close()
	return err
}

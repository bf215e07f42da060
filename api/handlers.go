package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aletheiahq/membank/api/worker"
	"github.com/aletheiahq/membank/pkg/hooks"
)

// ErrorResponse is the uniform error body for hook endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TurnStartResponse carries the optional context injection back to the host.
// PrependContext is empty when no policy had anything to inject.
type TurnStartResponse struct {
	PrependContext string `json:"prepend_context"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleTurnStart runs the turn-start policies synchronously: the host is
// blocked assembling model input until this returns, so the response carries
// the injection inline.
func (s *Server) handleTurnStart(c *fiber.Ctx) error {
	var ev hooks.TurnStartEvent
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid turn-start payload"})
	}

	resp := TurnStartResponse{}
	if inj := s.plugin.TurnStarting(c.Context(), ev); inj != nil {
		resp.PrependContext = inj.PrependContext
	}

	return c.JSON(resp)
}

// handleTurnEnd acks with 202 and hands the event to the worker pool. The
// turn is already over on the host side; nothing here is worth blocking for.
func (s *Server) handleTurnEnd(c *fiber.Ctx) error {
	var ev hooks.TurnEndEvent
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid turn-end payload"})
	}

	if !s.workerPool.Enqueue(worker.Job{Event: ev}) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "turn-end queue full"})
	}

	return c.SendStatus(fiber.StatusAccepted)
}

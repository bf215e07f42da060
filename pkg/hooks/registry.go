package hooks

import (
	"context"
	"log/slog"
)

// TurnStartHandler reacts to a turn-start event, optionally returning a
// context injection.
type TurnStartHandler func(ctx context.Context, ev TurnStartEvent) *Injection

// TurnEndHandler reacts to a turn-end event. Side effects only.
type TurnEndHandler func(ctx context.Context, ev TurnEndEvent)

// Registry is a typed event-handler registry keyed by lifecycle point.
// Handlers run in registration order; the first non-nil injection from a
// turn-start handler wins. Registration happens at startup, before events
// flow, so dispatch needs no locking.
type Registry struct {
	start  []TurnStartHandler
	end    []TurnEndHandler
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// OnTurnStart registers a handler for the turn-start lifecycle point.
func (r *Registry) OnTurnStart(h TurnStartHandler) {
	r.start = append(r.start, h)
	r.logger.Debug("hook registered", "kind", string(KindTurnStart))
}

// OnTurnEnd registers a handler for the turn-end lifecycle point.
func (r *Registry) OnTurnEnd(h TurnEndHandler) {
	r.end = append(r.end, h)
	r.logger.Debug("hook registered", "kind", string(KindTurnEnd))
}

// TurnStarting dispatches a turn-start event. Returns the first non-nil
// injection produced, or nil when no handler has anything to inject.
func (r *Registry) TurnStarting(ctx context.Context, ev TurnStartEvent) *Injection {
	for _, h := range r.start {
		if inj := h(ctx, ev); inj != nil {
			return inj
		}
	}
	return nil
}

// TurnEnded dispatches a turn-end event to every registered handler.
func (r *Registry) TurnEnded(ctx context.Context, ev TurnEndEvent) {
	for _, h := range r.end {
		h(ctx, ev)
	}
}

// HandlerCount reports how many handlers are registered for a kind.
// Observability only.
func (r *Registry) HandlerCount(kind Kind) int {
	switch kind {
	case KindTurnStart:
		return len(r.start)
	case KindTurnEnd:
		return len(r.end)
	default:
		return 0
	}
}

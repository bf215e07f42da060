// Package plugin assembles the memory augmentation layer: a remote bank
// client, the automatic retain/recall policies, and the lifecycle registry
// that routes host events to them.
//
// The plugin is the single integration point for hosts. Frontends (MCP tool
// server, HTTP hook endpoints, CLI) construct one Plugin and forward
// lifecycle events to it; everything else is wiring internal to this package.
package plugin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aletheiahq/membank/pkg/bank"
	"github.com/aletheiahq/membank/pkg/config"
	"github.com/aletheiahq/membank/pkg/hooks"
)

// Plugin owns the memory service client and the hook registry. A Plugin is
// immutable after New: the enabled policies are decided once from config.
type Plugin struct {
	cfg      *config.Config
	client   *bank.Client
	registry *hooks.Registry
	logger   *slog.Logger
}

// New builds the plugin from a loaded config. Policies are registered
// according to the hooks toggles: auto-retain listens on turn-end,
// auto-recall on turn-start. A plugin with both toggles off is still valid —
// the explicit tool surface works regardless.
func New(cfg *config.Config, logger *slog.Logger) (*Plugin, error) {
	client, err := bank.NewClient(bank.Config{
		BaseURL: cfg.Service.BaseURL,
		Bank:    cfg.Service.Bank,
		APIKey:  cfg.Service.APIKey,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("could not create bank client: %w", err)
	}

	registry := hooks.NewRegistry(logger)

	if cfg.Hooks.AutoRetain != nil && *cfg.Hooks.AutoRetain {
		retention := hooks.NewRetention(client, cfg.Retention, logger)
		registry.OnTurnEnd(retention.HandleTurnEnd)
	}
	if cfg.Hooks.AutoRecall != nil && *cfg.Hooks.AutoRecall {
		recall := hooks.NewRecall(client, cfg.Recall, logger)
		registry.OnTurnStart(recall.HandleTurnStart)
	}

	return &Plugin{
		cfg:      cfg,
		client:   client,
		registry: registry,
		logger:   logger,
	}, nil
}

// Start logs the active configuration. The plugin holds no background
// resources of its own; frontends own their servers and worker pools.
func (p *Plugin) Start(ctx context.Context) error {
	p.logger.Info("membank plugin started",
		"bank", p.client.Bank(),
		"auto_retain", p.registry.HandlerCount(hooks.KindTurnEnd) > 0,
		"auto_recall", p.registry.HandlerCount(hooks.KindTurnStart) > 0,
	)
	return nil
}

// Stop logs shutdown. Symmetric with Start.
func (p *Plugin) Stop(ctx context.Context) error {
	p.logger.Info("membank plugin stopped", "bank", p.client.Bank())
	return nil
}

// TurnStarting forwards a turn-start event to the registry and returns any
// context injection the policies produced.
func (p *Plugin) TurnStarting(ctx context.Context, ev hooks.TurnStartEvent) *hooks.Injection {
	return p.registry.TurnStarting(ctx, ev)
}

// TurnEnded forwards a turn-end event to the registry.
func (p *Plugin) TurnEnded(ctx context.Context, ev hooks.TurnEndEvent) {
	p.registry.TurnEnded(ctx, ev)
}

// Client exposes the underlying memory service for the explicit tool
// surface, which bypasses the policies.
func (p *Plugin) Client() bank.Service {
	return p.client
}

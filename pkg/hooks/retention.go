package hooks

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aletheiahq/membank/pkg/bank"
	"github.com/aletheiahq/membank/pkg/config"
	"github.com/aletheiahq/membank/pkg/conversation"
)

const (
	// RoleUser is the only message role considered for capture. Assistant
	// output is derivable from what the user said and is intentionally
	// excluded to avoid redundant storage.
	RoleUser = "user"

	// retainContext labels auto-captured items for later provenance.
	retainContext = "auto-captured from conversation"
)

// retainTags label every auto-captured item.
var retainTags = []string{"conversation", "auto"}

// Retention is the auto-retain policy: given a completed turn, it decides
// which fragments of the conversation are durable facts worth persisting and
// submits them to the memory service.
type Retention struct {
	service    bank.Service
	maxPerTurn int
	minLength  int
	logger     *slog.Logger
}

// NewRetention creates the auto-retain policy.
func NewRetention(service bank.Service, cfg config.RetentionConfig, logger *slog.Logger) *Retention {
	return &Retention{
		service:    service,
		maxPerTurn: cfg.MaxPerTurn,
		minLength:  cfg.MinLength,
		logger:     logger,
	}
}

// HandleTurnEnd captures durable fragments from a completed turn. The turn
// has already happened, so nothing here may disturb the host: every failure
// is logged and swallowed, and partial success stands — items submitted
// before a failure stay submitted.
func (r *Retention) HandleTurnEnd(ctx context.Context, ev TurnEndEvent) {
	if !ev.Success || len(ev.Messages) == 0 {
		return
	}

	candidates := r.extract(ev.Messages)
	if len(candidates) == 0 {
		return
	}

	// Spam ceiling: at most maxPerTurn submissions per turn, first come
	// first served in original message order.
	if len(candidates) > r.maxPerTurn {
		candidates = candidates[:r.maxPerTurn]
	}

	retained := 0
	for _, content := range candidates {
		_, err := r.service.Retain(ctx, content, bank.RetainOptions{
			Context: retainContext,
			Tags:    retainTags,
		})
		if err != nil {
			r.logger.Warn("auto-retain submission failed",
				"bank", r.service.Bank(),
				"error", err,
			)
			continue
		}
		retained++
	}

	r.logger.Info("auto-retain pass complete",
		"bank", r.service.Bank(),
		"candidates", len(candidates),
		"retained", retained,
	)
}

// extract walks the batch in order and returns the trimmed text candidates
// worth persisting: user messages only, one candidate per plain string or
// per text block, each longer than minLength after trimming.
func (r *Retention) extract(messages []conversation.Message) []string {
	var candidates []string
	for _, msg := range messages {
		if msg.Role != RoleUser {
			continue
		}
		for _, text := range msg.Content.Texts() {
			trimmed := strings.TrimSpace(text)
			if len(trimmed) <= r.minLength {
				continue
			}
			candidates = append(candidates, trimmed)
		}
	}
	return candidates
}

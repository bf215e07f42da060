package hooks

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aletheiahq/membank/pkg/bank"
	"github.com/aletheiahq/membank/pkg/config"
)

// minPromptLength guards against near-empty prompts producing noisy queries.
const minPromptLength = 10

// Injection block markers. The format is fixed: hosts strip or fold the
// block by matching these literal lines.
const (
	injectionBegin    = "<relevant-memories>"
	injectionEnd      = "</relevant-memories>"
	injectionPreamble = "The following memories from previous conversations may be relevant:"
)

// Recall is the auto-recall policy: given an upcoming turn's prompt, it
// queries the memory service and renders relevant memories as a context
// block for the host to prepend to the model's input.
type Recall struct {
	service     bank.Service
	maxTokens   int
	maxInjected int
	logger      *slog.Logger
}

// NewRecall creates the auto-recall policy.
func NewRecall(service bank.Service, cfg config.RecallConfig, logger *slog.Logger) *Recall {
	return &Recall{
		service:     service,
		maxTokens:   cfg.MaxTokens,
		maxInjected: cfg.MaxInjected,
		logger:      logger,
	}
}

// HandleTurnStart returns a context injection for the upcoming turn, or nil
// when there is nothing worth injecting. Failures are logged and produce
// nil: a memory outage must never hold up the start of a turn.
func (p *Recall) HandleTurnStart(ctx context.Context, ev TurnStartEvent) *Injection {
	if len(strings.TrimSpace(ev.Prompt)) < minPromptLength {
		return nil
	}

	results, err := p.service.Recall(ctx, ev.Prompt, bank.RecallOptions{
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		p.logger.Warn("auto-recall query failed",
			"bank", p.service.Bank(),
			"error", err,
		)
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	// Results arrive relevance-ordered; take the head as-is.
	if len(results) > p.maxInjected {
		results = results[:p.maxInjected]
	}

	p.logger.Debug("injecting recalled memories",
		"bank", p.service.Bank(),
		"count", len(results),
	)

	return &Injection{PrependContext: renderInjection(results)}
}

// renderInjection renders memories as the fixed delimited block: begin
// marker, preamble, one bullet per memory, end marker.
func renderInjection(results []bank.RecallResult) string {
	var b strings.Builder
	b.WriteString(injectionBegin)
	b.WriteString("\n")
	b.WriteString(injectionPreamble)
	b.WriteString("\n\n")
	for _, r := range results {
		b.WriteString("- ")
		b.WriteString(r.Content)
		b.WriteString("\n")
	}
	b.WriteString(injectionEnd)
	return b.String()
}

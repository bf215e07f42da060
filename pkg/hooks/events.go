// Package hooks implements the automatic memory policies and the lifecycle
// event registry that connects them to the host.
//
// The host is the event source: it announces "turn starting" before model
// input is assembled and "turn ended" after a conversation turn completes.
// Handlers are pure reactions — a turn-start handler may return a context
// injection, a turn-end handler returns nothing. Memory failures never
// propagate past a handler; the worst outcome is a degraded memory feature
// while the conversation continues.
package hooks

import "github.com/aletheiahq/membank/pkg/conversation"

// Kind identifies a lifecycle point.
type Kind string

const (
	// KindTurnStart fires before a turn's model input is assembled.
	KindTurnStart Kind = "turn.start"

	// KindTurnEnd fires after a turn has completed.
	KindTurnEnd Kind = "turn.end"
)

// TurnStartEvent carries the upcoming turn's prompt, when the host has one.
type TurnStartEvent struct {
	Prompt string `json:"prompt,omitempty"`
}

// TurnEndEvent carries the outcome of a completed turn and its messages in
// conversation order.
type TurnEndEvent struct {
	Success  bool                   `json:"success"`
	Messages []conversation.Message `json:"messages"`
}

// Injection instructs the host to prepend text to the model's input ahead of
// the turn, as distinct from returning a tool result.
type Injection struct {
	PrependContext string `json:"prepend_context"`
}

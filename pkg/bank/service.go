package bank

import "context"

// Service is the behavioral contract of the memory service client. The
// policies and the tool surface depend on this interface so tests can
// substitute a fake without a network.
type Service interface {
	// Retain durably stores one memory entry.
	Retain(ctx context.Context, content string, opts RetainOptions) (RetainResult, error)

	// Recall runs a relevance query, returning results in the service's
	// relevance order.
	Recall(ctx context.Context, query string, opts RecallOptions) ([]RecallResult, error)

	// Bank returns the partition the service targets.
	Bank() string
}

var _ Service = (*Client)(nil)

package bank

import "time"

// Item is a single memory entry submitted to the service. Items are
// immutable once sent; the remote store owns them from then on and the
// client keeps no local copy.
type Item struct {
	// Content is the memory text. Never empty after trimming.
	Content string `json:"content"`

	// Context is optional provenance text (e.g. "auto-captured from
	// conversation").
	Context string `json:"context,omitempty"`

	// Tags label the item for later filtered recall.
	Tags []string `json:"tags,omitempty"`

	// Timestamp is the RFC-3339 submission instant, set by the client.
	Timestamp string `json:"timestamp"`
}

// RetainOptions carries the optional fields of a retain call.
type RetainOptions struct {
	Context string
	Tags    []string
}

// RetainResult reports the outcome of a retain call.
type RetainResult struct {
	Success    bool
	ItemsCount int

	// MemoryIDs holds server-assigned ids when the service volunteers
	// them; older service versions return none.
	MemoryIDs []string
}

// RecallOptions carries the optional fields of a recall call.
type RecallOptions struct {
	// MaxTokens is the result token budget. Zero means the service
	// default (2000).
	MaxTokens int

	// Tags restricts recall to items carrying any of the given tags.
	Tags []string
}

// RecallResult is one scored memory returned by a recall query. Results are
// transient: they live for the duration of a single call and are never
// cached locally.
type RecallResult struct {
	MemoryID  string     `json:"memory_id"`
	Content   string     `json:"content"`
	Score     float64    `json:"score"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// retainRequest is the wire body of a retain call. Retain always carries a
// single-element batch.
type retainRequest struct {
	Items []Item `json:"items"`
}

// retainResponse is the wire body of a retain response.
type retainResponse struct {
	Success    bool     `json:"success"`
	ItemsCount int      `json:"items_count"`
	IDs        []string `json:"ids,omitempty"`
}

// recallRequest is the wire body of a recall call.
type recallRequest struct {
	Query     string   `json:"query"`
	MaxTokens int      `json:"max_tokens"`
	Budget    string   `json:"budget"`
	Tags      []string `json:"tags,omitempty"`
}

// recallResponse is the wire body of a recall response. Result order is the
// service's relevance order and is forwarded untouched.
type recallResponse struct {
	Results []RecallResult `json:"results"`
}

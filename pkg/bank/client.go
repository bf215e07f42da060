// Package bank provides the typed client for the remote memory service.
//
// The client is a stateless protocol adapter: every call issues exactly one
// HTTP request against a single memory bank (a named partition of the remote
// store) and surfaces every failure to the caller. Retry and backoff are
// deliberately not built in — the retention and recall policies apply
// different tolerance, so they layer their own.
package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxTokens is the service-side recall budget applied when the
	// caller does not specify one.
	DefaultMaxTokens = 2000

	// budgetMid is the fixed relevance budget tier sent on every recall.
	budgetMid = "mid"
)

// Config holds configuration for the memory service client.
type Config struct {
	// BaseURL is the memory service URL (e.g. "http://localhost:8001").
	BaseURL string

	// Bank is the memory partition all calls target.
	Bank string

	// APIKey is an optional bearer credential. When empty no
	// Authorization header is sent.
	APIKey string
}

// Client calls the remote memory service. It holds no state beyond its
// construction parameters and the transport, so a single Client is safe for
// concurrent use.
type Client struct {
	baseURL    string
	bank       string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a memory service client.
func NewClient(c Config, logger *slog.Logger) (*Client, error) {
	if c.BaseURL == "" {
		return nil, errors.New("bank: base URL is required")
	}
	if c.Bank == "" {
		return nil, errors.New("bank: bank id is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(c.BaseURL, "/"),
		bank:       c.Bank,
		apiKey:     c.APIKey,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// Bank returns the partition this client targets.
func (c *Client) Bank() string {
	return c.bank
}

// Retain durably stores one memory entry. The submission timestamp is set
// here, at the moment the item leaves the process.
func (c *Client) Retain(ctx context.Context, content string, opts RetainOptions) (RetainResult, error) {
	if strings.TrimSpace(content) == "" {
		return RetainResult{}, errors.New("bank: empty content")
	}

	reqBody := retainRequest{
		Items: []Item{{
			Content:   content,
			Context:   opts.Context,
			Tags:      opts.Tags,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	}

	var resp retainResponse
	if err := c.post(ctx, c.memoriesURL(""), reqBody, &resp); err != nil {
		return RetainResult{}, err
	}

	c.logger.Debug("retained memory item",
		"bank", c.bank,
		"items_count", resp.ItemsCount,
	)

	return RetainResult{
		Success:    resp.Success,
		ItemsCount: resp.ItemsCount,
		MemoryIDs:  resp.IDs,
	}, nil
}

// Recall runs a relevance query against the bank. Results arrive sorted by
// the service and are returned in that order; the client never re-sorts.
func (c *Client) Recall(ctx context.Context, query string, opts RecallOptions) ([]RecallResult, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	reqBody := recallRequest{
		Query:     query,
		MaxTokens: maxTokens,
		Budget:    budgetMid,
		Tags:      opts.Tags,
	}

	var resp recallResponse
	if err := c.post(ctx, c.memoriesURL("/recall"), reqBody, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("recalled memories",
		"bank", c.bank,
		"results", len(resp.Results),
	)

	return resp.Results, nil
}

// memoriesURL builds the endpoint for this client's bank, with an optional
// suffix such as "/recall".
func (c *Client) memoriesURL(suffix string) string {
	return fmt.Sprintf("%s/v1/default/banks/%s/memories%s", c.baseURL, c.bank, suffix)
}

// post issues one JSON request and decodes the JSON response into out.
// Non-2xx statuses become a *ServiceError carrying the raw body.
func (c *Client) post(ctx context.Context, url string, in, out any) error {
	jsonBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &ServiceError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

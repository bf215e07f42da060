package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aletheiahq/membank/pkg/bank"
)

var (
	recallToolName    = "memory_recall"
	recallDescription = "Search long-term memory for information relevant to a query. Returns the most relevant stored memories ranked by relevance. Use this to retrieve facts, preferences, and context from previous conversations."
)

// RecallInput represents the input arguments for the memory_recall tool.
type RecallInput struct {
	Query     string   `json:"query" jsonschema:"the search query text to find relevant memories"`
	MaxTokens int      `json:"max_tokens,omitempty" jsonschema:"token budget for returned memories (default: 2000)"`
	Tags      []string `json:"tags,omitempty" jsonschema:"restrict results to memories carrying all of these tags"`
}

// RecalledMemory is one recalled memory in the structured output.
type RecalledMemory struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// RecallOutput represents the structured output of a recall.
type RecallOutput struct {
	Query    string           `json:"query"`
	Count    int              `json:"count"`
	Memories []RecalledMemory `json:"memories,omitempty"`
}

// handleRecall processes a memory recall request via MCP. Service failures
// come back as degraded tool results, never as protocol errors: the model
// should see "the tool failed", not lose the session.
func (s *Server) handleRecall(ctx context.Context, _ *mcp.CallToolRequest, input RecallInput) (*mcp.CallToolResult, RecallOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return errorResult("query is required"), RecallOutput{}, nil
	}

	s.config.Logger.Debug("MCP recall request",
		"query", input.Query,
		"max_tokens", input.MaxTokens,
	)

	results, err := s.config.Service.Recall(ctx, input.Query, bank.RecallOptions{
		MaxTokens: input.MaxTokens,
		Tags:      input.Tags,
	})
	if err != nil {
		s.config.Logger.Error("memory recall failed", "error", err)
		return errorResult(fmt.Sprintf("Memory recall failed: %v", err)), RecallOutput{}, nil
	}

	output := RecallOutput{Query: input.Query, Count: len(results)}
	for _, r := range results {
		output.Memories = append(output.Memories, RecalledMemory{
			ID:      r.MemoryID,
			Content: r.Content,
			Score:   r.Score,
		})
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: formatRecall(results)},
		},
	}, output, nil
}

// formatRecall renders recall results as a numbered human-readable list with
// percentage relevance, preserving the service's ranking.
func formatRecall(results []bank.RecallResult) string {
	if len(results) == 0 {
		return "No memories found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d memories:", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "\n\n%d. %s (relevance: %d%%)", i+1, r.Content, int(math.Round(r.Score*100)))
	}
	return b.String()
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}

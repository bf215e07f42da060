package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aletheiahq/membank/pkg/bank"
	"github.com/aletheiahq/membank/pkg/utils"
)

var (
	retainToolName    = "memory_retain"
	retainDescription = "Store an important piece of information in long-term memory. Use this when the user shares a durable fact, preference, or decision worth remembering across conversations."
)

// retainEchoLength caps the confirmation echo; the full content is stored.
const retainEchoLength = 100

// RetainInput represents the input arguments for the memory_retain tool.
type RetainInput struct {
	Content string   `json:"content" jsonschema:"the memory content to store"`
	Context string   `json:"context,omitempty" jsonschema:"optional provenance note attached to the memory"`
	Tags    []string `json:"tags,omitempty" jsonschema:"optional tags for later filtering"`
}

// RetainOutput represents the structured output of a retain.
type RetainOutput struct {
	Action     string   `json:"action"`
	ItemsCount int      `json:"items_count"`
	MemoryIDs  []string `json:"memory_ids,omitempty"`
}

// handleRetain processes a memory retain request via MCP. Like recall,
// failures degrade to error tool results rather than faulting the host.
func (s *Server) handleRetain(ctx context.Context, _ *mcp.CallToolRequest, input RetainInput) (*mcp.CallToolResult, RetainOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return errorResult("content is required"), RetainOutput{}, nil
	}

	s.config.Logger.Debug("MCP retain request",
		"bank", s.config.Service.Bank(),
		"length", len(input.Content),
	)

	result, err := s.config.Service.Retain(ctx, input.Content, bank.RetainOptions{
		Context: input.Context,
		Tags:    input.Tags,
	})
	if err != nil {
		s.config.Logger.Error("memory retain failed", "error", err)
		return errorResult(fmt.Sprintf("Memory retain failed: %v", err)), RetainOutput{}, nil
	}

	output := RetainOutput{
		Action:     "created",
		ItemsCount: result.ItemsCount,
		MemoryIDs:  result.MemoryIDs,
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Stored memory: %s", utils.Truncate(input.Content, retainEchoLength))},
		},
	}, output, nil
}

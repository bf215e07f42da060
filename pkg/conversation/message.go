// Package conversation defines the host-facing message types consumed by the
// lifecycle hooks.
//
// Hosts send message content either as a plain string or as an ordered array
// of typed blocks (text, tool use, images, ...). Content models that union
// explicitly: it is one or the other, and extraction pattern-matches on the
// tag rather than inspecting runtime types.
package conversation

import (
	"encoding/json"
	"fmt"
)

// BlockTypeText is the only block type whose payload contributes text.
const BlockTypeText = "text"

// Block represents a single typed piece of content within a message.
type Block struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Content is a tagged union: plain text or a block sequence.
// The zero value is empty plain text.
type Content struct {
	text   string
	blocks []Block
	tagged bool // true when the blocks variant is active
}

// PlainText constructs the plain-string variant.
func PlainText(text string) Content {
	return Content{text: text}
}

// BlockSequence constructs the block-array variant.
func BlockSequence(blocks ...Block) Content {
	return Content{blocks: blocks, tagged: true}
}

// IsBlocks reports whether the block-array variant is active.
func (c Content) IsBlocks() bool {
	return c.tagged
}

// Text returns the plain-string payload. Empty when the blocks variant is active.
func (c Content) Text() string {
	if c.tagged {
		return ""
	}
	return c.text
}

// Blocks returns the block payload. Nil when the plain variant is active.
func (c Content) Blocks() []Block {
	if !c.tagged {
		return nil
	}
	return c.blocks
}

// Texts extracts the textual fragments of the content: the whole string for
// the plain variant, or the text of every "text" block for the block variant,
// in block order.
func (c Content) Texts() []string {
	if !c.tagged {
		if c.text == "" {
			return nil
		}
		return []string{c.text}
	}

	var texts []string
	for _, b := range c.blocks {
		if b.Type == BlockTypeText {
			texts = append(texts, b.Text)
		}
	}
	return texts
}

// UnmarshalJSON accepts either a JSON string or an array of blocks.
func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = PlainText(s)
		return nil
	}

	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err == nil {
		*c = BlockSequence(blocks...)
		return nil
	}

	return fmt.Errorf("content must be a string or an array of blocks")
}

// MarshalJSON emits whichever variant is active.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.tagged {
		return json.Marshal(c.blocks)
	}
	return json.Marshal(c.text)
}

// Message represents a single message in a conversation turn.
type Message struct {
	Role    string  `json:"role"` // "system", "user", "assistant", "tool"
	Content Content `json:"content"`
}

// NewTextMessage creates a plain text message with the given role and content.
func NewTextMessage(role, text string) Message {
	return Message{Role: role, Content: PlainText(text)}
}

// NewBlockMessage creates a block-content message with the given role.
func NewBlockMessage(role string, blocks ...Block) Message {
	return Message{Role: role, Content: BlockSequence(blocks...)}
}

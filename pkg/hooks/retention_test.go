package hooks_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aletheiahq/membank/pkg/config"
	"github.com/aletheiahq/membank/pkg/conversation"
	"github.com/aletheiahq/membank/pkg/hooks"
	"github.com/aletheiahq/membank/pkg/logger"
	testutils "github.com/aletheiahq/membank/pkg/utils/test"
)

var _ = Describe("Retention", func() {
	var (
		ctx     context.Context
		service *testutils.MockService
		policy  *hooks.Retention
	)

	retentionCfg := config.RetentionConfig{MaxPerTurn: 5, MinLength: 10}

	BeforeEach(func() {
		ctx = context.Background()
		service = testutils.NewMockService()
		policy = hooks.NewRetention(service, retentionCfg, logger.Nop())
	})

	It("does nothing when the turn failed", func() {
		policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{
			Success:  false,
			Messages: []conversation.Message{conversation.NewTextMessage("user", "a perfectly good memory")},
		})
		Expect(service.RetainCalls).To(BeEmpty())
	})

	It("does nothing for an empty batch", func() {
		policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{Success: true})
		Expect(service.RetainCalls).To(BeEmpty())
	})

	It("captures only user messages", func() {
		policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{
			Success: true,
			Messages: []conversation.Message{
				conversation.NewTextMessage("system", "you are a helpful assistant"),
				conversation.NewTextMessage("user", "I prefer dark mode everywhere"),
				conversation.NewTextMessage("assistant", "noted, switching to dark mode"),
				conversation.NewTextMessage("tool", "theme applied successfully now"),
			},
		})
		Expect(service.Retained()).To(Equal([]string{"I prefer dark mode everywhere"}))
	})

	It("discards candidates at or below the minimum trimmed length", func() {
		policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{
			Success: true,
			Messages: []conversation.Message{
				conversation.NewTextMessage("user", "short"),
				conversation.NewTextMessage("user", "  exactly-10  "), // 10 chars trimmed, not enough
				conversation.NewTextMessage("user", "this one is long enough"),
			},
		})
		Expect(service.Retained()).To(Equal([]string{"this one is long enough"}))
	})

	It("extracts one candidate per text block", func() {
		policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{
			Success: true,
			Messages: []conversation.Message{
				conversation.NewBlockMessage("user",
					conversation.Block{Type: "text", Text: "first durable fragment"},
					conversation.Block{Type: "tool_use"},
					conversation.Block{Type: "text", Text: "second durable fragment"},
				),
			},
		})
		Expect(service.Retained()).To(Equal([]string{
			"first durable fragment",
			"second durable fragment",
		}))
	})

	It("submits at most five candidates, in original order", func() {
		var messages []conversation.Message
		for i := range 8 {
			messages = append(messages, conversation.NewTextMessage("user",
				fmt.Sprintf("durable conversational fact number %d", i)))
		}

		policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{Success: true, Messages: messages})

		Expect(service.RetainCalls).To(HaveLen(5))
		for i, call := range service.RetainCalls {
			Expect(call.Content).To(Equal(fmt.Sprintf("durable conversational fact number %d", i)))
		}
	})

	It("tags and contextualizes every submission", func() {
		policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{
			Success:  true,
			Messages: []conversation.Message{conversation.NewTextMessage("user", "I live in Rotterdam these days")},
		})

		Expect(service.RetainCalls).To(HaveLen(1))
		call := service.RetainCalls[0]
		Expect(call.Opts.Tags).To(Equal([]string{"conversation", "auto"}))
		Expect(call.Opts.Context).To(Equal("auto-captured from conversation"))
	})

	It("caps each invocation independently, with no cross-call dedup", func() {
		var messages []conversation.Message
		for i := range 6 {
			messages = append(messages, conversation.NewTextMessage("user",
				fmt.Sprintf("repeating durable fact number %d", i)))
		}
		ev := hooks.TurnEndEvent{Success: true, Messages: messages}

		policy.HandleTurnEnd(ctx, ev)
		policy.HandleTurnEnd(ctx, ev)

		Expect(service.RetainCalls).To(HaveLen(10))
	})

	It("swallows submission failures and keeps going", func() {
		service.RetainErrAfter = 2

		var messages []conversation.Message
		for i := range 5 {
			messages = append(messages, conversation.NewTextMessage("user",
				fmt.Sprintf("durable conversational fact number %d", i)))
		}

		Expect(func() {
			policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{Success: true, Messages: messages})
		}).NotTo(Panic())

		// The first two submissions landed before the fake started failing.
		Expect(service.RetainCalls).To(HaveLen(2))
	})

	It("swallows total service outages", func() {
		service.RetainErr = context.DeadlineExceeded

		Expect(func() {
			policy.HandleTurnEnd(ctx, hooks.TurnEndEvent{
				Success:  true,
				Messages: []conversation.Message{conversation.NewTextMessage("user", "a perfectly good memory")},
			})
		}).NotTo(Panic())
	})
})

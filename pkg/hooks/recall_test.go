package hooks_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aletheiahq/membank/pkg/bank"
	"github.com/aletheiahq/membank/pkg/config"
	"github.com/aletheiahq/membank/pkg/hooks"
	"github.com/aletheiahq/membank/pkg/logger"
	testutils "github.com/aletheiahq/membank/pkg/utils/test"
)

var _ = Describe("Recall", func() {
	var (
		ctx     context.Context
		service *testutils.MockService
		policy  *hooks.Recall
	)

	recallCfg := config.RecallConfig{MaxTokens: 1500, MaxInjected: 5}

	BeforeEach(func() {
		ctx = context.Background()
		service = testutils.NewMockService()
		policy = hooks.NewRecall(service, recallCfg, logger.Nop())
	})

	It("skips prompts shorter than ten characters", func() {
		inj := policy.HandleTurnStart(ctx, hooks.TurnStartEvent{Prompt: "  hi     "})
		Expect(inj).To(BeNil())
		Expect(service.RecallCalls).To(BeEmpty())
	})

	It("queries with the configured token budget", func() {
		policy.HandleTurnStart(ctx, hooks.TurnStartEvent{Prompt: "what editor theme do I use?"})

		Expect(service.RecallCalls).To(HaveLen(1))
		Expect(service.RecallCalls[0].Query).To(Equal("what editor theme do I use?"))
		Expect(service.RecallCalls[0].Opts.MaxTokens).To(Equal(1500))
	})

	It("returns nil when nothing matches", func() {
		inj := policy.HandleTurnStart(ctx, hooks.TurnStartEvent{Prompt: "what editor theme do I use?"})
		Expect(inj).To(BeNil())
	})

	It("renders the injection block around the results", func() {
		service.RecallResults = []bank.RecallResult{
			{MemoryID: "m1", Content: "user prefers dark mode", Score: 0.93},
			{MemoryID: "m2", Content: "user lives in Rotterdam", Score: 0.71},
		}

		inj := policy.HandleTurnStart(ctx, hooks.TurnStartEvent{Prompt: "what editor theme do I use?"})

		Expect(inj).NotTo(BeNil())
		Expect(inj.PrependContext).To(Equal(
			"<relevant-memories>\n" +
				"The following memories from previous conversations may be relevant:\n\n" +
				"- user prefers dark mode\n" +
				"- user lives in Rotterdam\n" +
				"</relevant-memories>"))
	})

	It("injects at most the configured number of memories, preserving order", func() {
		service.RecallResults = []bank.RecallResult{
			{Content: "first"}, {Content: "second"}, {Content: "third"},
			{Content: "fourth"}, {Content: "fifth"}, {Content: "sixth"},
		}

		inj := policy.HandleTurnStart(ctx, hooks.TurnStartEvent{Prompt: "tell me everything you know"})

		Expect(inj).NotTo(BeNil())
		Expect(inj.PrependContext).To(ContainSubstring("- fifth\n"))
		Expect(inj.PrependContext).NotTo(ContainSubstring("sixth"))
	})

	It("returns nil on service failure without propagating", func() {
		service.RecallErr = errors.New("connection refused")

		var inj *hooks.Injection
		Expect(func() {
			inj = policy.HandleTurnStart(ctx, hooks.TurnStartEvent{Prompt: "what editor theme do I use?"})
		}).NotTo(Panic())
		Expect(inj).To(BeNil())
	})
})

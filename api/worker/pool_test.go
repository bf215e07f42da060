package worker

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aletheiahq/membank/pkg/conversation"
	"github.com/aletheiahq/membank/pkg/hooks"
	"github.com/aletheiahq/membank/pkg/logger"
)

// recorder collects the events a pool hands to its handler.
// Callers should "wp.Close()" to drain enqueued jobs before asserting.
type recorder struct {
	mu     sync.Mutex
	events []hooks.TurnEndEvent
}

func (r *recorder) handle(_ context.Context, ev hooks.TurnEndEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) seen() []hooks.TurnEndEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]hooks.TurnEndEvent(nil), r.events...)
}

var _ = Describe("Worker Pool", func() {
	var rec *recorder

	BeforeEach(func() {
		rec = &recorder{}
	})

	Describe("NewPool", func() {
		It("requires a handler", func() {
			_, err := NewPool(&Config{Logger: logger.Nop()})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Enqueue", func() {
		It("returns true when the queue has capacity", func() {
			wp, err := NewPool(&Config{Handler: rec.handle, Logger: logger.Nop()})
			Expect(err).NotTo(HaveOccurred())

			ok := wp.Enqueue(Job{Event: hooks.TurnEndEvent{Success: true}})
			Expect(ok).To(BeTrue())
			wp.Close()
		})

		It("drops jobs when the queue is full", func() {
			// Zero workers would block NewPool's default, so use one worker
			// parked on a gate while we overfill a single-slot queue.
			gate := make(chan struct{})
			blocked, err := NewPool(&Config{
				Handler: func(context.Context, hooks.TurnEndEvent) {
					<-gate
				},
				NumWorkers: 1,
				QueueSize:  1,
				Logger:     logger.Nop(),
			})
			Expect(err).NotTo(HaveOccurred())

			// First job occupies the worker; eventually the queue slot and
			// then the overflow fill up.
			Eventually(func() bool {
				return !blocked.Enqueue(Job{Event: hooks.TurnEndEvent{}})
			}).Should(BeTrue())

			close(gate)
			blocked.Close()
		})
	})

	Describe("Close", func() {
		It("drains every enqueued job before returning", func() {
			wp, err := NewPool(&Config{Handler: rec.handle, Logger: logger.Nop()})
			Expect(err).NotTo(HaveOccurred())

			for range 20 {
				Expect(wp.Enqueue(Job{Event: hooks.TurnEndEvent{
					Success: true,
					Messages: []conversation.Message{
						conversation.NewTextMessage("user", "a durable fact worth keeping"),
					},
				}})).To(BeTrue())
			}

			wp.Close()

			events := rec.seen()
			Expect(events).To(HaveLen(20))
			Expect(events[0].Messages).To(HaveLen(1))
		})
	})
})

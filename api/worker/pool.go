// Package worker provides an asynchronous worker pool for processing
// turn-end events off the HTTP hot path.
//
// A turn-end acknowledgment must return to the host immediately; the
// retention pass issues up to several network calls and can take seconds on
// a slow memory service. The pool decouples the two: the handler enqueues
// and acks, workers drain the queue and run the retention handlers.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/aletheiahq/membank/pkg/hooks"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// Job is a unit of work for the worker pool to execute against.
type Job struct {
	Event hooks.TurnEndEvent
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Handler receives the drained turn-end events. Typically
	// Plugin.TurnEnded.
	Handler func(ctx context.Context, ev hooks.TurnEndEvent)

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// Logger is the provided slog logger.
	Logger *slog.Logger
}

// Pool processes turn-end jobs asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan Job
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}
	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}
	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	wp := &Pool{
		config: c,
		queue:  make(chan Job, c.QueueSize),
		logger: c.Logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a job for processing by the worker pool.
// Returns true if enqueued, false if the queue is full, resulting in the job
// being dropped. Dropping is preferable to blocking the host's ack path.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("turn-end job queued",
			"messages", len(job.Event.Messages),
		)
		return true
	default:
		p.logger.Error("job not queued, queue full, job dropped",
			"messages", len(job.Event.Messages),
		)
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain.
// Call this during graceful shutdown after the HTTP server has stopped.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// worker is the inner worker thread that continuously pulls jobs off the
// jobs queue.
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", "worker_id", id)

	for job := range p.queue {
		p.config.Handler(context.Background(), job.Event)
	}

	p.logger.Debug("worker stopped", "worker_id", id)
}

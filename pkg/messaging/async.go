package messaging

import (
	"context"
	"fmt"

	"github.com/noah-isme/lms-ledger-api/pkg/jobs"
)

// Sink publishes a single event synchronously.
type Sink interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// AsyncPublisher hands events to a worker pool so request handlers never
// wait on the broker. Failed publishes are retried by the pool.
type AsyncPublisher struct {
	sink  Sink
	queue *jobs.Queue
}

// NewAsyncPublisher wraps sink with a queue configured by cfg.
func NewAsyncPublisher(sink Sink, cfg jobs.QueueConfig) *AsyncPublisher {
	p := &AsyncPublisher{sink: sink}
	p.queue = jobs.NewQueue("ledger-events", func(ctx context.Context, job jobs.Job) error {
		return p.sink.Publish(ctx, job.Type, job.Payload)
	}, cfg)
	return p
}

// Start launches the publishing workers.
func (p *AsyncPublisher) Start(ctx context.Context) {
	p.queue.Start(ctx)
}

// Publish enqueues the event. It fails only when the queue is full or stopped.
func (p *AsyncPublisher) Publish(_ context.Context, eventType string, payload interface{}) error {
	if err := p.queue.Submit(jobs.Job{Type: eventType, Payload: payload}); err != nil {
		return fmt.Errorf("enqueue %s: %w", eventType, err)
	}
	return nil
}

// Close flushes queued events.
func (p *AsyncPublisher) Close() {
	p.queue.Stop()
}

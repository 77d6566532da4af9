package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/pipekit/logger"
)

const defaultPollInterval = time.Millisecond

// Runner drives a Source into a Sink until the source is exhausted or
// the context is canceled. It owns neither: closing the source and sink
// stays with the caller, so a sink can outlive several runs.
type Runner struct {
	source Source
	sink   Sink
	poll   time.Duration
	log    *logger.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPollInterval sets how long the Runner yields after a turn in
// which the sink made no progress.
func WithPollInterval(d time.Duration) RunnerOption {
	return func(r *Runner) { r.poll = d }
}

// WithLogger sets the logger used for progress diagnostics.
func WithLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// NewRunner creates a Runner for the given source and sink.
func NewRunner(source Source, sink Sink, opts ...RunnerOption) *Runner {
	r := &Runner{
		source: source,
		sink:   sink,
		poll:   defaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("stream")
	}
	return r
}

// Run pulls batches and offers them to the sink, re-offering any
// unconsumed tail before pulling the next batch. Record order is
// preserved across turns. Returns nil when the source is exhausted and
// every pulled record has been consumed.
func (r *Runner) Run(ctx context.Context) error {
	itemSize := r.sink.ItemSize()
	if itemSize <= 0 {
		return fmt.Errorf("stream: sink item size must be positive (got %d)", itemSize)
	}

	var pending []byte
	for {
		if len(pending) == 0 {
			batch, ok, err := r.source.Next(ctx)
			if err != nil {
				return fmt.Errorf("stream: pulling batch: %w", err)
			}
			if !ok {
				return nil
			}
			if len(batch)%itemSize != 0 {
				return fmt.Errorf("stream: batch of %d bytes is not a multiple of item size %d", len(batch), itemSize)
			}
			pending = batch
		}

		consumed, err := r.sink.Work(pending)
		if err != nil {
			return fmt.Errorf("stream: sink work: %w", err)
		}
		if consumed > len(pending)/itemSize {
			return fmt.Errorf("stream: sink consumed %d of %d offered records", consumed, len(pending)/itemSize)
		}
		pending = pending[consumed*itemSize:]

		if consumed == 0 {
			r.log.Debug("sink backpressure, yielding", logger.Fields(
				logger.FieldItems, len(pending)/itemSize,
			))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.poll):
			}
		}
	}
}

// Package journal records inventory events to the append-only activity log.
package journal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"mini-inventory/internal/inventory"
	"mini-inventory/internal/model"
	"mini-inventory/internal/repository"

	"github.com/rs/zerolog"
)

const writeTimeout = 5 * time.Second

// Options configures a Recorder.
type Options struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

// Recorder buffers manager events and writes them to the repository in batches.
// Write failures are logged and the batch is discarded.
type Recorder struct {
	repo          repository.EventRepository
	events        chan model.Event
	batchSize     int
	flushInterval time.Duration
	logger        zerolog.Logger

	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	dropped atomic.Int64
	written atomic.Int64
}

var _ inventory.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder and starts its flush worker.
func NewRecorder(repo repository.EventRepository, opts Options, logger zerolog.Logger) *Recorder {
	r := newRecorder(repo, opts, logger)
	go r.run()
	return r
}

func newRecorder(repo repository.EventRepository, opts Options, logger zerolog.Logger) *Recorder {
	if opts.BufferSize < 1 {
		opts.BufferSize = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = time.Second
	}
	return &Recorder{
		repo:          repo,
		events:        make(chan model.Event, opts.BufferSize),
		batchSize:     opts.BatchSize,
		flushInterval: opts.FlushInterval,
		logger:        logger.With().Str("component", "journal").Logger(),
		done:          make(chan struct{}),
	}
}

// Observe queues the event without blocking. Events arriving while the
// buffer is full, or after Close, are dropped.
func (r *Recorder) Observe(event model.Event, _ inventory.Snapshot) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.dropped.Add(1)
		return
	}

	select {
	case r.events <- event:
	default:
		r.dropped.Add(1)
		r.logger.Warn().
			Str("event_id", event.ID.String()).
			Str("type", string(event.Type)).
			Msg("journal buffer full, dropping event")
	}
}

// Dropped returns the number of events that were never queued.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Written returns the number of events successfully handed to the repository.
func (r *Recorder) Written() int64 {
	return r.written.Load()
}

// Close stops accepting events and waits for the buffer to drain.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.events)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		r.logger.Info().
			Int64("written", r.written.Load()).
			Int64("dropped", r.dropped.Load()).
			Msg("journal closed")
		return nil
	case <-ctx.Done():
		r.logger.Warn().Err(ctx.Err()).Msg("journal close timed out")
		return ctx.Err()
	}
}

func (r *Recorder) run() {
	defer close(r.done)

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	batch := make([]model.Event, 0, r.batchSize)
	for {
		select {
		case event, ok := <-r.events:
			if !ok {
				r.flush(batch)
				return
			}
			batch = append(batch, event)
			if len(batch) >= r.batchSize {
				r.flush(batch)
				batch = make([]model.Event, 0, r.batchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = make([]model.Event, 0, r.batchSize)
			}
		}
	}
}

func (r *Recorder) flush(batch []model.Event) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := r.repo.AppendBatch(ctx, batch); err != nil {
		r.logger.Error().
			Err(err).
			Int("count", len(batch)).
			Msg("failed to write journal batch")
		return
	}

	r.written.Add(int64(len(batch)))
	r.logger.Debug().Int("count", len(batch)).Msg("journal batch written")
}

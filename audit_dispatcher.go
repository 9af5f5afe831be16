package portalauth

import (
	"context"
	"sync"
	"sync/atomic"
)

// auditDispatcher decouples guard evaluations and session flows from the
// configured sink: emitters enqueue and return, a single goroutine feeds
// the sink. Guard latency therefore never includes sink latency.
type auditDispatcher struct {
	cfg   AuditConfig
	sink  AuditSink
	queue chan AuditEvent
	quit  chan struct{}

	pumpDone sync.WaitGroup
	dropped  atomic.Uint64
	closed   atomic.Bool
	stopOnce sync.Once
}

// newAuditDispatcher returns nil when auditing is disabled; a nil
// dispatcher accepts Emit and Close as no-ops.
func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &auditDispatcher{
		cfg:   cfg,
		sink:  sink,
		queue: make(chan AuditEvent, cfg.BufferSize),
		quit:  make(chan struct{}),
	}

	d.pumpDone.Add(1)
	go d.pump()

	return d
}

// pump is the single consumer. On shutdown it drains whatever is already
// queued before returning, so Close never discards accepted events.
func (d *auditDispatcher) pump() {
	defer d.pumpDone.Done()

	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.quit:
			for {
				select {
				case event := <-d.queue:
					d.sink.Emit(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// Emit enqueues an event for the sink. With DropIfFull set, a full queue
// drops the event and counts it instead of blocking the emitting guard or
// flow; otherwise Emit blocks until there is room or ctx is done.
func (d *auditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.cfg.DropIfFull {
		select {
		case d.queue <- event:
		case <-d.quit:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
	case <-ctx.Done():
	case <-d.quit:
	}
}

// Close stops accepting events and waits for the pump to drain the queue.
// Safe to call more than once.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.stopOnce.Do(func() {
		d.closed.Store(true)
		close(d.quit)
		d.pumpDone.Wait()
	})
}

// Dropped reports how many events were discarded because the queue was
// full at emit time.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}

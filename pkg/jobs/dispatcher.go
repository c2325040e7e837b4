package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job represents a queued background task.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// DispatcherConfig configures worker pool behaviour.
type DispatcherConfig struct {
	Workers    int
	BufferSize int
	Logger     *zap.Logger
}

// Dispatcher is a fire-and-forget in-memory job runner. Jobs are attempted
// exactly once: a failed job is logged and dropped, never retried, and a full
// buffer drops the job instead of blocking the producer.
type Dispatcher struct {
	name    string
	handler Handler

	workers int
	logger  *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewDispatcher builds a dispatcher with the provided handler.
func NewDispatcher(name string, handler Handler, cfg DispatcherConfig) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 16
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Dispatcher{
		name:    name,
		handler: handler,
		workers: cfg.Workers,
		logger:  cfg.Logger,
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.ctx, d.cancel = context.WithCancel(ctx)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.started = true
	d.logger.Sugar().Infow("dispatcher started", "name", d.name, "workers", d.workers)
}

// Stop cancels workers and waits for them to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.cancel()
	d.mu.Unlock()
	d.wg.Wait()
	d.logger.Sugar().Infow("dispatcher stopped", "name", d.name)
}

// Enqueue offers a job to the pool without blocking. The return value reports
// whether the job was accepted; callers treating delivery as best-effort may
// ignore it.
func (d *Dispatcher) Enqueue(job Job) bool {
	d.mu.Lock()
	started := d.started
	d.mu.Unlock()

	if !started {
		d.logger.Sugar().Warnw("job dropped, dispatcher not started", "name", d.name, "type", job.Type)
		return false
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case d.jobs <- job:
		return true
	default:
		d.logger.Sugar().Warnw("job dropped, buffer full", "name", d.name, "job_id", job.ID, "type", job.Type)
		return false
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.ctx.Done():
			return
		case job := <-d.jobs:
			if err := d.handler(d.ctx, job); err != nil {
				d.logger.Sugar().Warnw("job failed, dropping", "name", d.name, "job_id", job.ID, "type", job.Type, "error", err)
			}
		}
	}
}

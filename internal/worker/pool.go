// Package worker provides the bounded pool executing import-processing
// tasks. When the queue is saturated the submitting goroutine runs the task
// itself; no task is ever dropped.
package worker

import (
	"context"
	"sync"

	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

// Task is one unit of asynchronous work.
type Task = func(ctx context.Context)

type Config struct {
	PoolSize      int
	QueueCapacity int
}

type Pool struct {
	tasks   chan Task
	mu      sync.Mutex
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *logger.Logger
	size    int
	started bool
}

func New(log *logger.Logger, cfg *Config) *Pool {
	if cfg == nil {
		cfg = &Config{
			PoolSize:      4,
			QueueCapacity: 100,
		}
	}

	return &Pool{
		tasks:  make(chan Task, cfg.QueueCapacity),
		logger: log,
		size:   cfg.PoolSize,
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}

	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker(p.ctx, i)
	}

	p.started = true
	p.logger.Info(p.ctx, "Worker pool started",
		"pool_size", p.size,
		"queue_capacity", cap(p.tasks),
	)
}

func (p *Pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	p.logger.Debug(ctx, "Worker started", "worker_id", workerID)

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug(ctx, "Worker stopping", "worker_id", workerID)
			return
		case task, ok := <-p.tasks:
			if !ok {
				p.logger.Debug(ctx, "Task channel closed, worker stopping", "worker_id", workerID)
				return
			}

			p.runTask(ctx, task, workerID)
		}
	}
}

func (p *Pool) runTask(ctx context.Context, task Task, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "Task panicked",
				"worker_id", workerID,
				"panic", r,
			)
		}
	}()

	task(ctx)
}

// Submit enqueues a task. When pool and queue are saturated, the submitting
// goroutine executes the task synchronously as backpressure.
func (p *Pool) Submit(ctx context.Context, task Task) {
	select {
	case p.tasks <- task:
		p.logger.Debug(ctx, "Task enqueued", "queue_depth", len(p.tasks))
	default:
		p.logger.Warn(ctx, "Worker pool saturated, running task on caller")
		p.runTask(ctx, task, -1)
	}
}

// Shutdown stops accepting new work and waits for in-flight tasks until ctx
// expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.logger.Info(ctx, "Shutting down worker pool")

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info(ctx, "Worker pool shutdown complete")
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "Worker pool shutdown timeout")
		return ctx.Err()
	}
}

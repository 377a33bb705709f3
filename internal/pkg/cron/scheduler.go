package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one registered reconciler run on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs the batch reconcilers. Every job must be idempotent;
// the scheduler offers no exactly-once guarantee.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. Must be called before Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("Reconciler registered", "name", name, "interval", interval)
}

// Start launches one goroutine per job. Each job runs once immediately,
// then on its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Reconciler scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	slog.Info("Stopping reconciler scheduler")
	s.cancel()
	s.wg.Wait()
	slog.Info("Reconciler scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.executeJob(job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Reconciler stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(job)
		}
	}
}

func (s *Scheduler) executeJob(job Job) {
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			slog.Error("Reconciler panicked", "name", job.Name, "panic", p)
		}
	}()

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("Reconciler failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Reconciler completed", "name", job.Name, "duration", time.Since(start))
}

// RunOnce runs every registered job once, synchronously.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Reconciler failed", "name", job.Name, "error", err)
		}
	}
}

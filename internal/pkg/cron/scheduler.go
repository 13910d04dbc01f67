package cron

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	robfig "github.com/robfig/cron/v3"
)

// JobFunc is one run of a periodic job.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	fn       JobFunc
	runs     atomic.Int64
	failures atomic.Int64
}

// JobStatus reports how often a job has run since the process started.
type JobStatus struct {
	Name     string
	Interval time.Duration
	Runs     int64
	Failures int64
}

// Scheduler runs named jobs on fixed intervals on top of robfig/cron. A run
// still in progress when its next tick fires makes that tick a no-op, and
// every run is bounded by its interval. Intervals are truncated to whole
// seconds, with one second as the floor.
type Scheduler struct {
	cron *robfig.Cron

	mu      sync.Mutex
	jobs    []*job
	runCtx  context.Context
	cancel  context.CancelFunc
	started bool
}

func NewScheduler() *Scheduler {
	logger := slogLogger{}
	return &Scheduler{
		cron: robfig.New(
			robfig.WithLogger(logger),
			robfig.WithChain(robfig.Recover(logger), robfig.SkipIfStillRunning(logger)),
		),
		runCtx: context.Background(),
	}
}

// Every registers fn under name. A non-positive interval leaves the job off.
func (s *Scheduler) Every(name string, interval time.Duration, fn JobFunc) {
	if interval <= 0 {
		slog.Info("Cron job disabled", "name", name)
		return
	}

	j := &job{name: name, interval: interval, fn: fn}

	s.mu.Lock()
	s.jobs = append(s.jobs, j)
	s.mu.Unlock()

	s.cron.Schedule(robfig.Every(interval), robfig.FuncJob(func() {
		ctx, cancel := context.WithTimeout(s.context(), j.interval)
		defer cancel()
		run(ctx, j)
	}))
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Status lists the registered jobs in registration order.
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = JobStatus{
			Name:     j.name,
			Interval: j.interval,
			Runs:     j.runs.Load(),
			Failures: j.failures.Load(),
		}
	}
	return out
}

// Start begins ticking. Jobs stop when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.runCtx, s.cancel = context.WithCancel(ctx)
	runCtx := s.runCtx
	count := len(s.jobs)
	s.mu.Unlock()

	s.cron.Start()
	go func() {
		<-runCtx.Done()
		s.cron.Stop()
	}()
	slog.Info("Cron scheduler started", "job_count", count)
}

// Stop cancels in-flight runs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return
	}

	cancel()
	<-s.cron.Stop().Done()
	slog.Info("Cron scheduler stopped")
}

// RunNow runs every registered job once, synchronously.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]*job(nil), s.jobs...)
	s.mu.Unlock()

	for _, j := range jobs {
		run(ctx, j)
	}
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runCtx
}

func run(ctx context.Context, j *job) {
	start := time.Now()
	j.runs.Add(1)

	if err := j.fn(ctx); err != nil {
		j.failures.Add(1)
		slog.Error("Cron job failed", "name", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Cron job completed", "name", j.name, "duration", time.Since(start))
}

// slogLogger routes robfig/cron's own logging into slog.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

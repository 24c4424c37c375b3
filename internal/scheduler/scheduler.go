// Package scheduler runs named background jobs with at most one active run per
// name. Submitting a job whose name is already running cancels the running
// one and starts the new run once the old one has returned.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

type Job func(ctx context.Context) error

// RunInfo describes the most recent completed run of a job.
type RunInfo struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Err        error
}

type Status struct {
	Name    string
	Running bool
	LastRun *RunInfo
}

type run struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type Scheduler struct {
	cron       *cron.Cron
	runTimeout time.Duration
	logger     *slog.Logger

	base     context.Context
	stopBase context.CancelFunc
	wg       sync.WaitGroup

	mu       sync.Mutex
	stopped  bool
	runs     map[string]*run
	last     map[string]RunInfo
	watchers map[string]map[chan bool]struct{}
}

// New returns a scheduler whose runs are bounded by runTimeout. Zero means no limit.
func New(runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	base, stop := context.WithCancel(context.Background())
	return &Scheduler{
		cron:       cron.New(),
		runTimeout: runTimeout,
		logger:     logger.With("component", "scheduler"),
		base:       base,
		stopBase:   stop,
		runs:       make(map[string]*run),
		last:       make(map[string]RunInfo),
		watchers:   make(map[string]map[chan bool]struct{}),
	}
}

// Start fires scheduled jobs until ctx is done, then stops every run and
// waits for them to return.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "entries", len(s.cron.Entries()))
	s.cron.Start()

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.Stop()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

// Stop cancels all runs and waits for them. Later submissions are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.stopBase()
	s.wg.Wait()
}

// Schedule submits job under name on every tick of the cron spec.
func (s *Scheduler) Schedule(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.Submit(name, job)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.logger.Info("job scheduled", "job", name, "spec", spec)
	return nil
}

// Submit starts job under name, replacing any run in flight, and returns the
// new run id. It does not wait for the job.
func (s *Scheduler) Submit(name string, job Job) string {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.logger.Warn("scheduler stopped, dropping job", "job", name)
		return ""
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if s.runTimeout > 0 {
		ctx, cancel = context.WithTimeout(s.base, s.runTimeout)
	} else {
		ctx, cancel = context.WithCancel(s.base)
	}

	r := &run{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	prev := s.runs[name]
	s.runs[name] = r
	if prev == nil {
		s.notify(name, true)
	} else {
		prev.cancel()
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go s.execute(name, job, r, prev)

	return r.id
}

// Cancel stops the run in flight for name. It reports whether there was one.
func (s *Scheduler) Cancel(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[name]
	if ok {
		r.cancel()
	}
	return ok
}

// IsRunning emits the current state of name, then every change, until ctx is
// done. Slow readers only see the latest state.
func (s *Scheduler) IsRunning(ctx context.Context, name string) <-chan bool {
	ch := make(chan bool, 1)

	s.mu.Lock()
	if s.watchers[name] == nil {
		s.watchers[name] = make(map[chan bool]struct{})
	}
	s.watchers[name][ch] = struct{}{}
	_, running := s.runs[name]
	offer(ch, running)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers[name], ch)
		if len(s.watchers[name]) == 0 {
			delete(s.watchers, name)
		}
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *Scheduler) Status(name string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Name: name}
	_, st.Running = s.runs[name]
	if last, ok := s.last[name]; ok {
		st.LastRun = &last
	}
	return st
}

func (s *Scheduler) execute(name string, job Job, r, prev *run) {
	defer s.wg.Done()
	defer close(r.done)
	defer r.cancel()

	if prev != nil {
		<-prev.done
	}

	logger := s.logger.With("job", name, "run_id", r.id)

	// Superseded or stopped while waiting for the previous run.
	if r.ctx.Err() != nil {
		logger.Debug("run skipped")
		s.finish(name, r, nil)
		return
	}

	started := time.Now()
	logger.Info("job started")

	err := safeRun(r.ctx, job)

	info := RunInfo{ID: r.id, StartedAt: started, FinishedAt: time.Now(), Err: err}
	if err != nil {
		logger.Error("job failed", "duration", info.FinishedAt.Sub(started), "error", err)
	} else {
		logger.Info("job finished", "duration", info.FinishedAt.Sub(started))
	}
	s.finish(name, r, &info)
}

func (s *Scheduler) finish(name string, r *run, info *RunInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info != nil {
		s.last[name] = *info
	}
	if s.runs[name] == r {
		delete(s.runs, name)
		s.notify(name, false)
	}
}

// notify is called with s.mu held.
func (s *Scheduler) notify(name string, running bool) {
	for ch := range s.watchers[name] {
		offer(ch, running)
	}
}

func safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job panicked: %v", p)
		}
	}()
	return job(ctx)
}

func offer(ch chan bool, v bool) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

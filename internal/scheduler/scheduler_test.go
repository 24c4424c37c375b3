package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SchedulerTestSuite struct {
	suite.Suite
	sched *Scheduler
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.sched = New(0, logger)
}

func (s *SchedulerTestSuite) TearDownTest() {
	s.sched.Stop()
}

func (s *SchedulerTestSuite) waitIdle(name string) {
	s.Eventually(func() bool {
		return !s.sched.Status(name).Running
	}, time.Second, 5*time.Millisecond)
}

func (s *SchedulerTestSuite) TestSubmit_RunsJob() {
	done := make(chan struct{})

	id := s.sched.Submit("favorites-sync", func(ctx context.Context) error {
		close(done)
		return nil
	})

	s.NotEmpty(id)
	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("job did not run")
	}
	s.waitIdle("favorites-sync")

	st := s.sched.Status("favorites-sync")
	s.Require().NotNil(st.LastRun)
	s.Equal(id, st.LastRun.ID)
	s.NoError(st.LastRun.Err)
}

func (s *SchedulerTestSuite) TestSubmit_ReplacesRunningJob() {
	var mu sync.Mutex
	var events []string
	record := func(e string) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}

	started := make(chan struct{})
	s.sched.Submit("list-sync", func(ctx context.Context) error {
		record("first started")
		close(started)
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		record("first returned")
		return ctx.Err()
	})
	<-started

	finished := make(chan struct{})
	s.sched.Submit("list-sync", func(ctx context.Context) error {
		record("second started")
		close(finished)
		return nil
	})

	select {
	case <-finished:
	case <-time.After(time.Second):
		s.FailNow("replacement did not run")
	}
	s.waitIdle("list-sync")

	mu.Lock()
	defer mu.Unlock()
	s.Equal([]string{"first started", "first returned", "second started"}, events)
}

func (s *SchedulerTestSuite) TestSubmit_IntermediateRunIsSkipped() {
	started := make(chan struct{})
	s.sched.Submit("job", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started

	var middle atomic.Bool
	s.sched.Submit("job", func(ctx context.Context) error {
		middle.Store(true)
		return nil
	})

	last := make(chan struct{})
	s.sched.Submit("job", func(ctx context.Context) error {
		close(last)
		return nil
	})

	select {
	case <-last:
	case <-time.After(time.Second):
		s.FailNow("last run did not start")
	}
	s.waitIdle("job")
	s.False(middle.Load())
}

func (s *SchedulerTestSuite) TestCancel() {
	s.False(s.sched.Cancel("nothing"))

	started := make(chan struct{})
	s.sched.Submit("job", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started

	s.True(s.sched.Cancel("job"))
	s.waitIdle("job")

	st := s.sched.Status("job")
	s.Require().NotNil(st.LastRun)
	s.ErrorIs(st.LastRun.Err, context.Canceled)
}

func (s *SchedulerTestSuite) TestIsRunning_StreamsStateChanges() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	states := s.sched.IsRunning(ctx, "job")
	s.False(<-states)

	release := make(chan struct{})
	s.sched.Submit("job", func(ctx context.Context) error {
		<-release
		return nil
	})
	s.True(<-states)

	close(release)
	s.False(<-states)

	cancel()
	s.Eventually(func() bool {
		_, open := <-states
		return !open
	}, time.Second, 5*time.Millisecond)
}

func (s *SchedulerTestSuite) TestFailedAndPanickingJobsAreRecorded() {
	boom := errors.New("boom")
	s.sched.Submit("failing", func(ctx context.Context) error { return boom })
	s.sched.Submit("panicking", func(ctx context.Context) error { panic("bad row") })

	s.waitIdle("failing")
	s.waitIdle("panicking")

	s.Eventually(func() bool {
		return s.sched.Status("failing").LastRun != nil && s.sched.Status("panicking").LastRun != nil
	}, time.Second, 5*time.Millisecond)
	s.ErrorIs(s.sched.Status("failing").LastRun.Err, boom)
	s.ErrorContains(s.sched.Status("panicking").LastRun.Err, "bad row")
}

func (s *SchedulerTestSuite) TestRunTimeout() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	sched := New(10*time.Millisecond, logger)
	defer sched.Stop()

	sched.Submit("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	s.Eventually(func() bool {
		st := sched.Status("slow")
		return !st.Running && st.LastRun != nil
	}, time.Second, 5*time.Millisecond)
	s.ErrorIs(sched.Status("slow").LastRun.Err, context.DeadlineExceeded)
}

func (s *SchedulerTestSuite) TestStop_RejectsNewSubmissions() {
	s.sched.Stop()

	s.Empty(s.sched.Submit("job", func(ctx context.Context) error { return nil }))
	s.False(s.sched.Status("job").Running)
}

func (s *SchedulerTestSuite) TestSchedule() {
	s.Error(s.sched.Schedule("not a spec", "job", func(ctx context.Context) error { return nil }))

	var runs atomic.Int32
	s.Require().NoError(s.sched.Schedule("@every 1s", "tick", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.sched.Start(ctx) }()

	s.Eventually(func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	s.ErrorIs(<-errCh, context.Canceled)
}

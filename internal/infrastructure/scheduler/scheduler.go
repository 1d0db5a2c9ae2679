// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus represents the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// ErrDuplicateJob is returned when a job name is registered twice
var ErrDuplicateJob = errors.New("job already registered")

// JobFunc is the work of a job. The context is cancelled at the job timeout
// or when the scheduler stops.
type JobFunc func(ctx context.Context) error

// JobState is a snapshot of a registered job
type JobState struct {
	Name      string     `json:"name"`
	Schedule  string     `json:"schedule"`
	Status    JobStatus  `json:"status"`
	LastRunAt *time.Time `json:"lastRunAt,omitempty"`
	LastError string     `json:"lastError,omitempty"`
	NextRunAt *time.Time `json:"nextRunAt,omitempty"`
	Runs      int        `json:"runs"`
}

type job struct {
	name     string
	schedule string
	timeout  time.Duration
	fn       JobFunc
	entryID  cron.EntryID

	mu    sync.Mutex
	state JobState
}

// Scheduler wraps a cron runner. Overlapping runs of the same job are skipped
// and panics are recovered.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger

	mu        sync.Mutex
	jobs      map[string]*job
	baseCtx   context.Context
	cancel    context.CancelFunc
	isRunning bool
}

// New creates a scheduler using standard five-field cron expressions
func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")
	cl := cronLogger{logger.Sugar()}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		jobs:    make(map[string]*job),
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Register adds a job. An empty schedule leaves the job disabled.
func (s *Scheduler) Register(name, schedule string, timeout time.Duration, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	if schedule == "" {
		s.logger.Info("Job disabled", zap.String("job", name))
		return nil
	}

	j := &job{
		name:     name,
		schedule: schedule,
		timeout:  timeout,
		fn:       fn,
		state:    JobState{Name: name, Schedule: schedule, Status: JobStatusPending},
	}
	id, err := s.cron.AddFunc(schedule, func() { s.run(j) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, name, err)
	}
	j.entryID = id
	s.jobs[name] = j
	return nil
}

// Start begins running jobs on their schedules
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.isRunning = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop cancels running jobs and waits for them to return or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow executes a registered job immediately, outside its schedule
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s not registered", name)
	}
	return s.run(j)
}

// Jobs returns a snapshot of every registered job
func (s *Scheduler) Jobs() []JobState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]JobState, 0, len(s.jobs))
	for _, j := range s.jobs {
		j.mu.Lock()
		st := j.state
		j.mu.Unlock()
		if next := s.cron.Entry(j.entryID).Next; !next.IsZero() {
			st.NextRunAt = &next
		}
		out = append(out, st)
	}
	return out
}

func (s *Scheduler) run(j *job) error {
	ctx := s.baseCtx
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	j.mu.Lock()
	j.state.Status = JobStatusRunning
	j.state.LastRunAt = &start
	j.mu.Unlock()

	err := j.fn(ctx)

	j.mu.Lock()
	j.state.Runs++
	if err != nil {
		j.state.Status = JobStatusFailed
		j.state.LastError = err.Error()
	} else {
		j.state.Status = JobStatusSuccess
		j.state.LastError = ""
	}
	j.mu.Unlock()

	if err != nil {
		s.logger.Error("Job failed",
			zap.String("job", j.name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return err
	}
	s.logger.Debug("Job finished", zap.String("job", j.name), zap.Duration("duration", time.Since(start)))
	return nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

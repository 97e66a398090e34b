package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"ticket-monitor-go/internal/config"
)

// Job is the unit of work the scheduler drives once per tick
type Job interface {
	CheckRecentTickets(ctx context.Context)
}

// Scheduler manages the periodic ticket check
type Scheduler struct {
	cron      *cron.Cron
	entryID   cron.EntryID
	config    *config.SchedulerConfig
	job       Job
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.RWMutex
	tickMu    sync.Mutex
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.SchedulerConfig, job Job) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		config: cfg,
		job:    job,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	// A fresh context after a previous Stop cancelled the old one
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}

	// Schedule the job to run every N minutes
	schedule := fmt.Sprintf("0 */%d * * * *", s.config.IntervalMinutes)

	entryID, err := s.cron.AddFunc(schedule, s.runCheck)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	logrus.Infof("Scheduler started with interval: %d minutes", s.config.IntervalMinutes)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	// Cancel context to stop any running check
	s.cancel()

	// Stop the cron scheduler and drop the entry so a later Start does
	// not double-schedule
	ctx := s.cron.Stop()
	s.cron.Remove(s.entryID)

	select {
	case <-ctx.Done():
		logrus.Info("Scheduler stopped gracefully")
	case <-time.After(30 * time.Second):
		logrus.Warn("Scheduler stop timeout, forcing shutdown")
	}

	s.isRunning = false
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// runCheck is the cron callback; it runs one pipeline tick. Cron fires
// each entry on its own goroutine, so when a check outlasts the interval
// the next fire must be skipped, not run alongside it.
func (s *Scheduler) runCheck() {
	s.wg.Add(1)
	defer s.wg.Done()

	s.mu.RLock()
	if !s.isRunning {
		s.mu.RUnlock()
		logrus.Info("Scheduler not running, skipping check")
		return
	}
	ctx := s.ctx
	s.mu.RUnlock()

	if !s.tickMu.TryLock() {
		logrus.Warn("Previous check still running, skipping this tick")
		return
	}
	defer s.tickMu.Unlock()

	s.job.CheckRecentTickets(ctx)
}

// RunOnce runs the ticket check once (for startup and manual triggering).
// It waits for any in-flight scheduled check to finish first, and works
// on a stopped scheduler.
func (s *Scheduler) RunOnce() {
	logrus.Info("Running ticket check once")

	s.wg.Add(1)
	defer s.wg.Done()

	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	ctx := s.ctx
	s.mu.Unlock()

	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.job.CheckRecentTickets(ctx)
}

// GetNextRun returns the time of the next scheduled run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// GetLastRun returns the time of the last run
func (s *Scheduler) GetLastRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Prev
}

// Wait waits for any in-flight check to finish
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

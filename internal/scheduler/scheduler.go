// Package scheduler runs the background jobs on their cron schedules. A job never overlaps with
// itself: cron skips a tick while the previous run is still going, and the Locker keeps other
// instances from running it at the same time.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/metrics"
)

type Scheduler struct {
	cron    *cron.Cron
	locker  Locker
	lockTTL time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
	baseCtx context.Context
}

func New(locker Locker, lockTTL time.Duration, m *metrics.Metrics, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	cronLogger := cronLogger{logger: logger.With(slog.String("component", "scheduler"))}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		locker:  locker,
		lockTTL: lockTTL,
		metrics: m,
		logger:  logger,
		baseCtx: context.Background(),
	}
}

// Register adds job on its own schedule.
func (s *Scheduler) Register(job portssvc.JobSvc) error {
	_, err := s.cron.AddFunc(job.Schedule(), func() {
		_ = s.RunJob(s.baseCtx, job)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", job.Schedule(), job.Name(), err)
	}
	s.logger.Info("Job registered", slog.String("job", job.Name()), slog.String("schedule", job.Schedule()))
	return nil
}

// RunJob runs job once if its lock can be taken. A run skipped because another holder has the
// lock returns nil.
func (s *Scheduler) RunJob(ctx context.Context, job portssvc.JobSvc) error {
	logger := s.logger.With(slog.String("job", job.Name()))
	ctx = middleware.WithLogger(ctx, logger)

	release, acquired, err := s.locker.TryLock(ctx, job.Name(), s.lockTTL)
	if err != nil {
		logger.Error("Failed to take job lock", slog.String("error", err.Error()))
		s.metrics.IncJobRun(job.Name(), metrics.OutcomeFailure)
		return err
	}
	if !acquired {
		logger.Info("Job is running elsewhere, skipping")
		s.metrics.IncJobRun(job.Name(), metrics.OutcomeSkipped)
		return nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Error("Failed to release job lock", slog.String("error", err.Error()))
		}
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		logger.Error("Job failed", slog.String("error", err.Error()), slog.Duration("duration", time.Since(start)))
		s.metrics.IncJobRun(job.Name(), metrics.OutcomeFailure)
		return err
	}

	logger.Info("Job finished", slog.Duration("duration", time.Since(start)))
	s.metrics.IncJobRun(job.Name(), metrics.OutcomeSuccess)
	return nil
}

// Start begins firing jobs. Runs use a context detached from ctx's cancellation so that a
// shutdown lets them finish; ctx still provides values.
func (s *Scheduler) Start(ctx context.Context) {
	s.baseCtx = context.WithoutCancel(ctx)
	s.cron.Start()
	s.logger.Info("Scheduler started", slog.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for running ones, or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// cronLogger adapts slog to cron's logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}

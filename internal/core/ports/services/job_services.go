package services

import "context"

// JobSvc is a background job run by the scheduler.
type JobSvc interface {
	// Name identifies the job in logs, metrics and locks.
	Name() string
	// Schedule is the cron expression the job runs on.
	Schedule() string
	Run(ctx context.Context) error
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/logger"
	"github.com/JJBon/synth-data-service/internal/scheduler"
	"github.com/JJBon/synth-data-service/internal/store"
)

const (
	// DefaultNumSamples is used when a create request omits num_samples.
	DefaultNumSamples = 100

	// DefaultListLimit is used when a list request omits limit.
	DefaultListLimit = 10
)

// CreateJobParams carries a validated-or-not create request into the service.
type CreateJobParams struct {
	Name       string
	TaskType   string
	NumSamples int
	Config     map[string]interface{}
}

// JobService owns job creation and retrieval on top of the store, handing
// each new job to the scheduler for lifecycle advancement.
type JobService struct {
	store *store.MemoryStore
	sched *scheduler.Scheduler
}

// NewJobService creates a JobService.
func NewJobService(st *store.MemoryStore, sched *scheduler.Scheduler) *JobService {
	return &JobService{
		store: st,
		sched: sched,
	}
}

// CreateJob allocates a pending job, stores it, and schedules its simulated
// execution. It returns immediately without waiting on generation. Creation
// is all-or-nothing: on validation failure no state is recorded.
func (s *JobService) CreateJob(ctx context.Context, params CreateJobParams) (*domain.Job, error) {
	if params.Name == "" {
		return nil, domain.NewInvalidArgument("name", "must not be empty")
	}
	if params.TaskType == "" {
		return nil, domain.NewInvalidArgument("task_type", "must not be empty")
	}
	if params.NumSamples <= 0 {
		return nil, domain.NewInvalidArgument("num_samples", "must be a positive integer")
	}

	now := time.Now().UTC()
	job := &domain.Job{
		ID:         uuid.NewString(),
		Name:       params.Name,
		TaskType:   domain.TaskType(params.TaskType),
		NumSamples: params.NumSamples,
		Config:     params.Config,
		Status:     domain.JobStatusPending,
		Progress:   0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Create(job); err != nil {
		return nil, err
	}
	s.sched.Schedule(job)

	logger.With(logger.Fields{
		logger.FieldJobID:    job.ID,
		logger.FieldTaskType: string(job.TaskType),
		logger.FieldCount:    job.NumSamples,
	}).Info(ctx, "Job created: %s", job.Name)

	return job.Clone(), nil
}

// GetJob returns the job with the given id or domain.ErrNotFound.
func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.store.Get(id)
}

// ListJobs returns up to limit jobs in creation order, optionally filtered by
// status. limit <= 0 falls back to DefaultListLimit. The second return value
// is the number of matching jobs before truncation.
func (s *JobService) ListJobs(ctx context.Context, status string, limit int) ([]*domain.Job, int, error) {
	filter := domain.JobStatus(status)
	if status != "" && !filter.IsValid() {
		return nil, 0, domain.NewInvalidArgument("status", "unknown status "+status)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	jobs, total := s.store.List(filter, limit)
	return jobs, total, nil
}

// GetResults returns the completed job including its attached records. A
// non-completed job yields an InvalidStateError carrying the current status
// and progress so callers know to keep polling.
func (s *JobService) GetResults(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusCompleted {
		return nil, &domain.InvalidStateError{
			Op:       "get results",
			Status:   job.Status,
			Progress: job.Progress,
		}
	}
	return job, nil
}

// CancelJob cancels a pending or running job and stops its scheduled
// transitions. Cancelling a completed or failed job fails with InvalidState.
func (s *JobService) CancelJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.store.Cancel(id)
	if err != nil {
		return nil, err
	}
	s.sched.Cancel(id)

	logger.With(logger.Fields{
		logger.FieldJobID:    id,
		logger.FieldProgress: job.Progress,
	}).Info(ctx, "Job cancelled")

	return job, nil
}

package backend

import (
	"context"

	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/guidance"
	"github.com/JJBon/synth-data-service/internal/service"
)

// Local runs dispatch operations directly against the in-process job service.
type Local struct {
	serviceName string
	jobs        *service.JobService
	classifier  *guidance.Classifier
}

// NewLocal creates a Local backend.
func NewLocal(serviceName string, jobs *service.JobService, classifier *guidance.Classifier) *Local {
	return &Local{
		serviceName: serviceName,
		jobs:        jobs,
		classifier:  classifier,
	}
}

// Health reports liveness of the in-process backend.
func (b *Local) Health(ctx context.Context) (*Health, error) {
	return &Health{Status: "ok", Service: b.serviceName}, nil
}

// CreateJob creates and schedules a job, defaulting num_samples to 100 when
// omitted.
func (b *Local) CreateJob(ctx context.Context, req CreateJobRequest) (*CreateJobResponse, error) {
	numSamples := service.DefaultNumSamples
	if req.NumSamples != nil {
		numSamples = *req.NumSamples
	}

	job, err := b.jobs.CreateJob(ctx, service.CreateJobParams{
		Name:       req.Name,
		TaskType:   req.TaskType,
		NumSamples: numSamples,
		Config:     req.Config,
	})
	if err != nil {
		return nil, err
	}

	return &CreateJobResponse{
		JobID:   job.ID,
		Status:  job.Status,
		Message: "Job created successfully",
	}, nil
}

// GetJob returns the full job record.
func (b *Local) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return b.jobs.GetJob(ctx, id)
}

// ListJobs returns jobs in creation order with optional status filter.
func (b *Local) ListJobs(ctx context.Context, status string, limit int) (*JobList, error) {
	jobs, total, err := b.jobs.ListJobs(ctx, status, limit)
	if err != nil {
		return nil, err
	}
	return &JobList{Total: total, Jobs: jobs}, nil
}

// GetResults returns the records of a completed job.
func (b *Local) GetResults(ctx context.Context, id string) (*JobResults, error) {
	job, err := b.jobs.GetResults(ctx, id)
	if err != nil {
		return nil, err
	}
	return &JobResults{
		JobID:      job.ID,
		Results:    job.Results,
		NumSamples: job.NumSamples,
	}, nil
}

// CancelJob cancels a pending or running job.
func (b *Local) CancelJob(ctx context.Context, id string) (*domain.Job, error) {
	return b.jobs.CancelJob(ctx, id)
}

// ClassifyGoal runs the guidance classifier.
func (b *Local) ClassifyGoal(ctx context.Context, goal string) (*guidance.Guidance, error) {
	return b.classifier.Classify(goal), nil
}

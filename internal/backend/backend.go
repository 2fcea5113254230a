// Package backend abstracts the jobs service the tool dispatch layer talks
// to: either the in-process store or a remote jobs API selected by base URL.
package backend

import (
	"context"

	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/guidance"
)

// CreateJobRequest is the wire shape of a create-job call. NumSamples is a
// pointer so an omitted field can default to 100 while an explicit zero is
// rejected.
type CreateJobRequest struct {
	Name       string                 `json:"name"`
	TaskType   string                 `json:"task_type"`
	NumSamples *int                   `json:"num_samples,omitempty"`
	Config     map[string]interface{} `json:"config,omitempty"`
}

// CreateJobResponse acknowledges an accepted job.
type CreateJobResponse struct {
	JobID   string           `json:"job_id"`
	Status  domain.JobStatus `json:"status"`
	Message string           `json:"message"`
}

// JobList is a page of jobs in creation order. Total counts the jobs matching
// the filter before the limit was applied.
type JobList struct {
	Total int           `json:"total"`
	Jobs  []*domain.Job `json:"jobs"`
}

// JobResults carries the attached records of a completed job. NumSamples
// echoes the requested sample count; the record list itself is capped at the
// generator's preview limit.
type JobResults struct {
	JobID      string          `json:"job_id"`
	Results    []domain.Record `json:"results"`
	NumSamples int             `json:"num_samples"`
}

// Health reports process liveness and the static service identifier.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Backend is the jobs service surface the dispatch layer invokes. Errors use
// the domain taxonomy (ErrNotFound, InvalidArgumentError, InvalidStateError)
// regardless of whether the backend is local or remote.
type Backend interface {
	Health(ctx context.Context) (*Health, error)
	CreateJob(ctx context.Context, req CreateJobRequest) (*CreateJobResponse, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context, status string, limit int) (*JobList, error)
	GetResults(ctx context.Context, id string) (*JobResults, error)
	CancelJob(ctx context.Context, id string) (*domain.Job, error)
	ClassifyGoal(ctx context.Context, goal string) (*guidance.Guidance, error)
}

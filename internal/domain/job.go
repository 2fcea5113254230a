package domain

import "time"

// JobStatus represents the lifecycle status of a generation job.
// Values include JobStatusPending, JobStatusRunning, JobStatusCompleted,
// JobStatusCancelled, and JobStatusFailed.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
	JobStatusFailed    JobStatus = "failed"
)

// IsTerminal reports whether no further transition can leave this status.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusCancelled, JobStatusFailed:
		return true
	}
	return false
}

// IsValid reports whether s is one of the known status values.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusCancelled, JobStatusFailed:
		return true
	}
	return false
}

// Record is a single generated sample. Its fields depend on the task type
// (see the generator package for per-type shapes).
type Record map[string]interface{}

// Job represents one request to generate a batch of synthetic records.
//
// Identity fields (ID, Name, TaskType, NumSamples, Config) are immutable after
// creation. Status, Progress, and Results are mutated only by the scheduler or
// by an explicit cancel; Results is attached exactly once, atomically with the
// transition to completed.
type Job struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	TaskType    TaskType               `json:"task_type"`
	NumSamples  int                    `json:"num_samples"`
	Config      map[string]interface{} `json:"config,omitempty"`
	Status      JobStatus              `json:"status"`
	Progress    int                    `json:"progress"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Results     []Record               `json:"results,omitempty"`
}

// Clone returns a copy of the job safe to hand to callers while the original
// keeps being mutated by the scheduler. Config and Results are shared; both
// are treated as read-only once set.
func (j *Job) Clone() *Job {
	cp := *j
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

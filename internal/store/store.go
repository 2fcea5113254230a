// Package store owns the authoritative in-memory collection of jobs.
//
// All mutation goes through the store under a single mutex, so dispatch
// calls and scheduler timer callbacks can never apply transitions to the
// same job out of order.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/JJBon/synth-data-service/internal/domain"
)

// MemoryStore is a mutex-guarded, insertion-ordered job table. Jobs are never
// deleted during the process lifetime.
type MemoryStore struct {
	mu    sync.RWMutex
	jobs  map[string]*domain.Job
	order []string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]*domain.Job),
	}
}

// Create inserts a new job. The job must carry a unique id; ids are never
// reused.
func (s *MemoryStore) Create(job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)
	return nil
}

// Get returns a copy of the job with the given id, or domain.ErrNotFound.
func (s *MemoryStore) Get(id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return job.Clone(), nil
}

// List returns up to limit jobs in creation order, optionally filtered by
// exact status match (empty status means no filter). The second return value
// is the number of matching jobs before truncation. limit <= 0 means no
// truncation.
func (s *MemoryStore) List(status domain.JobStatus, limit int) ([]*domain.Job, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Job, 0, len(s.order))
	for _, id := range s.order {
		job := s.jobs[id]
		if status != "" && job.Status != status {
			continue
		}
		matched = append(matched, job)
	}

	total := len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]*domain.Job, len(matched))
	for i, job := range matched {
		out[i] = job.Clone()
	}
	return out, total
}

// Cancel marks the job cancelled and freezes its progress. Cancelling an
// already-cancelled job is a no-op; cancelling a completed or failed job
// fails with InvalidState. The updated job is returned.
func (s *MemoryStore) Cancel(id string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	switch job.Status {
	case domain.JobStatusCancelled:
		return job.Clone(), nil
	case domain.JobStatusCompleted, domain.JobStatusFailed:
		return nil, &domain.InvalidStateError{
			Op:       "cancel",
			Status:   job.Status,
			Progress: job.Progress,
		}
	}

	job.Status = domain.JobStatusCancelled
	job.UpdatedAt = time.Now().UTC()
	return job.Clone(), nil
}

// Advance applies a scheduled transition. It is a no-op returning false when
// the job is absent, already terminal, or the transition would decrease
// progress, so a cancellation that lands first permanently preempts every
// later-firing transition. Results may only accompany the transition to
// completed and are attached atomically with it.
func (s *MemoryStore) Advance(id string, status domain.JobStatus, progress int, results []domain.Record) (*domain.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	if job.Status.IsTerminal() {
		return nil, false
	}
	if progress < job.Progress {
		return nil, false
	}

	now := time.Now().UTC()
	job.Status = status
	job.Progress = progress
	job.UpdatedAt = now
	if status == domain.JobStatusCompleted {
		job.CompletedAt = &now
		job.Results = results
	}
	return job.Clone(), true
}

// Len returns the number of stored jobs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

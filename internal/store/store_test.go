package store_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/store"
)

func newJob(name string) *domain.Job {
	now := time.Now().UTC()
	return &domain.Job{
		ID:         uuid.NewString(),
		Name:       name,
		TaskType:   domain.TaskQuestionAnswering,
		NumSamples: 100,
		Status:     domain.JobStatusPending,
		Progress:   0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestCreateAndGet(t *testing.T) {
	s := store.NewMemoryStore()
	job := newJob("qa-batch")

	require.NoError(t, s.Create(job))

	got, err := s.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, domain.JobStatusPending, got.Status)
	assert.Equal(t, 0, got.Progress)
	assert.Nil(t, got.Results)
}

func TestCreate_DuplicateID(t *testing.T) {
	s := store.NewMemoryStore()
	job := newJob("first")

	require.NoError(t, s.Create(job))
	assert.Error(t, s.Create(job))
	assert.Equal(t, 1, s.Len())
}

func TestGet_NotFound(t *testing.T) {
	s := store.NewMemoryStore()

	_, err := s.Get("no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_InsertionOrderAndLimit(t *testing.T) {
	s := store.NewMemoryStore()
	first := newJob("first")
	second := newJob("second")
	third := newJob("third")
	require.NoError(t, s.Create(first))
	require.NoError(t, s.Create(second))
	require.NoError(t, s.Create(third))

	jobs, total := s.List("", 2)
	assert.Equal(t, 3, total)
	require.Len(t, jobs, 2)
	assert.Equal(t, first.ID, jobs[0].ID)
	assert.Equal(t, second.ID, jobs[1].ID)
}

func TestList_StatusFilter(t *testing.T) {
	s := store.NewMemoryStore()
	pending := newJob("pending")
	running := newJob("running")
	require.NoError(t, s.Create(pending))
	require.NoError(t, s.Create(running))

	_, ok := s.Advance(running.ID, domain.JobStatusRunning, 25, nil)
	require.True(t, ok)

	jobs, total := s.List(domain.JobStatusRunning, 10)
	assert.Equal(t, 1, total)
	require.Len(t, jobs, 1)
	assert.Equal(t, running.ID, jobs[0].ID)
}

func TestCancel_PendingJob(t *testing.T) {
	s := store.NewMemoryStore()
	job := newJob("to-cancel")
	require.NoError(t, s.Create(job))

	got, err := s.Cancel(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCancelled, got.Status)
	assert.Equal(t, 0, got.Progress)

	// Idempotent on an already-cancelled job
	again, err := s.Cancel(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCancelled, again.Status)
}

func TestCancel_NotFound(t *testing.T) {
	s := store.NewMemoryStore()

	_, err := s.Cancel("no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_CompletedJob(t *testing.T) {
	s := store.NewMemoryStore()
	job := newJob("done")
	require.NoError(t, s.Create(job))

	_, ok := s.Advance(job.ID, domain.JobStatusCompleted, 100, []domain.Record{{"id": "sample-1"}})
	require.True(t, ok)

	_, err := s.Cancel(job.ID)
	is, ok := domain.IsInvalidState(err)
	require.True(t, ok)
	assert.Equal(t, domain.JobStatusCompleted, is.Status)
	assert.Equal(t, 100, is.Progress)

	// Job is left unchanged
	got, err := s.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	assert.Len(t, got.Results, 1)
}

func TestAdvance_AttachesResultsWithCompletion(t *testing.T) {
	s := store.NewMemoryStore()
	job := newJob("completes")
	require.NoError(t, s.Create(job))

	records := []domain.Record{{"id": "sample-1"}, {"id": "sample-2"}}
	got, ok := s.Advance(job.ID, domain.JobStatusCompleted, 100, records)
	require.True(t, ok)
	assert.Equal(t, 100, got.Progress)
	assert.Len(t, got.Results, 2)
	require.NotNil(t, got.CompletedAt)
}

func TestAdvance_NoOpOnCancelledJob(t *testing.T) {
	s := store.NewMemoryStore()
	job := newJob("cancelled")
	require.NoError(t, s.Create(job))

	_, err := s.Cancel(job.ID)
	require.NoError(t, err)

	_, ok := s.Advance(job.ID, domain.JobStatusRunning, 25, nil)
	assert.False(t, ok)

	got, err := s.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCancelled, got.Status)
	assert.Equal(t, 0, got.Progress)
}

func TestAdvance_ProgressNeverDecreases(t *testing.T) {
	s := store.NewMemoryStore()
	job := newJob("monotonic")
	require.NoError(t, s.Create(job))

	_, ok := s.Advance(job.ID, domain.JobStatusRunning, 75, nil)
	require.True(t, ok)

	_, ok = s.Advance(job.ID, domain.JobStatusRunning, 25, nil)
	assert.False(t, ok)

	got, err := s.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, got.Progress)
}

func TestAdvance_UnknownJob(t *testing.T) {
	s := store.NewMemoryStore()

	_, ok := s.Advance("no-such-id", domain.JobStatusRunning, 25, nil)
	assert.False(t, ok)
}

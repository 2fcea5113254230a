package backend_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JJBon/synth-data-service/internal/api"
	"github.com/JJBon/synth-data-service/internal/backend"
	"github.com/JJBon/synth-data-service/internal/config"
	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/generator"
	"github.com/JJBon/synth-data-service/internal/guidance"
	"github.com/JJBon/synth-data-service/internal/scheduler"
	"github.com/JJBon/synth-data-service/internal/service"
	"github.com/JJBon/synth-data-service/internal/store"
)

// newRESTBackend starts a jobs API over httptest and returns a REST backend
// targeting it, mirroring the deployment where the tool server points at a
// remote jobs service via base URL.
func newRESTBackend(t *testing.T) *backend.REST {
	t.Helper()

	jobStore := store.NewMemoryStore()
	sched := scheduler.New(jobStore, generator.NewWithSeed(1), scheduler.Delays{
		Start:    50 * time.Millisecond,
		Midpoint: 100 * time.Millisecond,
		Complete: 150 * time.Millisecond,
	})
	t.Cleanup(sched.Stop)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Name: "synth-data-designer",
			Mode: "test",
			CORS: config.CORSConfig{AllowAllOrigins: true},
		},
	}
	router := api.SetupRouter(service.NewJobService(jobStore, sched), guidance.NewClassifier(), cfg)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return backend.NewREST(&backend.RESTConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	})
}

func TestREST_Health(t *testing.T) {
	b := newRESTBackend(t)

	health, err := b.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "synth-data-designer", health.Service)
}

func TestREST_CreateAndGetJob(t *testing.T) {
	b := newRESTBackend(t)
	ctx := context.Background()

	n := 5
	created, err := b.CreateJob(ctx, backend.CreateJobRequest{
		Name:       "remote-job",
		TaskType:   "question_answering",
		NumSamples: &n,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.JobID)
	assert.Equal(t, domain.JobStatusPending, created.Status)

	job, err := b.GetJob(ctx, created.JobID)
	require.NoError(t, err)
	assert.Equal(t, "remote-job", job.Name)
	assert.Equal(t, 5, job.NumSamples)
}

func TestREST_CreateJob_InvalidArgument(t *testing.T) {
	b := newRESTBackend(t)

	_, err := b.CreateJob(context.Background(), backend.CreateJobRequest{
		TaskType: "classification",
	})
	assert.True(t, domain.IsInvalidArgument(err), "got %v", err)
}

func TestREST_GetJob_NotFound(t *testing.T) {
	b := newRESTBackend(t)

	_, err := b.GetJob(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestREST_GetResults_InProgressMapsToInvalidState(t *testing.T) {
	b := newRESTBackend(t)
	ctx := context.Background()

	created, err := b.CreateJob(ctx, backend.CreateJobRequest{
		Name:     "slow",
		TaskType: "summarization",
	})
	require.NoError(t, err)

	_, err = b.GetResults(ctx, created.JobID)
	is, ok := domain.IsInvalidState(err)
	require.True(t, ok, "got %v", err)
	assert.False(t, is.Status.IsTerminal())
}

func TestREST_FullLifecycle(t *testing.T) {
	b := newRESTBackend(t)
	ctx := context.Background()

	n := 50
	created, err := b.CreateJob(ctx, backend.CreateJobRequest{
		Name:       "lifecycle",
		TaskType:   "classification",
		NumSamples: &n,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		job, err := b.GetJob(ctx, created.JobID)
		return err == nil && job.Status == domain.JobStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	results, err := b.GetResults(ctx, created.JobID)
	require.NoError(t, err)
	assert.Equal(t, 50, results.NumSamples)
	assert.Len(t, results.Results, 10)
}

func TestREST_CancelJob(t *testing.T) {
	b := newRESTBackend(t)
	ctx := context.Background()

	created, err := b.CreateJob(ctx, backend.CreateJobRequest{
		Name:     "to-cancel",
		TaskType: "text_generation",
	})
	require.NoError(t, err)

	job, err := b.CancelJob(ctx, created.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCancelled, job.Status)
}

func TestREST_ClassifyGoal(t *testing.T) {
	b := newRESTBackend(t)

	g, err := b.ClassifyGoal(context.Background(), "summarize my meeting notes")
	require.NoError(t, err)
	require.NotEmpty(t, g.Recommendations)
	assert.Equal(t, domain.TaskSummarization, g.Recommendations[0].TaskType)
	assert.NotEmpty(t, g.NextSteps)
}

package dispatch_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JJBon/synth-data-service/internal/backend"
	"github.com/JJBon/synth-data-service/internal/dispatch"
	"github.com/JJBon/synth-data-service/internal/generator"
	"github.com/JJBon/synth-data-service/internal/guidance"
	"github.com/JJBon/synth-data-service/internal/scheduler"
	"github.com/JJBon/synth-data-service/internal/service"
	"github.com/JJBon/synth-data-service/internal/store"
)

func newDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()

	jobStore := store.NewMemoryStore()
	sched := scheduler.New(jobStore, generator.NewWithSeed(1), scheduler.Delays{
		Start:    50 * time.Millisecond,
		Midpoint: 100 * time.Millisecond,
		Complete: 150 * time.Millisecond,
	})
	t.Cleanup(sched.Stop)

	local := backend.NewLocal("test-service", service.NewJobService(jobStore, sched), guidance.NewClassifier())
	d, err := dispatch.New(local)
	require.NoError(t, err)
	return d
}

// decode unwraps a successful CallResult into its JSON payload.
func decode(t *testing.T, result *dispatch.CallResult) map[string]interface{} {
	t.Helper()
	require.False(t, result.IsError, "unexpected error result: %s", text(result))
	require.Len(t, result.Content, 1)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &out))
	return out
}

func text(result *dispatch.CallResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	return result.Content[0].Text
}

func TestListTools_FixedCatalogue(t *testing.T) {
	d := newDispatcher(t)

	tools := d.ListTools()
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		assert.NotEmpty(t, tool.Description)
		assert.NotEmpty(t, tool.InputSchema)
	}

	assert.Equal(t, []string{
		"classify_goal",
		"create_job",
		"get_job_status",
		"list_jobs",
		"get_job_results",
		"cancel_job",
	}, names)
}

func TestCall_UnknownOperation(t *testing.T) {
	d := newDispatcher(t)

	result := d.Call(context.Background(), "drop_all_jobs", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, text(result), "unknown operation")
}

func TestCall_MissingRequiredArgument(t *testing.T) {
	d := newDispatcher(t)

	result := d.Call(context.Background(), "create_job", map[string]interface{}{
		"task_type": "classification",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, text(result), "name")
}

func TestCall_MalformedArgument(t *testing.T) {
	d := newDispatcher(t)

	result := d.Call(context.Background(), "create_job", map[string]interface{}{
		"name":        "bad-count",
		"task_type":   "classification",
		"num_samples": 0,
	})
	assert.True(t, result.IsError)
}

func TestCall_CreateAndPollJob(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	created := decode(t, d.Call(ctx, "create_job", map[string]interface{}{
		"name":        "sentiment-set",
		"task_type":   "classification",
		"num_samples": 5,
		"config": map[string]interface{}{
			"class_labels": []interface{}{"positive", "negative", "neutral"},
		},
	}))
	jobID, ok := created["job_id"].(string)
	require.True(t, ok)
	assert.Equal(t, "pending", created["status"])

	// Premature results fetch reports current status and progress
	early := d.Call(ctx, "get_job_results", map[string]interface{}{"job_id": jobID})
	assert.True(t, early.IsError)
	assert.Contains(t, text(early), "progress")

	require.Eventually(t, func() bool {
		status := decode(t, d.Call(ctx, "get_job_status", map[string]interface{}{"job_id": jobID}))
		return status["status"] == "completed"
	}, 2*time.Second, 5*time.Millisecond)

	results := decode(t, d.Call(ctx, "get_job_results", map[string]interface{}{"job_id": jobID}))
	records, ok := results["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, records, 5)
	assert.Equal(t, float64(5), results["num_samples"])

	first, ok := records[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "positive", first["label"])
}

func TestCall_CancelJob(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	created := decode(t, d.Call(ctx, "create_job", map[string]interface{}{
		"name":      "to-cancel",
		"task_type": "summarization",
	}))
	jobID := created["job_id"].(string)

	cancelled := decode(t, d.Call(ctx, "cancel_job", map[string]interface{}{"job_id": jobID}))
	assert.Equal(t, "cancelled", cancelled["status"])

	// Cancellation is stable
	time.Sleep(200 * time.Millisecond)
	status := decode(t, d.Call(ctx, "get_job_status", map[string]interface{}{"job_id": jobID}))
	assert.Equal(t, "cancelled", status["status"])
}

func TestCall_GetJobStatus_NotFound(t *testing.T) {
	d := newDispatcher(t)

	result := d.Call(context.Background(), "get_job_status", map[string]interface{}{
		"job_id": "no-such-id",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, text(result), "not found")
}

func TestCall_ListJobs(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		decode(t, d.Call(ctx, "create_job", map[string]interface{}{
			"name":      name,
			"task_type": "text_generation",
		}))
	}

	listed := decode(t, d.Call(ctx, "list_jobs", map[string]interface{}{"limit": 2}))
	assert.Equal(t, float64(3), listed["total"])

	jobs, ok := listed["jobs"].([]interface{})
	require.True(t, ok)
	require.Len(t, jobs, 2)
	assert.Equal(t, "first", jobs[0].(map[string]interface{})["name"])
	assert.Equal(t, "second", jobs[1].(map[string]interface{})["name"])
}

func TestCall_ClassifyGoal(t *testing.T) {
	d := newDispatcher(t)

	out := decode(t, d.Call(context.Background(), "classify_goal", map[string]interface{}{
		"goal": "I need 200 Q&A pairs about Python",
	}))

	recs, ok := out["recommendations"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, recs)

	var foundQA bool
	for _, r := range recs {
		if r.(map[string]interface{})["task_type"] == "question_answering" {
			foundQA = true
		}
	}
	assert.True(t, foundQA)
	assert.NotEmpty(t, out["next_steps"])
}

package dispatch

import (
	"context"

	"github.com/JJBon/synth-data-service/internal/backend"
	"github.com/JJBon/synth-data-service/internal/domain"
)

// Tool describes one operation in the static catalogue: its name, a
// human-readable description, and the JSON Schema its arguments must satisfy.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// handlerFunc executes one operation against the backend.
type handlerFunc func(ctx context.Context, b backend.Backend, args map[string]interface{}) (interface{}, error)

// registration pairs a tool definition with its compiled schema and handler.
type registration struct {
	tool   Tool
	handle handlerFunc
}

// jobIDSchema is shared by every tool addressing a single job.
func jobIDSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"job_id": map[string]interface{}{
				"type":        "string",
				"minLength":   1,
				"description": "Identifier returned by create_job",
			},
		},
		"required": []interface{}{"job_id"},
	}
}

// catalogue returns the fixed, ordered set of exposed operations.
func catalogue() []registration {
	return []registration{
		{
			tool: Tool{
				Name: "classify_goal",
				Description: "Map a free-text data generation goal to recommended task types " +
					"and suggested configuration. Call this before create_job.",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"goal": map[string]interface{}{
							"type":        "string",
							"description": "What the caller wants to generate, in plain language",
						},
					},
					"required": []interface{}{"goal"},
				},
			},
			handle: func(ctx context.Context, b backend.Backend, args map[string]interface{}) (interface{}, error) {
				return b.ClassifyGoal(ctx, argString(args, "goal"))
			},
		},
		{
			tool: Tool{
				Name: "create_job",
				Description: "Create a synthetic data generation job. Returns a job_id " +
					"immediately; poll get_job_status until the job completes.",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{
							"type":        "string",
							"minLength":   1,
							"description": "Caller-supplied job label",
						},
						"task_type": map[string]interface{}{
							"type":        "string",
							"minLength":   1,
							"description": "One of question_answering, summarization, classification, text_generation",
						},
						"num_samples": map[string]interface{}{
							"type":        "integer",
							"minimum":     1,
							"description": "Requested sample count (default 100)",
						},
						"config": map[string]interface{}{
							"type":        "object",
							"description": "Task-specific configuration (domain, style, class_labels, ...)",
						},
					},
					"required": []interface{}{"name", "task_type"},
				},
			},
			handle: func(ctx context.Context, b backend.Backend, args map[string]interface{}) (interface{}, error) {
				req := backend.CreateJobRequest{
					Name:     argString(args, "name"),
					TaskType: argString(args, "task_type"),
				}
				if n, ok := argInt(args, "num_samples"); ok {
					req.NumSamples = &n
				}
				if cfg, ok := args["config"].(map[string]interface{}); ok {
					req.Config = cfg
				}
				return b.CreateJob(ctx, req)
			},
		},
		{
			tool: Tool{
				Name:        "get_job_status",
				Description: "Fetch the current status and progress of a job.",
				InputSchema: jobIDSchema(),
			},
			handle: func(ctx context.Context, b backend.Backend, args map[string]interface{}) (interface{}, error) {
				job, err := b.GetJob(ctx, argString(args, "job_id"))
				if err != nil {
					return nil, err
				}
				return statusView(job), nil
			},
		},
		{
			tool: Tool{
				Name:        "list_jobs",
				Description: "List jobs in creation order, optionally filtered by status.",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"status": map[string]interface{}{
							"type": "string",
							"enum": []interface{}{"pending", "running", "completed", "cancelled", "failed"},
						},
						"limit": map[string]interface{}{
							"type":        "integer",
							"minimum":     1,
							"description": "Maximum jobs to return (default 10)",
						},
					},
				},
			},
			handle: func(ctx context.Context, b backend.Backend, args map[string]interface{}) (interface{}, error) {
				limit := 0
				if n, ok := argInt(args, "limit"); ok {
					limit = n
				}
				return b.ListJobs(ctx, argString(args, "status"), limit)
			},
		},
		{
			tool: Tool{
				Name: "get_job_results",
				Description: "Fetch the generated records of a completed job. Fails while the " +
					"job is still in progress, reporting its current status and progress.",
				InputSchema: jobIDSchema(),
			},
			handle: func(ctx context.Context, b backend.Backend, args map[string]interface{}) (interface{}, error) {
				return b.GetResults(ctx, argString(args, "job_id"))
			},
		},
		{
			tool: Tool{
				Name:        "cancel_job",
				Description: "Cancel a pending or running job. Completed or failed jobs cannot be cancelled.",
				InputSchema: jobIDSchema(),
			},
			handle: func(ctx context.Context, b backend.Backend, args map[string]interface{}) (interface{}, error) {
				job, err := b.CancelJob(ctx, argString(args, "job_id"))
				if err != nil {
					return nil, err
				}
				return statusView(job), nil
			},
		},
	}
}

// statusView is the compact job representation returned by status-oriented
// tools (full records only travel through get_job_results).
func statusView(job *domain.Job) map[string]interface{} {
	view := map[string]interface{}{
		"job_id":      job.ID,
		"name":        job.Name,
		"task_type":   job.TaskType,
		"num_samples": job.NumSamples,
		"status":      job.Status,
		"progress":    job.Progress,
		"created_at":  job.CreatedAt,
		"updated_at":  job.UpdatedAt,
	}
	if job.CompletedAt != nil {
		view["completed_at"] = job.CompletedAt
	}
	return view
}

// argString reads a string argument, returning "" when absent. Schema
// validation runs before handlers, so required fields are always present.
func argString(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// argInt reads an integer argument. JSON decoding yields float64 for numbers.
func argInt(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

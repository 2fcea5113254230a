package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/guidance"
)

// REST is a Backend that targets a remote jobs API over HTTP. HTTP error
// statuses are mapped back onto the domain error taxonomy so the dispatch
// layer behaves identically against local and remote backends.
type REST struct {
	client *resty.Client
}

// RESTConfig holds configuration for the REST backend.
type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewREST creates a REST backend targeting cfg.BaseURL.
func NewREST(cfg *RESTConfig) *REST {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &REST{client: client}
}

// apiError is the error body the jobs API returns for 4xx responses.
type apiError struct {
	Error    string `json:"error"`
	Status   string `json:"status,omitempty"`
	Progress int    `json:"progress,omitempty"`
}

// Health calls GET /health.
func (b *REST) Health(ctx context.Context) (*Health, error) {
	var out Health
	resp, err := b.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	if resp.IsError() {
		return nil, b.toDomainError(resp)
	}
	return &out, nil
}

// CreateJob calls POST /v1/jobs.
func (b *REST) CreateJob(ctx context.Context, req CreateJobRequest) (*CreateJobResponse, error) {
	var out CreateJobResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v1/jobs")
	if err != nil {
		return nil, fmt.Errorf("create job request failed: %w", err)
	}
	if resp.IsError() {
		return nil, b.toDomainError(resp)
	}
	return &out, nil
}

// GetJob calls GET /v1/jobs/{id}.
func (b *REST) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	var out domain.Job
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		Get("/v1/jobs/{id}")
	if err != nil {
		return nil, fmt.Errorf("get job request failed: %w", err)
	}
	if resp.IsError() {
		return nil, b.toDomainError(resp)
	}
	return &out, nil
}

// ListJobs calls GET /v1/jobs with optional status and limit query params.
func (b *REST) ListJobs(ctx context.Context, status string, limit int) (*JobList, error) {
	var out JobList
	req := b.client.R().
		SetContext(ctx).
		SetResult(&out)
	if status != "" {
		req.SetQueryParam("status", status)
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/v1/jobs")
	if err != nil {
		return nil, fmt.Errorf("list jobs request failed: %w", err)
	}
	if resp.IsError() {
		return nil, b.toDomainError(resp)
	}
	return &out, nil
}

// GetResults calls GET /v1/jobs/{id}/results.
func (b *REST) GetResults(ctx context.Context, id string) (*JobResults, error) {
	var out JobResults
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		Get("/v1/jobs/{id}/results")
	if err != nil {
		return nil, fmt.Errorf("get results request failed: %w", err)
	}
	if resp.IsError() {
		return nil, b.toDomainError(resp)
	}
	return &out, nil
}

// CancelJob calls POST /v1/jobs/{id}/cancel.
func (b *REST) CancelJob(ctx context.Context, id string) (*domain.Job, error) {
	var out domain.Job
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		Post("/v1/jobs/{id}/cancel")
	if err != nil {
		return nil, fmt.Errorf("cancel job request failed: %w", err)
	}
	if resp.IsError() {
		return nil, b.toDomainError(resp)
	}
	return &out, nil
}

// ClassifyGoal calls POST /v1/guidance.
func (b *REST) ClassifyGoal(ctx context.Context, goal string) (*guidance.Guidance, error) {
	var out guidance.Guidance
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"goal": goal}).
		SetResult(&out).
		Post("/v1/guidance")
	if err != nil {
		return nil, fmt.Errorf("classify goal request failed: %w", err)
	}
	if resp.IsError() {
		return nil, b.toDomainError(resp)
	}
	return &out, nil
}

// toDomainError converts a non-2xx response into the matching domain error.
func (b *REST) toDomainError(resp *resty.Response) error {
	var body apiError
	_ = json.Unmarshal(resp.Body(), &body)
	msg := body.Error
	if msg == "" {
		msg = resp.Status()
	}

	switch resp.StatusCode() {
	case 400:
		return domain.NewInvalidArgument("request", msg)
	case 404:
		return domain.ErrNotFound
	case 409:
		return &domain.InvalidStateError{
			Op:       "remote call",
			Status:   domain.JobStatus(body.Status),
			Progress: body.Progress,
		}
	default:
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode(), msg)
	}
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/service"
)

// JobHandler handles job-related endpoints.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// createJobRequest is the POST /v1/jobs body. NumSamples is a pointer so an
// omitted field defaults to 100 while an explicit zero is rejected.
type createJobRequest struct {
	Name       string                 `json:"name"`
	TaskType   string                 `json:"task_type"`
	NumSamples *int                   `json:"num_samples"`
	Config     map[string]interface{} `json:"config"`
}

// CreateJob handles POST /v1/jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	numSamples := service.DefaultNumSamples
	if req.NumSamples != nil {
		numSamples = *req.NumSamples
	}

	job, err := h.jobs.CreateJob(c.Request.Context(), service.CreateJobParams{
		Name:       req.Name,
		TaskType:   req.TaskType,
		NumSamples: numSamples,
		Config:     req.Config,
	})
	if err != nil {
		writeJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"job_id":  job.ID,
		"status":  job.Status,
		"message": "Job created successfully",
	})
}

// GetJob handles GET /v1/jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeJobError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobs handles GET /v1/jobs.
func (h *JobHandler) ListJobs(c *gin.Context) {
	status := c.Query("status")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultListLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit: must be an integer",
		})
		return
	}

	jobs, total, err := h.jobs.ListJobs(c.Request.Context(), status, limit)
	if err != nil {
		writeJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"jobs":  jobs,
	})
}

// GetResults handles GET /v1/jobs/:id/results.
func (h *JobHandler) GetResults(c *gin.Context) {
	job, err := h.jobs.GetResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":      job.ID,
		"results":     job.Results,
		"num_samples": job.NumSamples,
	})
}

// CancelJob handles POST /v1/jobs/:id/cancel.
func (h *JobHandler) CancelJob(c *gin.Context) {
	job, err := h.jobs.CancelJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeJobError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// writeJobError maps the domain error taxonomy onto HTTP statuses:
// InvalidArgument -> 400, NotFound -> 404, InvalidState -> 409 (carrying the
// job's current status and progress).
func writeJobError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Job not found",
		})
		return
	}
	if domain.IsInvalidArgument(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	if is, ok := domain.IsInvalidState(err); ok {
		c.JSON(http.StatusConflict, gin.H{
			"error":    err.Error(),
			"status":   is.Status,
			"progress": is.Progress,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"autopublish-worker/constant"
	"autopublish-worker/dto"
	"autopublish-worker/repository"
	"autopublish-worker/service"
)

type JobHandler struct {
	service service.Service
}

func NewJobHandler(svc service.Service) *JobHandler {
	return &JobHandler{service: svc}
}

func (h *JobHandler) Register(api *gin.RouterGroup) {
	api.GET("/jobs", h.ListJobs)
	api.POST("/jobs", h.CreateJob)
	api.GET("/jobs/:id", h.GetJob)
	api.POST("/jobs/:id/run", h.RunJob)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListJobs(c.Request.Context()))
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.service.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	job, err := h.service.CreateJob(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// The cause stays server-side; callers get a generic signal.
		zerolog.Ctx(ctx).Error().Err(err).Msg("create job failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) RunJob(c *gin.Context) {
	ctx := c.Request.Context()

	job, err := h.service.RunJob(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, service.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Job already running"})
		default:
			// A store error means the system, not the pipeline, is unhealthy.
			zerolog.Ctx(ctx).Error().Err(err).Msg("run job failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist job"})
		}
		return
	}

	if job.Status == constant.JobStatusFailed {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Pipeline failed", "job": job})
		return
	}
	c.JSON(http.StatusOK, job)
}

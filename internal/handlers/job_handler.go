package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
	"github.com/docugenhq/docugen/internal/services/generation"
)

// JobHandler exposes the generation job API
type JobHandler struct {
	generationService interfaces.GenerationService
	templateService   interfaces.TemplateService
	logger            arbor.ILogger
}

// NewJobHandler creates a new job handler
func NewJobHandler(generationService interfaces.GenerationService, templateService interfaces.TemplateService, logger arbor.ILogger) *JobHandler {
	return &JobHandler{
		generationService: generationService,
		templateService:   templateService,
		logger:            logger,
	}
}

type singleJobRequest struct {
	TemplateID string         `json:"template_id" validate:"required"`
	Data       models.DataRow `json:"data"`
}

type bulkJobRequest struct {
	TemplateID string           `json:"template_id" validate:"required"`
	Rows       []models.DataRow `json:"rows" validate:"required,min=1"`
}

type failJobRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ListJobsHandler handles GET /api/jobs
func (h *JobHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":       h.generationService.ListJobs(),
		"is_loading": h.generationService.IsLoading(),
	})
}

// CreateSingleJobHandler handles POST /api/jobs/single
func (h *JobHandler) CreateSingleJobHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req singleJobRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	template, err := h.templateService.GetTemplate(r.Context(), req.TemplateID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Template not found")
		return
	}

	job, err := h.generationService.CreateSingleDocumentJob(r.Context(), template, req.Data)
	if err != nil {
		h.writeCreationError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, job)
}

// CreateBulkJobHandler handles POST /api/jobs/bulk
func (h *JobHandler) CreateBulkJobHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req bulkJobRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	template, err := h.templateService.GetTemplate(r.Context(), req.TemplateID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Template not found")
		return
	}

	job, err := h.generationService.CreateBulkDocumentJob(r.Context(), template, req.Rows)
	if err != nil {
		h.writeCreationError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, job)
}

// ItemHandler routes /api/jobs/{id} and its subpaths
func (h *JobHandler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getJob(w, id)
	case len(parts) == 2 && parts[1] == "documents" && r.Method == http.MethodGet:
		h.getJobDocuments(w, id)
	case len(parts) == 2 && parts[1] == "fail" && r.Method == http.MethodPost:
		h.failJob(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (h *JobHandler) getJob(w http.ResponseWriter, id string) {
	job := h.generationService.GetJobByID(id)
	if job == nil {
		WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

func (h *JobHandler) getJobDocuments(w http.ResponseWriter, id string) {
	if h.generationService.GetJobByID(id) == nil {
		WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	docs := h.generationService.GetDocumentsByJobID(id)
	if docs == nil {
		docs = []*models.GeneratedDocument{}
	}
	WriteJSON(w, http.StatusOK, docs)
}

func (h *JobHandler) failJob(w http.ResponseWriter, r *http.Request, id string) {
	var req failJobRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	err := h.generationService.FailJob(id, req.Reason)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, h.generationService.GetJobByID(id))
	case errors.Is(err, generation.ErrJobNotFound):
		WriteError(w, http.StatusNotFound, "Job not found")
	case errors.Is(err, generation.ErrJobTerminal):
		WriteError(w, http.StatusConflict, "Job already in terminal state")
	default:
		h.logger.Error().Err(err).Str("job_id", id).Msg("Failed to fail job")
		WriteError(w, http.StatusInternalServerError, "Failed to update job")
	}
}

// writeCreationError maps engine creation errors to HTTP responses
func (h *JobHandler) writeCreationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generation.ErrInvalidTemplate), errors.Is(err, generation.ErrNoItems):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Job creation failed")
		WriteError(w, http.StatusInternalServerError, "Job creation failed")
	}
}

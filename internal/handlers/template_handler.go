package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
	"github.com/docugenhq/docugen/internal/services/templates"
)

// TemplateHandler exposes the template catalog API
type TemplateHandler struct {
	templateService interfaces.TemplateService
	logger          arbor.ILogger
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService interfaces.TemplateService, logger arbor.ILogger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		logger:          logger,
	}
}

type addTemplateRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
}

type updateTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Version     string `json:"version"`
}

// CollectionHandler handles /api/templates: GET lists, POST uploads
func (h *TemplateHandler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := h.templateService.ListTemplates(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to list templates")
			WriteError(w, http.StatusInternalServerError, "Failed to list templates")
			return
		}
		WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var req addTemplateRequest
		if !DecodeAndValidate(w, r, &req) {
			return
		}
		template, err := h.templateService.AddTemplate(r.Context(), req.FileName, req.Name, req.Description, req.Category)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to add template")
			WriteError(w, http.StatusInternalServerError, "Failed to add template")
			return
		}
		WriteJSON(w, http.StatusCreated, template)

	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// ItemHandler handles /api/templates/{id}: GET, PUT, DELETE
func (h *TemplateHandler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Template not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		template, err := h.templateService.GetTemplate(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Template not found")
			return
		}
		WriteJSON(w, http.StatusOK, template)

	case http.MethodPut:
		h.updateTemplate(w, r, id)

	case http.MethodDelete:
		if err := h.templateService.DeleteTemplate(r.Context(), id); err != nil {
			h.logger.Error().Err(err).Str("template_id", id).Msg("Failed to delete template")
			WriteError(w, http.StatusInternalServerError, "Failed to delete template")
			return
		}
		WriteSuccess(w, "Template deleted")

	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TemplateHandler) updateTemplate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTemplateRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	template, err := h.templateService.GetTemplate(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Template not found")
		return
	}

	applyTemplateUpdates(template, &req)

	if err := h.templateService.UpdateTemplate(r.Context(), template); err != nil {
		if errors.Is(err, templates.ErrTemplateNotFound) {
			WriteError(w, http.StatusNotFound, "Template not found")
			return
		}
		h.logger.Error().Err(err).Str("template_id", id).Msg("Failed to update template")
		WriteError(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	WriteJSON(w, http.StatusOK, template)
}

// applyTemplateUpdates merges non-empty request fields onto the template
func applyTemplateUpdates(template *models.Template, req *updateTemplateRequest) {
	if req.Name != "" {
		template.Name = req.Name
	}
	if req.Description != "" {
		template.Description = req.Description
	}
	if req.Category != "" {
		template.Category = req.Category
	}
	if req.Version != "" {
		template.Version = req.Version
	}
}

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/interfaces"
)

// DocumentHandler exposes the generated document API
type DocumentHandler struct {
	generationService interfaces.GenerationService
	logger            arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(generationService interfaces.GenerationService, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		generationService: generationService,
		logger:            logger,
	}
}

// ListHandler handles GET /api/documents
func (h *DocumentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, h.generationService.ListDocuments())
}

// MockDownloadHandler handles GET /mock-download/{id}.docx. The download URL
// is an opaque locator; this serves a placeholder body so links resolve in
// the demo.
func (h *DocumentHandler) MockDownloadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/mock-download/")
	id := strings.TrimSuffix(name, ".docx")
	if id == "" || id == name {
		WriteError(w, http.StatusNotFound, "Document not found")
		return
	}

	var fileName string
	for _, doc := range h.generationService.ListDocuments() {
		if doc.ID == id {
			fileName = doc.FileName
			break
		}
	}
	if fileName == "" {
		WriteError(w, http.StatusNotFound, "Document not found")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	fmt.Fprintf(w, "DocuGen demo document %s\n", fileName)
}

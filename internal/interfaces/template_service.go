package interfaces

import (
	"context"

	"github.com/docugenhq/docugen/internal/models"
)

// TemplateService manages the template catalog
type TemplateService interface {
	// ListTemplates returns the catalog, newest upload first
	ListTemplates(ctx context.Context) ([]*models.Template, error)

	// GetTemplate returns one template by ID
	GetTemplate(ctx context.Context, id string) (*models.Template, error)

	// AddTemplate registers an uploaded file, simulating placeholder
	// extraction from the file name
	AddTemplate(ctx context.Context, fileName, name, description, category string) (*models.Template, error)

	// UpdateTemplate modifies catalog metadata for an existing template
	UpdateTemplate(ctx context.Context, template *models.Template) error

	// DeleteTemplate removes a template from the catalog. Historical jobs
	// keep their snapshot of the template identity.
	DeleteTemplate(ctx context.Context, id string) error
}

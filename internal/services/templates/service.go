package templates

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
	badgerstorage "github.com/docugenhq/docugen/internal/storage/badger"
)

// ErrTemplateNotFound is returned when a template ID does not exist
var ErrTemplateNotFound = errors.New("template not found")

// Service implements the TemplateService interface. Placeholder extraction is
// simulated: uploads whose file name matches a known demo template inherit
// that template's placeholder schema, everything else gets the default set.
type Service struct {
	storage interfaces.TemplateStorage
	config  common.TemplatesConfig
	logger  arbor.ILogger
}

// NewService creates a new template catalog service
func NewService(storage interfaces.TemplateStorage, config common.TemplatesConfig, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// ListTemplates returns the catalog, newest upload first
func (s *Service) ListTemplates(ctx context.Context) ([]*models.Template, error) {
	if err := s.simulateDelay(ctx, s.config.ListDelay); err != nil {
		return nil, err
	}
	return s.storage.ListTemplates(ctx)
}

// GetTemplate returns one template by ID
func (s *Service) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	template, err := s.storage.GetTemplate(ctx, id)
	if err != nil {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

// AddTemplate registers an uploaded file and simulates placeholder extraction
func (s *Service) AddTemplate(ctx context.Context, fileName, name, description, category string) (*models.Template, error) {
	if err := s.simulateDelay(ctx, s.config.UploadDelay); err != nil {
		return nil, err
	}

	template := &models.Template{
		ID:           common.NewTemplateID(),
		Name:         name,
		Description:  description,
		Category:     category,
		Version:      "1.0",
		FileName:     fileName,
		UploadDate:   time.Now(),
		Placeholders: extractPlaceholders(fileName),
	}

	if err := s.storage.StoreTemplate(ctx, template); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("template_id", template.ID).
		Str("name", template.Name).
		Int("placeholders", len(template.Placeholders)).
		Msg("Template added to catalog")

	return template, nil
}

// UpdateTemplate modifies catalog metadata for an existing template
func (s *Service) UpdateTemplate(ctx context.Context, template *models.Template) error {
	if _, err := s.storage.GetTemplate(ctx, template.ID); err != nil {
		return ErrTemplateNotFound
	}
	if err := s.storage.StoreTemplate(ctx, template); err != nil {
		return err
	}

	s.logger.Info().Str("template_id", template.ID).Msg("Template updated")
	return nil
}

// DeleteTemplate removes a template from the catalog. Jobs created from it
// keep their snapshot of the template identity.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.storage.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("template_id", id).Msg("Template deleted")
	return nil
}

// simulateDelay blocks for the configured latency, honoring cancellation
func (s *Service) simulateDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// extractPlaceholders simulates scanning an uploaded file: known demo file
// names map to their schemas, anything else gets the default placeholders
func extractPlaceholders(fileName string) []models.Placeholder {
	lower := strings.ToLower(fileName)
	for _, known := range badgerstorage.DefaultTemplates() {
		if strings.ToLower(known.FileName) == lower {
			return known.Placeholders
		}
	}
	return badgerstorage.DefaultPlaceholders()
}

package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
)

// TemplateStorage implements the TemplateStorage interface for Badger
type TemplateStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewTemplateStorage creates a new TemplateStorage instance
func NewTemplateStorage(db *BadgerDB, logger arbor.ILogger) interfaces.TemplateStorage {
	return &TemplateStorage{
		db:     db,
		logger: logger,
	}
}

func (s *TemplateStorage) StoreTemplate(ctx context.Context, template *models.Template) error {
	if err := template.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	if template.UploadDate.IsZero() {
		template.UploadDate = time.Now()
	}

	if err := s.db.Store().Upsert(template.ID, template); err != nil {
		return fmt.Errorf("failed to store template: %w", err)
	}
	return nil
}

func (s *TemplateStorage) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	var template models.Template
	if err := s.db.Store().Get(id, &template); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("template not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &template, nil
}

func (s *TemplateStorage) ListTemplates(ctx context.Context) ([]*models.Template, error) {
	var templates []models.Template
	if err := s.db.Store().Find(&templates, nil); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	// Newest upload first
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].UploadDate.After(templates[j].UploadDate)
	})

	result := make([]*models.Template, len(templates))
	for i := range templates {
		result[i] = &templates[i]
	}
	return result, nil
}

func (s *TemplateStorage) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.Template{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

func (s *TemplateStorage) CountTemplates(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Template{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return int(count), nil
}

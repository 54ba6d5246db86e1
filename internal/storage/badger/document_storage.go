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

// DocumentStorage implements the DocumentStorage interface for Badger
type DocumentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewDocumentStorage creates a new DocumentStorage instance
func NewDocumentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.DocumentStorage {
	return &DocumentStorage{
		db:     db,
		logger: logger,
	}
}

func (s *DocumentStorage) StoreDocument(ctx context.Context, doc *models.GeneratedDocument) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}

	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(doc.ID, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	return nil
}

func (s *DocumentStorage) StoreDocuments(ctx context.Context, docs []*models.GeneratedDocument) error {
	for _, doc := range docs {
		if err := s.StoreDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *DocumentStorage) GetDocument(ctx context.Context, id string) (*models.GeneratedDocument, error) {
	var doc models.GeneratedDocument
	if err := s.db.Store().Get(id, &doc); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("document not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentStorage) GetDocumentsByJob(ctx context.Context, jobID string) ([]*models.GeneratedDocument, error) {
	var docs []models.GeneratedDocument
	if err := s.db.Store().Find(&docs, badgerhold.Where("JobID").Eq(jobID)); err != nil {
		return nil, fmt.Errorf("failed to find documents for job %s: %w", jobID, err)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	result := make([]*models.GeneratedDocument, len(docs))
	for i := range docs {
		result[i] = &docs[i]
	}
	return result, nil
}

func (s *DocumentStorage) ListDocuments(ctx context.Context) ([]*models.GeneratedDocument, error) {
	var docs []models.GeneratedDocument
	if err := s.db.Store().Find(&docs, nil); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := make([]*models.GeneratedDocument, len(docs))
	for i := range docs {
		result[i] = &docs[i]
	}
	return result, nil
}

func (s *DocumentStorage) CountDocuments(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.GeneratedDocument{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return int(count), nil
}

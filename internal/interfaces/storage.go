package interfaces

import (
	"context"

	"github.com/docugenhq/docugen/internal/models"
)

// TemplateStorage - interface for template catalog persistence
type TemplateStorage interface {
	StoreTemplate(ctx context.Context, template *models.Template) error
	GetTemplate(ctx context.Context, id string) (*models.Template, error)
	ListTemplates(ctx context.Context) ([]*models.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	CountTemplates(ctx context.Context) (int, error)
}

// JobStorage - interface for generation job persistence
type JobStorage interface {
	StoreJob(ctx context.Context, job *models.GenerationJob) error
	GetJob(ctx context.Context, id string) (*models.GenerationJob, error)
	// ListJobs returns all jobs ordered most-recent-first (Seq descending)
	ListJobs(ctx context.Context) ([]*models.GenerationJob, error)
	DeleteJob(ctx context.Context, id string) error
	CountJobs(ctx context.Context) (int, error)
	// MaxSeq returns the highest creation sequence seen, 0 when empty
	MaxSeq(ctx context.Context) (int64, error)
}

// DocumentStorage - interface for generated document persistence
type DocumentStorage interface {
	StoreDocument(ctx context.Context, doc *models.GeneratedDocument) error
	StoreDocuments(ctx context.Context, docs []*models.GeneratedDocument) error
	GetDocument(ctx context.Context, id string) (*models.GeneratedDocument, error)
	GetDocumentsByJob(ctx context.Context, jobID string) ([]*models.GeneratedDocument, error)
	ListDocuments(ctx context.Context) ([]*models.GeneratedDocument, error)
	CountDocuments(ctx context.Context) (int, error)
}

// SessionStorage - interface for login session persistence
type SessionStorage interface {
	StoreSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	TemplateStorage() TemplateStorage
	JobStorage() JobStorage
	DocumentStorage() DocumentStorage
	SessionStorage() SessionStorage
	// RunValueLogGC triggers one Badger value-log garbage collection pass.
	// Returns badger.ErrNoRewrite when nothing was reclaimed.
	RunValueLogGC(discardRatio float64) error
	Close() error
}

package interfaces

import (
	"context"

	"github.com/docugenhq/docugen/internal/models"
)

// GenerationService is the document generation job engine.
// All mutations are serialized by a single writer inside the service; reads
// return snapshot copies that callers may not use to mutate engine state.
type GenerationService interface {
	// CreateSingleDocumentJob creates a one-item job and completes it
	// synchronously, returning the completed job with its document ID set
	CreateSingleDocumentJob(ctx context.Context, template *models.Template, data models.DataRow) (*models.GenerationJob, error)

	// CreateBulkDocumentJob creates a job with one item per data row; its
	// documents materialize asynchronously via the progress ticker
	CreateBulkDocumentJob(ctx context.Context, template *models.Template, dataRows []models.DataRow) (*models.GenerationJob, error)

	// GetJobByID returns a snapshot of the job, or nil if not found
	GetJobByID(id string) *models.GenerationJob

	// ListJobs returns snapshots of all jobs, most-recent-first
	ListJobs() []*models.GenerationJob

	// GetDocumentsByJobID returns snapshots of the documents a job produced
	GetDocumentsByJobID(jobID string) []*models.GeneratedDocument

	// ListDocuments returns snapshots of all generated documents
	ListDocuments() []*models.GeneratedDocument

	// FailJob transitions a pending or processing job to failed.
	// Terminal jobs are rejected.
	FailJob(id string, reason string) error

	// IsLoading reports whether any job creation is currently in flight
	IsLoading() bool

	// Start launches the progress ticker goroutine
	Start() error

	// Stop halts the ticker and waits for in-flight work
	Stop() error
}

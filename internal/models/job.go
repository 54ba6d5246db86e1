package models

import (
	"fmt"
	"time"
)

// JobStatus represents the state of a generation job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// DataRow holds the placeholder values for one document, keyed by placeholder key.
type DataRow map[string]interface{}

// GenerationJob represents one unit of document generation work.
// TemplateID and TemplateName are snapshot at creation time so later template
// edits or deletes never alter historical jobs.
//
// Lifecycle:
//   - pending: created, waiting to be picked up
//   - processing: progress advances in increments until 100
//   - completed: terminal; GeneratedDocumentIDs holds exactly ItemCount entries
//   - failed: terminal; ErrorMessage holds the reason
//
// GeneratedDocumentIDs is written exactly once, at the processing->completed
// transition (or at creation for the single-document fast path).
type GenerationJob struct {
	ID           string    `json:"id" badgerhold:"key"`
	Seq          int64     `json:"seq"` // Monotonic creation sequence, ordering tiebreaker
	TemplateID   string    `json:"template_id"`
	TemplateName string    `json:"template_name"`
	Status       JobStatus `json:"status"`
	Progress     int       `json:"progress"` // 0-100
	CreatedAt    time.Time `json:"created_at"`
	ItemCount    int       `json:"item_count"`
	// GeneratedDocumentIDs is populated at most once, at completion
	GeneratedDocumentIDs []string `json:"generated_document_ids,omitempty"`
	ErrorMessage         string   `json:"error_message,omitempty"`
}

// IsTerminal returns true if the job is in a terminal state
func (j *GenerationJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// MarkCompleted flips the job to completed with progress pinned at 100 and
// the produced document IDs recorded.
func (j *GenerationJob) MarkCompleted(documentIDs []string) {
	j.Status = JobStatusCompleted
	j.Progress = 100
	j.GeneratedDocumentIDs = documentIDs
}

// MarkFailed flips the job to failed with the given reason
func (j *GenerationJob) MarkFailed(reason string) {
	j.Status = JobStatusFailed
	j.ErrorMessage = reason
}

// Clone returns a copy of the job safe to hand to readers
func (j *GenerationJob) Clone() *GenerationJob {
	clone := *j
	if j.GeneratedDocumentIDs != nil {
		clone.GeneratedDocumentIDs = make([]string, len(j.GeneratedDocumentIDs))
		copy(clone.GeneratedDocumentIDs, j.GeneratedDocumentIDs)
	}
	return &clone
}

// Validate validates job integrity before persistence
func (j *GenerationJob) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("job ID is required")
	}
	if j.TemplateID == "" {
		return fmt.Errorf("job template ID is required")
	}
	if j.ItemCount < 1 {
		return fmt.Errorf("job item count must be at least 1, got %d", j.ItemCount)
	}
	if j.Progress < 0 || j.Progress > 100 {
		return fmt.Errorf("job progress out of range: %d", j.Progress)
	}
	return nil
}

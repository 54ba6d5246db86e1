package models

import "time"

// GeneratedDocument represents one document produced by a generation job.
// Documents are created once at job completion and never mutated.
type GeneratedDocument struct {
	ID           string    `json:"id" badgerhold:"key"`
	JobID        string    `json:"job_id"`
	TemplateName string    `json:"template_name"` // Denormalized snapshot
	FileName     string    `json:"file_name"`
	CreatedAt    time.Time `json:"created_at"`
	DownloadURL  string    `json:"download_url"` // Opaque locator, not guaranteed resolvable
}

// Clone returns a copy of the document safe to hand to readers
func (d *GeneratedDocument) Clone() *GeneratedDocument {
	clone := *d
	return &clone
}

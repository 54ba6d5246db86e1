package common

import (
	"github.com/google/uuid"
)

// NewJobID generates a unique generation job ID with the "job_" prefix
// Format: job_<uuid>
func NewJobID() string {
	return "job_" + uuid.New().String()
}

// NewDocumentID generates a unique document ID with the "doc_" prefix
// Format: doc_<uuid>
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}

// NewTemplateID generates a unique template ID with the "template_" prefix
// Format: template_<uuid>
func NewTemplateID() string {
	return "template_" + uuid.New().String()
}

// NewSessionID generates a unique session ID with the "session_" prefix
// Format: session_<uuid>
func NewSessionID() string {
	return "session_" + uuid.New().String()
}

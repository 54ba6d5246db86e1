package models

import "time"

// EventType identifies a generation lifecycle event
type EventType string

const (
	EventJobCreated      EventType = "job_created"
	EventJobProgress     EventType = "job_progress"
	EventJobCompleted    EventType = "job_completed"
	EventJobFailed       EventType = "job_failed"
	EventDocumentCreated EventType = "document_created"
)

// Event is the payload published on the in-process event bus and streamed
// to WebSocket subscribers
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	JobID     string                 `json:"job_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

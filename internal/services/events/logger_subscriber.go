package events

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
)

// NewLoggerSubscriber creates an event handler that logs every event with its
// structured fields. Intended to be registered via SubscribeAll.
func NewLoggerSubscriber(logger arbor.ILogger) interfaces.EventHandler {
	return func(ctx context.Context, event models.Event) error {
		logEvent := logger.Debug().
			Str("event_type", string(event.Type))

		if event.JobID != "" {
			logEvent = logEvent.Str("job_id", event.JobID)
		}
		if status, ok := event.Data["status"].(string); ok && status != "" {
			logEvent = logEvent.Str("status", status)
		}
		if progress, ok := event.Data["progress"].(int); ok {
			logEvent = logEvent.Int("progress", progress)
		}

		logEvent.Msg("Event published")
		return nil
	}
}

// SubscribeLoggerToAllEvents wires the logging subscriber into the event bus
func SubscribeLoggerToAllEvents(eventService interfaces.EventService, logger arbor.ILogger) error {
	return eventService.SubscribeAll(NewLoggerSubscriber(logger))
}

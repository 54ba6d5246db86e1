package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/models"
)

func TestLoggerSubscriberHandlesAllEventShapes(t *testing.T) {
	handler := NewLoggerSubscriber(arbor.NewLogger())
	ctx := context.Background()

	events := []models.Event{
		{Type: models.EventJobCreated, Timestamp: time.Now(), JobID: "job_1", Data: map[string]interface{}{"status": "processing"}},
		{Type: models.EventJobProgress, Timestamp: time.Now(), JobID: "job_1", Data: map[string]interface{}{"progress": 40}},
		{Type: models.EventDocumentCreated, Timestamp: time.Now(), JobID: "job_1", Data: nil},
		{Type: models.EventJobCompleted, Timestamp: time.Now()},
	}

	for _, event := range events {
		assert.NoError(t, handler(ctx, event))
	}
}

func TestSubscribeLoggerToAllEvents(t *testing.T) {
	logger := arbor.NewLogger()
	svc := NewService(logger)

	require.NoError(t, SubscribeLoggerToAllEvents(svc, logger))

	// The logging subscriber must not surface errors into the bus.
	err := svc.PublishSync(context.Background(), models.Event{
		Type:      models.EventJobFailed,
		Timestamp: time.Now(),
		JobID:     "job_2",
		Data:      map[string]interface{}{"status": "failed"},
	})
	assert.NoError(t, err)
}

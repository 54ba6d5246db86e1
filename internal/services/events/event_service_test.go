package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/models"
)

func TestPublishSyncDeliversToSubscribers(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	defer svc.Close()

	var typed, wildcard int32
	require.NoError(t, svc.Subscribe(models.EventJobCompleted, func(ctx context.Context, e models.Event) error {
		atomic.AddInt32(&typed, 1)
		return nil
	}))
	require.NoError(t, svc.SubscribeAll(func(ctx context.Context, e models.Event) error {
		atomic.AddInt32(&wildcard, 1)
		return nil
	}))

	event := models.Event{Type: models.EventJobCompleted, JobID: "job-1"}
	require.NoError(t, svc.PublishSync(context.Background(), event))

	assert.Equal(t, int32(1), atomic.LoadInt32(&typed))
	assert.Equal(t, int32(1), atomic.LoadInt32(&wildcard))

	// Wildcard also sees other event types
	require.NoError(t, svc.PublishSync(context.Background(), models.Event{Type: models.EventJobProgress}))
	assert.Equal(t, int32(1), atomic.LoadInt32(&typed))
	assert.Equal(t, int32(2), atomic.LoadInt32(&wildcard))
}

func TestPublishSyncAggregatesHandlerErrors(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	defer svc.Close()

	require.NoError(t, svc.Subscribe(models.EventJobFailed, func(ctx context.Context, e models.Event) error {
		return errors.New("handler boom")
	}))

	err := svc.PublishSync(context.Background(), models.Event{Type: models.EventJobFailed})
	assert.Error(t, err)
}

func TestSubscribeRejectsNilHandler(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	defer svc.Close()

	assert.Error(t, svc.Subscribe(models.EventJobCreated, nil))
	assert.Error(t, svc.SubscribeAll(nil))
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	defer svc.Close()

	assert.NoError(t, svc.Publish(context.Background(), models.Event{Type: models.EventDocumentCreated}))
}

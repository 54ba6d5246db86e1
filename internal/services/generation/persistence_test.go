package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/models"
	badgerstorage "github.com/docugenhq/docugen/internal/storage/badger"
)

func TestStateRestoredAcrossRestart(t *testing.T) {
	logger := arbor.NewLogger()
	cfg := &common.BadgerConfig{Path: t.TempDir() + "/db"}

	manager, err := badgerstorage.NewManager(logger, cfg)
	require.NoError(t, err)

	rnd := &scriptedRand{floats: []float64{0.1}, ints: []int{19}}
	svc, err := NewService(manager.JobStorage(), manager.DocumentStorage(), nil, testConfig(), rnd, fixedClock(testTime), logger)
	require.NoError(t, err)

	ctx := context.Background()
	bulk, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}, {}})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		svc.Tick()
	}
	single, err := svc.CreateSingleDocumentJob(ctx, testTemplate(), models.DataRow{"{{ClientName}}": "Acme"})
	require.NoError(t, err)

	require.NoError(t, manager.Close())

	// Reopen the store and rebuild the engine from persisted state
	manager, err = badgerstorage.NewManager(logger, cfg)
	require.NoError(t, err)
	defer manager.Close()

	restored, err := NewService(manager.JobStorage(), manager.DocumentStorage(), nil, testConfig(), rnd, fixedClock(testTime), logger)
	require.NoError(t, err)

	jobs := restored.ListJobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, single.ID, jobs[0].ID, "ordering survives restart")
	assert.Equal(t, bulk.ID, jobs[1].ID)

	got := restored.GetJobByID(bulk.ID)
	require.NotNil(t, got)
	assert.Equal(t, models.JobStatusCompleted, got.Status)
	assert.Len(t, got.GeneratedDocumentIDs, 2)
	assert.Len(t, restored.GetDocumentsByJobID(bulk.ID), 2)

	// New jobs must continue the sequence, not reuse old positions
	next, err := restored.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}})
	require.NoError(t, err)
	assert.Greater(t, next.Seq, jobs[0].Seq)
}

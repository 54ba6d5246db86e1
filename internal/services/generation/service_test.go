package generation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/models"
)

// scriptedRand replays fixed sequences so progress and promotion are
// deterministic. Sequences repeat when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testTime = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func testConfig() common.GenerationConfig {
	return common.GenerationConfig{
		TickInterval:               2 * time.Second,
		StartProcessingProbability: 0.7,
		CreationDelayMin:           0,
		CreationDelayMax:           0,
	}
}

func newTestService(t *testing.T, rnd Rand) *Service {
	t.Helper()
	svc, err := NewService(nil, nil, nil, testConfig(), rnd, fixedClock(testTime), arbor.NewLogger())
	require.NoError(t, err)
	return svc
}

func testTemplate() *models.Template {
	return &models.Template{
		ID:   "template-002",
		Name: "Service Contract",
	}
}

func TestCreateBulkJobPrependsNewestFirst(t *testing.T) {
	// Float64 drives promotion; keep everything pending for a stable check
	svc := newTestService(t, &scriptedRand{floats: []float64{0.9}})
	ctx := context.Background()

	rows := []models.DataRow{{}, {}}
	first, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), rows)
	require.NoError(t, err)
	second, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), rows)
	require.NoError(t, err)

	jobs := svc.ListJobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID, "most recent job must come first")
	assert.Equal(t, first.ID, jobs[1].ID)
	assert.Greater(t, jobs[0].Seq, jobs[1].Seq)
}

func TestCreateJobPromotionProbability(t *testing.T) {
	// 0.5 < 0.7 promotes; 0.9 >= 0.7 stays pending
	svc := newTestService(t, &scriptedRand{floats: []float64{0.5, 0.9}})
	ctx := context.Background()

	promoted, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusProcessing, promoted.Status)

	pending, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, pending.Status)
}

func TestCreateJobValidation(t *testing.T) {
	svc := newTestService(t, &scriptedRand{floats: []float64{0.9}})
	ctx := context.Background()

	_, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), nil)
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = svc.CreateBulkDocumentJob(ctx, nil, []models.DataRow{{}})
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	_, err = svc.CreateBulkDocumentJob(ctx, &models.Template{ID: "x"}, []models.DataRow{{}})
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	assert.Empty(t, svc.ListJobs(), "rejected creations must not appear in the collection")
}

func TestCreationRespectsContextCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.CreationDelayMin = 50 * time.Millisecond
	cfg.CreationDelayMax = 50 * time.Millisecond
	svc, err := NewService(nil, nil, nil, cfg, &scriptedRand{floats: []float64{0.5}}, fixedClock(testTime), arbor.NewLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, svc.ListJobs())
	assert.False(t, svc.IsLoading())
}

func TestTickAdvancesProcessingJobs(t *testing.T) {
	// Promote immediately, then advance by 10+5 per tick
	rnd := &scriptedRand{floats: []float64{0.1}, ints: []int{5}}
	svc := newTestService(t, rnd)
	ctx := context.Background()

	job, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}, {}})
	require.NoError(t, err)
	require.Equal(t, models.JobStatusProcessing, job.Status)

	svc.Tick()
	got := svc.GetJobByID(job.ID)
	require.NotNil(t, got)
	assert.Equal(t, 15, got.Progress)
	assert.Equal(t, models.JobStatusProcessing, got.Status)

	// Progress must be monotonic across ticks
	prev := got.Progress
	for i := 0; i < 10 && got.Status == models.JobStatusProcessing; i++ {
		svc.Tick()
		got = svc.GetJobByID(job.ID)
		assert.GreaterOrEqual(t, got.Progress, prev)
		prev = got.Progress
	}

	assert.Equal(t, models.JobStatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress, "progress must clamp at 100")
}

func TestTickIgnoresPendingAndTerminalJobs(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.9}, ints: []int{19}}
	svc := newTestService(t, rnd)
	ctx := context.Background()

	job, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}})
	require.NoError(t, err)
	require.Equal(t, models.JobStatusPending, job.Status)

	svc.Tick()
	got := svc.GetJobByID(job.ID)
	assert.Equal(t, models.JobStatusPending, got.Status)
	assert.Equal(t, 0, got.Progress, "tick must not touch pending jobs")

	require.NoError(t, svc.FailJob(job.ID, "user abandoned"))
	svc.Tick()
	got = svc.GetJobByID(job.ID)
	assert.Equal(t, models.JobStatusFailed, got.Status)
	assert.Equal(t, 0, got.Progress)
}

func TestCompletionMaterializesExactlyItemCountDocuments(t *testing.T) {
	// Max jitter drives 10+19=29 per tick: 29, 58, 87, 100
	rnd := &scriptedRand{floats: []float64{0.1}, ints: []int{19}}
	svc := newTestService(t, rnd)
	ctx := context.Background()

	job, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}, {}, {}})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		svc.Tick()
	}

	got := svc.GetJobByID(job.ID)
	require.Equal(t, models.JobStatusCompleted, got.Status)
	require.Len(t, got.GeneratedDocumentIDs, 3, "document IDs must match item count")

	docs := svc.GetDocumentsByJobID(job.ID)
	require.Len(t, docs, 3)
	for i, doc := range docs {
		assert.Equal(t, job.ID, doc.JobID)
		assert.Equal(t, "Service_Contract_Item"+string(rune('1'+i))+"_2026-08-28.docx", doc.FileName)
		assert.Equal(t, "/mock-download/"+doc.ID+".docx", doc.DownloadURL)
	}

	// Extra ticks must not duplicate documents or rewrite the ID list
	idsBefore := got.GeneratedDocumentIDs
	svc.Tick()
	svc.Tick()
	got = svc.GetJobByID(job.ID)
	assert.Equal(t, idsBefore, got.GeneratedDocumentIDs, "document IDs are written exactly once")
	assert.Len(t, svc.GetDocumentsByJobID(job.ID), 3)
	assert.Len(t, svc.ListDocuments(), 3)
}

func TestSingleDocumentFastPath(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.9}}
	svc := newTestService(t, rnd)
	ctx := context.Background()

	data := models.DataRow{"{{ClientName}}": "Acme Corp"}
	job, err := svc.CreateSingleDocumentJob(ctx, testTemplate(), data)
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	require.Len(t, job.GeneratedDocumentIDs, 1)

	docs := svc.GetDocumentsByJobID(job.ID)
	require.Len(t, docs, 1)
	assert.Equal(t, job.GeneratedDocumentIDs[0], docs[0].ID)
	assert.Equal(t, "Service_Contract_Acme_Corp_2026-08-28.docx", docs[0].FileName)
}

func TestSingleDocumentSubjectFallback(t *testing.T) {
	tests := []struct {
		name     string
		data     models.DataRow
		expected string
	}{
		{"client name", models.DataRow{"{{ClientName}}": "Acme Corp"}, "Acme Corp"},
		{"party a name", models.DataRow{"{{PartyAName}}": "Jane Smith"}, "Jane Smith"},
		{"client wins over party", models.DataRow{"{{ClientName}}": "Acme", "{{PartyAName}}": "Jane"}, "Acme"},
		{"numeric value", models.DataRow{"{{ClientName}}": 42}, "42"},
		{"no subject keys", models.DataRow{"{{Other}}": "x"}, "Single"},
		{"empty row", models.DataRow{}, "Single"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, singleDocumentSubject(tt.data))
		})
	}
}

func TestFailJobTransitions(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.9, 0.1}}
	svc := newTestService(t, rnd)
	ctx := context.Background()

	pending, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}})
	require.NoError(t, err)
	require.Equal(t, models.JobStatusPending, pending.Status)

	require.NoError(t, svc.FailJob(pending.ID, "template removed"))
	got := svc.GetJobByID(pending.ID)
	assert.Equal(t, models.JobStatusFailed, got.Status)
	assert.Equal(t, "template removed", got.ErrorMessage)

	// Failing a terminal job is rejected
	err = svc.FailJob(pending.ID, "again")
	assert.ErrorIs(t, err, ErrJobTerminal)

	// Unknown ID
	err = svc.FailJob("job_missing", "no such job")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestReadsReturnSnapshots(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.9}}
	svc := newTestService(t, rnd)
	ctx := context.Background()

	job, err := svc.CreateBulkDocumentJob(ctx, testTemplate(), []models.DataRow{{}})
	require.NoError(t, err)

	// Mutating a returned snapshot must not leak into engine state
	snapshot := svc.GetJobByID(job.ID)
	snapshot.Status = models.JobStatusCompleted
	snapshot.Progress = 100

	fresh := svc.GetJobByID(job.ID)
	assert.Equal(t, models.JobStatusPending, fresh.Status)
	assert.Equal(t, 0, fresh.Progress)

	list := svc.ListJobs()
	list[0].Status = models.JobStatusFailed
	fresh = svc.GetJobByID(job.ID)
	assert.Equal(t, models.JobStatusPending, fresh.Status)
}

func TestGetJobByIDUnknown(t *testing.T) {
	svc := newTestService(t, &scriptedRand{})
	assert.Nil(t, svc.GetJobByID("job_missing"))
	assert.Empty(t, svc.GetDocumentsByJobID("job_missing"))
}

func TestIsLoadingDuringCreation(t *testing.T) {
	cfg := testConfig()
	cfg.CreationDelayMin = 30 * time.Millisecond
	cfg.CreationDelayMax = 30 * time.Millisecond
	svc, err := NewService(nil, nil, nil, cfg, &scriptedRand{floats: []float64{0.5}}, fixedClock(testTime), arbor.NewLogger())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.CreateBulkDocumentJob(context.Background(), testTemplate(), []models.DataRow{{}})
		assert.NoError(t, err)
	}()

	// The loading flag must be observable while the creation is in flight
	deadline := time.After(time.Second)
	for !svc.IsLoading() {
		select {
		case <-deadline:
			t.Fatal("IsLoading never became true")
		case <-done:
			t.Fatal("creation finished before IsLoading was observed")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	<-done
	assert.False(t, svc.IsLoading())
}

func TestTickerLifecycle(t *testing.T) {
	cfg := testConfig()
	cfg.TickInterval = 10 * time.Millisecond
	rnd := &scriptedRand{floats: []float64{0.1}, ints: []int{19}}
	svc, err := NewService(nil, nil, nil, cfg, rnd, time.Now, arbor.NewLogger())
	require.NoError(t, err)

	job, err := svc.CreateBulkDocumentJob(context.Background(), testTemplate(), []models.DataRow{{}})
	require.NoError(t, err)

	require.NoError(t, svc.Start())
	assert.Error(t, svc.Start(), "double start must be rejected")

	// 10+19=29 per tick completes in 4 ticks; allow generous wall time
	deadline := time.After(2 * time.Second)
	for {
		if got := svc.GetJobByID(job.ID); got.Status == models.JobStatusCompleted {
			break
		}
		select {
		case <-deadline:
			t.Fatal("job never completed under the running ticker")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	require.NoError(t, svc.Stop())
	require.NoError(t, svc.Stop(), "stop is idempotent")
}

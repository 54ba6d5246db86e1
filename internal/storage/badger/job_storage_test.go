package badger

import (
	"context"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/docugenhq/docugen/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	options := badgerhold.DefaultOptions
	options.Dir = t.TempDir()
	options.ValueDir = options.Dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func TestJobStorageRoundTrip(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewJobStorage(db, logger)

	ctx := context.Background()

	job := &models.GenerationJob{
		ID:           "job-1",
		Seq:          1,
		TemplateID:   "template-001",
		TemplateName: "Service Contract",
		Status:       models.JobStatusProcessing,
		Progress:     40,
		CreatedAt:    time.Now(),
		ItemCount:    3,
	}
	if err := storage.StoreJob(ctx, job); err != nil {
		t.Fatalf("Failed to store job: %v", err)
	}

	got, err := storage.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("Failed to get job: %v", err)
	}
	if got.Status != models.JobStatusProcessing {
		t.Errorf("Expected status processing, got %s", got.Status)
	}
	if got.Progress != 40 {
		t.Errorf("Expected progress 40, got %d", got.Progress)
	}

	// Update to completed and verify document IDs survive the round trip
	job.MarkCompleted([]string{"doc-1", "doc-2", "doc-3"})
	if err := storage.StoreJob(ctx, job); err != nil {
		t.Fatalf("Failed to update job: %v", err)
	}

	got, err = storage.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("Failed to get updated job: %v", err)
	}
	if got.Status != models.JobStatusCompleted {
		t.Errorf("Expected status completed, got %s", got.Status)
	}
	if len(got.GeneratedDocumentIDs) != 3 {
		t.Errorf("Expected 3 document IDs, got %d", len(got.GeneratedDocumentIDs))
	}
}

func TestJobStorageListOrder(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewJobStorage(db, logger)

	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		job := &models.GenerationJob{
			ID:           "job-" + string(rune('a'+i-1)),
			Seq:          i,
			TemplateID:   "template-001",
			TemplateName: "NDA",
			Status:       models.JobStatusPending,
			CreatedAt:    time.Now(),
			ItemCount:    1,
		}
		if err := storage.StoreJob(ctx, job); err != nil {
			t.Fatalf("Failed to store job %d: %v", i, err)
		}
	}

	jobs, err := storage.ListJobs(ctx)
	if err != nil {
		t.Fatalf("Failed to list jobs: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("Expected 3 jobs, got %d", len(jobs))
	}
	for i := 0; i < len(jobs)-1; i++ {
		if jobs[i].Seq < jobs[i+1].Seq {
			t.Errorf("Jobs not ordered most-recent-first: seq %d before %d", jobs[i].Seq, jobs[i+1].Seq)
		}
	}

	maxSeq, err := storage.MaxSeq(ctx)
	if err != nil {
		t.Fatalf("Failed to get max seq: %v", err)
	}
	if maxSeq != 3 {
		t.Errorf("Expected max seq 3, got %d", maxSeq)
	}
}

func TestDocumentStorageByJob(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewDocumentStorage(db, logger)

	ctx := context.Background()

	docs := []*models.GeneratedDocument{
		{ID: "doc-1", JobID: "job-1", TemplateName: "NDA", FileName: "NDA_Item1_2026-08-28.docx", CreatedAt: time.Now(), DownloadURL: "/mock-download/doc-1.docx"},
		{ID: "doc-2", JobID: "job-1", TemplateName: "NDA", FileName: "NDA_Item2_2026-08-28.docx", CreatedAt: time.Now(), DownloadURL: "/mock-download/doc-2.docx"},
		{ID: "doc-3", JobID: "job-2", TemplateName: "Service Contract", FileName: "Service_Contract_Item1_2026-08-28.docx", CreatedAt: time.Now(), DownloadURL: "/mock-download/doc-3.docx"},
	}
	if err := storage.StoreDocuments(ctx, docs); err != nil {
		t.Fatalf("Failed to store documents: %v", err)
	}

	byJob, err := storage.GetDocumentsByJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("Failed to get documents by job: %v", err)
	}
	if len(byJob) != 2 {
		t.Errorf("Expected 2 documents for job-1, got %d", len(byJob))
	}

	count, err := storage.CountDocuments(ctx)
	if err != nil {
		t.Fatalf("Failed to count documents: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 documents total, got %d", count)
	}
}

func TestSeedDefaultTemplates(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewTemplateStorage(db, logger)

	ctx := context.Background()

	if err := SeedDefaultTemplates(ctx, storage, logger); err != nil {
		t.Fatalf("Failed to seed templates: %v", err)
	}

	templates, err := storage.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("Failed to list templates: %v", err)
	}
	if len(templates) != 3 {
		t.Fatalf("Expected 3 seeded templates, got %d", len(templates))
	}

	// Seeding again must not duplicate
	if err := SeedDefaultTemplates(ctx, storage, logger); err != nil {
		t.Fatalf("Failed on second seed: %v", err)
	}
	count, err := storage.CountTemplates(ctx)
	if err != nil {
		t.Fatalf("Failed to count templates: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 templates after reseed, got %d", count)
	}
}

package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
)

var (
	// ErrJobNotFound is returned when a job ID does not exist
	ErrJobNotFound = errors.New("job not found")
	// ErrJobTerminal is returned when a transition is requested on a
	// completed or failed job
	ErrJobTerminal = errors.New("job already in terminal state")
	// ErrInvalidTemplate is returned when the job's template is missing
	// required identity fields
	ErrInvalidTemplate = errors.New("invalid template")
	// ErrNoItems is returned when a bulk job has no data rows
	ErrNoItems = errors.New("job requires at least one item")
)

// Progress advances by 10 plus a random value in [0, progressJitter) per tick
const (
	progressBase   = 10
	progressJitter = 20
)

// Service implements the GenerationService interface. The in-memory
// collections are authoritative; Badger is a write-through replica reloaded
// at startup. Every mutation happens under mu, which makes each tick and
// each creation atomic with respect to readers.
type Service struct {
	mu   sync.Mutex
	jobs []*models.GenerationJob // Most-recent-first
	docs []*models.GeneratedDocument
	// docIndex guards the insert-at-most-once document contract
	docIndex map[string]*models.GeneratedDocument
	seq      int64

	jobStorage interfaces.JobStorage
	docStorage interfaces.DocumentStorage
	events     interfaces.EventService
	logger     arbor.ILogger
	config     common.GenerationConfig

	rand Rand
	now  func() time.Time

	loading int32 // In-flight creations

	tickerStop chan struct{}
	tickerDone chan struct{}
	started    bool
}

// NewService creates the generation engine and reloads persisted state.
// rand and now may be nil, which selects time-seeded randomness and the
// wall clock.
func NewService(
	jobStorage interfaces.JobStorage,
	docStorage interfaces.DocumentStorage,
	events interfaces.EventService,
	config common.GenerationConfig,
	rnd Rand,
	now func() time.Time,
	logger arbor.ILogger,
) (*Service, error) {
	if rnd == nil {
		rnd = NewRand(time.Now().UnixNano())
	}
	if now == nil {
		now = time.Now
	}

	s := &Service{
		docIndex:   make(map[string]*models.GeneratedDocument),
		jobStorage: jobStorage,
		docStorage: docStorage,
		events:     events,
		logger:     logger,
		config:     config,
		rand:       rnd,
		now:        now,
	}

	if err := s.reload(); err != nil {
		return nil, fmt.Errorf("failed to reload generation state: %w", err)
	}

	return s, nil
}

// reload restores jobs and documents from storage into memory
func (s *Service) reload() error {
	ctx := context.Background()

	if s.jobStorage != nil {
		jobs, err := s.jobStorage.ListJobs(ctx)
		if err != nil {
			return err
		}
		s.jobs = jobs
		if maxSeq, err := s.jobStorage.MaxSeq(ctx); err == nil {
			s.seq = maxSeq
		}
	}

	if s.docStorage != nil {
		docs, err := s.docStorage.ListDocuments(ctx)
		if err != nil {
			return err
		}
		s.docs = docs
		for _, doc := range docs {
			s.docIndex[doc.ID] = doc
		}
	}

	if len(s.jobs) > 0 || len(s.docs) > 0 {
		s.logger.Info().
			Int("jobs", len(s.jobs)).
			Int("documents", len(s.docs)).
			Msg("Generation state restored from storage")
	}

	return nil
}

// Start launches the progress ticker goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("generation service already started")
	}
	s.started = true
	s.tickerStop = make(chan struct{})
	s.tickerDone = make(chan struct{})

	interval := s.config.TickInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	go func() {
		defer close(s.tickerDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Tick()
			case <-s.tickerStop:
				return
			}
		}
	}()

	s.logger.Info().Str("interval", interval.String()).Msg("Generation ticker started")
	return nil
}

// Stop halts the ticker and waits for the goroutine to exit
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	close(s.tickerStop)
	done := s.tickerDone
	s.mu.Unlock()

	<-done
	s.logger.Info().Msg("Generation ticker stopped")
	return nil
}

// createJob allocates a new job, applies the simulated creation latency, and
// prepends it to the job collection
func (s *Service) createJob(ctx context.Context, template *models.Template, itemCount int) (*models.GenerationJob, error) {
	if template == nil || template.ID == "" || template.Name == "" {
		return nil, ErrInvalidTemplate
	}
	if itemCount < 1 {
		return nil, ErrNoItems
	}

	atomic.AddInt32(&s.loading, 1)
	defer atomic.AddInt32(&s.loading, -1)

	if err := s.sleepCreationDelay(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()

	s.seq++
	job := &models.GenerationJob{
		ID:           common.NewJobID(),
		Seq:          s.seq,
		TemplateID:   template.ID,
		TemplateName: template.Name,
		Status:       models.JobStatusPending,
		Progress:     0,
		CreatedAt:    s.now(),
		ItemCount:    itemCount,
	}

	// Most jobs start processing immediately; the rest wait in pending
	if s.rand.Float64() < s.config.StartProcessingProbability {
		job.Status = models.JobStatusProcessing
	}

	s.jobs = append([]*models.GenerationJob{job}, s.jobs...)
	s.persistJob(job)

	snapshot := job.Clone()
	s.mu.Unlock()

	s.logger.Info().
		Str("job_id", job.ID).
		Str("template_id", template.ID).
		Int("items", itemCount).
		Str("status", string(snapshot.Status)).
		Msg("Generation job created")

	s.publish(ctx, models.EventJobCreated, job.ID, map[string]interface{}{
		"template_id": template.ID,
		"item_count":  itemCount,
		"status":      string(snapshot.Status),
	})

	return snapshot, nil
}

// sleepCreationDelay blocks for a random duration inside the configured
// latency window, honoring context cancellation
func (s *Service) sleepCreationDelay(ctx context.Context) error {
	min, max := s.config.CreationDelayMin, s.config.CreationDelayMax
	if max <= 0 {
		return ctx.Err()
	}
	delay := min
	if max > min {
		delay += time.Duration(s.rand.Float64() * float64(max-min))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CreateSingleDocumentJob creates a one-item job and completes it
// synchronously: the document exists and the job is completed before this
// method returns.
func (s *Service) CreateSingleDocumentJob(ctx context.Context, template *models.Template, data models.DataRow) (*models.GenerationJob, error) {
	job, err := s.createJob(ctx, template, 1)
	if err != nil {
		return nil, err
	}

	subject := singleDocumentSubject(data)

	s.mu.Lock()

	stored := s.findJobLocked(job.ID)
	if stored == nil {
		s.mu.Unlock()
		return nil, ErrJobNotFound
	}

	doc := &models.GeneratedDocument{
		ID:           common.NewDocumentID(),
		JobID:        stored.ID,
		TemplateName: template.Name,
		FileName:     common.SingleDocumentFileName(template.Name, subject, s.now()),
		CreatedAt:    s.now(),
	}
	doc.DownloadURL = common.DownloadURL(doc.ID)

	s.insertDocumentLocked(doc, true)
	stored.MarkCompleted([]string{doc.ID})
	s.persistJob(stored)

	snapshot := stored.Clone()
	s.mu.Unlock()

	s.logger.Info().
		Str("job_id", stored.ID).
		Str("document_id", doc.ID).
		Msg("Single document generated")

	s.publish(ctx, models.EventDocumentCreated, stored.ID, map[string]interface{}{
		"document_id": doc.ID,
		"file_name":   doc.FileName,
	})
	s.publish(ctx, models.EventJobCompleted, stored.ID, map[string]interface{}{
		"document_ids": snapshot.GeneratedDocumentIDs,
	})

	return snapshot, nil
}

// CreateBulkDocumentJob creates a job with one item per data row. Documents
// materialize asynchronously when the progress ticker drives the job to 100.
func (s *Service) CreateBulkDocumentJob(ctx context.Context, template *models.Template, dataRows []models.DataRow) (*models.GenerationJob, error) {
	return s.createJob(ctx, template, len(dataRows))
}

// Tick advances every processing job by one progress increment. Jobs that
// reach 100 have their documents synthesized exactly once and flip to
// completed in the same tick. Exported so tests can drive time directly.
func (s *Service) Tick() {
	type completion struct {
		jobID  string
		docIDs []string
		docs   []*models.GeneratedDocument
	}
	type progressUpdate struct {
		jobID    string
		progress int
	}

	var completions []completion
	var updates []progressUpdate

	s.mu.Lock()
	for _, job := range s.jobs {
		if job.Status != models.JobStatusProcessing || job.Progress >= 100 {
			continue
		}

		newProgress := job.Progress + progressBase + s.rand.Intn(progressJitter)
		if newProgress < 100 {
			job.Progress = newProgress
			s.persistJob(job)
			updates = append(updates, progressUpdate{jobID: job.ID, progress: newProgress})
			continue
		}

		// Reached 100: materialize documents exactly once, then complete
		var docIDs []string
		var newDocs []*models.GeneratedDocument
		if len(job.GeneratedDocumentIDs) > 0 {
			// Documents already exist, reuse without re-synthesis
			docIDs = job.GeneratedDocumentIDs
		} else {
			now := s.now()
			for i := 0; i < job.ItemCount; i++ {
				doc := &models.GeneratedDocument{
					ID:           common.NewDocumentID(),
					JobID:        job.ID,
					TemplateName: job.TemplateName,
					FileName:     common.BulkDocumentFileName(job.TemplateName, i+1, now),
					CreatedAt:    now,
				}
				doc.DownloadURL = common.DownloadURL(doc.ID)
				docIDs = append(docIDs, doc.ID)
				newDocs = append(newDocs, doc)
			}
			for _, doc := range newDocs {
				s.insertDocumentLocked(doc, false)
			}
		}

		job.MarkCompleted(docIDs)
		s.persistJob(job)
		completions = append(completions, completion{jobID: job.ID, docIDs: docIDs, docs: newDocs})
	}
	s.mu.Unlock()

	ctx := context.Background()
	for _, u := range updates {
		s.publish(ctx, models.EventJobProgress, u.jobID, map[string]interface{}{
			"progress": u.progress,
		})
	}
	for _, c := range completions {
		for _, doc := range c.docs {
			s.publish(ctx, models.EventDocumentCreated, c.jobID, map[string]interface{}{
				"document_id": doc.ID,
				"file_name":   doc.FileName,
			})
		}
		s.logger.Info().
			Str("job_id", c.jobID).
			Int("documents", len(c.docIDs)).
			Msg("Generation job completed")
		s.publish(ctx, models.EventJobCompleted, c.jobID, map[string]interface{}{
			"document_ids": c.docIDs,
		})
	}
}

// FailJob transitions a pending or processing job to failed
func (s *Service) FailJob(id string, reason string) error {
	s.mu.Lock()

	job := s.findJobLocked(id)
	if job == nil {
		s.mu.Unlock()
		return ErrJobNotFound
	}
	if job.IsTerminal() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrJobTerminal, id, job.Status)
	}

	job.MarkFailed(reason)
	s.persistJob(job)
	s.mu.Unlock()

	s.logger.Warn().Str("job_id", id).Str("reason", reason).Msg("Generation job failed")

	s.publish(context.Background(), models.EventJobFailed, id, map[string]interface{}{
		"reason": reason,
	})
	return nil
}

// GetJobByID returns a snapshot of the job, or nil if not found
func (s *Service) GetJobByID(id string) *models.GenerationJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job := s.findJobLocked(id); job != nil {
		return job.Clone()
	}
	return nil
}

// ListJobs returns snapshots of all jobs, most-recent-first
func (s *Service) ListJobs() []*models.GenerationJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.GenerationJob, len(s.jobs))
	for i, job := range s.jobs {
		result[i] = job.Clone()
	}
	return result
}

// GetDocumentsByJobID returns snapshots of the documents a job produced
func (s *Service) GetDocumentsByJobID(jobID string) []*models.GeneratedDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*models.GeneratedDocument
	for _, doc := range s.docs {
		if doc.JobID == jobID {
			result = append(result, doc.Clone())
		}
	}
	return result
}

// ListDocuments returns snapshots of all generated documents
func (s *Service) ListDocuments() []*models.GeneratedDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.GeneratedDocument, len(s.docs))
	for i, doc := range s.docs {
		result[i] = doc.Clone()
	}
	return result
}

// IsLoading reports whether any job creation is currently in flight
func (s *Service) IsLoading() bool {
	return atomic.LoadInt32(&s.loading) > 0
}

// findJobLocked returns the stored job; callers must hold mu
func (s *Service) findJobLocked(id string) *models.GenerationJob {
	for _, job := range s.jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// insertDocumentLocked adds a document to the collection at most once;
// callers must hold mu
func (s *Service) insertDocumentLocked(doc *models.GeneratedDocument, prepend bool) {
	if _, exists := s.docIndex[doc.ID]; exists {
		return
	}
	s.docIndex[doc.ID] = doc
	if prepend {
		s.docs = append([]*models.GeneratedDocument{doc}, s.docs...)
	} else {
		s.docs = append(s.docs, doc)
	}
	if s.docStorage != nil {
		if err := s.docStorage.StoreDocument(context.Background(), doc); err != nil {
			s.logger.Warn().Err(err).Str("document_id", doc.ID).Msg("Failed to persist document")
		}
	}
}

// persistJob writes the job through to storage; callers must hold mu
func (s *Service) persistJob(job *models.GenerationJob) {
	if s.jobStorage == nil {
		return
	}
	if err := s.jobStorage.StoreJob(context.Background(), job); err != nil {
		s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("Failed to persist job")
	}
}

// publish emits an event if a bus is wired
func (s *Service) publish(ctx context.Context, eventType models.EventType, jobID string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	event := models.Event{
		Type:      eventType,
		Timestamp: s.now(),
		JobID:     jobID,
		Data:      data,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("event", string(eventType)).Msg("Failed to publish event")
	}
}

// singleDocumentSubject picks the file-name subject for a single-document
// run from well-known party placeholders, falling back to a generic token
func singleDocumentSubject(data models.DataRow) string {
	for _, key := range []string{"{{ClientName}}", "{{PartyAName}}"} {
		if v, ok := data[key]; ok {
			if str := fmt.Sprint(v); str != "" {
				return str
			}
		}
	}
	return "Single"
}

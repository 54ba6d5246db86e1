package maintenance

import (
	"errors"
	"fmt"
	"sync"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/interfaces"
)

// Value-log GC reclaims files where at least this fraction is stale
const gcDiscardRatio = 0.5

// Service runs scheduled Badger maintenance: value-log garbage collection on
// a cron schedule so long-running instances do not accumulate stale data.
type Service struct {
	storage interfaces.StorageManager
	config  common.MaintenanceConfig
	logger  arbor.ILogger

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// NewService creates a new maintenance service
func NewService(storage interfaces.StorageManager, config common.MaintenanceConfig, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// Start registers the cron schedule and begins running sweeps
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Debug().Msg("Maintenance disabled, scheduler not started")
		return nil
	}
	if s.started {
		return fmt.Errorf("maintenance service already started")
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(s.config.Schedule, func() {
		if err := s.RunOnce(); err != nil {
			s.logger.Warn().Err(err).Msg("Maintenance sweep failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", s.config.Schedule, err)
	}

	c.Start()
	s.cron = c
	s.started = true

	s.logger.Info().Str("schedule", s.config.Schedule).Msg("Maintenance scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.started = false

	s.logger.Info().Msg("Maintenance scheduler stopped")
	return nil
}

// RunOnce executes one maintenance sweep. Value-log GC is repeated until
// Badger reports nothing left to rewrite.
func (s *Service) RunOnce() error {
	reclaimed := 0
	for {
		err := s.storage.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			reclaimed++
			continue
		}
		if errors.Is(err, badgerdb.ErrNoRewrite) {
			break
		}
		return fmt.Errorf("value log GC failed: %w", err)
	}

	s.logger.Info().Int("files_reclaimed", reclaimed).Msg("Maintenance sweep finished")
	return nil
}
